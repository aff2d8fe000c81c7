package seed

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun_IsRepeatable(t *testing.T) {
	db := testutil.SetupDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db, "123456"))
	require.NoError(t, Run(ctx, db, "123456"))

	count := func(m interface{}) int64 {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		return n
	}
	require.EqualValues(t, 2, count(&models.User{}))
	require.EqualValues(t, 3, count(&models.FishReference{}))
	require.EqualValues(t, 1, count(&models.Article{}))
	require.EqualValues(t, 2, count(&models.Report{}))

	users := services.NewUserService(db)
	auth := services.NewAuthService(users, testutil.Config(t))
	resp, err := auth.Login(ctx, &dto.LoginRequest{Email: "admin@bhasbi.com", Password: "123456"})
	require.NoError(t, err)
	require.True(t, resp.User.IsAdmin())

	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "user@bhasbi.com").Error)
	cost, err := bcrypt.Cost([]byte(stored.Password))
	require.NoError(t, err)
	require.Equal(t, services.BcryptCost, cost)

	reports := services.NewReportService(db, services.ReportWorkflow{})
	feed, err := reports.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, "Stonefish", feed[0].FishReference.Name)
}
