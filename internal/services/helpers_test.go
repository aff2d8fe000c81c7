package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	users    *UserService
	auth     *AuthService
	reports  *ReportService
	admin    *AdminService
	fish     *FishService
	articles *ArticleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupDB(t)
	users := NewUserService(db)
	reports := NewReportService(db, ReportWorkflow{})
	return &testEnv{
		db:       db,
		users:    users,
		auth:     NewAuthService(users, testutil.Config(t)),
		reports:  reports,
		admin:    NewAdminService(db, reports),
		fish:     NewFishService(db),
		articles: NewArticleService(db),
	}
}

func (e *testEnv) createUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), &dto.CreateUserRequest{
		Email:    email,
		Password: "secret123",
		Name:     "Test " + email,
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) createFish(t *testing.T, name string) *models.FishReference {
	t.Helper()
	f := models.FishReference{
		Name:        name,
		Description: name + " description",
		ImageURL:    "https://img.example.com/" + name + ".jpg",
		DangerLevel: models.DangerHigh,
	}
	require.NoError(t, e.db.Create(&f).Error)
	return &f
}

// insertReport writes a report row directly so tests control status and age.
func (e *testEnv) insertReport(t *testing.T, userID uuid.UUID, status models.ReportStatus, age time.Duration) *models.Report {
	t.Helper()
	r := models.Report{
		UserID:      userID,
		Description: "sighting",
		PhotoURL:    "https://img.example.com/photo.jpg",
		Latitude:    -6.2,
		Longitude:   106.8,
		Status:      status,
		CreatedAt:   time.Now().Add(-age),
	}
	require.NoError(t, e.db.Create(&r).Error)
	return &r
}

func strPtr(s string) *string { return &s }
