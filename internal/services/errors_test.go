package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	require.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	require.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("connection reset by peer")))
}

func TestParseID_Malformed(t *testing.T) {
	_, err := parseID("not-a-uuid", errReportNotFound)
	require.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = parseID("00000000-0000-0000-0000-000000000000", errInvalidUserID)
	require.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestValidateInput_UsesJSONFieldNames(t *testing.T) {
	err := validateInput(&dto.RegisterRequest{Password: "secret"})
	e, ok := apperror.As(err)
	require.True(t, ok)
	require.Equal(t, apperror.KindValidation, e.Kind)
	require.Equal(t, "email is required", e.Message)

	err = validateInput(&dto.CreateFishRequest{Name: "Lionfish", Description: "d", ImageURL: "x", DangerLevel: "EXTREME"})
	e, ok = apperror.As(err)
	require.True(t, ok)
	require.Equal(t, "dangerLevel must be one of: LOW, MEDIUM, HIGH", e.Message)
}
