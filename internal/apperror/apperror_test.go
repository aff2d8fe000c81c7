package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf_WrappedDomainError(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("report not found"))
	require.Equal(t, KindNotFound, KindOf(err))
	require.True(t, Is(err, KindNotFound))

	e, ok := As(err)
	require.True(t, ok)
	require.Equal(t, "report not found", e.Message)
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	require.Equal(t, KindInternal, KindOf(errors.New("boom")))
	require.False(t, Is(nil, KindInternal))
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("failed to count users", cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "connection refused")
}

func TestWithMeta_DoesNotMutateOriginal(t *testing.T) {
	base := Validation("invalid status transition")
	withFrom := base.WithMeta("from", "SOLVED")
	require.Nil(t, base.Meta)
	require.Equal(t, "SOLVED", withFrom.Meta["from"])
}
