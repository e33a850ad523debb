package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs_MatchesKind(t *testing.T) {
	err := NotFound("reservation", "42")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))

	wrapped := fmt.Errorf("get reservation: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	original := Conflict("CPF already registered")
	assert.Same(t, original, From(fmt.Errorf("register: %w", original)))

	internal := From(errors.New("boom"))
	assert.Equal(t, KindInternal, internal.Kind)
	assert.Equal(t, "internal server error", internal.Message)
	assert.EqualError(t, internal.Err, "boom")

	viaSentinel := From(fmt.Errorf("payment settled: %w", ErrInvalidStateTransition))
	assert.Equal(t, KindInvalidStateTransition, viaSentinel.Kind)
	assert.Equal(t, "payment settled: INVALID_STATE_TRANSITION", viaSentinel.Message)
}

func TestStatusFor(t *testing.T) {
	want := map[Kind]int{
		KindNotFound:               http.StatusNotFound,
		KindValidation:             http.StatusBadRequest,
		KindVehicleUnavailable:     http.StatusBadRequest,
		KindInvalidStateTransition: http.StatusConflict,
		KindConflict:               http.StatusConflict,
		KindInvalidAuthToken:       http.StatusUnauthorized,
		KindUnauthorized:           http.StatusUnauthorized,
		KindForbidden:              http.StatusForbidden,
		KindInternal:               http.StatusInternalServerError,
	}
	for kind, status := range want {
		assert.Equal(t, status, StatusFor(kind), kind)
	}
}

func TestValidation_CopiesFields(t *testing.T) {
	err := Validation("invalid request", map[string]string{"plate": "required"})
	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, map[string]any{"plate": "required"}, appErr.Details)

	err = Validation("bad", nil)
	require.True(t, errors.As(err, &appErr))
	assert.Nil(t, appErr.Details)
}

func TestInternal_Unwraps(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: dial tcp: refused", err.Error())
}
