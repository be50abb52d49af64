package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "42")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "object not found: 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundErrorWithCause("item", "7", errors.New("soft deleted"))

		assert.Equal(t,
			"object not found: param is: item, ID is: 7 (cause: soft deleted)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("must be at least 1"))
		assert.Equal(t, "value is invalid: quantity (cause: must be at least 1)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("payment")
		assert.Equal(t, "value is required: payment", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("per_page", 500, 1, 100)
		assert.Equal(t, "value is invalid: 500 is per_page, min value is 1, max value is 100", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("out of range strips newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("comment", "a\nb", 0, 1)
		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "a b")
	})
}

func TestStatusTransitionIsInvalidError(t *testing.T) {
	err := errs.NewStatusTransitionIsInvalidError("status", "COMPLETED", "CANCELED")

	assert.Equal(t,
		"status transition is invalid: status cannot change from COMPLETED to CANCELED",
		err.Error())
	require.ErrorIs(t, err, errs.ErrStatusTransitionIsInvalid)
	assert.True(t, errs.IsInvalidTransition(err))
	assert.False(t, errs.IsValidation(err))
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.NewPersistenceError("add order", cause)

	assert.Equal(t, "persistence failed: add order (cause: connection reset)", err.Error())
	require.ErrorIs(t, err, errs.ErrPersistence)
	require.ErrorIs(t, err, cause)
	assert.True(t, errs.IsPersistence(err))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		domain     bool
	}{
		{"required", errs.NewValueIsRequiredError("x"), true, false, true},
		{"out of range", errs.NewValueIsOutOfRangeError("x", 1, 2, 3), true, false, true},
		{"not found wrapped", fmt.Errorf("load: %w", errs.NewObjectNotFoundError("order", "1")), false, true, true},
		{"joined", errors.Join(errors.New("other"), errs.NewValueIsInvalidError("x")), true, false, true},
		{"plain", errors.New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, errs.IsValidation(tt.err))
			assert.Equal(t, tt.notFound, errs.IsNotFound(tt.err))
			assert.Equal(t, tt.domain, errs.IsDomain(tt.err))
		})
	}
}
