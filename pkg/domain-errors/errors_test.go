package domainerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "registrar/pkg/domain-errors"
)

func TestNew(t *testing.T) {
	err := dErrors.New(dErrors.CodeValidation, "bad input")

	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, dErrors.CodeValidation, err.Code())
	assert.Nil(t, err.Unwrap())
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := dErrors.Wrap(cause, dErrors.CodeInternal, "operation failed")

	assert.Equal(t, "operation failed: underlying failure", err.Error())
	assert.Equal(t, dErrors.CodeInternal, err.Code())
	assert.ErrorIs(t, err, cause)
}

func TestHasCode(t *testing.T) {
	t.Run("matches the direct code", func(t *testing.T) {
		err := dErrors.New(dErrors.CodeInvariantViolation, "rule broken")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		assert.False(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("walks a wrapped chain", func(t *testing.T) {
		inner := dErrors.New(dErrors.CodeValidation, "bad value")
		outer := dErrors.Wrap(inner, dErrors.CodeInvalidInput, "bad request")

		assert.True(t, dErrors.HasCode(outer, dErrors.CodeInvalidInput))
		assert.True(t, dErrors.HasCode(outer, dErrors.CodeValidation))
		assert.False(t, dErrors.HasCode(outer, dErrors.CodeConflict))
	})

	t.Run("sees through fmt.Errorf wrapping", func(t *testing.T) {
		coded := dErrors.New(dErrors.CodeTimeout, "deadline hit")
		wrapped := fmt.Errorf("call failed: %w", coded)
		assert.True(t, dErrors.HasCode(wrapped, dErrors.CodeTimeout))
	})

	t.Run("handles nil and uncoded errors", func(t *testing.T) {
		assert.False(t, dErrors.HasCode(nil, dErrors.CodeInternal))
		assert.False(t, dErrors.HasCode(errors.New("plain"), dErrors.CodeInternal))
	})
}

func TestIs(t *testing.T) {
	err := dErrors.New(dErrors.CodeConflict, "version mismatch")
	require.True(t, dErrors.Is(err, dErrors.CodeConflict))
	require.False(t, dErrors.Is(err, dErrors.CodeValidation))
}
