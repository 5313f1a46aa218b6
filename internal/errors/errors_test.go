package appErrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/unclebandit/customer-service/internal/errors"
)

func TestConstructorsCarryKind(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{appErrors.NewNotFound("customer not found"), appErrors.ErrNotFound},
		{appErrors.NewConflict("identifier already exists: %s", "42"), appErrors.ErrConflict},
		{appErrors.NewIntegrityViolation("integrity violation"), appErrors.ErrIntegrityViolation},
		{appErrors.NewValidation("invalid status: %q", "bogus"), appErrors.ErrValidation},
	}

	for _, c := range cases {
		assert.ErrorIs(t, c.err, c.kind)
	}
}

func TestMessageSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", appErrors.NewConflict("identifier already exists: %s", "abc"))

	msg, ok := appErrors.Message(err)
	assert.True(t, ok)
	assert.Equal(t, "identifier already exists: abc", msg)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestMessageOnPlainError(t *testing.T) {
	_, ok := appErrors.Message(errors.New("boom"))
	assert.False(t, ok)
}
