package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("tool %q not found", "x"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConfiguration))
}

func TestFrom_WrapsUnknownErrorsAsInternal(t *testing.T) {
	ae := From(errors.New("boom"))

	assert.Equal(t, CodeInternal, ae.Code)
	assert.Equal(t, http.StatusInternalServerError, ae.HTTPCode)
}

func TestWithDetails_DoesNotMutateOriginal(t *testing.T) {
	base := Validation("bad input")
	withDetails := base.WithDetails(map[string]string{"uses": "min"})

	assert.Nil(t, base.Details)
	assert.NotNil(t, withDetails.Details)
}
