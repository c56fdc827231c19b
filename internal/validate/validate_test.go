package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

type sample struct {
	UserID string `json:"user_id" validate:"required"`
	Level  string `json:"level" validate:"omitempty,oneof=beginner advanced"`
	Hours  int    `json:"hours" validate:"min=1,max=80"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{UserID: "u1", Hours: 4}))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Level: "expert", Hours: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	var ae *apperrors.AppError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "invalid fields: hours, level, user_id", ae.Message)

	fields, ok := ae.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", fields["user_id"])
	assert.Equal(t, "must be one of [beginner advanced]", fields["level"])
	assert.Equal(t, "must be at least 1", fields["hours"])
}
