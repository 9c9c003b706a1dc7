package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorsAddError(t *testing.T) {
	v := NewValidationErrors()
	assert.False(t, v.HasErrors())

	v.AddError("email", "must be a valid address").AddError("", "body malformed")

	require.True(t, v.HasErrors())
	require.Len(t, v.Errors, 2)
	assert.Equal(t, ErrorCodeValidationFailed, v.Errors[0].Code)
	assert.Equal(t, "email", v.Errors[0].Field)
	assert.Equal(t, ErrorSeverityError, v.Errors[0].Severity)
	assert.Empty(t, v.Errors[1].Field)
}
