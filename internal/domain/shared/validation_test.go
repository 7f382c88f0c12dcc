package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationResult_StartsValid(t *testing.T) {
	r := NewValidationResult()
	assert.True(t, r.IsValid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestValidationResult_AddError(t *testing.T) {
	r := NewValidationResult()
	r.AddError("balance remaining is positive")

	assert.False(t, r.IsValid)
	assert.Equal(t, []string{"balance remaining is positive"}, r.Errors)
}

func TestValidationResult_WarningsDoNotInvalidate(t *testing.T) {
	r := NewValidationResult()
	r.AddWarning("payment overdue")

	assert.True(t, r.IsValid)
	assert.True(t, r.HasWarnings())
}

func TestValidationResult_Merge(t *testing.T) {
	r := NewValidationResult()
	other := NewValidationResult()
	other.AddError("cannot skip stages")
	other.AddWarning("task completion below 80%")

	r.Merge(other)

	assert.False(t, r.IsValid)
	assert.Len(t, r.Errors, 1)
	assert.Len(t, r.Warnings, 1)

	r.Merge(nil)
	assert.Len(t, r.Errors, 1)
}
