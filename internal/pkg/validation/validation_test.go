package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidNationalID(t *testing.T) {
	assert.True(t, IsValidNationalID("12345678901"))

	for _, id := range []string{"", "1234567890", "123456789012", "1234567890a", " 12345678901"} {
		assert.False(t, IsValidNationalID(id), "id %q", id)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("secret1234"))
	assert.False(t, IsValidPassword("short1"))
	assert.False(t, IsValidPassword("nodigitshere"))
	assert.False(t, IsValidPassword("12345678"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.False(t, IsBlank("x"))
}
