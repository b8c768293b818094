package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+22670123456", "22670123456", "+226 70 12 34 56", "70-12-34-56"}
	for _, p := range valid {
		assert.True(t, ValidatePhone(p), p)
	}

	invalid := []string{"", "abc", "+0123", "1", "+226 70 12 34 56 78 90 12"}
	for _, p := range invalid {
		assert.False(t, ValidatePhone(p), p)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+22670123456", NormalizePhone("+226 70-12-34-56"))
	assert.Equal(t, "70123456", NormalizePhone("(70) 12 34 56"))
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(6)
	b := GenerateRandomString(6)
	assert.Len(t, a, 6)
	assert.Len(t, b, 6)
	assert.NotEqual(t, a, b)
}
