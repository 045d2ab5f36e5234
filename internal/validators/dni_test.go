package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDNI(t *testing.T) {
	assert.Equal(t, "12345678", NormalizeDNI("12.345.678"))
	assert.Equal(t, "12345678", NormalizeDNI(" 12 345 678 "))
	assert.Equal(t, "1234567", NormalizeDNI("1.234.567"))
	assert.Equal(t, "", NormalizeDNI("   "))
}

func TestIsValidDNI(t *testing.T) {
	valid := []string{"1234567", "12345678", "12.345.678", "99999999"}
	for _, dni := range valid {
		assert.True(t, IsValidDNI(dni), "debería aceptar %q", dni)
	}

	invalid := []string{"", "123456", "123456789", "12AB5678", "12-345-678"}
	for _, dni := range invalid {
		assert.False(t, IsValidDNI(dni), "debería rechazar %q", dni)
	}
}
