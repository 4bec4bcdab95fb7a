package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("mario.rossi@example.com"))
	assert.True(t, IsValidEmail("a+b@sub.domain.it"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3f2c1a9e-8b4d-4c6a-9f1e-2d3b4a5c6d7e"))
	assert.True(t, IsValidUUID("3F2C1A9E-8B4D-4C6A-9F1E-2D3B4A5C6D7E"))
	assert.False(t, IsValidUUID("3f2c1a9e-8b4d-4c6a-9f1e"))
	assert.False(t, IsValidUUID("not-a-uuid"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-06-30")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("30/06/2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsValidClockTime(t *testing.T) {
	assert.True(t, IsValidClockTime("00:00"))
	assert.True(t, IsValidClockTime("09:30"))
	assert.True(t, IsValidClockTime("23:59"))
	assert.False(t, IsValidClockTime("24:00"))
	assert.False(t, IsValidClockTime("9:30"))
	assert.False(t, IsValidClockTime("09:60"))
	assert.False(t, IsValidClockTime("0930"))
}

func TestIsValidMonth(t *testing.T) {
	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))
}

func TestIsInSlice(t *testing.T) {
	values := []string{"regular", "overtime", "holiday"}
	assert.True(t, IsInSlice("regular", values))
	assert.False(t, IsInSlice("night", values))
	assert.False(t, IsInSlice("", values))
}
