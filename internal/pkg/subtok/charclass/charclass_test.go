package charclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinClasses(t *testing.T) {
	letter, err := New("letter")
	require.NoError(t, err)
	assert.True(t, letter('a'))
	assert.True(t, letter('é'))
	assert.False(t, letter('3'))
	assert.False(t, letter(' '))

	letterDigit, err := New("letter-digit")
	require.NoError(t, err)
	assert.True(t, letterDigit('3'))
	assert.False(t, letterDigit('-'))

	ascii, err := New("ascii-letter")
	require.NoError(t, err)
	assert.True(t, ascii('Z'))
	assert.False(t, ascii('é'))
}

func TestUnknownClass(t *testing.T) {
	_, err := New("no-such-class")
	assert.ErrorContains(t, err, "unknown class")
}

func TestList(t *testing.T) {
	names := List()
	assert.Contains(t, names, "letter")
	assert.Contains(t, names, "letter-digit")
	assert.Contains(t, names, "ascii-letter")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("charclass-test-dup", func(r rune) bool { return true })

	assert.Panics(t, func() {
		Register("charclass-test-dup", func(r rune) bool { return true })
	})
}

func TestRegisterNilPanics(t *testing.T) {
	assert.Panics(t, func() { Register("charclass-test-nil", nil) })
}
