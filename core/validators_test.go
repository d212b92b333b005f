package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordTooSimilar(t *testing.T) {
	assert.True(t, PasswordTooSimilar("amina@test.cd", "amina", "amina@test.cd"))
	assert.True(t, PasswordTooSimilar("aminaK2026", "aminaK", ""))
	assert.False(t, PasswordTooSimilar("correct horse battery staple", "amina", "amina@test.cd"))
	assert.False(t, PasswordTooSimilar("password123"))
	assert.False(t, PasswordTooSimilar("password123", "", ""))
}
