package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCredentials_HashAndVerify(t *testing.T) {
	c := NewCredentials(bcrypt.MinCost)

	a, err := c.Hash("admin123")
	require.NoError(t, err)
	b, err := c.Hash("admin123")
	require.NoError(t, err)

	// 每次加盐不同
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, "admin123", a)
	assert.True(t, c.Verify("admin123", a))
	assert.True(t, c.Verify("admin123", b))
	assert.False(t, c.Verify("admin124", a))
	assert.False(t, c.Verify("admin123", "not-a-digest"))
}

func TestCredentials_ValidatePassword(t *testing.T) {
	c := NewCredentials(bcrypt.MinCost)

	assert.ErrorIs(t, c.ValidatePassword("12345"), ErrValidation)
	assert.NoError(t, c.ValidatePassword("123456"))
	// 按字符计数
	assert.NoError(t, c.ValidatePassword("éééééé"))
	assert.ErrorIs(t, c.ValidatePassword(strings.Repeat("a", 73)), ErrValidation)
}

func TestCredentials_ValidateNewPassword(t *testing.T) {
	c := NewCredentials(bcrypt.MinCost)

	err := c.ValidateNewPassword("12345")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Le nouveau mot de passe doit comporter au moins 6 caractères.", MessageOf(err))
	assert.Equal(t, "Le mot de passe doit comporter au moins 6 caractères.", MessageOf(c.ValidatePassword("12345")))

	err = c.ValidateNewPassword(strings.Repeat("a", 73))
	assert.Equal(t, "Le nouveau mot de passe est trop long.", MessageOf(err))
	assert.NoError(t, c.ValidateNewPassword("secret1"))
}

func TestNewCredentials_InvalidCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewCredentials(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewCredentials(99).cost)
	assert.Equal(t, 12, NewCredentials(12).cost)
}
