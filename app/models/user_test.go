package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()

	u, err := CreateUser("jane@example.com", "secret123", "Jane", "Doe", ROLE_JOURNALIST)
	require.NoError(t, err)

	assert.Equal(t, STATUS_INACTIVE, u.Status)
	assert.Equal(t, ROLE_JOURNALIST, u.Role)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()

	_, err := CreateUser("not-an-email", "secret123", "Jane", "Doe", ROLE_READER)
	assert.Error(t, err)

	_, err = CreateUser("jane@example.com", "secret123", "Jane", "Doe", "admin")
	assert.Error(t, err)
}

func TestGenerateActivationToken(t *testing.T) {
	t.Parallel()

	u := &User{}
	require.NoError(t, u.GenerateActivationToken())
	assert.Len(t, u.ActivationToken, 32)
	assert.NotNil(t, u.ActivationSentAt)

	first := u.ActivationToken
	require.NoError(t, u.GenerateActivationToken())
	assert.NotEqual(t, first, u.ActivationToken)
}

func TestEffectiveDisplayName(t *testing.T) {
	t.Parallel()

	u := &User{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", u.EffectiveDisplayName())

	u.DisplayName = "jdoe"
	assert.Equal(t, "jdoe", u.EffectiveDisplayName())
}

func TestRoleHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, (&User{Role: ROLE_READER}).IsReader())
	assert.True(t, (&User{Role: ROLE_JOURNALIST}).IsJournalist())
	assert.True(t, (&User{Role: ROLE_EDITOR}).IsEditor())
	assert.False(t, (&User{Role: ROLE_READER}).IsJournalist())
}
