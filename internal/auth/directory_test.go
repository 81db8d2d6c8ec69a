package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/moto-maintenance/internal/models"
)

func TestDirectory_AddAndAuthenticate(t *testing.T) {
	service := newTestService(t)
	dir := NewDirectory()

	user, err := dir.AddUser(service, "rider", "password123", models.RoleOperator)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.PasswordHash)

	got, err := dir.Authenticate(service, "rider", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = dir.Authenticate(service, "rider", "wrongpassword")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = dir.Authenticate(service, "nobody", "password123")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestDirectory_AddUserValidation(t *testing.T) {
	service := newTestService(t)
	dir := NewDirectory()

	_, err := dir.AddUser(service, "ab", "password123", models.RoleOperator)
	assert.Error(t, err)

	_, err = dir.AddUser(service, "rider", "short", models.RoleOperator)
	assert.Error(t, err)

	_, err = dir.AddUser(service, "rider", "password123", "admin")
	assert.Error(t, err)

	_, err = dir.AddUser(service, "rider", "password123", models.RoleViewer)
	require.NoError(t, err)
	_, err = dir.AddUser(service, "rider", "password123", models.RoleViewer)
	assert.Error(t, err, "duplicate username")
}

func TestDirectory_UpdateLastLogin(t *testing.T) {
	service := newTestService(t)
	dir := NewDirectory()
	_, err := dir.AddUser(service, "rider", "password123", models.RoleViewer)
	require.NoError(t, err)

	require.NoError(t, dir.UpdateLastLogin("rider"))
	user, err := dir.FindUserByUsername("rider")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)

	assert.Equal(t, ErrUserNotFound, dir.UpdateLastLogin("nobody"))
}
