package login

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	match, err := CheckPasswordHash("secret1", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = CheckPasswordHash("wrong", hash)
	require.NoError(t, err)
	assert.False(t, match)

	_, err = HashPassword("")
	require.Error(t, err)

	_, err = CheckPasswordHash("", hash)
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryLoginRepository()
	service := NewLoginService(repo)

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	record := repo.SeedUser("Alice", "alice@example.com", hash, "ADMIN", "USER")

	t.Run("valid credentials", func(t *testing.T) {
		user, err := service.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, record.ID, user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, []string{"ADMIN", "USER"}, user.Roles)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, "alice@example.com", "wrong")
		require.Error(t, err)
		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, "nobody@example.com", "secret1")
		require.Error(t, err)
		assert.EqualError(t, err, "invalid email or password")
	})
}
