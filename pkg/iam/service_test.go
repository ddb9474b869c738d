package iam

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-user-admin/pkg/errors"
	"github.com/tendant/simple-user-admin/pkg/login"
)

func setupService(t *testing.T) (*IamService, *InMemoryIamRepository) {
	repo := NewInMemoryIamRepository()
	repo.SeedRole("ADMIN")
	repo.SeedRole("USER")
	return NewIamService(repo), repo
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	tests := []struct {
		name     string
		params   CreateUserParams
		wantErr  bool
		wantCode errors.ErrorCode
	}{
		{
			name: "valid user with role",
			params: CreateUserParams{
				Name:     "Alice",
				Age:      30,
				Email:    "alice@example.com",
				Password: "secret1",
				Roles:    []string{"USER"},
			},
		},
		{
			name: "duplicate email",
			params: CreateUserParams{
				Name:     "Alice Again",
				Age:      31,
				Email:    "alice@example.com",
				Password: "secret2",
				Roles:    []string{"USER"},
			},
			wantErr:  true,
			wantCode: errors.ErrCodeEmailExists,
		},
		{
			name: "unknown role",
			params: CreateUserParams{
				Name:     "Bob",
				Age:      40,
				Email:    "bob@example.com",
				Password: "secret1",
				Roles:    []string{"SUPERVISOR"},
			},
			wantErr:  true,
			wantCode: errors.ErrCodeRoleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.CreateUser(ctx, tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tt.params.Name, user.Name)
			assert.Equal(t, tt.params.Roles, user.Roles)
		})
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	ctx := context.Background()
	service, repo := setupService(t)

	user, err := service.CreateUser(ctx, CreateUserParams{
		Name:     "Alice",
		Age:      30,
		Email:    "alice@example.com",
		Password: "secret1",
		Roles:    []string{"USER"},
	})
	require.NoError(t, err)

	record, err := repo.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, record.ID)
	assert.NotEqual(t, []byte("secret1"), record.PasswordHash)

	match, err := login.CheckPasswordHash("secret1", string(record.PasswordHash))
	require.NoError(t, err)
	assert.True(t, match)
}

func TestCreateUserWithoutPasswordStoresNoHash(t *testing.T) {
	ctx := context.Background()
	service, repo := setupService(t)

	_, err := service.CreateUser(ctx, CreateUserParams{
		Name:  "Alice",
		Age:   30,
		Email: "alice@example.com",
		Roles: []string{"USER"},
	})
	require.NoError(t, err)

	record, err := repo.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, record.PasswordHash)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	service, repo := setupService(t)

	user, err := service.CreateUser(ctx, CreateUserParams{
		Name:     "Alice",
		Age:      30,
		Email:    "alice@example.com",
		Password: "secret1",
		Roles:    []string{"USER"},
	})
	require.NoError(t, err)

	t.Run("replaces fields and role set", func(t *testing.T) {
		updated, err := service.UpdateUser(ctx, user.ID, UpdateUserParams{
			Name:  "Alice Smith",
			Age:   31,
			Email: "alice@example.com",
			Roles: []string{"ADMIN"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", updated.Name)
		assert.Equal(t, int32(31), updated.Age)
		assert.Equal(t, []string{"ADMIN"}, updated.Roles)
	})

	t.Run("keeps own email", func(t *testing.T) {
		_, err := service.UpdateUser(ctx, user.ID, UpdateUserParams{
			Name:  "Alice Smith",
			Age:   31,
			Email: "alice@example.com",
			Roles: []string{"ADMIN"},
		})
		require.NoError(t, err)
	})

	t.Run("rejects email held by another user", func(t *testing.T) {
		other, err := service.CreateUser(ctx, CreateUserParams{
			Name:     "Bob",
			Age:      40,
			Email:    "bob@example.com",
			Password: "secret1",
			Roles:    []string{"USER"},
		})
		require.NoError(t, err)

		_, err = service.UpdateUser(ctx, other.ID, UpdateUserParams{
			Name:  "Bob",
			Age:   40,
			Email: "alice@example.com",
			Roles: []string{"USER"},
		})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeEmailExists))
	})

	t.Run("unknown role leaves record unchanged", func(t *testing.T) {
		before, err := service.GetUser(ctx, user.ID)
		require.NoError(t, err)

		_, err = service.UpdateUser(ctx, user.ID, UpdateUserParams{
			Name:  "Changed",
			Age:   99,
			Email: "changed@example.com",
			Roles: []string{"SUPERVISOR"},
		})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeRoleNotFound))

		after, err := service.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := service.UpdateUser(ctx, uuid.New(), UpdateUserParams{
			Name:  "Nobody",
			Age:   20,
			Email: "nobody@example.com",
			Roles: []string{"USER"},
		})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeUserNotFound))
	})

	t.Run("empty password keeps stored hash", func(t *testing.T) {
		before, err := repo.FindUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)

		_, err = service.UpdateUser(ctx, user.ID, UpdateUserParams{
			Name:  "Alice Smith",
			Age:   31,
			Email: "alice@example.com",
			Roles: []string{"ADMIN"},
		})
		require.NoError(t, err)

		after, err := repo.FindUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, before.PasswordHash, after.PasswordHash)
	})

	t.Run("new password is re-hashed", func(t *testing.T) {
		before, err := repo.FindUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)

		_, err = service.UpdateUser(ctx, user.ID, UpdateUserParams{
			Name:     "Alice Smith",
			Age:      31,
			Email:    "alice@example.com",
			Password: "newsecret",
			Roles:    []string{"ADMIN"},
		})
		require.NoError(t, err)

		after, err := repo.FindUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

		match, err := login.CheckPasswordHash("newsecret", string(after.PasswordHash))
		require.NoError(t, err)
		assert.True(t, match)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	user, err := service.CreateUser(ctx, CreateUserParams{
		Name:     "Alice",
		Age:      30,
		Email:    "alice@example.com",
		Password: "secret1",
		Roles:    []string{"USER"},
	})
	require.NoError(t, err)

	err = service.DeleteUser(ctx, user.ID)
	require.NoError(t, err)

	_, err = service.GetUser(ctx, user.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUserNotFound))

	err = service.DeleteUser(ctx, user.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUserNotFound))
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	_, err := service.GetUser(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUserNotFound))
}
