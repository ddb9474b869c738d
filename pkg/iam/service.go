package iam

import (
	"context"

	"github.com/google/uuid"
	"github.com/tendant/simple-user-admin/pkg/errors"
	"github.com/tendant/simple-user-admin/pkg/login"
	"golang.org/x/exp/slog"
)

// IamService provides user management operations
type IamService struct {
	repo IamRepository
}

// NewIamService creates a new IAM service
func NewIamService(repo IamRepository) *IamService {
	return &IamService{
		repo: repo,
	}
}

// FindUsers returns all users with their roles, passwords stripped
func (s *IamService) FindUsers(ctx context.Context) ([]UserWithRoles, error) {
	users, err := s.repo.FindUsersWithRoles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to find users")
	}
	return users, nil
}

// GetUser returns a single user with roles resolved
func (s *IamService) GetUser(ctx context.Context, userId uuid.UUID) (UserWithRoles, error) {
	user, err := s.repo.GetUserWithRoles(ctx, userId)
	if err != nil {
		if IsNoRows(err) {
			return UserWithRoles{}, errors.Newf(errors.ErrCodeUserNotFound, "user not found: %s", userId)
		}
		return UserWithRoles{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to get user")
	}
	return user, nil
}

// CreateUser creates a user, hashes the password if supplied, and assigns
// the requested roles. The whole write happens in one transaction.
func (s *IamService) CreateUser(ctx context.Context, params CreateUserParams) (UserWithRoles, error) {
	_, err := s.repo.FindUserByEmail(ctx, params.Email)
	if err == nil {
		return UserWithRoles{}, errors.Newf(errors.ErrCodeEmailExists, "Email already exists %s", params.Email)
	}
	if !IsNoRows(err) {
		return UserWithRoles{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to check email")
	}

	var hash []byte
	if params.Password != "" {
		hashed, err := login.HashPassword(params.Password)
		if err != nil {
			return UserWithRoles{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to hash password")
		}
		hash = []byte(hashed)
	}

	var created UserWithRoles
	err = s.repo.WithTx(ctx, func(repo IamRepository) error {
		// Resolve every role name before touching the users table so an
		// unknown name cannot leave a partial write behind.
		roles, err := resolveRoles(ctx, repo, params.Roles)
		if err != nil {
			return err
		}

		user, err := repo.CreateUser(ctx, CreateUserRecord{
			Name:         params.Name,
			Age:          params.Age,
			Email:        params.Email,
			PasswordHash: hash,
		})
		if err != nil {
			if IsUniqueViolation(err) {
				return errors.Newf(errors.ErrCodeEmailExists, "Email already exists %s", params.Email)
			}
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to create user")
		}

		for _, role := range roles {
			if err := repo.CreateUserRole(ctx, user.ID, role.ID); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to assign role")
			}
		}

		created, err = repo.GetUserWithRoles(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to get user with roles")
		}
		return nil
	})
	if err != nil {
		return UserWithRoles{}, err
	}

	slog.Info("Created user", "userId", created.ID, "roles", created.Roles)
	return created, nil
}

// UpdateUser replaces name, age, email and the role set. The password is
// re-hashed only when a non-empty password is supplied; the email check is
// ownership-aware, rejecting only an email held by a different user.
func (s *IamService) UpdateUser(ctx context.Context, userId uuid.UUID, params UpdateUserParams) (UserWithRoles, error) {
	_, err := s.repo.GetUserWithRoles(ctx, userId)
	if err != nil {
		if IsNoRows(err) {
			return UserWithRoles{}, errors.Newf(errors.ErrCodeUserNotFound, "user not found: %s", userId)
		}
		return UserWithRoles{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to get user")
	}

	existing, err := s.repo.FindUserByEmail(ctx, params.Email)
	if err == nil && existing.ID != userId {
		return UserWithRoles{}, errors.Newf(errors.ErrCodeEmailExists, "Email for update already exists: %s", params.Email)
	}
	if err != nil && !IsNoRows(err) {
		return UserWithRoles{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to check email")
	}

	var hash []byte
	if params.Password != "" {
		hashed, err := login.HashPassword(params.Password)
		if err != nil {
			return UserWithRoles{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to hash password")
		}
		hash = []byte(hashed)
	}

	var updated UserWithRoles
	err = s.repo.WithTx(ctx, func(repo IamRepository) error {
		roles, err := resolveRoles(ctx, repo, params.Roles)
		if err != nil {
			return err
		}

		if _, err := repo.UpdateUser(ctx, UpdateUserRecord{
			ID:    userId,
			Name:  params.Name,
			Age:   params.Age,
			Email: params.Email,
		}); err != nil {
			if IsUniqueViolation(err) {
				return errors.Newf(errors.ErrCodeEmailExists, "Email for update already exists: %s", params.Email)
			}
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to update user")
		}

		if hash != nil {
			if err := repo.UpdateUserPassword(ctx, userId, hash); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to update password")
			}
		}

		if err := repo.DeleteUserRoles(ctx, userId); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to clear roles")
		}
		for _, role := range roles {
			if err := repo.CreateUserRole(ctx, userId, role.ID); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to assign role")
			}
		}

		updated, err = repo.GetUserWithRoles(ctx, userId)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to get user with roles")
		}
		return nil
	})
	if err != nil {
		return UserWithRoles{}, err
	}

	slog.Info("Updated user", "userId", userId, "roles", updated.Roles)
	return updated, nil
}

// DeleteUser removes the user; reports not found when no row was affected
func (s *IamService) DeleteUser(ctx context.Context, userId uuid.UUID) error {
	var deleted int64
	err := s.repo.WithTx(ctx, func(repo IamRepository) error {
		rows, err := repo.DeleteUser(ctx, userId)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to delete user")
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errors.Newf(errors.ErrCodeUserNotFound, "user not found: %s", userId)
	}
	return nil
}

// resolveRoles maps each submitted role name to a catalog entry, failing
// on the first unknown name.
func resolveRoles(ctx context.Context, repo IamRepository, names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role, err := repo.GetRoleByName(ctx, name)
		if err != nil {
			if IsNoRows(err) {
				return nil, errors.Newf(errors.ErrCodeRoleNotFound, "Role not found: %s", name)
			}
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to resolve role")
		}
		roles = append(roles, role)
	}
	return roles, nil
}
