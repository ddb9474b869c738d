package role

import (
	"context"

	"github.com/google/uuid"
	"github.com/tendant/simple-user-admin/pkg/errors"
)

// Role is a named grant that route rules and user assignments refer to
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RoleRepository reads the role catalog
type RoleRepository interface {
	FindRoles(ctx context.Context) ([]Role, error)
}

// RoleService lists the role catalog for the admin UI
type RoleService struct {
	repo RoleRepository
}

func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{
		repo: repo,
	}
}

func (s *RoleService) FindRoles(ctx context.Context) ([]Role, error) {
	roles, err := s.repo.FindRoles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to find roles")
	}
	if roles == nil {
		roles = []Role{}
	}
	return roles, nil
}
