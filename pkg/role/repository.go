package role

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-user-admin/pkg/role/roledb"
)

// PostgresRoleRepository reads roles through generated queries
type PostgresRoleRepository struct {
	queries *roledb.Queries
}

func NewPostgresRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{
		queries: roledb.New(pool),
	}
}

func (r *PostgresRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.queries.FindRoles(ctx)
	if err != nil {
		return nil, err
	}
	roles := make([]Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, Role{
			ID:   row.ID,
			Name: row.Name,
		})
	}
	return roles, nil
}

// InMemoryRoleRepository backs RoleService in tests
type InMemoryRoleRepository struct {
	mu    sync.RWMutex
	roles map[string]Role
}

func NewInMemoryRoleRepository() *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		roles: make(map[string]Role),
	}
}

func (r *InMemoryRoleRepository) SeedRole(name string) Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	role := Role{
		ID:   uuid.New(),
		Name: name,
	}
	r.roles[name] = role
	return role
}

func (r *InMemoryRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roles := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}
