package iam

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InMemoryIamRepository implements IamRepository using in-memory storage.
// It mirrors the Postgres repository closely enough for service and handler
// tests, including pgx.ErrNoRows on lookup misses.
type InMemoryIamRepository struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]User
	roles     map[string]Role
	userRoles map[uuid.UUID][]uuid.UUID // userID -> []roleID
}

// NewInMemoryIamRepository creates a new in-memory IAM repository
func NewInMemoryIamRepository() *InMemoryIamRepository {
	return &InMemoryIamRepository{
		users:     make(map[uuid.UUID]User),
		roles:     make(map[string]Role),
		userRoles: make(map[uuid.UUID][]uuid.UUID),
	}
}

// SeedRole adds a role to the in-memory catalog and returns it
func (r *InMemoryIamRepository) SeedRole(name string) Role {
	r.mu.Lock()
	defer r.mu.Unlock()

	role := Role{ID: uuid.New(), Name: name}
	r.roles[name] = role
	return role
}

// WithTx runs fn against the same repository. The in-memory store has no
// real transactions; callers are expected to fail before mutating.
func (r *InMemoryIamRepository) WithTx(ctx context.Context, fn func(IamRepository) error) error {
	return fn(r)
}

func (r *InMemoryIamRepository) CreateUser(ctx context.Context, arg CreateUserRecord) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user := User{
		ID:             uuid.New(),
		CreatedAt:      now,
		LastModifiedAt: now,
		Name:           arg.Name,
		Age:            arg.Age,
		Email:          arg.Email,
		PasswordHash:   arg.PasswordHash,
	}

	r.users[user.ID] = user
	r.userRoles[user.ID] = []uuid.UUID{}
	return user, nil
}

func (r *InMemoryIamRepository) GetUserWithRoles(ctx context.Context, id uuid.UUID) (UserWithRoles, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return UserWithRoles{}, pgx.ErrNoRows
	}
	return UserWithRoles{User: user, Roles: r.roleNames(id)}, nil
}

func (r *InMemoryIamRepository) FindUsersWithRoles(ctx context.Context) ([]UserWithRoles, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]UserWithRoles, 0, len(r.users))
	for id, user := range r.users {
		users = append(users, UserWithRoles{User: user, Roles: r.roleNames(id)})
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *InMemoryIamRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, pgx.ErrNoRows
}

func (r *InMemoryIamRepository) UpdateUser(ctx context.Context, arg UpdateUserRecord) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[arg.ID]
	if !ok {
		return User{}, pgx.ErrNoRows
	}
	user.Name = arg.Name
	user.Age = arg.Age
	user.Email = arg.Email
	user.LastModifiedAt = time.Now()
	r.users[arg.ID] = user
	return user, nil
}

func (r *InMemoryIamRepository) UpdateUserPassword(ctx context.Context, id uuid.UUID, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = hash
	user.LastModifiedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *InMemoryIamRepository) DeleteUser(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	delete(r.userRoles, id)
	return 1, nil
}

func (r *InMemoryIamRepository) DeleteUserRoles(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.userRoles[userID] = []uuid.UUID{}
	return nil
}

func (r *InMemoryIamRepository) CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.userRoles[userID] = append(r.userRoles[userID], roleID)
	return nil
}

func (r *InMemoryIamRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[name]
	if !ok {
		return Role{}, pgx.ErrNoRows
	}
	return role, nil
}

// roleNames resolves the assigned role ids to sorted names. Callers must
// hold the lock.
func (r *InMemoryIamRepository) roleNames(userID uuid.UUID) []string {
	names := []string{}
	for _, roleID := range r.userRoles[userID] {
		for _, role := range r.roles {
			if role.ID == roleID {
				names = append(names, role.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}
