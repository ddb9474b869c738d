package login

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-user-admin/pkg/login/logindb"
)

// PostgresLoginRepository resolves credentials through generated queries
type PostgresLoginRepository struct {
	queries *logindb.Queries
}

func NewPostgresLoginRepository(pool *pgxpool.Pool) *PostgresLoginRepository {
	return &PostgresLoginRepository{
		queries: logindb.New(pool),
	}
}

func (r *PostgresLoginRepository) FindUserByEmail(ctx context.Context, email string) (LoginRecord, error) {
	rows, err := r.queries.FindUserByEmail(ctx, email)
	if err != nil {
		return LoginRecord{}, err
	}
	if len(rows) == 0 {
		return LoginRecord{}, pgx.ErrNoRows
	}
	row := rows[0]
	return LoginRecord{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.Password,
	}, nil
}

func (r *PostgresLoginRepository) FindUserRoles(ctx context.Context, userId uuid.UUID) ([]string, error) {
	return r.queries.FindUserRoles(ctx, userId)
}

// InMemoryLoginRepository backs LoginService in tests
type InMemoryLoginRepository struct {
	mu        sync.RWMutex
	records   map[string]LoginRecord
	userRoles map[uuid.UUID][]string
}

func NewInMemoryLoginRepository() *InMemoryLoginRepository {
	return &InMemoryLoginRepository{
		records:   make(map[string]LoginRecord),
		userRoles: make(map[uuid.UUID][]string),
	}
}

func (r *InMemoryLoginRepository) SeedUser(name, email, passwordHash string, roles ...string) LoginRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	record := LoginRecord{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: []byte(passwordHash),
	}
	r.records[email] = record
	r.userRoles[record.ID] = roles
	return record
}

func (r *InMemoryLoginRepository) FindUserByEmail(ctx context.Context, email string) (LoginRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[email]
	if !ok {
		return LoginRecord{}, pgx.ErrNoRows
	}
	return record, nil
}

func (r *InMemoryLoginRepository) FindUserRoles(ctx context.Context, userId uuid.UUID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.userRoles[userId], nil
}
