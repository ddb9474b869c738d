package iam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-user-admin/pkg/iam/iamdb"
)

// IamRepository defines the persistence operations for user management.
// WithTx runs fn against a repository bound to a single transaction; the
// transaction commits when fn returns nil and rolls back otherwise.
type IamRepository interface {
	WithTx(ctx context.Context, fn func(IamRepository) error) error

	CreateUser(ctx context.Context, arg CreateUserRecord) (User, error)
	GetUserWithRoles(ctx context.Context, id uuid.UUID) (UserWithRoles, error)
	FindUsersWithRoles(ctx context.Context) ([]UserWithRoles, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, arg UpdateUserRecord) (User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, hash []byte) error
	DeleteUser(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteUserRoles(ctx context.Context, userID uuid.UUID) error
	CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) error
	GetRoleByName(ctx context.Context, name string) (Role, error)
}

// CreateUserRecord is the row-level shape of a user insert
type CreateUserRecord struct {
	Name         string
	Age          int32
	Email        string
	PasswordHash []byte
}

// UpdateUserRecord is the row-level shape of a user field update
type UpdateUserRecord struct {
	ID    uuid.UUID
	Name  string
	Age   int32
	Email string
}

// PostgresIamRepository implements IamRepository using iamdb.Queries
type PostgresIamRepository struct {
	pool    *pgxpool.Pool
	queries *iamdb.Queries
}

// NewPostgresIamRepository creates a new PostgreSQL-based IAM repository
func NewPostgresIamRepository(pool *pgxpool.Pool) *PostgresIamRepository {
	return &PostgresIamRepository{
		pool:    pool,
		queries: iamdb.New(pool),
	}
}

// WithTx begins a transaction and runs fn with a repository whose queries
// are bound to it.
func (r *PostgresIamRepository) WithTx(ctx context.Context, fn func(IamRepository) error) error {
	if r.pool == nil {
		// Already inside a transaction; reuse it.
		return fn(r)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txRepo := &PostgresIamRepository{queries: r.queries.WithTx(tx)}
	if err := fn(txRepo); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresIamRepository) CreateUser(ctx context.Context, arg CreateUserRecord) (User, error) {
	user, err := r.queries.CreateUser(ctx, iamdb.CreateUserParams{
		Name:     arg.Name,
		Age:      arg.Age,
		Email:    arg.Email,
		Password: arg.PasswordHash,
	})
	if err != nil {
		return User{}, err
	}
	return toUser(user), nil
}

func (r *PostgresIamRepository) GetUserWithRoles(ctx context.Context, id uuid.UUID) (UserWithRoles, error) {
	row, err := r.queries.GetUserWithRoles(ctx, id)
	if err != nil {
		return UserWithRoles{}, err
	}
	roles, err := decodeRoles(row.Roles)
	if err != nil {
		return UserWithRoles{}, err
	}
	return UserWithRoles{
		User: User{
			ID:             row.ID,
			CreatedAt:      row.CreatedAt.Time,
			LastModifiedAt: row.LastModifiedAt.Time,
			Name:           row.Name,
			Age:            row.Age,
			Email:          row.Email,
		},
		Roles: roles,
	}, nil
}

func (r *PostgresIamRepository) FindUsersWithRoles(ctx context.Context) ([]UserWithRoles, error) {
	rows, err := r.queries.FindUsersWithRoles(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]UserWithRoles, 0, len(rows))
	for _, row := range rows {
		roles, err := decodeRoles(row.Roles)
		if err != nil {
			return nil, err
		}
		users = append(users, UserWithRoles{
			User: User{
				ID:             row.ID,
				CreatedAt:      row.CreatedAt.Time,
				LastModifiedAt: row.LastModifiedAt.Time,
				Name:           row.Name,
				Age:            row.Age,
				Email:          row.Email,
			},
			Roles: roles,
		})
	}
	return users, nil
}

func (r *PostgresIamRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	user, err := r.queries.FindUserByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	return toUser(user), nil
}

func (r *PostgresIamRepository) UpdateUser(ctx context.Context, arg UpdateUserRecord) (User, error) {
	user, err := r.queries.UpdateUser(ctx, iamdb.UpdateUserParams{
		ID:    arg.ID,
		Name:  arg.Name,
		Age:   arg.Age,
		Email: arg.Email,
	})
	if err != nil {
		return User{}, err
	}
	return toUser(user), nil
}

func (r *PostgresIamRepository) UpdateUserPassword(ctx context.Context, id uuid.UUID, hash []byte) error {
	return r.queries.UpdateUserPassword(ctx, iamdb.UpdateUserPasswordParams{
		ID:       id,
		Password: hash,
	})
}

func (r *PostgresIamRepository) DeleteUser(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.queries.DeleteUser(ctx, id)
}

func (r *PostgresIamRepository) DeleteUserRoles(ctx context.Context, userID uuid.UUID) error {
	return r.queries.DeleteUserRoles(ctx, userID)
}

func (r *PostgresIamRepository) CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) error {
	_, err := r.queries.CreateUserRole(ctx, iamdb.CreateUserRoleParams{
		UserID: userID,
		RoleID: roleID,
	})
	return err
}

func (r *PostgresIamRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	role, err := r.queries.GetRoleByName(ctx, name)
	if err != nil {
		return Role{}, err
	}
	return Role{ID: role.ID, Name: role.Name}, nil
}

// IsNoRows reports whether err is the driver's empty-result error.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, the backstop for the email uniqueness check.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func toUser(u iamdb.User) User {
	return User{
		ID:             u.ID,
		CreatedAt:      timestampTime(u.CreatedAt),
		LastModifiedAt: timestampTime(u.LastModifiedAt),
		Name:           u.Name,
		Age:            u.Age,
		Email:          u.Email,
		PasswordHash:   u.Password,
	}
}

func timestampTime(ts pgtype.Timestamp) time.Time {
	return ts.Time
}

// decodeRoles unpacks the json_agg of role names produced by the
// *WithRoles queries.
func decodeRoles(raw []byte) ([]string, error) {
	roles := []string{}
	if len(raw) == 0 {
		return roles, nil
	}
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roles: %w", err)
	}
	return roles, nil
}
