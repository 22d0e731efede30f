package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpetrov/secureapp/internal/models"
	"github.com/mpetrov/secureapp/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore        = (*Store)(nil)
	_ storage.CalculationStore = (*Store)(nil)
)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for users and calculations.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database. Migrations are a separate explicit step so
// callers control when schema initialization runs.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate applies the idempotent schema. Call once before serving traffic.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			email VARCHAR(100) NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT users_username_key UNIQUE (username),
			CONSTRAINT users_email_key UNIQUE (email)
		);`,
		`CREATE TABLE IF NOT EXISTS calculations (
			id UUID PRIMARY KEY,
			a DOUBLE PRECISION NOT NULL,
			b DOUBLE PRECISION NOT NULL,
			type VARCHAR(20) NOT NULL,
			result DOUBLE PRECISION NOT NULL,
			user_id UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS calculations_user_id_idx ON calculations (user_id);`,
		`CREATE INDEX IF NOT EXISTS calculations_type_idx ON calculations (type);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row. Uniqueness violations come back as
// *storage.ConflictError naming the violated column.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		if conflict := classifyConflict(err); conflict != nil {
			return models.User{}, conflict
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// ListUsers returns one page of users in insertion order. skip and limit
// must be non-negative; callers validate before reaching the store.
func (s *Store) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2;
	`
	rows, err := s.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, pageCapacity(limit))
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of patch to one user row. The write
// is a single statement, so a uniqueness violation leaves the row untouched.
func (s *Store) UpdateUser(ctx context.Context, id uuid.UUID, patch storage.UserPatch) (models.User, error) {
	const query = `
		UPDATE users
		SET username = COALESCE($2, username),
		    email = COALESCE($3, email)
		WHERE id = $1
		RETURNING id, username, email, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query, id, patch.Username, patch.Email)
	updated, err := scanUser(row)
	if err != nil {
		if conflict := classifyConflict(err); conflict != nil {
			return models.User{}, conflict
		}
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// DeleteUser permanently removes a user row. Owned calculations keep their
// rows with user_id cleared by the schema's ON DELETE SET NULL.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

// pageCapacity bounds the slice pre-allocation for a page query. limit is
// caller-supplied and may be arbitrarily large; the query's LIMIT bounds the
// actual rows, so the hint only needs to cover small pages.
func pageCapacity(limit int) int {
	const maxPageAlloc = 64
	if limit > maxPageAlloc {
		return maxPageAlloc
	}
	return limit
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// classifyConflict maps a unique-violation error to a ConflictError naming
// the violated column. Classification reads the constraint name reported by
// Postgres, not the human-readable message text. Username is checked before
// email; when a single write violates both, only the first match is reported.
func classifyConflict(err error) *storage.ConflictError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return &storage.ConflictError{Field: storage.FieldUsername}
	case strings.Contains(pgErr.ConstraintName, "email"):
		return &storage.ConflictError{Field: storage.FieldEmail}
	}
	return &storage.ConflictError{Field: storage.FieldUnknown}
}
