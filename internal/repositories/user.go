package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/ieplsoft/user-management/internal/logger"
	"github.com/ieplsoft/user-management/internal/middlewares"
	"github.com/ieplsoft/user-management/internal/models"
)

var (
	// ErrEmailTaken is returned when an insert or update hits the unique
	// email constraint. The constraint, not the caller's pre-check, is the
	// authority on uniqueness.
	ErrEmailTaken = errors.New("email already taken")

	// ErrUserNotFound is returned when an update or delete matches no row.
	ErrUserNotFound = errors.New("user not found")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// UserReadRepository provides read-only access to the users table.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

const userColumns = `id, name, email, phone, date_of_birth, password_hash, created_at, updated_at`

// GetByEmail returns the user with the given email, or nil if none exists.
// The match is exact and case-sensitive, same as the unique index.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	logQuery(query, []any{email}, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or nil if none exists.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, id)

	logQuery(query, []any{id}, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns all users ordered by id.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
	`

	users := []models.UserDB{}
	err := r.db.SelectContext(ctx, &users, query)

	logQuery(query, nil, err)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// UserWriteRepository provides write access to the users table.
// Writes join the per-request transaction when one is present in the context.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

func (r *UserWriteRepository) ext(ctx context.Context) sqlx.ExtContext {
	if tx := middlewares.GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Save inserts a new user and returns the assigned id.
// A unique-constraint hit maps to ErrEmailTaken.
func (r *UserWriteRepository) Save(ctx context.Context, name, email, phone, dateOfBirth, passwordHash string) (int64, error) {
	const query = `
		INSERT INTO users (name, email, phone, date_of_birth, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`
	args := []any{name, email, phone, dateOfBirth, passwordHash}

	var id int64
	err := sqlx.GetContext(ctx, r.ext(ctx), &id, query, args...)

	logQuery(query, []any{name, email, phone, dateOfBirth}, err)

	if isUniqueViolation(err) {
		return 0, ErrEmailTaken
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update replaces name, email, phone and date of birth of an existing user.
// The password hash is never touched through this path.
func (r *UserWriteRepository) Update(ctx context.Context, id int64, name, email, phone, dateOfBirth string) error {
	const query = `
		UPDATE users
		SET name = $1, email = $2, phone = $3, date_of_birth = $4, updated_at = NOW()
		WHERE id = $5
	`
	args := []any{name, email, phone, dateOfBirth, id}

	res, err := r.ext(ctx).ExecContext(ctx, query, args...)

	logQuery(query, args, err)

	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete removes a user record. There is no soft delete.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `
		DELETE FROM users
		WHERE id = $1
	`

	res, err := r.ext(ctx).ExecContext(ctx, query, id)

	logQuery(query, []any{id}, err)

	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	return nil
}

// logQuery logs the query in a single line together with its args and outcome.
func logQuery(query string, args []any, err error) {
	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)
}
