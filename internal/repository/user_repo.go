package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"transit_dashboard/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL              = `INSERT INTO users (username, password) VALUES (?, ?)`
	selectUserByCredentialsSQL = `SELECT id, username, password FROM users WHERE username = ? AND password = ?`
	selectUserByIDSQL          = `SELECT id, username, password FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID, or ErrUserExists on a username collision.
func (r *UserRepository) Create(ctx context.Context, username, password string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, password)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByCredentials returns the user matching both fields exactly, or (nil, nil).
// An unknown username and a wrong password look the same to the caller.
func (r *UserRepository) GetByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByCredentialsSQL, username, password), username)
}

// GetByID returns the user with the given id, or (nil, nil).
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByIDSQL, id), fmt.Sprintf("id=%d", id))
}

func (r *UserRepository) scanOne(row *sql.Row, key string) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %s: %w", key, err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
