package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/edustack/platform/pkg/auth"
)

// UserStore implements auth.UserStore over database/sql
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a user store over an existing connection
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = "id, email, hashed_password, is_active, is_admin, created_at, last_login"

// CreateUser inserts a new active, non-admin user. A duplicate email maps
// to auth.ErrEmailTaken.
func (s *UserStore) CreateUser(ctx context.Context, email, hashedPassword string) (*auth.User, error) {
	query := `
		INSERT INTO users (email, hashed_password, is_active, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	user := &auth.User{
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
	}
	err := s.db.QueryRowContext(ctx, query,
		user.Email,
		user.HashedPassword,
		user.IsActive,
		user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, auth.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail returns the user with the given email, or (nil, nil)
// when no such user exists
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// GetUserByID returns the user with the given ID, or (nil, nil) when no
// such user exists
func (s *UserStore) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// UpdateLastLogin records a successful login timestamp
func (s *UserStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	result, err := s.db.ExecContext(ctx, "UPDATE users SET last_login = $1 WHERE id = $2", at, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return requireRow(result)
}

// SetActive flips the account's active flag
func (s *UserStore) SetActive(ctx context.Context, id int64, active bool) error {
	result, err := s.db.ExecContext(ctx, "UPDATE users SET is_active = $1 WHERE id = $2", active, id)
	if err != nil {
		return fmt.Errorf("failed to update active flag: %w", err)
	}
	return requireRow(result)
}

// ListUsers returns a page of users ordered by ID, plus the total count
func (s *UserStore) ListUsers(ctx context.Context, limit, offset int) ([]*auth.User, int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM users ORDER BY id LIMIT $1 OFFSET $2", userColumns)
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, total, nil
}

// CountActive returns the number of active accounts, feeding the
// active-users gauge
func (s *UserStore) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE is_active = TRUE").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *UserStore) scanUser(row rowScanner) (*auth.User, error) {
	user, err := scanUserRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func scanUserRow(row rowScanner) (*auth.User, error) {
	var user auth.User
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.IsActive,
		&user.IsAdmin,
		&user.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return &user, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// SQLite reports constraint failures as plain strings
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
