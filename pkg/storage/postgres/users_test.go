package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edustack/platform/pkg/auth"
)

func newTestStore(t *testing.T) (*UserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db), mock
}

func userRows(users ...*auth.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "email", "hashed_password", "is_active", "is_admin", "created_at", "last_login",
	})
	for _, u := range users {
		var lastLogin interface{}
		if u.LastLogin != nil {
			lastLogin = *u.LastLogin
		}
		rows.AddRow(u.ID, u.Email, u.HashedPassword, u.IsActive, u.IsAdmin, u.CreatedAt, lastLogin)
	}
	return rows
}

func TestCreateUser(t *testing.T) {
	store, mock := newTestStore(t)

	createdAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("new@example.com", "hashed", true, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, createdAt))

	user, err := store.CreateUser(context.Background(), "new@example.com", "hashed")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := store.CreateUser(context.Background(), "taken@example.com", "hashed")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestCreateUserDuplicateEmailSQLite(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("UNIQUE constraint failed: users.email"))

	_, err := store.CreateUser(context.Background(), "taken@example.com", "hashed")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestGetUserByEmail(t *testing.T) {
	store, mock := newTestStore(t)

	lastLogin := time.Now().Add(-time.Hour)
	want := &auth.User{
		ID:             3,
		Email:          "user@example.com",
		HashedPassword: "hashed",
		IsActive:       true,
		CreatedAt:      time.Now().Add(-24 * time.Hour),
		LastLogin:      &lastLogin,
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, hashed_password, is_active, is_admin, created_at, last_login FROM users WHERE email = $1")).
		WithArgs("user@example.com").
		WillReturnRows(userRows(want))

	got, err := store.GetUserByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.ID)
	require.NotNil(t, got.LastLogin)
	assert.Equal(t, lastLogin, *got.LastLogin)
}

func TestGetUserByEmailMiss(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	got, err := store.GetUserByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetUserByID(t *testing.T) {
	store, mock := newTestStore(t)

	want := &auth.User{ID: 5, Email: "user@example.com", HashedPassword: "hashed", IsActive: true, IsAdmin: true, CreatedAt: time.Now()}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(userRows(want))

	got, err := store.GetUserByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsAdmin)
	assert.Nil(t, got.LastLogin)
}

func TestUpdateLastLogin(t *testing.T) {
	store, mock := newTestStore(t)

	at := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET last_login = $1 WHERE id = $2")).
		WithArgs(at, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.UpdateLastLogin(context.Background(), 3, at))
}

func TestUpdateLastLoginMissingUser(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec("UPDATE users SET last_login").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdateLastLogin(context.Background(), 99, time.Now())
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestSetActive(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_active = $1 WHERE id = $2")).
		WithArgs(false, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.SetActive(context.Background(), 4, false))
}

func TestSetActiveMissingUser(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec("UPDATE users SET is_active").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.SetActive(context.Background(), 99, true)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id LIMIT").
		WithArgs(10, 0).
		WillReturnRows(userRows(
			&auth.User{ID: 1, Email: "a@example.com", HashedPassword: "h", IsActive: true, CreatedAt: time.Now()},
			&auth.User{ID: 2, Email: "b@example.com", HashedPassword: "h", IsActive: false, CreatedAt: time.Now()},
		))

	users, total, err := store.ListUsers(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.False(t, users[1].IsActive)
}

func TestCountActive(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE is_active = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	count, err := store.CountActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), count)
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db, "postgres"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
