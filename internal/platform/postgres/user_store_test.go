package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"id", "user_name", "email", "first_name", "last_name", "phone_number",
	"hashed_password", "refresh_token", "refresh_token_expiry", "created_at", "updated_at", "roles",
}

func newUserStore(db *sql.DB) *PostgresUserStore {
	s := NewPostgresUserStore(db, nil)
	s.now = func() time.Time { return testTime }
	return s
}

func TestUserStoreCreate(t *testing.T) {
	db, mock := newMockDB(t)
	s := newUserStore(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "ali", "ALI", "ali@example.com", "ALI@EXAMPLE.COM", "Ali", "", "", "hash", testTime).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_roles`).WithArgs(sqlmock.AnyArg(), "Admin").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_roles`).WithArgs(sqlmock.AnyArg(), "User").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &domain.User{
		ID: id, UserName: "ali", Email: "ali@example.com", FirstName: "Ali",
		HashedPassword: "hash", Roles: []string{domain.RoleAdmin, domain.RoleUser},
	}
	require.NoError(t, s.Create(context.Background(), user))
	assert.Equal(t, id, user.ID)
	assert.Equal(t, testTime, user.CreatedAt)
}

func TestUserStoreCreateDuplicates(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"user name", constraintUserName, store.ErrUserNameExists},
		{"email", constraintEmail, store.ErrEmailExists},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := newUserStore(db)

			mock.ExpectBegin()
			mock.ExpectExec(`INSERT INTO users`).
				WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: tc.constraint})
			mock.ExpectRollback()

			err := s.Create(context.Background(), &domain.User{UserName: "ali", Email: "ali@example.com"})
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, store.ErrDuplicate)
		})
	}
}

func TestUserStoreCreateUnknownRole(t *testing.T) {
	db, mock := newMockDB(t)
	s := newUserStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_roles`).WithArgs(sqlmock.AnyArg(), "Editor").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.Create(context.Background(), &domain.User{UserName: "ali", Email: "a@b.co", Roles: []string{"Editor"}})
	assert.ErrorIs(t, err, store.ErrRoleNotFound)
}

func TestUserStoreGetByUserName(t *testing.T) {
	db, mock := newMockDB(t)
	s := newUserStore(db)
	id := uuid.New()
	expiry := testTime.Add(time.Hour)

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(id.String(), "ali", "ali@example.com", "Ali", "Veli", "555", "hash", "opaque", expiry, testTime, testTime, "Admin,User")
	mock.ExpectQuery(`WHERE u.normalized_user_name = \$1`).WithArgs("ALI").WillReturnRows(rows)

	u, err := s.GetByUserName(context.Background(), " ali ")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, []string{"Admin", "User"}, u.Roles)
	assert.Equal(t, "opaque", u.RefreshToken)
	assert.Equal(t, expiry, u.RefreshTokenExpiry)
}

func TestUserStoreGetByIDWithoutRefreshToken(t *testing.T) {
	db, mock := newMockDB(t)
	s := newUserStore(db)
	id := uuid.New()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(id.String(), "ali", "ali@example.com", "", "", "", "hash", nil, nil, testTime, testTime, "")
	mock.ExpectQuery(`WHERE u.id = \$1`).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	mock.ExpectQuery(`WHERE u.id = \$1`).WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrNoRows)

	u, err := s.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, u.RefreshToken)
	assert.True(t, u.RefreshTokenExpiry.IsZero())
	assert.Empty(t, u.Roles)

	_, err = s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreUpdateRefreshToken(t *testing.T) {
	db, mock := newMockDB(t)
	s := newUserStore(db)
	id := uuid.New()
	expiry := testTime.Add(24 * time.Hour)

	mock.ExpectExec(`UPDATE users SET refresh_token`).
		WithArgs("opaque", expiry, testTime, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET refresh_token`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.UpdateRefreshToken(context.Background(), id, "opaque", expiry))
	err := s.UpdateRefreshToken(context.Background(), uuid.New(), "opaque", expiry)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
