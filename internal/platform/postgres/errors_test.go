package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/book-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"user name unique", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraintUserName}, store.ErrUserNameExists},
		{"email unique", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraintEmail}, store.ErrEmailExists},
		{"other unique", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "categories_name_key"}, store.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: foreignKeyViolationCode}, store.ErrInvalidEntity},
		{"check", &pgconn.PgError{Code: checkViolationCode}, store.ErrInvalidEntity},
		{"not null", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"}, store.ErrInvalidEntity},
		{"wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: checkViolationCode}), store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, MapError(tc.err), tc.want)
		})
	}

	assert.NoError(t, MapError(nil))
	plain := errors.New("connection reset")
	assert.Same(t, plain, MapError(plain))
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError("book", "get", nil))

	err := wrapError("book", "create", &pgconn.PgError{Code: foreignKeyViolationCode})
	var storeErr *store.StoreError
	if assert.ErrorAs(t, err, &storeErr) {
		assert.Equal(t, "book", storeErr.Entity)
		assert.Equal(t, "create", storeErr.Operation)
	}
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrBookNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrBookNotFound), store.ErrBookNotFound)
	assert.Error(t, CheckRowsAffected(nil, store.ErrBookNotFound))
	assert.Error(t, CheckRowsAffected(sqlmock.NewErrorResult(errors.New("driver")), store.ErrBookNotFound))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `ab`, escapeLike("ab"))
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	err = Migrate(context.Background(), db, "sideways", nil)
	assert.ErrorContains(t, err, "unknown migration command")
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := Migrations.ReadDir(MigrationsDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
}
