package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
)

const selectUsers = `
SELECT u.id, u.user_name, u.email, u.first_name, u.last_name, u.phone_number,
	u.hashed_password, u.refresh_token, u.refresh_token_expiry, u.created_at, u.updated_at,
	COALESCE((
		SELECT string_agg(r.name, ',' ORDER BY r.name)
		FROM user_roles ur JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = u.id
	), '')
FROM users u`

const insertUser = `
INSERT INTO users (id, user_name, normalized_user_name, email, normalized_email,
	first_name, last_name, phone_number, hashed_password, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`

const insertUserRole = `
INSERT INTO user_roles (user_id, role_id)
SELECT $1, id FROM roles WHERE name = $2`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresUserStore creates a user store. It takes a *sql.DB rather than
// a DBTX because Create opens its own transaction.
func NewPostgresUserStore(db *sql.DB, logger *slog.Logger) *PostgresUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// normalize mirrors the lookup key stored in normalized_* columns.
func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := s.now()

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertUser,
			user.ID, user.UserName, normalize(user.UserName), user.Email, normalize(user.Email),
			user.FirstName, user.LastName, user.PhoneNumber, user.HashedPassword, now)
		if err != nil {
			return wrapError("user", "create", err)
		}

		for _, role := range user.Roles {
			result, err := tx.ExecContext(ctx, insertUserRole, user.ID, role)
			if err != nil {
				return wrapError("user", "assign role", err)
			}
			if err := CheckRowsAffected(result, store.ErrRoleNotFound); err != nil {
				return fmt.Errorf("%w: %s", err, role)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.DebugContext(ctx, "user insert failed", slog.String("user_id", user.ID.String()))
		return err
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u       domain.User
		refresh sql.NullString
		expiry  sql.NullTime
		roles   string
	)
	err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.HashedPassword, &refresh, &expiry, &u.CreatedAt, &u.UpdatedAt, &roles)
	if err != nil {
		return nil, err
	}
	u.RefreshToken = refresh.String
	if expiry.Valid {
		u.RefreshTokenExpiry = expiry.Time
	}
	u.Roles = []string{}
	if roles != "" {
		u.Roles = strings.Split(roles, ",")
	}
	return &u, nil
}

func (s *PostgresUserStore) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, selectUsers+" WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, wrapError("user", "get", err)
	}
	return u, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "u.id = $1", id)
}

// GetByUserName implements store.UserStore.GetByUserName
func (s *PostgresUserStore) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return s.getOne(ctx, "u.normalized_user_name = $1", normalize(userName))
}

// UpdateRefreshToken implements store.UserStore.UpdateRefreshToken
func (s *PostgresUserStore) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = $1, refresh_token_expiry = $2, updated_at = $3 WHERE id = $4`,
		token, expiry, s.now(), id)
	if err != nil {
		return wrapError("user", "update refresh token", err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}
