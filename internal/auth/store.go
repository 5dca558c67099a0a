package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HerbHall/pitstop/pkg/plugin"
)

// Store errors.
var (
	ErrPermissionNotFound = errors.New("permission not found")
	ErrAlreadyGranted     = errors.New("permission already granted to role")
	ErrNotGranted         = errors.New("permission not granted to role")
)

// UserStore persists accounts, refresh tokens and role permissions.
type UserStore struct {
	db *sql.DB
}

// NewUserStore runs auth migrations and returns a UserStore.
func NewUserStore(ctx context.Context, store plugin.Store) (*UserStore, error) {
	if err := store.Migrate(ctx, "auth", migrations); err != nil {
		return nil, fmt.Errorf("auth migrations: %w", err)
	}
	return &UserStore{db: store.DB()}, nil
}

// CreateUser inserts a new user.
func (s *UserStore) CreateUser(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO auth_users (id, username, email, name, password_hash, role, created_at, disabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.Name, u.PasswordHash, string(u.Role), u.CreatedAt, u.Disabled,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByID returns a user by ID.
func (s *UserStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE id = ?`, id))
}

// GetUserByUsername returns a user by username.
func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE username = ?`, username))
}

// ListUsers returns all users ordered by creation time.
func (s *UserStore) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM auth_users ORDER BY created_at, username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUser updates a user's mutable fields.
func (s *UserStore) UpdateUser(ctx context.Context, u *User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE auth_users SET email = ?, name = ?, role = ?, disabled = ? WHERE id = ?`,
		u.Email, u.Name, string(u.Role), u.Disabled, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return expectOne(res)
}

// UpdateLastLogin sets the last_login timestamp.
func (s *UserStore) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE auth_users SET last_login = ? WHERE id = ?`, at.UTC(), userID)
	return err
}

// DeleteUser removes a user by ID. Returns sql.ErrNoRows when absent.
func (s *UserStore) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM auth_users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectOne(res)
}

// CountUsers returns the total number of users.
func (s *UserStore) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM auth_users`).Scan(&count)
	return count, err
}

// RefreshToken is a stored refresh token.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}

// SaveRefreshToken stores a hashed refresh token.
func (s *UserStore) SaveRefreshToken(ctx context.Context, id, userID, tokenHash string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO auth_refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, userID, tokenHash, expiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetRefreshToken looks up a refresh token by its hash.
func (s *UserStore) GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	var rt RefreshToken
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, created_at, revoked
		FROM auth_refresh_tokens WHERE token_hash = ?`, tokenHash,
	).Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &rt.CreatedAt, &rt.Revoked)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// RevokeRefreshToken marks a refresh token as revoked.
func (s *UserStore) RevokeRefreshToken(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE auth_refresh_tokens SET revoked = 1 WHERE id = ?`, id)
	return err
}

// RevokeUserRefreshTokens revokes all refresh tokens of a user.
func (s *UserStore) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE auth_refresh_tokens SET revoked = 1 WHERE user_id = ?`, userID)
	return err
}

// CleanExpiredTokens deletes refresh tokens that expired before now or were
// revoked, returning how many were removed.
func (s *UserStore) CleanExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM auth_refresh_tokens WHERE expires_at < ? OR revoked = 1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("clean refresh tokens: %w", err)
	}
	return res.RowsAffected()
}

// ListPermissions returns the catalogue ordered by resource and action.
func (s *UserStore) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.queryPermissions(ctx, `
		SELECT id, name, resource, action, description
		FROM auth_permissions ORDER BY resource, action`)
}

// PermissionsByRole returns the permissions granted to role.
func (s *UserStore) PermissionsByRole(ctx context.Context, role Role) ([]Permission, error) {
	return s.queryPermissions(ctx, `
		SELECT p.id, p.name, p.resource, p.action, p.description
		FROM auth_role_permissions rp
		JOIN auth_permissions p ON p.id = rp.permission_id
		WHERE rp.role = ?
		ORDER BY p.resource, p.action`, string(role))
}

// HasPermission reports whether role holds the named permission.
func (s *UserStore) HasPermission(ctx context.Context, role Role, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM auth_role_permissions rp
		JOIN auth_permissions p ON p.id = rp.permission_id
		WHERE rp.role = ? AND p.name = ?`, string(role), name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check permission: %w", err)
	}
	return n > 0, nil
}

// GrantPermission assigns a catalogue permission to role.
func (s *UserStore) GrantPermission(ctx context.Context, role Role, permissionID string) (*Permission, error) {
	var p Permission
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, resource, action, description FROM auth_permissions WHERE id = ?`,
		permissionID).Scan(&p.ID, &p.Name, &p.Resource, &p.Action, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPermissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup permission: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO auth_role_permissions (role, permission_id) VALUES (?, ?)`,
		string(role), permissionID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyGranted
		}
		return nil, fmt.Errorf("grant permission: %w", err)
	}
	return &p, nil
}

// RevokePermission removes a permission from role.
func (s *UserStore) RevokePermission(ctx context.Context, role Role, permissionID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM auth_role_permissions WHERE role = ? AND permission_id = ?`,
		string(role), permissionID)
	if err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	if err := expectOne(res); err != nil {
		return ErrNotGranted
	}
	return nil
}

func (s *UserStore) queryPermissions(ctx context.Context, query string, args ...any) ([]Permission, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query permissions: %w", err)
	}
	defer rows.Close()

	perms := []Permission{}
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Resource, &p.Action, &p.Description); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

const userColumns = `id, username, email, name, password_hash, role, created_at, last_login, disabled`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	var role string
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.PasswordHash, &role,
		&u.CreatedAt, &lastLogin, &u.Disabled)
	if err != nil {
		return nil, err
	}
	u.Role = Role(role)
	if lastLogin.Valid {
		u.LastLogin = lastLogin.Time
	}
	return &u, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var migrations = []plugin.Migration{
	{
		Version:     1,
		Description: "create auth_users and auth_refresh_tokens",
		Up: func(tx *sql.Tx) error {
			stmts := []string{
				`CREATE TABLE auth_users (
					id            TEXT PRIMARY KEY,
					username      TEXT NOT NULL UNIQUE,
					email         TEXT NOT NULL UNIQUE,
					name          TEXT NOT NULL DEFAULT '',
					password_hash TEXT NOT NULL,
					role          TEXT NOT NULL DEFAULT 'MEKANIK',
					created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					last_login    DATETIME,
					disabled      INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE TABLE auth_refresh_tokens (
					id         TEXT PRIMARY KEY,
					user_id    TEXT NOT NULL REFERENCES auth_users(id) ON DELETE CASCADE,
					token_hash TEXT NOT NULL UNIQUE,
					expires_at DATETIME NOT NULL,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					revoked    INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_refresh_tokens_user ON auth_refresh_tokens(user_id)`,
			}
			for _, q := range stmts {
				if _, err := tx.Exec(q); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "create permission catalogue and role mapping",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`CREATE TABLE auth_permissions (
				id          TEXT PRIMARY KEY,
				name        TEXT NOT NULL UNIQUE,
				resource    TEXT NOT NULL,
				action      TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT ''
			)`); err != nil {
				return err
			}
			if _, err := tx.Exec(`CREATE TABLE auth_role_permissions (
				role          TEXT NOT NULL,
				permission_id TEXT NOT NULL REFERENCES auth_permissions(id) ON DELETE CASCADE,
				PRIMARY KEY (role, permission_id)
			)`); err != nil {
				return err
			}
			return seedPermissions(tx)
		},
	},
}

// seedPermissions installs Catalogue and the default role mapping.
func seedPermissions(tx *sql.Tx) error {
	for _, p := range Catalogue {
		id := uuid.New().String()
		if _, err := tx.Exec(
			`INSERT INTO auth_permissions (id, name, resource, action, description) VALUES (?, ?, ?, ?, ?)`,
			id, p.Name, p.Resource, p.Action, p.Description,
		); err != nil {
			return fmt.Errorf("insert permission %s: %w", p.Name, err)
		}
		for _, role := range []Role{RoleOwner, RoleAdmin, RoleMekanik} {
			if !DefaultGrant(role, p.Name) {
				continue
			}
			if _, err := tx.Exec(
				`INSERT INTO auth_role_permissions (role, permission_id) VALUES (?, ?)`,
				string(role), id,
			); err != nil {
				return fmt.Errorf("grant %s to %s: %w", p.Name, role, err)
			}
		}
	}
	return nil
}
