package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserDisabled       = errors.New("user account is disabled")
	ErrUserExists         = errors.New("username or email already exists")
	ErrSetupComplete      = errors.New("setup already completed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrLastOwner          = errors.New("cannot remove the last active owner")
)

// TokenPair contains an access token and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // access token TTL in seconds
}

// NewUser is the input for creating a staff account.
type NewUser struct {
	Username string
	Email    string
	Name     string
	Password string
	Role     Role
}

// Service provides authentication and authorization logic.
type Service struct {
	store  *UserStore
	tokens *TokenService
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates an auth Service.
func NewService(store *UserStore, tokens *TokenService, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Tokens returns the token service for middleware use.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Login authenticates a user and returns a token pair.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Equalise timing with the found-user path.
			CheckPassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	_ = s.store.UpdateLastLogin(ctx, user.ID, s.now())
	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return pair, nil
}

// Setup creates the initial OWNER account. Only works when no users exist.
func (s *Service) Setup(ctx context.Context, username, email, password string) (*User, error) {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil, ErrSetupComplete
	}
	user, err := s.CreateUser(ctx, NewUser{
		Username: username,
		Email:    email,
		Name:     username,
		Password: password,
		Role:     RoleOwner,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("initial owner account created", zap.String("user_id", user.ID))
	return user, nil
}

// CreateUser validates and stores a new account.
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" {
		return nil, fmt.Errorf("username and email are required")
	}
	if !ValidRoles[in.Role] {
		return nil, fmt.Errorf("unknown role %q", in.Role)
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password, 0)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Refresh rotates a refresh token into a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	rt, err := s.store.GetRefreshToken(ctx, HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}
	if rt.Revoked || rt.ExpiresAt.Before(s.now()) {
		return nil, ErrInvalidToken
	}
	_ = s.store.RevokeRefreshToken(ctx, rt.ID)

	user, err := s.store.GetUserByID(ctx, rt.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup user for refresh: %w", err)
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}
	return s.issueTokenPair(ctx, user)
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	rt, err := s.store.GetRefreshToken(ctx, HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("lookup refresh token: %w", err)
	}
	return s.store.RevokeRefreshToken(ctx, rt.ID)
}

// NeedsSetup reports whether no users exist yet.
func (s *Service) NeedsSetup(ctx context.Context) (bool, error) {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

// GetUser returns a user by ID.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpdateUser changes a user's email, name, role and disabled flag.
// Disabling a user revokes all of their refresh tokens.
func (s *Service) UpdateUser(ctx context.Context, id, email, name string, role Role, disabled bool) (*User, error) {
	if !ValidRoles[role] {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == RoleOwner && !user.Disabled && (role != RoleOwner || disabled) {
		if err := s.ensureAnotherOwner(ctx, id); err != nil {
			return nil, err
		}
	}

	user.Email = email
	user.Name = name
	user.Role = role
	user.Disabled = disabled
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	if disabled {
		_ = s.store.RevokeUserRefreshTokens(ctx, id)
	}
	return user, nil
}

// DeleteUser removes a user by ID.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == RoleOwner && !user.Disabled {
		if err := s.ensureAnotherOwner(ctx, id); err != nil {
			return err
		}
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Authorized reports whether role holds the named permission.
func (s *Service) Authorized(ctx context.Context, role Role, permission string) (bool, error) {
	return s.store.HasPermission(ctx, role, permission)
}

// PermissionsForRole returns the permissions granted to role.
func (s *Service) PermissionsForRole(ctx context.Context, role Role) ([]Permission, error) {
	return s.store.PermissionsByRole(ctx, role)
}

// ListPermissions returns the full catalogue.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.store.ListPermissions(ctx)
}

// GrantPermission assigns a permission to role.
func (s *Service) GrantPermission(ctx context.Context, role Role, permissionID string) (*Permission, error) {
	p, err := s.store.GrantPermission(ctx, role, permissionID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("permission granted", zap.String("role", string(role)), zap.String("permission", p.Name))
	return p, nil
}

// RevokePermission removes a permission from role.
func (s *Service) RevokePermission(ctx context.Context, role Role, permissionID string) error {
	if err := s.store.RevokePermission(ctx, role, permissionID); err != nil {
		return err
	}
	s.logger.Info("permission revoked", zap.String("role", string(role)), zap.String("permission_id", permissionID))
	return nil
}

func (s *Service) ensureAnotherOwner(ctx context.Context, excludeID string) error {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != excludeID && users[i].Role == RoleOwner && !users[i].Disabled {
			return nil
		}
	}
	return ErrLastOwner
}

func (s *Service) issueTokenPair(ctx context.Context, user *User) (*TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	raw, hash, expiresAt, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveRefreshToken(ctx, uuid.New().String(), user.ID, hash, expiresAt); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: raw,
		ExpiresIn:    int(s.tokens.AccessTokenTTL().Seconds()),
	}, nil
}

// dummyHash is a bcrypt hash compared against on unknown usernames.
var dummyHash = func() string {
	h, _ := HashPassword("pitstop-timing-equaliser", 0)
	return h
}()
