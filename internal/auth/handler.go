package auth

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/internal/version"
	"github.com/HerbHall/pitstop/pkg/models"
)

// maxBodyBytes caps auth request bodies.
const maxBodyBytes = 64 << 10

// Handler serves authentication, user and permission endpoints.
type Handler struct {
	service    *Service
	authorizer *Authorizer
	logger     *zap.Logger
}

// NewHandler creates an auth Handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service:    service,
		authorizer: NewAuthorizer(service, logger),
		logger:     logger,
	}
}

// RegisterRoutes registers auth routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.handleRefresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.handleLogout)
	mux.HandleFunc("POST /api/v1/auth/setup", h.handleSetup)
	mux.HandleFunc("GET /api/v1/auth/setup/status", h.handleSetupStatus)

	mux.HandleFunc("GET /api/v1/users", h.Require(PermUsersManage, h.handleListUsers))
	mux.HandleFunc("POST /api/v1/users", h.Require(PermUsersManage, h.handleCreateUser))
	mux.HandleFunc("GET /api/v1/users/{id}", h.Require(PermUsersManage, h.handleGetUser))
	mux.HandleFunc("PUT /api/v1/users/{id}", h.Require(PermUsersManage, h.handleUpdateUser))
	mux.HandleFunc("DELETE /api/v1/users/{id}", h.Require(PermUsersManage, h.handleDeleteUser))

	mux.HandleFunc("GET /api/v1/user/permissions", h.handleMyPermissions)
	mux.HandleFunc("GET /api/v1/admin/permissions", RequireRole(h.handleListPermissions, RoleOwner, RoleAdmin))
	mux.HandleFunc("POST /api/v1/admin/permissions", RequireRole(h.handleGrantPermission, RoleOwner))
	mux.HandleFunc("DELETE /api/v1/admin/permissions", RequireRole(h.handleRevokePermission, RoleOwner))
}

// Middleware returns the JWT authentication middleware.
func (h *Handler) Middleware() func(http.Handler) http.Handler {
	return AuthMiddleware(h.service.Tokens())
}

// Require guards next with a role permission check.
func (h *Handler) Require(permission string, next http.HandlerFunc) http.HandlerFunc {
	return h.authorizer.Require(permission, next)
}

// handleLogin authenticates a user and returns a token pair.
//
//	@Summary		Login
//	@Description	Authenticate with username and password to receive a JWT token pair.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Login credentials"
//	@Success		200		{object}	TokenPair
//	@Failure		400		{object}	models.APIProblem
//	@Failure		401		{object}	models.APIProblem
//	@Router			/auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeAuthError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	pair, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUserDisabled) {
			writeAuthError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.logger.Error("login error", zap.Error(err))
		writeAuthError(w, http.StatusInternalServerError, "authentication failed")
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// handleRefresh exchanges a refresh token for a new token pair.
//
//	@Summary		Refresh tokens
//	@Description	Exchange a valid refresh token for a new token pair (token rotation).
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	TokenPair
//	@Failure		400		{object}	models.APIProblem
//	@Failure		401		{object}	models.APIProblem
//	@Router			/auth/refresh [post]
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decode(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeAuthError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrUserDisabled) {
			writeAuthError(w, http.StatusUnauthorized, "invalid or expired refresh token")
			return
		}
		h.logger.Error("refresh error", zap.Error(err))
		writeAuthError(w, http.StatusInternalServerError, "token refresh failed")
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// handleLogout revokes a refresh token.
//
//	@Summary		Logout
//	@Description	Revoke a refresh token to end a session.
//	@Tags			auth
//	@Accept			json
//	@Param			request	body	LogoutRequest	true	"Refresh token to revoke"
//	@Success		204		"No Content"
//	@Failure		400		{object}	models.APIProblem
//	@Router			/auth/logout [post]
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if !decode(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeAuthError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}
	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		h.logger.Error("logout error", zap.Error(err))
		writeAuthError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetup creates the initial owner account.
//
//	@Summary		Initial setup
//	@Description	Create the first OWNER account. Only works when no users exist.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SetupRequest	true	"Owner account details"
//	@Success		201		{object}	User
//	@Failure		400		{object}	models.APIProblem
//	@Failure		409		{object}	models.APIProblem
//	@Router			/auth/setup [post]
func (h *Handler) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req SetupRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeAuthError(w, http.StatusBadRequest, "username, email, and password are required")
		return
	}

	user, err := h.service.Setup(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, ErrSetupComplete):
		writeAuthError(w, http.StatusConflict, "setup already completed")
	case err != nil:
		writeAuthError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusCreated, user)
	}
}

// handleSetupStatus reports whether initial setup is required.
//
//	@Summary		Check setup status
//	@Description	Returns whether initial owner setup is needed and the server version.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	SetupStatusResponse
//	@Router			/auth/setup/status [get]
func (h *Handler) handleSetupStatus(w http.ResponseWriter, r *http.Request) {
	needed, err := h.service.NeedsSetup(r.Context())
	if err != nil {
		h.logger.Error("setup status check failed", zap.Error(err))
		writeAuthError(w, http.StatusInternalServerError, "failed to check setup status")
		return
	}
	writeJSON(w, http.StatusOK, SetupStatusResponse{
		SetupRequired: needed,
		Version:       version.Short(),
	})
}

// handleListUsers returns all users.
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		User
//	@Failure		401	{object}	models.APIProblem
//	@Failure		403	{object}	models.APIProblem
//	@Router			/users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users error", zap.Error(err))
		writeAuthError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// handleCreateUser adds a staff account.
//
//	@Summary		Create user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateUserRequest	true	"New account"
//	@Success		201		{object}	User
//	@Failure		400		{object}	models.APIProblem
//	@Failure		409		{object}	models.APIProblem
//	@Router			/users [post]
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	role, err := ParseRole(req.Role)
	if err != nil {
		writeAuthError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.service.CreateUser(r.Context(), NewUser{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     role,
	})
	switch {
	case errors.Is(err, ErrUserExists):
		writeAuthError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeAuthError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusCreated, user)
	}
}

// handleGetUser returns a user by ID.
//
//	@Summary		Get user
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	User
//	@Failure		404	{object}	models.APIProblem
//	@Router			/users/{id} [get]
func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleUpdateUser updates a user's email, name, role and disabled flag.
//
//	@Summary		Update user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"User ID"
//	@Param			request	body		UpdateUserRequest	true	"Updated user fields"
//	@Success		200		{object}	User
//	@Failure		400		{object}	models.APIProblem
//	@Failure		404		{object}	models.APIProblem
//	@Failure		409		{object}	models.APIProblem
//	@Router			/users/{id} [put]
func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !decode(w, r, &req) {
		return
	}
	role, err := ParseRole(req.Role)
	if err != nil {
		writeAuthError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.service.UpdateUser(r.Context(), r.PathValue("id"), req.Email, req.Name, role, req.Disabled)
	if err != nil {
		h.writeServiceError(w, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleDeleteUser removes a user by ID.
//
//	@Summary		Delete user
//	@Tags			users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID"
//	@Success		204	"No Content"
//	@Failure		404	{object}	models.APIProblem
//	@Failure		409	{object}	models.APIProblem
//	@Router			/users/{id} [delete]
func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, "delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMyPermissions returns the caller's role permissions.
//
//	@Summary		My permissions
//	@Description	Permissions of the caller's role, as a lookup map keyed by name and by resource.action plus the full list.
//	@Tags			permissions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UserPermissionsResponse
//	@Failure		401	{object}	models.APIProblem
//	@Router			/user/permissions [get]
func (h *Handler) handleMyPermissions(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	if claims == nil {
		writeAuthError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	perms, err := h.service.PermissionsForRole(r.Context(), claims.Role)
	if err != nil {
		h.writeServiceError(w, "list role permissions", err)
		return
	}
	writeJSON(w, http.StatusOK, UserPermissionsResponse{
		Role:            claims.Role,
		Permissions:     PermissionMap(perms),
		PermissionsList: perms,
	})
}

// handleListPermissions returns the catalogue, or one role's grants.
//
//	@Summary		List permissions
//	@Tags			permissions
//	@Produce		json
//	@Security		BearerAuth
//	@Param			role	query		string	false	"Role filter"	Enums(OWNER, ADMIN, MEKANIK)
//	@Success		200		{object}	PermissionsResponse
//	@Failure		400		{object}	models.APIProblem
//	@Failure		403		{object}	models.APIProblem
//	@Router			/admin/permissions [get]
func (h *Handler) handleListPermissions(w http.ResponseWriter, r *http.Request) {
	roleParam := r.URL.Query().Get("role")
	if roleParam == "" {
		perms, err := h.service.ListPermissions(r.Context())
		if err != nil {
			h.writeServiceError(w, "list permissions", err)
			return
		}
		writeJSON(w, http.StatusOK, PermissionsResponse{Permissions: perms})
		return
	}

	role, err := ParseRole(roleParam)
	if err != nil {
		writeAuthError(w, http.StatusBadRequest, err.Error())
		return
	}
	perms, err := h.service.PermissionsForRole(r.Context(), role)
	if err != nil {
		h.writeServiceError(w, "list role permissions", err)
		return
	}
	writeJSON(w, http.StatusOK, PermissionsResponse{Role: role, Permissions: perms})
}

// handleGrantPermission assigns a permission to a role.
//
//	@Summary		Grant permission
//	@Tags			permissions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		GrantRequest	true	"Role and permission"
//	@Success		201		{object}	Permission
//	@Failure		400		{object}	models.APIProblem
//	@Failure		403		{object}	models.APIProblem
//	@Failure		404		{object}	models.APIProblem
//	@Failure		409		{object}	models.APIProblem
//	@Router			/admin/permissions [post]
func (h *Handler) handleGrantPermission(w http.ResponseWriter, r *http.Request) {
	var req GrantRequest
	if !decode(w, r, &req) {
		return
	}
	role, ok := h.roleAndPermission(w, req.Role, req.PermissionID)
	if !ok {
		return
	}
	p, err := h.service.GrantPermission(r.Context(), role, req.PermissionID)
	if err != nil {
		h.writeServiceError(w, "grant permission", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// handleRevokePermission removes a permission from a role.
//
//	@Summary		Revoke permission
//	@Tags			permissions
//	@Security		BearerAuth
//	@Param			role			query	string	true	"Role"	Enums(OWNER, ADMIN, MEKANIK)
//	@Param			permission_id	query	string	true	"Permission ID"
//	@Success		204				"No Content"
//	@Failure		400				{object}	models.APIProblem
//	@Failure		404				{object}	models.APIProblem
//	@Router			/admin/permissions [delete]
func (h *Handler) handleRevokePermission(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	role, ok := h.roleAndPermission(w, q.Get("role"), q.Get("permission_id"))
	if !ok {
		return
	}
	if err := h.service.RevokePermission(r.Context(), role, q.Get("permission_id")); err != nil {
		h.writeServiceError(w, "revoke permission", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) roleAndPermission(w http.ResponseWriter, roleParam, permissionID string) (Role, bool) {
	if roleParam == "" || permissionID == "" {
		writeAuthError(w, http.StatusBadRequest, "role and permission_id are required")
		return "", false
	}
	role, err := ParseRole(roleParam)
	if err != nil {
		writeAuthError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return role, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		writeAuthError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, ErrPermissionNotFound), errors.Is(err, ErrNotGranted):
		writeAuthError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyGranted), errors.Is(err, ErrLastOwner), errors.Is(err, ErrUserExists):
		writeAuthError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		writeAuthError(w, http.StatusInternalServerError, op+" failed")
	}
}

// decode reads a JSON body, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeAuthError writes an RFC 7807 problem response.
func writeAuthError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIProblem{
		Type:   models.ProblemBaseURL + "auth-error",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
