package auth

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" example:"owner"`
	Password string `json:"password" example:"securepassword123"`
}

// RefreshRequest is the request body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" example:"dGhpcyBpcyBhIHJlZnJl..."`
}

// LogoutRequest is the request body for POST /auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" example:"dGhpcyBpcyBhIHJlZnJl..."`
}

// SetupRequest is the request body for POST /auth/setup.
type SetupRequest struct {
	Username string `json:"username" example:"owner"`
	Email    string `json:"email" example:"owner@pitstop.local"`
	Password string `json:"password" example:"securepassword123"`
}

// SetupStatusResponse is the response of GET /auth/setup/status.
type SetupStatusResponse struct {
	SetupRequired bool   `json:"setup_required"`
	Version       string `json:"version" example:"0.1.0"`
}

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Username string `json:"username" example:"budi"`
	Email    string `json:"email" example:"budi@pitstop.local"`
	Name     string `json:"name" example:"Budi Santoso"`
	Password string `json:"password" example:"securepassword123"`
	Role     string `json:"role" example:"MEKANIK"`
}

// UpdateUserRequest is the request body for PUT /users/{id}.
type UpdateUserRequest struct {
	Email    string `json:"email" example:"budi@pitstop.local"`
	Name     string `json:"name" example:"Budi Santoso"`
	Role     string `json:"role" example:"ADMIN"`
	Disabled bool   `json:"disabled" example:"false"`
}

// GrantRequest is the request body for POST /admin/permissions.
type GrantRequest struct {
	Role         string `json:"role" example:"MEKANIK"`
	PermissionID string `json:"permission_id" example:"3f6c1a0e-..."`
}

// UserPermissionsResponse is the response of GET /user/permissions.
type UserPermissionsResponse struct {
	Role            Role            `json:"role"`
	Permissions     map[string]bool `json:"permissions"`
	PermissionsList []Permission    `json:"permissions_list"`
}

// PermissionsResponse is the response of GET /admin/permissions.
type PermissionsResponse struct {
	Role        Role         `json:"role,omitempty"`
	Permissions []Permission `json:"permissions"`
}
