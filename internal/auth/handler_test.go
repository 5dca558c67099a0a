package auth

import (
	"context"
	"net/http"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

func setupHandlerEnv(t *testing.T) (*Service, *http.ServeMux) {
	t.Helper()
	_, svc := testEnv(t)
	mux := http.NewServeMux()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return svc, mux
}

func TestHandleSetupAndLogin(t *testing.T) {
	_, mux := setupHandlerEnv(t)

	w := doRequest(mux, "GET", "/api/v1/auth/setup/status", nil, nil)
	if !strings.Contains(w.Body.String(), `"setup_required":true`) {
		t.Fatalf("setup status body = %s", w.Body.String())
	}

	w = doRequest(mux, "POST", "/api/v1/auth/setup", SetupRequest{
		Username: "owner", Email: "owner@pitstop.local", Password: "password123",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("setup status = %d, body = %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("setup response leaks password material")
	}

	w = doRequest(mux, "POST", "/api/v1/auth/setup", SetupRequest{
		Username: "again", Email: "again@pitstop.local", Password: "password123",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second setup status = %d, want 409", w.Code)
	}

	w = doRequest(mux, "POST", "/api/v1/auth/login", LoginRequest{Username: "owner", Password: "password123"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d", w.Code)
	}
	var pair TokenPair
	if err := json.NewDecoder(w.Body).Decode(&pair); err != nil || pair.AccessToken == "" {
		t.Fatalf("decode pair: %v, %+v", err, pair)
	}

	w = doRequest(mux, "POST", "/api/v1/auth/refresh", RefreshRequest{RefreshToken: pair.RefreshToken}, nil)
	if w.Code != http.StatusOK {
		t.Errorf("refresh status = %d", w.Code)
	}
	w = doRequest(mux, "POST", "/api/v1/auth/logout", LogoutRequest{RefreshToken: pair.RefreshToken}, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("logout status = %d", w.Code)
	}
}

func TestHandleLogin_BadInput(t *testing.T) {
	_, mux := setupHandlerEnv(t)
	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing fields", LoginRequest{Username: "owner"}, http.StatusBadRequest},
		{"wrong password", LoginRequest{Username: "owner", Password: "nope-nope"}, http.StatusUnauthorized},
		{"not json", "just a string", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(mux, "POST", "/api/v1/auth/login", tc.body, nil)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestUserRoutes_RequirePermission(t *testing.T) {
	svc, mux := setupHandlerEnv(t)
	mustCreateUser(t, svc, "owner", RoleOwner)

	tests := []struct {
		name   string
		claims *Claims
		want   int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"mekanik", claimsFor(RoleMekanik), http.StatusForbidden},
		{"admin", claimsFor(RoleAdmin), http.StatusOK},
		{"owner", claimsFor(RoleOwner), http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(mux, "GET", "/api/v1/users", nil, tc.claims)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestUserRoutes_CRUD(t *testing.T) {
	svc, mux := setupHandlerEnv(t)
	mustCreateUser(t, svc, "owner", RoleOwner)
	admin := claimsFor(RoleAdmin)

	w := doRequest(mux, "POST", "/api/v1/users", CreateUserRequest{
		Username: "budi", Email: "budi@pitstop.local", Name: "Budi", Password: "password123", Role: "MEKANIK",
	}, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var u User
	_ = json.NewDecoder(w.Body).Decode(&u)

	w = doRequest(mux, "POST", "/api/v1/users", CreateUserRequest{
		Username: "budi", Email: "b2@pitstop.local", Password: "password123", Role: "MEKANIK",
	}, admin)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate create status = %d, want 409", w.Code)
	}

	w = doRequest(mux, "PUT", "/api/v1/users/"+u.ID, UpdateUserRequest{
		Email: u.Email, Name: u.Name, Role: "viewer",
	}, admin)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad role status = %d, want 400", w.Code)
	}

	w = doRequest(mux, "PUT", "/api/v1/users/"+u.ID, UpdateUserRequest{
		Email: u.Email, Name: u.Name, Role: "ADMIN",
	}, admin)
	if w.Code != http.StatusOK {
		t.Errorf("update status = %d", w.Code)
	}

	if w := doRequest(mux, "GET", "/api/v1/users/"+u.ID, nil, admin); w.Code != http.StatusOK {
		t.Errorf("get status = %d", w.Code)
	}
	if w := doRequest(mux, "DELETE", "/api/v1/users/"+u.ID, nil, admin); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := doRequest(mux, "GET", "/api/v1/users/"+u.ID, nil, admin); w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestMyPermissions(t *testing.T) {
	_, mux := setupHandlerEnv(t)

	w := doRequest(mux, "GET", "/api/v1/user/permissions", nil, claimsFor(RoleMekanik))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp UserPermissionsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Role != RoleMekanik {
		t.Errorf("Role = %q", resp.Role)
	}
	if resp.Permissions[PermBIView] {
		t.Error("MEKANIK should not hold bi_view")
	}
	if !resp.Permissions["dashboard.view"] || !resp.Permissions[PermDashboardView] {
		t.Errorf("missing dashboard permission keys: %v", resp.Permissions)
	}

	if w := doRequest(mux, "GET", "/api/v1/user/permissions", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", w.Code)
	}
}

func TestAdminPermissions(t *testing.T) {
	svc, mux := setupHandlerEnv(t)
	owner := claimsFor(RoleOwner)

	if w := doRequest(mux, "GET", "/api/v1/admin/permissions", nil, claimsFor(RoleMekanik)); w.Code != http.StatusForbidden {
		t.Errorf("mekanik list status = %d, want 403", w.Code)
	}
	if w := doRequest(mux, "GET", "/api/v1/admin/permissions?role=GUEST", nil, owner); w.Code != http.StatusBadRequest {
		t.Errorf("bad role filter status = %d, want 400", w.Code)
	}

	w := doRequest(mux, "GET", "/api/v1/admin/permissions", nil, claimsFor(RoleAdmin))
	if w.Code != http.StatusOK {
		t.Fatalf("admin list status = %d", w.Code)
	}
	var list PermissionsResponse
	_ = json.NewDecoder(w.Body).Decode(&list)
	if len(list.Permissions) != len(Catalogue) {
		t.Fatalf("listed %d permissions, want %d", len(list.Permissions), len(Catalogue))
	}
	var biID string
	for _, p := range list.Permissions {
		if p.Name == PermBIView {
			biID = p.ID
		}
	}

	grant := GrantRequest{Role: "MEKANIK", PermissionID: biID}
	if w := doRequest(mux, "POST", "/api/v1/admin/permissions", grant, claimsFor(RoleAdmin)); w.Code != http.StatusForbidden {
		t.Errorf("admin grant status = %d, want 403", w.Code)
	}
	if w := doRequest(mux, "POST", "/api/v1/admin/permissions", grant, owner); w.Code != http.StatusCreated {
		t.Fatalf("owner grant status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := doRequest(mux, "POST", "/api/v1/admin/permissions", grant, owner); w.Code != http.StatusConflict {
		t.Errorf("duplicate grant status = %d, want 409", w.Code)
	}
	if ok, _ := svc.Authorized(context.Background(), RoleMekanik, PermBIView); !ok {
		t.Error("grant not persisted")
	}

	path := "/api/v1/admin/permissions?role=MEKANIK&permission_id=" + biID
	if w := doRequest(mux, "DELETE", path, nil, owner); w.Code != http.StatusNoContent {
		t.Errorf("revoke status = %d", w.Code)
	}
	if w := doRequest(mux, "DELETE", path, nil, owner); w.Code != http.StatusNotFound {
		t.Errorf("second revoke status = %d, want 404", w.Code)
	}
	if w := doRequest(mux, "DELETE", "/api/v1/admin/permissions?role=MEKANIK", nil, owner); w.Code != http.StatusBadRequest {
		t.Errorf("missing permission_id status = %d, want 400", w.Code)
	}
}
