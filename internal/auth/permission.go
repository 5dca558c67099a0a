package auth

import "strings"

// Permission names checked by route guards.
const (
	PermDashboardView  = "dashboard_view"
	PermBIView         = "bi_view"
	PermRoleManagement = "role_management"
	PermUsersManage    = "users_manage"
)

// Permission is one entry of the permission catalogue.
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// Catalogue is the permission set installed on first migration.
var Catalogue = []Permission{
	{Name: "dashboard_view", Resource: "dashboard", Action: "view", Description: "Open the dashboard"},
	{Name: "inventory_view", Resource: "inventory", Action: "view", Description: "View inventory"},
	{Name: "inventory_create", Resource: "inventory", Action: "create", Description: "Add products"},
	{Name: "inventory_edit", Resource: "inventory", Action: "edit", Description: "Edit products"},
	{Name: "inventory_delete", Resource: "inventory", Action: "delete", Description: "Delete products"},
	{Name: "suppliers_view", Resource: "suppliers", Action: "view", Description: "View suppliers"},
	{Name: "suppliers_create", Resource: "suppliers", Action: "create", Description: "Add suppliers"},
	{Name: "suppliers_edit", Resource: "suppliers", Action: "edit", Description: "Edit suppliers"},
	{Name: "suppliers_delete", Resource: "suppliers", Action: "delete", Description: "Delete suppliers"},
	{Name: "orders_view", Resource: "orders", Action: "view", Description: "View transactions"},
	{Name: "orders_create", Resource: "orders", Action: "create", Description: "Create transactions"},
	{Name: "orders_edit", Resource: "orders", Action: "edit", Description: "Edit transactions"},
	{Name: "orders_delete", Resource: "orders", Action: "delete", Description: "Delete transactions"},
	{Name: "bi_view", Resource: "bi", Action: "view", Description: "Open business intelligence and forecasts"},
	{Name: "crm_view", Resource: "crm", Action: "view", Description: "View customers"},
	{Name: "crm_manage", Resource: "crm", Action: "manage", Description: "Manage customers and vehicles"},
	{Name: "approvals_view", Resource: "approvals", Action: "view", Description: "View pending approvals"},
	{Name: "approvals_approve", Resource: "approvals", Action: "approve", Description: "Approve incoming stock"},
	{Name: "mechanic_notes_view", Resource: "mechanic-notes", Action: "view", Description: "View mechanic notes"},
	{Name: "mechanic_notes_create", Resource: "mechanic-notes", Action: "create", Description: "Create mechanic notes"},
	{Name: "mechanic_notes_edit", Resource: "mechanic-notes", Action: "edit", Description: "Edit mechanic notes"},
	{Name: "mechanic_notes_delete", Resource: "mechanic-notes", Action: "delete", Description: "Delete mechanic notes"},
	{Name: "settings_view", Resource: "settings", Action: "view", Description: "Open settings"},
	{Name: "users_manage", Resource: "admin", Action: "users", Description: "Manage staff accounts"},
	{Name: "role_management", Resource: "admin", Action: "manage", Description: "Manage roles and permissions"},
}

// DefaultGrant reports whether role holds the named permission in the
// initial mapping. OWNER holds everything, ADMIN everything except role
// management, MEKANIK a read-mostly workshop subset.
func DefaultGrant(role Role, name string) bool {
	switch role {
	case RoleOwner:
		return true
	case RoleAdmin:
		return name != PermRoleManagement
	case RoleMekanik:
		switch name {
		case "dashboard_view", "inventory_view", "orders_view", "crm_view":
			return true
		}
		return strings.HasPrefix(name, "mechanic_notes_")
	}
	return false
}

// PermissionMap indexes perms by name and by "resource.action".
func PermissionMap(perms []Permission) map[string]bool {
	m := make(map[string]bool, 2*len(perms))
	for _, p := range perms {
		m[p.Name] = true
		m[p.Resource+"."+p.Action] = true
	}
	return m
}
