// Package auth implements bearer token sessions, permission checks and
// CSRF verification for the API.
package auth

import "strings"

// Permission represents an allowed action on a resource type.
// Format: "resource:action" (e.g., "members:manage", "statements:manage")
type Permission string

const (
	PermManageChurch     Permission = "church:manage"
	PermManageHouseholds Permission = "households:manage"
	PermManageMembers    Permission = "members:manage"
	PermManageGiving     Permission = "giving:manage"
	PermManageAttendance Permission = "attendance:manage"
	PermManageStatements Permission = "statements:manage"
)

// WildcardAll matches any action on a resource.
const WildcardAll = "*"

// PermissionAll grants every permission.
const PermissionAll Permission = "*:*"

// Parse splits a permission into resource type and action.
func (p Permission) Parse() (resourceType string, action string) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// Matches checks if this permission matches a requested permission.
// Supports wildcards: "*:*" matches all, "giving:*" matches all giving
// actions.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionAll {
		return true
	}

	if p == requested {
		return true
	}

	// Check resource wildcard: "giving:*" matches "giving:manage"
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	if res == reqRes && act == WildcardAll {
		return true
	}

	return false
}

// HasPermission checks a space separated permission list against a
// requested permission.
func HasPermission(list string, requested Permission) bool {
	for _, p := range strings.Fields(list) {
		if Permission(p).Matches(requested) {
			return true
		}
	}

	return false
}
