// Package authz holds the role predicates the handlers consult for
// per-resource decisions that the route-level guards don't cover.
package authz

import (
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

// CanManageUsers reports whether u may list and inspect every account.
func CanManageUsers(u *auth.SessionUser) bool {
	return u != nil && u.Role == models.RoleAdmin
}

// CanViewStats reports whether u may read the platform statistics.
// Any signed-in user qualifies.
func CanViewStats(u *auth.SessionUser) bool {
	return u != nil
}

// OwnsRecord reports whether u owns a record stamped with ownerEmail.
func OwnsRecord(u *auth.SessionUser, ownerEmail string) bool {
	return u != nil && ownerEmail != "" && u.Email == ownerEmail
}
