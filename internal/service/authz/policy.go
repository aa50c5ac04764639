// Package authz implements the role-based authorization policy as pure
// data: a static table mapping (role, action, resource) to allow/deny,
// plus ownership checks for user-owned resources. Handlers and services
// never branch on role names directly.
package authz

import (
	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
)

// Principal is the authenticated user acting on a request, as resolved
// by the authentication middleware.
type Principal struct {
	ID   uuid.UUID
	Role domain.Role
}

// Action is a CRUD operation on a resource.
type Action string

// Actions the policy distinguishes.
const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource is a kind of record the policy protects.
type Resource string

// Resources the policy distinguishes. Verbs and nouns share one lexicon
// resource: their rules are identical.
const (
	ResourceLexicon     Resource = "lexicon"
	ResourceGroup       Resource = "group"
	ResourceUser        Resource = "user"
	ResourceStudentLink Resource = "student_link"
)

type actionSet map[Action]bool

// rules is the policy table. Admin is handled as an unconditional allow
// in Allowed and does not appear here. Ownership of groups is checked
// separately with CanAccessOwned.
var rules = map[domain.Role]map[Resource]actionSet{
	domain.RoleTeacher: {
		ResourceLexicon: {
			ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true,
		},
		ResourceGroup: {
			ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true,
		},
		ResourceUser: {
			ActionRead: true,
		},
		ResourceStudentLink: {
			ActionCreate: true, ActionRead: true, ActionDelete: true,
		},
	},
	domain.RoleStudent: {
		ResourceLexicon: {
			ActionRead: true,
		},
		ResourceGroup: {
			ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true,
		},
	},
}

// Allowed reports whether the role may perform the action on the given
// resource kind. Admin is allowed everything unconditionally.
func Allowed(role domain.Role, action Action, resource Resource) bool {
	if role == domain.RoleAdmin {
		return true
	}
	return rules[role][resource][action]
}

// CanAccessOwned reports whether the principal may act on a resource
// owned by ownerID: admins always, everyone else only on their own.
func CanAccessOwned(p Principal, ownerID uuid.UUID) bool {
	return p.Role == domain.RoleAdmin || p.ID == ownerID
}
