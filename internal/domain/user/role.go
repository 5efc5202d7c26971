package user

import "strings"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOrganiza Role = "ORGANIZA"
	RoleUser     Role = "USER"
)

// ParseRole accepts the canonical names plus ORGANIZE, an older spelling
// still sent by some clients.
func ParseRole(v string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "ADMIN":
		return RoleAdmin, true
	case "ORGANIZA", "ORGANIZE":
		return RoleOrganiza, true
	case "USER":
		return RoleUser, true
	}
	return "", false
}

// SelfAssignable reports whether public registration may pick this role.
func (r Role) SelfAssignable() bool {
	return r == RoleUser || r == RoleOrganiza
}

// ManagesStore reports whether the role can act on a store it does not own.
func (r Role) ManagesStore() bool {
	return r == RoleAdmin
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   Role
}

// CanManage reports whether the actor may change a resource owned by
// ownerID.
func (a Actor) CanManage(ownerID string) bool {
	return a.UserID == ownerID || a.Role.ManagesStore()
}
