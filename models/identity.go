package models

// Identity is the resolved caller for a single request. It lives in the
// request context only and is never shared across requests. The zero value is
// not meaningful; use Anonymous() for unauthenticated callers.
type Identity struct {
	UserID    string
	Email     string
	Role      UserRole
	Anonymous bool
}

func Anonymous() Identity {
	return Identity{Anonymous: true}
}

func (i Identity) IsAdmin() bool {
	return !i.Anonymous && i.Role == RoleAdmin
}

// Owns reports whether the identity is the recorded owner of a resource.
// Anonymous callers own nothing.
func (i Identity) Owns(ownerID string) bool {
	return !i.Anonymous && ownerID != "" && i.UserID == ownerID
}
