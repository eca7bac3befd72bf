package domain

// Role differentiates tenant sessions from the super-admin session.
type Role string

const (
	RoleBusiness   Role = "business"
	RoleSuperAdmin Role = "super_admin"
)
