package entity

// Role represents an actor role in the marketplace
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleCustomer  Role = "customer"
	RoleProvider  Role = "provider"
	RoleAdmin     Role = "admin"
)

// IsValid checks whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAnonymous, RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// IsStaff returns true for roles that manage supply (providers and admins)
func (r Role) IsStaff() bool {
	return r == RoleProvider || r == RoleAdmin
}
