package domain

// Organization is the tenant that owns accounts, instruments and checks.
type Organization struct {
	OrganizationID    string   `json:"organizationID"`
	Name              string   `json:"name"`
	LocalCurrency     Currency `json:"localCurrency"`
	AccountingEnabled bool     `json:"accountingEnabled"`
	IsActive          bool     `json:"isActive"`
	AuditFields
}

// OrganizationRole is the role carried in the caller's session.
type OrganizationRole string

const (
	RoleAdmin    OrganizationRole = "ADMIN"
	RoleMember   OrganizationRole = "MEMBER"
	RoleReadOnly OrganizationRole = "READONLY"
)

// CanWrite reports whether the role may mutate organization data.
func (r OrganizationRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleMember
}
