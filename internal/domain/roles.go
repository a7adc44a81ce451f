package domain

import "strings"

type Role string

const (
	RoleDeveloper      Role = "Developer"
	RoleTechnicalLead  Role = "Technical Lead"
	RoleChangeManager  Role = "Change Manager"
	RoleReleaseManager Role = "Release Manager"
	RoleQAEngineer     Role = "QA Engineer"
	RoleDevOps         Role = "DevOps Engineer"
	RoleAuditor        Role = "Auditor"
	RoleSysAdmin       Role = "System Administrator"
)

// DefaultRole is assigned when a registration does not name a role.
const DefaultRole = RoleDeveloper

var allRoles = []Role{
	RoleDeveloper,
	RoleTechnicalLead,
	RoleChangeManager,
	RoleReleaseManager,
	RoleQAEngineer,
	RoleDevOps,
	RoleAuditor,
	RoleSysAdmin,
}

func IsValidRole(r string) bool {
	for _, role := range allRoles {
		if r == string(role) {
			return true
		}
	}
	return false
}

// RoleList returns the fixed role set as a comma-joined string for messages.
func RoleList() string {
	names := make([]string, len(allRoles))
	for i, r := range allRoles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// MFARequired reports whether accounts with the given role are flagged for
// multi-factor authentication at creation. The flag is stored only; no login
// rule acts on it yet.
func MFARequired(role string) bool {
	switch Role(role) {
	case RoleChangeManager, RoleReleaseManager, RoleAuditor:
		return true
	default:
		return false
	}
}
