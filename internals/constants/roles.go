package constants

import "fmt"

const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
	RoleMember    = "member"
	RoleGuest     = "guest"
)

// Template pesan error role
const (
	ErrOnlyLibrariansCanAccess = "❌ Hanya librarian atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess     = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyMembersCanAccess    = "❌ Hanya member terdaftar yang boleh mengakses fitur %s."
)

func RoleErrorLibrarian(feature string) string {
	return fmt.Sprintf(ErrOnlyLibrariansCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorMember(feature string) string {
	return fmt.Sprintf(ErrOnlyMembersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleMember,
		RoleLibrarian,
		RoleAdmin,
		RoleGuest,
	}

	StaffRoles = []string{
		RoleLibrarian,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
