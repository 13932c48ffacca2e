package middleware

// Role names
const (
	RoleAdmin       = "admin"
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

// AccessContext carries the authenticated caller's identity through the
// request. Services take it explicitly instead of re-reading gin context.
type AccessContext struct {
	UserID   uint
	RoleName string
	Email    string
	FullName string
}

func (ac *AccessContext) IsAdmin() bool {
	return ac.RoleName == RoleAdmin
}

func (ac *AccessContext) IsOrganizer() bool {
	return ac.RoleName == RoleOrganizer
}

func (ac *AccessContext) IsParticipant() bool {
	return ac.RoleName == RoleParticipant
}
