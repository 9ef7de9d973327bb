package auth

import "service-plus/pkg/jwtutil"

// Principal classes embedded in token claims.
const (
	UserTypeSuperAdmin = "S"
	UserTypeAdmin      = "A"
	UserTypeUser       = "B"
)

// SuperAdminSubject is the fixed subject id of the superadmin principal.
const SuperAdminSubject = "S"

// Principal is an authenticated identity with its resolved tenant context.
// It is built once at login, carried inside the signed token, and rebuilt
// from the token's claims on every authenticated request; nothing is stored
// server-side.
type Principal struct {
	Subject      string
	UserType     string
	ClientID     int64
	DBName       string
	AccessRights []string
}

// IsSuperAdmin reports whether the principal is the superadmin.
func (p *Principal) IsSuperAdmin() bool {
	return p.UserType == UserTypeSuperAdmin
}

// FromClaims rebuilds a principal from verified token claims. The database
// name in the claims is the only routing hint used after login.
func FromClaims(claims *jwtutil.Claims) *Principal {
	return &Principal{
		Subject:  claims.Subject,
		UserType: claims.UserType,
		ClientID: claims.ClientID,
		DBName:   claims.DBName,
	}
}
