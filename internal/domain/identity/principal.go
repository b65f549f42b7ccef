package identity

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// Principal is the authenticated caller of an operation. A nil *Principal
// is an anonymous guest.
type Principal struct {
	UserID  uint
	Name    string
	Surname string
	IsAdmin bool
}

func (p *Principal) Authenticated() bool {
	return p != nil
}

// Owns reports whether the principal is the given owner.
func (p *Principal) Owns(ownerID uint) bool {
	return p != nil && p.UserID == ownerID
}

func RequireAuthenticated(p *Principal) error {
	if !p.Authenticated() {
		return httperr.ErrUnauthorized("unauthorized")
	}
	return nil
}

func RequireAdmin(p *Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.IsAdmin {
		return httperr.ErrForbidden("forbidden")
	}
	return nil
}
