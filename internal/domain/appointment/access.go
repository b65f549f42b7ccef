package appointment

import (
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CanManage covers viewing, status changes and photos: the owner or any admin.
func CanManage(p *identity.Principal, ap *models.Appointment) error {
	if err := identity.RequireAuthenticated(p); err != nil {
		return err
	}
	if p.IsAdmin || p.Owns(ap.UserID) {
		return nil
	}
	return httperr.ErrForbidden("forbidden")
}
