package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns every appointment for admins and only the caller's own
// otherwise, sorted by date and time.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller *identity.Principal,
) ([]models.Appointment, error) {

	if err := identity.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	var ownerID *uint
	if !caller.IsAdmin {
		ownerID = &caller.UserID
	}

	return uc.repo.ListAppointments(ctx, ownerID)
}
