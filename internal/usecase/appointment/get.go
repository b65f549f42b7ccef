package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	caller *identity.Principal,
	id uint,
) (*models.Appointment, error) {

	if err := identity.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanManage(caller, ap); err != nil {
		return nil, err
	}

	return ap, nil
}
