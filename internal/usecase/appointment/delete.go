package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
	log   *zap.Logger
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	log *zap.Logger,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// Execute removes the appointment together with its message thread.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	caller *identity.Principal,
	id uint,
) error {

	if err := identity.RequireAdmin(caller); err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointmentCascade(ctx, id); err != nil {
		return err
	}

	uc.log.Info("appointment deleted",
		zap.Uint("appointment_id", id),
		zap.Uint("caller_id", caller.UserID),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}
