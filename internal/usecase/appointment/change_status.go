package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ChangeStatus struct {
	repo  domain.Repository
	audit audit.Recorder
	log   *zap.Logger
}

func NewChangeStatus(
	repo domain.Repository,
	audit audit.Recorder,
	log *zap.Logger,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// Execute overwrites the status unconditionally. Any state may follow any
// other, including moving a rejected appointment back to pending.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	caller *identity.Principal,
	id uint,
	raw int,
) (*models.Appointment, error) {

	if err := identity.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(raw)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanManage(caller, ap); err != nil {
		return nil, err
	}

	previous := ap.Status
	if err := uc.repo.UpdateAppointmentStatus(ctx, id, status); err != nil {
		return nil, err
	}

	uc.log.Info("appointment status changed",
		zap.Uint("appointment_id", id),
		zap.Uint("caller_id", caller.UserID),
		zap.Bool("caller_is_admin", caller.IsAdmin),
		zap.Stringer("from", previous),
		zap.Stringer("to", status),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": previous.String(),
			"to":   status.String(),
		},
	})

	return uc.repo.GetAppointmentDetail(ctx, id)
}
