package message

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/message"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// GuestView is the private-link page: one appointment and its thread,
// reachable only with the appointment's guest token.
type GuestView struct {
	appointments domain.AppointmentLookup
	thread       *ReadThread
}

func NewGuestView(appointments domain.AppointmentLookup, thread *ReadThread) *GuestView {
	return &GuestView{appointments: appointments, thread: thread}
}

func (uc *GuestView) Execute(ctx context.Context, token string) (*models.Appointment, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	ap, err := uc.appointments.GetAppointmentByGuestToken(ctx, token)
	if err != nil {
		return nil, err
	}

	msgs, err := uc.thread.Execute(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	ap.Messages = msgs
	return ap, nil
}
