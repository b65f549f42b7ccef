package message

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/message"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// PostMessageInput addresses the appointment by id for authenticated
// callers and by GuestToken for anonymous ones.
type PostMessageInput struct {
	AppointmentID uint
	GuestToken    string
	Text          string
}

// ======================================================
// USE CASE
// ======================================================

type PostMessage struct {
	appointments domain.AppointmentLookup
	messages     domain.Repository
	audit        audit.Recorder
	log          *zap.Logger
}

func NewPostMessage(
	appointments domain.AppointmentLookup,
	messages domain.Repository,
	audit audit.Recorder,
	log *zap.Logger,
) *PostMessage {
	return &PostMessage{
		appointments: appointments,
		messages:     messages,
		audit:        audit,
		log:          log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *PostMessage) Execute(
	ctx context.Context,
	caller *identity.Principal,
	in PostMessageInput,
) (*models.Message, error) {

	text, err := domain.NormalizeText(in.Text)
	if err != nil {
		return nil, err
	}

	ap, err := uc.resolve(ctx, caller, in)
	if err != nil {
		return nil, err
	}
	if err := domain.CanPost(caller, ap, in.GuestToken); err != nil {
		return nil, err
	}

	msg := &models.Message{
		AppointmentID: ap.ID,
		Text:          text,
	}
	if caller.Authenticated() {
		msg.SenderID = &caller.UserID
	}

	if err := uc.messages.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	if caller.Authenticated() {
		msg.Sender = &models.User{
			ID:      caller.UserID,
			Name:    caller.Name,
			Surname: caller.Surname,
			IsAdmin: caller.IsAdmin,
		}
	}

	uc.log.Info("message posted",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("message_id", msg.ID),
		zap.Bool("guest", !caller.Authenticated()),
	)

	ev := audit.Event{
		Action:   "message_posted",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"message_id": msg.ID,
			"guest":      !caller.Authenticated(),
		},
	}
	if caller.Authenticated() {
		ev.UserID = &caller.UserID
	}
	uc.audit.Dispatch(ev)

	return msg, nil
}

func (uc *PostMessage) resolve(
	ctx context.Context,
	caller *identity.Principal,
	in PostMessageInput,
) (*models.Appointment, error) {

	if caller.Authenticated() {
		return uc.appointments.GetAppointment(ctx, in.AppointmentID)
	}

	if _, err := uuid.Parse(in.GuestToken); err != nil {
		return nil, httperr.ErrUnauthorized("unauthorized")
	}
	return uc.appointments.GetAppointmentByGuestToken(ctx, in.GuestToken)
}
