package appointment

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const maxDescriptionLength = 500

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Description string
	Date        string
	Time        string

	// OwnerID defaults to the caller. Only admins may book for someone else.
	OwnerID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	users account.Repository
	audit audit.Recorder
}

func NewCreateAppointment(
	repo domain.Repository,
	users account.Repository,
	audit audit.Recorder,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		users: users,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	caller *identity.Principal,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := identity.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Required fields
	// --------------------------------------------------
	description := strings.TrimSpace(in.Description)
	if description == "" || strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" {
		return nil, httperr.ErrValidation("missing_fields")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return nil, httperr.ErrValidation("description_too_long")
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	clock, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Owner
	// --------------------------------------------------
	ownerID := caller.UserID
	if in.OwnerID != nil && *in.OwnerID != caller.UserID {
		if !caller.IsAdmin {
			return nil, httperr.ErrForbidden("forbidden")
		}
		if _, err := uc.users.GetUserByID(ctx, *in.OwnerID); err != nil {
			if httperr.IsBusiness(err, "user_not_found") {
				return nil, httperr.ErrNotFound("owner_not_found")
			}
			return nil, err
		}
		ownerID = *in.OwnerID
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:      ownerID,
		Description: description,
		Date:        date,
		Time:        clock,
		Status:      domain.InitialStatus(),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"owner_id": ownerID,
			"date":     date.Format(domain.DateLayout),
			"time":     clock,
		},
	})

	return uc.repo.GetAppointmentDetail(ctx, ap.ID)
}
