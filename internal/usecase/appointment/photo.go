package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/media"
)

// ======================================================
// ATTACH
// ======================================================

type AttachPhoto struct {
	repo     domain.Repository
	store    media.Store
	audit    audit.Recorder
	maxWidth int
}

// NewAttachPhoto accepts a nil store; uploads then fail as unavailable.
func NewAttachPhoto(
	repo domain.Repository,
	store media.Store,
	audit audit.Recorder,
	maxWidth int,
) *AttachPhoto {
	return &AttachPhoto{
		repo:     repo,
		store:    store,
		audit:    audit,
		maxWidth: maxWidth,
	}
}

func (uc *AttachPhoto) Execute(
	ctx context.Context,
	caller *identity.Principal,
	id uint,
	data []byte,
) error {

	if err := identity.RequireAuthenticated(caller); err != nil {
		return err
	}
	if uc.store == nil {
		return httperr.ErrUnavailable("photo_storage_disabled")
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.CanManage(caller, ap); err != nil {
		return err
	}

	img, err := media.ProcessPhoto(data, uc.maxWidth)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("appointments/%d/%s.webp", ap.ID, uuid.NewString())
	if err := uc.store.Put(ctx, key, media.ContentTypeWebP, img); err != nil {
		return httperr.ErrStorage(err)
	}
	if err := uc.repo.UpdateAppointmentPhoto(ctx, ap.ID, key); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_photo_attached",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"bytes": len(img)},
	})

	return nil
}

// ======================================================
// URL
// ======================================================

type PhotoURL struct {
	repo  domain.Repository
	store media.Store
	ttl   time.Duration
}

func NewPhotoURL(repo domain.Repository, store media.Store, ttl time.Duration) *PhotoURL {
	return &PhotoURL{repo: repo, store: store, ttl: ttl}
}

func (uc *PhotoURL) Execute(
	ctx context.Context,
	caller *identity.Principal,
	id uint,
) (string, time.Time, error) {

	if err := identity.RequireAuthenticated(caller); err != nil {
		return "", time.Time{}, err
	}
	if uc.store == nil {
		return "", time.Time{}, httperr.ErrUnavailable("photo_storage_disabled")
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := domain.CanManage(caller, ap); err != nil {
		return "", time.Time{}, err
	}
	if ap.PhotoKey == "" {
		return "", time.Time{}, httperr.ErrNotFound("photo_not_found")
	}

	url, err := uc.store.PresignGet(ctx, ap.PhotoKey, uc.ttl)
	if err != nil {
		return "", time.Time{}, httperr.ErrStorage(err)
	}
	return url, time.Now().Add(uc.ttl), nil
}
