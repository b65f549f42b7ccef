package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository returns httperr not-found errors for missing rows and wraps
// every other failure with httperr.ErrStorage.
type Repository interface {
	// -------- Create --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Read --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByGuestToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	// GetAppointmentDetail preloads the owner and the ordered thread.
	GetAppointmentDetail(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// ListAppointments returns every appointment when ownerID is nil, sorted
	// by date then time, each with owner and ordered thread.
	ListAppointments(
		ctx context.Context,
		ownerID *uint,
	) ([]models.Appointment, error)

	// -------- State change --------
	UpdateAppointmentStatus(
		ctx context.Context,
		id uint,
		status Status,
	) error

	UpdateAppointmentPhoto(
		ctx context.Context,
		id uint,
		key string,
	) error

	// DeleteAppointmentCascade removes the thread and then the appointment
	// in one transaction.
	DeleteAppointmentCascade(
		ctx context.Context,
		id uint,
	) error
}
