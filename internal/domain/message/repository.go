package message

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// AppointmentLookup is the only view the thread needs of appointments.
type AppointmentLookup interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	GetAppointmentByGuestToken(ctx context.Context, token string) (*models.Appointment, error)
}

type Repository interface {
	// AppendMessage inserts text, sender and server timestamp in one write.
	AppendMessage(ctx context.Context, msg *models.Message) error

	// ListMessages returns the thread ordered by creation time ascending.
	ListMessages(ctx context.Context, appointmentID uint) ([]models.Message, error)
}
