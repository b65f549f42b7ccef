package dto

import (
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type OwnerDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type AppointmentDTO struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	StartsAt    time.Time `json:"starts_at"`

	Status      uint8  `json:"status"`
	StatusLabel string `json:"status_label"`

	OwnerID uint      `json:"owner_id"`
	Owner   *OwnerDTO `json:"owner,omitempty"`

	// GuestLink is the path of the private guest page.
	GuestLink string `json:"guest_link"`
	HasPhoto  bool   `json:"has_photo"`

	Messages []MessageDTO `json:"messages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func GuestLink(token string) string {
	return "/guest/appointments/" + token
}

// NewAppointmentDTO renders an appointment for its owner or an admin.
func NewAppointmentDTO(ap *models.Appointment, loc *time.Location) AppointmentDTO {
	out := AppointmentDTO{
		ID:          ap.ID,
		Description: ap.Description,
		Date:        ap.Date.Format(domain.DateLayout),
		Time:        ap.Time,
		StartsAt:    domain.StartsAt(ap.Date, ap.Time, loc),
		Status:      uint8(ap.Status),
		StatusLabel: ap.Status.String(),
		OwnerID:     ap.UserID,
		GuestLink:   GuestLink(ap.GuestToken),
		HasPhoto:    ap.PhotoKey != "",
		Messages:    NewMessageDTOs(ap.Messages),
		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
	}

	if ap.User.ID != 0 {
		out.Owner = &OwnerDTO{
			ID:          ap.User.ID,
			Name:        ap.User.Name,
			Surname:     ap.User.Surname,
			Email:       ap.User.Email,
			PhoneNumber: ap.User.PhoneNumber,
		}
	}
	return out
}

func NewAppointmentDTOs(list []models.Appointment, loc *time.Location) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, NewAppointmentDTO(&list[i], loc))
	}
	return out
}

// GuestAppointmentDTO is what the private link shows. It leaves out the
// numeric id and the owner's contact details.
type GuestAppointmentDTO struct {
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	StartsAt    time.Time `json:"starts_at"`

	Status      uint8  `json:"status"`
	StatusLabel string `json:"status_label"`

	Messages []MessageDTO `json:"messages"`
}

func NewGuestAppointmentDTO(ap *models.Appointment, loc *time.Location) GuestAppointmentDTO {
	return GuestAppointmentDTO{
		Description: ap.Description,
		Date:        ap.Date.Format(domain.DateLayout),
		Time:        ap.Time,
		StartsAt:    domain.StartsAt(ap.Date, ap.Time, loc),
		Status:      uint8(ap.Status),
		StatusLabel: ap.Status.String(),
		Messages:    NewMessageDTOs(ap.Messages),
	}
}
