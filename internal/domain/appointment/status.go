package appointment

import (
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status = models.AppointmentStatus

const (
	StatusPending  = models.StatusPending
	StatusApproved = models.StatusApproved
	StatusRejected = models.StatusRejected
)

// ParseStatus accepts only the three defined values. Any status may follow
// any other; there is no transition graph.
func ParseStatus(raw int) (Status, error) {
	if raw < int(StatusPending) || raw > int(StatusRejected) {
		return 0, httperr.ErrValidation("invalid_status")
	}
	return Status(raw), nil
}

func InitialStatus() Status {
	return StatusPending
}
