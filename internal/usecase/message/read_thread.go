package message

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/message"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ReadThread returns an appointment's messages oldest first. It performs no
// authorization of its own; callers must have checked access already.
type ReadThread struct {
	messages domain.Repository
}

func NewReadThread(messages domain.Repository) *ReadThread {
	return &ReadThread{messages: messages}
}

func (uc *ReadThread) Execute(ctx context.Context, appointmentID uint) ([]models.Message, error) {
	return uc.messages.ListMessages(ctx, appointmentID)
}
