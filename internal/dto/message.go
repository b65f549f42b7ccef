package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type SenderDTO struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	IsAdmin bool   `json:"is_admin"`
}

// MessageDTO has a null sender and IsGuest set for messages posted through
// the guest link, or whose author was deleted.
type MessageDTO struct {
	ID        uint       `json:"id"`
	Text      string     `json:"text"`
	Sender    *SenderDTO `json:"sender"`
	IsGuest   bool       `json:"is_guest"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewMessageDTO(m *models.Message) MessageDTO {
	out := MessageDTO{
		ID:        m.ID,
		Text:      m.Text,
		IsGuest:   m.SenderID == nil,
		CreatedAt: m.CreatedAt,
	}
	if m.Sender != nil {
		out.Sender = &SenderDTO{
			ID:      m.Sender.ID,
			Name:    m.Sender.Name,
			Surname: m.Sender.Surname,
			IsAdmin: m.Sender.IsAdmin,
		}
	}
	return out
}

func NewMessageDTOs(list []models.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(list))
	for i := range list {
		out = append(out, NewMessageDTO(&list[i]))
	}
	return out
}
