package models

import "time"

// Message is append-only: text and sender never change after insert.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index:idx_messages_thread,priority:1;not null" json:"appointment_id"`

	// SenderID is nil for messages posted through the guest link.
	SenderID *uint `gorm:"index" json:"sender_id"`
	Sender   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"sender"`

	Text string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `gorm:"index:idx_messages_thread,priority:2" json:"created_at"`
}
