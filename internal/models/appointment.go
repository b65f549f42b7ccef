package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus is stored as a small integer: 0 pending, 1 approved, 2 rejected.
type AppointmentStatus uint8

const (
	StatusPending AppointmentStatus = iota
	StatusApproved
	StatusRejected
)

func (s AppointmentStatus) Valid() bool {
	return s <= StatusRejected
}

func (s AppointmentStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

func (s AppointmentStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid appointment status %d", s)
	}
	return int64(s), nil
}

func (s *AppointmentStatus) Scan(src any) error {
	var n int64
	switch v := src.(type) {
	case int64:
		n = v
	case int32:
		n = int64(v)
	case int16:
		n = int64(v)
	case []byte:
		if _, err := fmt.Sscan(string(v), &n); err != nil {
			return fmt.Errorf("scan appointment status: %w", err)
		}
	case string:
		if _, err := fmt.Sscan(v, &n); err != nil {
			return fmt.Errorf("scan appointment status: %w", err)
		}
	default:
		return fmt.Errorf("scan appointment status: unsupported type %T", src)
	}

	st := AppointmentStatus(n)
	if n < 0 || !st.Valid() {
		return fmt.Errorf("invalid appointment status %d in storage", n)
	}
	*s = st
	return nil
}

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Description string    `gorm:"size:500;not null" json:"description"`
	Date        time.Time `gorm:"type:date;index;not null" json:"date"`
	Time        string    `gorm:"size:5;not null" json:"time"`

	Status AppointmentStatus `gorm:"type:smallint;not null;default:0" json:"status"`

	// GuestToken is the bearer credential behind the private guest link.
	GuestToken string `gorm:"size:36;uniqueIndex;not null" json:"-"`
	PhotoKey   string `gorm:"size:255" json:"-"`

	Messages []Message `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"messages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.GuestToken == "" {
		a.GuestToken = uuid.NewString()
	}
	return nil
}
