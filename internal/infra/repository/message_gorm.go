package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MessageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

// AppendMessage is a single INSERT; CreatedAt is assigned by gorm right before it.
func (r *MessageGormRepository) AppendMessage(
	ctx context.Context,
	msg *models.Message,
) error {
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(msg).Error; err != nil {
		return httperr.ErrStorage(err)
	}
	return nil
}

func (r *MessageGormRepository) ListMessages(
	ctx context.Context,
	appointmentID uint,
) ([]models.Message, error) {

	var list []models.Message
	if err := orderedThread(
		r.db.WithContext(ctx).
			Preload("Sender").
			Where("appointment_id = ?", appointmentID),
	).Find(&list).Error; err != nil {
		return nil, httperr.ErrStorage(err)
	}
	return list, nil
}
