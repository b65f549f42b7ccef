package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var appointmentOrder = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "date"}},
	{Column: clause.Column{Name: "time"}},
	{Column: clause.Column{Name: "id"}},
}}

func orderedThread(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

func (r *AppointmentGormRepository) withThread(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Messages", orderedThread).
		Preload("Messages.Sender")
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error; err != nil {
		return httperr.ErrStorage(err)
	}
	return nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, translate(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByGuestToken(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("guest_token = ?", token).
		First(&ap).Error; err != nil {
		return nil, translate(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentDetail(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withThread(ctx).First(&ap, id).Error; err != nil {
		return nil, translate(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	ownerID *uint,
) ([]models.Appointment, error) {

	q := r.withThread(ctx).Model(&models.Appointment{})
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}

	var list []models.Appointment
	if err := q.Clauses(appointmentOrder).Find(&list).Error; err != nil {
		return nil, httperr.ErrStorage(err)
	}
	return list, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

// UpdateAppointmentStatus is a plain overwrite; concurrent writers race and
// the last one wins.
func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return httperr.ErrStorage(err)
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateAppointmentPhoto(
	ctx context.Context,
	id uint,
	key string,
) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("photo_key", key).Error; err != nil {
		return httperr.ErrStorage(err)
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointmentCascade(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("appointment_id = ?", id).
			Delete(&models.Message{}).Error; err != nil {
			return httperr.ErrStorage(err)
		}

		res := tx.Delete(&models.Appointment{}, id)
		if res.Error != nil {
			return httperr.ErrStorage(res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound("appointment_not_found")
		}
		return nil
	})
}
