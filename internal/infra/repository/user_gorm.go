package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrValidation("email_taken")
		}
		return httperr.ErrStorage(err)
	}
	return nil
}

func (r *UserGormRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "user_not_found")
	}
	return &u, nil
}

func (r *UserGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, translate(err, "user_not_found")
	}
	return &u, nil
}

func (r *UserGormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var list []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, httperr.ErrStorage(err)
	}
	return list, nil
}

func (r *UserGormRepository) UpdateUserAdmin(
	ctx context.Context,
	id uint,
	isAdmin bool,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return translate(err, "user_not_found")
		}
		if err := tx.Model(&u).Update("is_admin", isAdmin).Error; err != nil {
			return httperr.ErrStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes the user's appointments with their threads and keeps
// messages the user wrote elsewhere with a NULL sender.
func (r *UserGormRepository) DeleteUser(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Appointment{}).Select("id").Where("user_id = ?", id)

		if err := tx.
			Where("appointment_id IN (?)", owned).
			Delete(&models.Message{}).Error; err != nil {
			return httperr.ErrStorage(err)
		}
		if err := tx.
			Model(&models.Message{}).
			Where("sender_id = ?", id).
			Update("sender_id", nil).Error; err != nil {
			return httperr.ErrStorage(err)
		}
		if err := tx.
			Where("user_id = ?", id).
			Delete(&models.Appointment{}).Error; err != nil {
			return httperr.ErrStorage(err)
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return httperr.ErrStorage(res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound("user_not_found")
		}
		return nil
	})
}
