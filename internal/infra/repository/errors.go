package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func translate(err error, notFoundCode string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(notFoundCode)
	}
	return httperr.ErrStorage(err)
}
