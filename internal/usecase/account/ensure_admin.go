package account

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// EnsureAdmin seeds the bootstrap administrator. An existing account with
// that email is promoted; its password is left alone.
func EnsureAdmin(
	ctx context.Context,
	users domain.Repository,
	hasher *auth.PasswordHasher,
	email string,
	password string,
) (*models.User, error) {

	email = NormalizeEmail(email)

	existing, err := users.GetUserByEmail(ctx, email)
	if err == nil {
		if existing.IsAdmin {
			return existing, nil
		}
		return users.UpdateUserAdmin(ctx, existing.ID, true)
	}
	if httperr.KindOf(err) != httperr.KindNotFound {
		return nil, err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Name:         "Admin",
		Surname:      "Admin",
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
