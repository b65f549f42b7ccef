package account

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ResolvePrincipal turns a bearer token into the caller. The user is read
// from storage so a revoked admin flag or a deleted account applies at once.
type ResolvePrincipal struct {
	users  domain.Repository
	tokens *auth.TokenManager
}

func NewResolvePrincipal(users domain.Repository, tokens *auth.TokenManager) *ResolvePrincipal {
	return &ResolvePrincipal{users: users, tokens: tokens}
}

func (uc *ResolvePrincipal) Execute(ctx context.Context, token string) (*identity.Principal, error) {
	claims, err := uc.tokens.ParseToken(token)
	if err != nil {
		return nil, httperr.ErrUnauthorized("unauthorized")
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, httperr.ErrUnauthorized("unauthorized")
	}

	user, err := uc.users.GetUserByID(ctx, id)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, httperr.ErrUnauthorized("unauthorized")
		}
		return nil, err
	}
	return PrincipalOf(user), nil
}

func PrincipalOf(u *models.User) *identity.Principal {
	return &identity.Principal{
		UserID:  u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		IsAdmin: u.IsAdmin,
	}
}

// Me returns the caller's stored profile.
type Me struct {
	users domain.Repository
}

func NewMe(users domain.Repository) *Me {
	return &Me{users: users}
}

func (uc *Me) Execute(ctx context.Context, caller *identity.Principal) (*models.User, error) {
	if !caller.Authenticated() {
		return nil, httperr.ErrUnauthorized("unauthorized")
	}
	return uc.users.GetUserByID(ctx, caller.UserID)
}
