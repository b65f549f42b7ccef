package account

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type Login struct {
	users  domain.Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

func NewLogin(
	users domain.Repository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
) *Login {
	return &Login{users: users, hasher: hasher, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, httperr.ErrUnauthorized("invalid_credentials")
		}
		return nil, err
	}

	if !uc.hasher.Compare(user.PasswordHash, password) {
		return nil, httperr.ErrUnauthorized("invalid_credentials")
	}

	token, exp, err := uc.tokens.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}
