package account

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Phone    string
	Password string
}

// Session is what a successful register or login hands back.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type Register struct {
	users  domain.Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	audit  audit.Recorder

	// checkDomain is nil when email domain lookups are disabled.
	checkDomain func(email string) bool
}

func NewRegister(
	users domain.Repository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	audit audit.Recorder,
	checkDomain func(email string) bool,
) *Register {
	return &Register{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		audit:       audit,
		checkDomain: checkDomain,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	email := NormalizeEmail(in.Email)
	if uc.checkDomain != nil && !uc.checkDomain(email) {
		return nil, httperr.ErrValidation("invalid_email_domain")
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Surname:      strings.TrimSpace(in.Surname),
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  strings.TrimSpace(in.Phone),
	}
	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, exp, err := uc.tokens.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}
