package message

import (
	"crypto/subtle"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const MaxTextLength = 2000

func NormalizeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", httperr.ErrValidation("empty_message")
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", httperr.ErrValidation("message_too_long")
	}
	return text, nil
}

// CanPost allows the owner, any admin, or an anonymous caller holding the
// appointment's guest token.
func CanPost(p *identity.Principal, ap *models.Appointment, guestToken string) error {
	if p.Authenticated() {
		if p.IsAdmin || p.Owns(ap.UserID) {
			return nil
		}
		return httperr.ErrForbidden("forbidden")
	}

	if guestToken != "" && ap.GuestToken != "" &&
		subtle.ConstantTimeCompare([]byte(guestToken), []byte(ap.GuestToken)) == 1 {
		return nil
	}
	return httperr.ErrUnauthorized("unauthorized")
}
