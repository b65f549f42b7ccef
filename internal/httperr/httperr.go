package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

var messages = map[string]string{
	"unauthorized":           "Authentication required.",
	"forbidden":              "You are not allowed to perform this action.",
	"invalid_request":        "Invalid request payload.",
	"missing_fields":         "Description, date and time are required.",
	"description_too_long":   "Description must be at most 500 characters.",
	"invalid_date":           "Date must be a valid calendar date (YYYY-MM-DD).",
	"invalid_time":           "Time must be an hour:minute pair (HH:MM).",
	"invalid_status":         "Status must be 0, 1 or 2.",
	"invalid_id":             "Invalid identifier.",
	"empty_message":          "Message text is required.",
	"message_too_long":       "Message text is too long.",
	"appointment_not_found":  "Appointment not found.",
	"user_not_found":         "User not found.",
	"owner_not_found":        "Owner not found.",
	"photo_not_found":        "Appointment has no photo.",
	"email_taken":            "Email is already registered.",
	"invalid_email_domain":   "The email domain does not look valid.",
	"invalid_credentials":    "Invalid email or password.",
	"self_role_change":       "You cannot change your own role.",
	"self_delete":            "You cannot delete your own account.",
	"invalid_is_admin":       "isAdmin must be a boolean value.",
	"invalid_photo":          "Photo must be a JPEG, PNG or WebP image.",
	"photo_too_large":        "Photo is too large.",
	"photo_storage_disabled": "Photo storage is not configured.",
	"too_many_requests":      "Too many requests, try again later.",
	"storage_failure":        "Internal error.",
	"internal_error":         "Internal error.",
}

func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Request failed."
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond renders err and records it on the gin context for the request logger.
// Storage and unknown failures never expose their cause.
func Respond(c *gin.Context, err error) {
	status := StatusOf(err)
	_ = c.Error(err)

	if status == http.StatusInternalServerError {
		Internal(c, "internal_error", Message("internal_error"))
		return
	}

	var be BusinessError
	code := "request_failed"
	if errors.As(err, &be) {
		code = be.Code
	}
	Write(c, status, code, Message(code))
}
