package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestKindAndStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ErrValidation("invalid_date"), http.StatusBadRequest},
		{ErrUnauthorized("unauthorized"), http.StatusUnauthorized},
		{ErrForbidden("forbidden"), http.StatusForbidden},
		{ErrNotFound("appointment_not_found"), http.StatusNotFound},
		{ErrUnavailable("photo_storage_disabled"), http.StatusServiceUnavailable},
		{ErrStorage(errors.New("conn refused")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.status {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.status, got)
		}
	}
}

func TestIsBusinessThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrValidation("missing_fields"))
	if !IsBusiness(err, "missing_fields") {
		t.Error("expected wrapped business error to match")
	}
	if IsBusiness(err, "invalid_date") {
		t.Error("unexpected match on different code")
	}
	if !IsAuth(ErrForbidden("forbidden")) || IsAuth(ErrNotFound("x")) {
		t.Error("IsAuth classification wrong")
	}
}

func TestRespondHidesStorageDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, ErrStorage(errors.New("pq: password authentication failed for user barber")))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != "internal_error" || body.Message != "Internal error." {
		t.Errorf("leaked or wrong body: %+v", body)
	}
	if len(c.Errors) != 1 {
		t.Errorf("expected error recorded on context, got %d", len(c.Errors))
	}
}

func TestRespondBusinessCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, ErrValidation("invalid_status"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Code != "invalid_status" {
		t.Errorf("expected invalid_status, got %s", body.Code)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})) {
		t.Error("postgres unique violation not recognized")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation misclassified")
	}
	if !IsUniqueViolation(&mysql.MySQLError{Number: 1062}) {
		t.Error("mysql duplicate entry not recognized")
	}
	if IsUniqueViolation(errors.New("duplicate")) {
		t.Error("plain error misclassified")
	}
}
