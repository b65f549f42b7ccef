package memory

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func mustUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "N", Surname: "S", Email: email}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustAppointment(t *testing.T, s *Store, owner uint) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{UserID: owner, Description: "d", Date: time.Now(), Time: "10:00"}
	if err := s.CreateAppointment(context.Background(), ap); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return ap
}

func TestDeleteUserPolicy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	alice := mustUser(t, s, "alice@example.com")
	bob := mustUser(t, s, "bob@example.com")

	alicesAp := mustAppointment(t, s, alice.ID)
	bobsAp := mustAppointment(t, s, bob.ID)

	_ = s.AppendMessage(ctx, &models.Message{AppointmentID: alicesAp.ID, SenderID: &bob.ID, Text: "on alice"})
	_ = s.AppendMessage(ctx, &models.Message{AppointmentID: bobsAp.ID, SenderID: &alice.ID, Text: "alice on bob"})

	if err := s.DeleteUser(ctx, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.GetAppointment(ctx, alicesAp.ID); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("owned appointment should be gone, got %v", err)
	}
	if msgs, _ := s.ListMessages(ctx, alicesAp.ID); len(msgs) != 0 {
		t.Fatalf("owned thread should be gone, got %d", len(msgs))
	}

	msgs, _ := s.ListMessages(ctx, bobsAp.ID)
	if len(msgs) != 1 || msgs[0].SenderID != nil || msgs[0].Sender != nil {
		t.Fatalf("message on other appointment should keep a null sender: %+v", msgs)
	}
}

func TestThreadTieBreaksByID(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })
	ctx := context.Background()

	u := mustUser(t, s, "u@example.com")
	ap := mustAppointment(t, s, u.ID)
	for _, txt := range []string{"a", "b", "c"} {
		_ = s.AppendMessage(ctx, &models.Message{AppointmentID: ap.ID, Text: txt})
	}

	msgs, _ := s.ListMessages(ctx, ap.ID)
	if len(msgs) != 3 || msgs[0].Text != "a" || msgs[2].Text != "c" {
		t.Fatalf("unexpected order: %+v", msgs)
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := mustUser(t, s, "u@example.com")
	ap := mustAppointment(t, s, u.ID)

	got, _ := s.GetAppointment(ctx, ap.ID)
	got.Status = 2

	again, _ := s.GetAppointment(ctx, ap.ID)
	if again.Status != 0 {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestAuditFilterAndPaging(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, action := range []string{"a", "b", "a", "a"} {
		_ = s.SaveAuditLog(ctx, &models.AuditLog{Action: action, Entity: "appointment"})
	}

	logs, total, _ := s.ListAuditLogs(ctx, audit.Filter{Action: "a", Limit: 2})
	if total != 3 || len(logs) != 2 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(logs), total)
	}
	if logs[0].ID != 4 {
		t.Fatalf("expected newest first, got id %d", logs[0].ID)
	}

	logs, _, _ = s.ListAuditLogs(ctx, audit.Filter{Action: "a", Limit: 2, Offset: 2})
	if len(logs) != 1 || logs[0].ID != 1 {
		t.Fatalf("unexpected second page: %+v", logs)
	}
}

func TestDuplicateEmail(t *testing.T) {
	s := NewStore()
	mustUser(t, s, "dup@example.com")

	err := s.CreateUser(context.Background(), &models.User{Email: "DUP@example.com"})
	if !httperr.IsBusiness(err, "email_taken") {
		t.Fatalf("expected email_taken, got %v", err)
	}
}
