package message

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fixture struct {
	store *memory.Store
	post  *PostMessage
	read  *ReadThread
	guest *GuestView

	admin, owner, stranger *identity.Principal
	ap                     *models.Appointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	store.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	read := NewReadThread(store)
	f := &fixture{
		store: store,
		post:  NewPostMessage(store, store, audit.Nop{}, zap.NewNop()),
		read:  read,
		guest: NewGuestView(store, read),
	}

	mk := func(name string, admin bool) *identity.Principal {
		u := &models.User{Name: name, Surname: "Test", Email: name + "@example.com", IsAdmin: admin}
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("user: %v", err)
		}
		return &identity.Principal{UserID: u.ID, Name: u.Name, Surname: u.Surname, IsAdmin: admin}
	}
	f.admin = mk("Ada", true)
	f.owner = mk("Umut", false)
	f.stranger = mk("Selin", false)

	f.ap = &models.Appointment{
		UserID:      f.owner.UserID,
		Description: "Haircut",
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:        "14:00",
	}
	if err := store.CreateAppointment(ctx, f.ap); err != nil {
		t.Fatalf("appointment: %v", err)
	}
	return f
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func (f *fixture) threadLen(t *testing.T) int {
	t.Helper()
	msgs, err := f.read.Execute(context.Background(), f.ap.ID)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return len(msgs)
}

func TestOwnerAndAdminPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	msg, err := f.post.Execute(ctx, f.owner, PostMessageInput{AppointmentID: f.ap.ID, Text: "  Can we do 15:00?  "})
	if err != nil {
		t.Fatalf("owner post: %v", err)
	}
	if msg.Text != "Can we do 15:00?" {
		t.Fatalf("text not trimmed: %q", msg.Text)
	}
	if msg.Sender == nil || msg.Sender.Name != "Umut" || *msg.SenderID != f.owner.UserID {
		t.Fatalf("sender not resolved: %+v", msg.Sender)
	}

	if _, err := f.post.Execute(ctx, f.admin, PostMessageInput{AppointmentID: f.ap.ID, Text: "Sure"}); err != nil {
		t.Fatalf("admin post: %v", err)
	}
	if n := f.threadLen(t); n != 2 {
		t.Fatalf("expected 2 messages, got %d", n)
	}
}

func TestStrangerCannotPost(t *testing.T) {
	f := newFixture(t)

	_, err := f.post.Execute(context.Background(), f.stranger, PostMessageInput{AppointmentID: f.ap.ID, Text: "hi"})
	expectCode(t, err, "forbidden")
	if n := f.threadLen(t); n != 0 {
		t.Fatalf("thread grew to %d", n)
	}
}

func TestPostValidationAndNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.post.Execute(ctx, f.owner, PostMessageInput{AppointmentID: f.ap.ID, Text: " \n\t "})
	expectCode(t, err, "empty_message")

	_, err = f.post.Execute(ctx, f.owner, PostMessageInput{AppointmentID: f.ap.ID, Text: strings.Repeat("a", 2001)})
	expectCode(t, err, "message_too_long")

	_, err = f.post.Execute(ctx, f.owner, PostMessageInput{AppointmentID: 999, Text: "hi"})
	expectCode(t, err, "appointment_not_found")
}

func TestGuestPostWithToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.post.Execute(ctx, f.owner, PostMessageInput{AppointmentID: f.ap.ID, Text: "first"}); err != nil {
		t.Fatal(err)
	}

	msg, err := f.post.Execute(ctx, nil, PostMessageInput{GuestToken: f.ap.GuestToken, Text: "from the link"})
	if err != nil {
		t.Fatalf("guest post: %v", err)
	}
	if msg.SenderID != nil || msg.Sender != nil {
		t.Fatalf("guest message must have no sender: %+v", msg)
	}

	msgs, _ := f.read.Execute(ctx, f.ap.ID)
	last := msgs[len(msgs)-1]
	if last.ID != msg.ID || last.Text != "from the link" || last.Sender != nil {
		t.Fatalf("guest message not at tail: %+v", last)
	}
}

func TestGuestPostRejectsNumericIDAndUnknownToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.post.Execute(ctx, nil, PostMessageInput{GuestToken: strconv.Itoa(int(f.ap.ID)), Text: "hi"})
	expectCode(t, err, "unauthorized")

	_, err = f.post.Execute(ctx, nil, PostMessageInput{AppointmentID: f.ap.ID, Text: "hi"})
	expectCode(t, err, "unauthorized")

	_, err = f.post.Execute(ctx, nil, PostMessageInput{GuestToken: "00000000-0000-4000-8000-000000000000", Text: "hi"})
	expectCode(t, err, "appointment_not_found")

	if n := f.threadLen(t); n != 0 {
		t.Fatalf("rejected guest posts grew thread to %d", n)
	}
}

func TestThreadKeepsPostingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 12
	for i := 0; i < n; i++ {
		caller := f.owner
		if i%3 == 1 {
			caller = f.admin
		}
		in := PostMessageInput{AppointmentID: f.ap.ID, Text: fmt.Sprintf("m%d", i)}
		if i%3 == 2 {
			caller = nil
			in.GuestToken = f.ap.GuestToken
		}
		if _, err := f.post.Execute(ctx, caller, in); err != nil {
			t.Fatalf("post %d: %v", i, err)
		}
	}

	msgs, err := f.read.Execute(ctx, f.ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != n {
		t.Fatalf("expected %d, got %d", n, len(msgs))
	}
	for i, m := range msgs {
		if m.Text != fmt.Sprintf("m%d", i) {
			t.Fatalf("position %d holds %q", i, m.Text)
		}
		if i > 0 && m.CreatedAt.Before(msgs[i-1].CreatedAt) {
			t.Fatalf("timestamps out of order at %d", i)
		}
	}
}

func TestGuestView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.post.Execute(ctx, f.admin, PostMessageInput{AppointmentID: f.ap.ID, Text: "approved soon"}); err != nil {
		t.Fatal(err)
	}

	ap, err := f.guest.Execute(ctx, f.ap.GuestToken)
	if err != nil {
		t.Fatalf("guest view: %v", err)
	}
	if ap.ID != f.ap.ID || len(ap.Messages) != 1 || ap.Messages[0].Sender.Name != "Ada" {
		t.Fatalf("unexpected view: %+v", ap)
	}

	_, err = f.guest.Execute(ctx, "1")
	expectCode(t, err, "appointment_not_found")
}
