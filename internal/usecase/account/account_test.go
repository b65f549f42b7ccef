package account

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fixture struct {
	store    *memory.Store
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	register *Register
	login    *Login
	resolve  *ResolvePrincipal
}

func newFixture() *fixture {
	store := memory.NewStore()
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return &fixture{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		register: NewRegister(store, hasher, tokens, audit.Nop{}, nil),
		login:    NewLogin(store, hasher, tokens),
		resolve:  NewResolvePrincipal(store, tokens),
	}
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	s, err := f.register.Execute(ctx, RegisterInput{
		Name: "Umut", Surname: "Kaya", Email: "  Umut@Example.COM ", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if s.User.Email != "umut@example.com" || s.User.IsAdmin || s.Token == "" {
		t.Fatalf("unexpected session: %+v", s.User)
	}

	_, err = f.register.Execute(ctx, RegisterInput{Name: "X", Surname: "Y", Email: "umut@example.com", Password: "secret1"})
	expectCode(t, err, "email_taken")

	logged, err := f.login.Execute(ctx, "UMUT@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	p, err := f.resolve.Execute(ctx, logged.Token)
	if err != nil || p.UserID != s.User.ID {
		t.Fatalf("resolve: %v %+v", err, p)
	}

	_, err = f.login.Execute(ctx, "umut@example.com", "wrong")
	expectCode(t, err, "invalid_credentials")
	_, err = f.login.Execute(ctx, "nobody@example.com", "secret1")
	expectCode(t, err, "invalid_credentials")
}

func TestRegisterChecksEmailDomain(t *testing.T) {
	f := newFixture()
	reg := NewRegister(f.store, f.hasher, f.tokens, audit.Nop{}, func(string) bool { return false })

	_, err := reg.Execute(context.Background(), RegisterInput{Name: "A", Surname: "B", Email: "a@nowhere.invalid", Password: "secret1"})
	expectCode(t, err, "invalid_email_domain")
}

func TestResolvePrincipalReadsCurrentRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	s, _ := f.register.Execute(ctx, RegisterInput{Name: "A", Surname: "B", Email: "a@example.com", Password: "secret1"})
	if _, err := f.store.UpdateUserAdmin(ctx, s.User.ID, true); err != nil {
		t.Fatal(err)
	}

	p, err := f.resolve.Execute(ctx, s.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !p.IsAdmin {
		t.Fatal("principal should reflect stored admin flag, not the token claim")
	}

	if err := f.store.DeleteUser(ctx, s.User.ID); err != nil {
		t.Fatal(err)
	}
	_, err = f.resolve.Execute(ctx, s.Token)
	expectCode(t, err, "unauthorized")

	_, err = f.resolve.Execute(ctx, "garbage")
	expectCode(t, err, "unauthorized")
}

func seedUsers(t *testing.T, f *fixture) (admin, user *identity.Principal) {
	t.Helper()
	ctx := context.Background()
	a := &models.User{Name: "Ada", Surname: "Admin", Email: "ada@example.com", IsAdmin: true}
	u := &models.User{Name: "Umut", Surname: "Kaya", Email: "umut@example.com"}
	for _, m := range []*models.User{a, u} {
		if err := f.store.CreateUser(ctx, m); err != nil {
			t.Fatal(err)
		}
	}
	return PrincipalOf(a), PrincipalOf(u)
}

func TestChangeRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin, user := seedUsers(t, f)
	uc := NewChangeRole(f.store, audit.Nop{}, zap.NewNop())

	yes, no := true, false

	// self-target fails whatever the payload
	for _, payload := range []*bool{&yes, &no, nil} {
		_, err := uc.Execute(ctx, admin, admin.UserID, payload)
		expectCode(t, err, "self_role_change")
		if httperr.KindOf(err) != httperr.KindForbidden {
			t.Fatalf("self change must be an auth failure, got %v", err)
		}
	}

	_, err := uc.Execute(ctx, user, admin.UserID, &no)
	expectCode(t, err, "forbidden")

	_, err = uc.Execute(ctx, admin, user.UserID, nil)
	expectCode(t, err, "invalid_is_admin")

	_, err = uc.Execute(ctx, admin, 999, &yes)
	expectCode(t, err, "user_not_found")

	updated, err := uc.Execute(ctx, admin, user.UserID, &yes)
	if err != nil || !updated.IsAdmin {
		t.Fatalf("promote: %v %+v", err, updated)
	}
}

func TestDeleteUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin, user := seedUsers(t, f)
	uc := NewDeleteUser(f.store, audit.Nop{}, zap.NewNop())

	expectCode(t, uc.Execute(ctx, admin, admin.UserID), "self_delete")
	expectCode(t, uc.Execute(ctx, user, admin.UserID), "forbidden")
	expectCode(t, uc.Execute(ctx, nil, user.UserID), "unauthorized")

	if err := uc.Execute(ctx, admin, user.UserID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectCode(t, uc.Execute(ctx, admin, user.UserID), "user_not_found")

	list, err := NewListUsers(f.store).Execute(ctx, admin)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected only admin left: %v %d", err, len(list))
	}
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := EnsureAdmin(ctx, f.store, f.hasher, "Boss@Example.com", "rootpass")
	if err != nil || !created.IsAdmin || created.Email != "boss@example.com" {
		t.Fatalf("seed: %v %+v", err, created)
	}

	again, err := EnsureAdmin(ctx, f.store, f.hasher, "boss@example.com", "other")
	if err != nil || again.ID != created.ID {
		t.Fatalf("seed should be idempotent: %v", err)
	}

	if _, err := f.login.Execute(ctx, "boss@example.com", "rootpass"); err != nil {
		t.Fatalf("original password should still work: %v", err)
	}

	s, _ := f.register.Execute(ctx, RegisterInput{Name: "A", Surname: "B", Email: "late@example.com", Password: "secret1"})
	promoted, err := EnsureAdmin(ctx, f.store, f.hasher, "late@example.com", "ignored")
	if err != nil || promoted.ID != s.User.ID || !promoted.IsAdmin {
		t.Fatalf("existing account should be promoted: %v %+v", err, promoted)
	}
}
