package account

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// LIST
// ======================================================

type ListUsers struct {
	users domain.Repository
}

func NewListUsers(users domain.Repository) *ListUsers {
	return &ListUsers{users: users}
}

func (uc *ListUsers) Execute(ctx context.Context, caller *identity.Principal) ([]models.User, error) {
	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return uc.users.ListUsers(ctx)
}

// ======================================================
// CHANGE ROLE
// ======================================================

type ChangeRole struct {
	users domain.Repository
	audit audit.Recorder
	log   *zap.Logger
}

func NewChangeRole(users domain.Repository, audit audit.Recorder, log *zap.Logger) *ChangeRole {
	return &ChangeRole{users: users, audit: audit, log: log}
}

// Execute rejects a self-target before looking at the payload, so an admin
// can never change their own flag whatever they send.
func (uc *ChangeRole) Execute(
	ctx context.Context,
	caller *identity.Principal,
	userID uint,
	isAdmin *bool,
) (*models.User, error) {

	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if caller.UserID == userID {
		return nil, httperr.ErrForbidden("self_role_change")
	}
	if isAdmin == nil {
		return nil, httperr.ErrValidation("invalid_is_admin")
	}

	user, err := uc.users.UpdateUserAdmin(ctx, userID, *isAdmin)
	if err != nil {
		return nil, err
	}

	uc.log.Info("user role changed",
		zap.Uint("user_id", userID),
		zap.Uint("caller_id", caller.UserID),
		zap.Bool("is_admin", *isAdmin),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "user_role_changed",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"is_admin": *isAdmin},
	})

	return user, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteUser struct {
	users domain.Repository
	audit audit.Recorder
	log   *zap.Logger
}

func NewDeleteUser(users domain.Repository, audit audit.Recorder, log *zap.Logger) *DeleteUser {
	return &DeleteUser{users: users, audit: audit, log: log}
}

func (uc *DeleteUser) Execute(ctx context.Context, caller *identity.Principal, userID uint) error {
	if err := identity.RequireAdmin(caller); err != nil {
		return err
	}
	if caller.UserID == userID {
		return httperr.ErrForbidden("self_delete")
	}

	if err := uc.users.DeleteUser(ctx, userID); err != nil {
		return err
	}

	uc.log.Info("user deleted",
		zap.Uint("user_id", userID),
		zap.Uint("caller_id", caller.UserID),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &userID,
	})
	return nil
}
