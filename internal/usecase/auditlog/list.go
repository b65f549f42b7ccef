package auditlog

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type ListInput struct {
	Filter audit.Filter
	Page   int
}

type Page struct {
	Page  int
	Limit int
	Total int64
	Logs  []models.AuditLog
}

type ListAuditLogs struct {
	logger *audit.Logger
}

func NewListAuditLogs(logger *audit.Logger) *ListAuditLogs {
	return &ListAuditLogs{logger: logger}
}

func (uc *ListAuditLogs) Execute(
	ctx context.Context,
	caller *identity.Principal,
	in ListInput,
) (*Page, error) {

	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}

	page := in.Page
	if page <= 0 {
		page = 1
	}
	f := in.Filter
	if f.Limit <= 0 || f.Limit > MaxLimit {
		f.Limit = DefaultLimit
	}
	f.Offset = (page - 1) * f.Limit

	logs, total, err := uc.logger.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &Page{Page: page, Limit: f.Limit, Total: total, Logs: logs}, nil
}
