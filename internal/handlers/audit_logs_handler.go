package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/auditlog"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	list *auditlog.ListAuditLogs
}

func NewAuditLogsHandler(list *auditlog.ListAuditLogs) *AuditLogsHandler {
	return &AuditLogsHandler{list: list}
}

type AuditLogsQuery struct {
	Action string `form:"action" binding:"omitempty,max=50"`
	Entity string `form:"entity" binding:"omitempty,max=50"`
	From   string `form:"from" binding:"omitempty,ymd"`
	To     string `form:"to" binding:"omitempty,ymd"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	var q AuditLogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "invalid_request", httperr.Message("invalid_request"))
		return
	}

	f := audit.Filter{
		Action: q.Action,
		Entity: q.Entity,
		Limit:  q.Limit,
	}
	if q.From != "" {
		from, _ := time.Parse("2006-01-02", q.From)
		f.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse("2006-01-02", q.To)
		f.To = &to
	}

	page, err := h.list.Execute(c.Request.Context(), middleware.Principal(c), auditlog.ListInput{
		Filter: f,
		Page:   q.Page,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  page.Page,
		"limit": page.Limit,
		"total": page.Total,
		"logs":  page.Logs,
	})
}
