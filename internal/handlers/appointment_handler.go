package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.CreateAppointment
	list     *ucAppointment.ListAppointments
	get      *ucAppointment.GetAppointment
	status   *ucAppointment.ChangeStatus
	remove   *ucAppointment.DeleteAppointment
	attach   *ucAppointment.AttachPhoto
	photoURL *ucAppointment.PhotoURL

	loc *time.Location
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	status *ucAppointment.ChangeStatus,
	remove *ucAppointment.DeleteAppointment,
	attach *ucAppointment.AttachPhoto,
	photoURL *ucAppointment.PhotoURL,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		list:     list,
		get:      get,
		status:   status,
		remove:   remove,
		attach:   attach,
		photoURL: photoURL,
		loc:      loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Fields are checked by the use case so missing values map to
// missing_fields rather than a generic binding error.
type CreateAppointmentRequest struct {
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	OwnerID     *uint  `json:"ownerId"`
}

type ChangeStatusRequest struct {
	Status *int `json:"status"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewAppointmentDTOs(list, h.loc))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentDTO(ap, h.loc))
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", httperr.Message("invalid_request"))
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.Principal(c), ucAppointment.CreateAppointmentInput{
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewAppointmentDTO(ap, h.loc))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		httperr.Respond(c, httperr.ErrValidation("invalid_status"))
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), middleware.Principal(c), id, *req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentDTO(ap, h.loc))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.Principal(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// PHOTO
// ======================================================

func (h *AppointmentHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxPhotoBytes+1<<20)

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.Respond(c, httperr.ErrValidation("invalid_photo"))
		return
	}
	if fh.Size > media.MaxPhotoBytes {
		httperr.Respond(c, httperr.ErrValidation("photo_too_large"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, httperr.ErrValidation("invalid_photo"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, media.MaxPhotoBytes+1))
	if err != nil {
		httperr.Respond(c, httperr.ErrValidation("invalid_photo"))
		return
	}

	if err := h.attach.Execute(c.Request.Context(), middleware.Principal(c), id, data); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *AppointmentHandler) PhotoURL(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	url, exp, err := h.photoURL.Execute(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{
		"url":        url,
		"expires_at": exp,
	})
}
