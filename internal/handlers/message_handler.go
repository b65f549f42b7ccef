package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucMessage "github.com/BruksfildServices01/barber-booking/internal/usecase/message"
)

type MessageHandler struct {
	post  *ucMessage.PostMessage
	guest *ucMessage.GuestView
	loc   *time.Location
}

func NewMessageHandler(
	post *ucMessage.PostMessage,
	guest *ucMessage.GuestView,
	loc *time.Location,
) *MessageHandler {
	return &MessageHandler{post: post, guest: guest, loc: loc}
}

type PostMessageRequest struct {
	Text string `json:"text"`
}

// Post serves POST /appointments/:id/messages. Signed-in callers address the
// appointment by numeric id; anonymous callers must put the guest token in
// the same path segment.
func (h *MessageHandler) Post(c *gin.Context) {
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", httperr.Message("invalid_request"))
		return
	}

	caller := middleware.Principal(c)
	in := ucMessage.PostMessageInput{Text: req.Text}

	if caller != nil {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			httperr.Respond(c, httperr.ErrValidation("invalid_id"))
			return
		}
		in.AppointmentID = uint(id)
	} else {
		in.GuestToken = c.Param("id")
	}

	h.respondPosted(c, caller != nil, in)
}

// GuestPost serves the private link. It is always anonymous.
func (h *MessageHandler) GuestPost(c *gin.Context) {
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", httperr.Message("invalid_request"))
		return
	}

	h.respondPosted(c, false, ucMessage.PostMessageInput{
		GuestToken: c.Param("token"),
		Text:       req.Text,
	})
}

func (h *MessageHandler) respondPosted(c *gin.Context, authenticated bool, in ucMessage.PostMessageInput) {
	caller := middleware.Principal(c)
	if !authenticated {
		caller = nil
	}

	msg, err := h.post.Execute(c.Request.Context(), caller, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewMessageDTO(msg))
}

func (h *MessageHandler) GuestView(c *gin.Context) {
	ap, err := h.guest.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewGuestAppointmentDTO(ap, h.loc))
}
