package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAccount "github.com/BruksfildServices01/barber-booking/internal/usecase/account"
)

type UserHandler struct {
	list   *ucAccount.ListUsers
	role   *ucAccount.ChangeRole
	remove *ucAccount.DeleteUser
}

func NewUserHandler(
	list *ucAccount.ListUsers,
	role *ucAccount.ChangeRole,
	remove *ucAccount.DeleteUser,
) *UserHandler {
	return &UserHandler{list: list, role: role, remove: remove}
}

type ChangeRoleRequest struct {
	IsAdmin *bool `json:"isAdmin"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewUserDTOs(users))
}

// ChangeRole leaves payload checks to the use case, which rejects a
// self-target first.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.IsAdmin = nil
	}

	user, err := h.role.Execute(c.Request.Context(), middleware.Principal(c), id, req.IsAdmin)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewUserDTO(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
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
