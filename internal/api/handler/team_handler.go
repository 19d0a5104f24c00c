package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

// TeamHandler handles team membership management.
type TeamHandler struct {
	service ports.TeamService
}

func NewTeamHandler(service ports.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

type addMemberRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Username string `json:"username"  validate:"required"`
	Password string `json:"password"  validate:"required,min=8"`
	Role     string `json:"role"      validate:"required,oneof=manager member"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=manager member"`
}

type memberListResponse struct {
	Items []domain.User `json:"items"`
}

// ListMembers handles GET /v1/team/members.
//
// @Summary      List team members
// @Tags         team
// @Produce      json
// @Security     SessionAuth
// @Param        include_inactive  query     bool  false  "Include deactivated accounts (managers only)"
// @Success      200               {object}  memberListResponse
// @Router       /v1/team/members [get]
func (h *TeamHandler) ListMembers(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	includeInactive := c.QueryParam("include_inactive") == "true"
	members, err := h.service.ListMembers(c.Request().Context(), actor, includeInactive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, memberListResponse{Items: members})
}

// AddMember handles POST /v1/team/members. Manager-only.
//
// @Summary      Add a team member account
// @Tags         team
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      addMemberRequest  true  "New member details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/team/members [post]
func (h *TeamHandler) AddMember(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.AddMember(c.Request().Context(), actor, ports.AddMemberInput{
		FullName: req.FullName,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// RemoveMember handles DELETE /v1/team/members/:id. Soft-deactivation;
// the member's tasks and notes stay in place.
//
// @Summary      Deactivate a team member
// @Tags         team
// @Produce      json
// @Security     SessionAuth
// @Param        id   path  int  true  "User id"
// @Success      204  "member deactivated"
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/team/members/{id} [delete]
func (h *TeamHandler) RemoveMember(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.RemoveMember(c.Request().Context(), actor, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeRole handles POST /v1/team/members/:id/role. Manager-only.
//
// @Summary      Change a member's role
// @Tags         team
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/team/members/{id}/role [post]
func (h *TeamHandler) ChangeRole(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.ChangeRole(c.Request().Context(), actor, userID, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
