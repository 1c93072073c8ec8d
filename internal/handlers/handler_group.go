package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spliteasy/spliteasy/internal/apperrors"
	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/dto"
	"github.com/spliteasy/spliteasy/internal/middleware"
)

// groupHandler handles HTTP requests for groups and their members.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

func registerGroupRoutes(rg *gin.RouterGroup, groupService portssvc.GroupSvcFacade) {
	h := &groupHandler{groupService: groupService}

	groups := rg.Group("/groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listGroups)
		groups.GET("/:groupID", h.getGroupByID)
		groups.PATCH("/:groupID", h.updateGroup)
		groups.GET("/:groupID/members", h.listMembers)
		groups.POST("/:groupID/members", h.addMember)
		groups.DELETE("/:groupID/members/:userID", h.removeMember)
	}
}

// createGroup godoc
// @Summary Create a new group
// @Description Creates a group with the caller as its first admin.
// @Tags groups
// @Accept json
// @Produce json
// @Param group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to create group", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// listGroups godoc
// @Summary List the caller's groups
// @Tags groups
// @Produce json
// @Success 200 {array} dto.GroupResponse
// @Security BearerAuth
// @Router /groups [get]
func (h *groupHandler) listGroups(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	groups, err := h.groupService.ListGroups(c.Request.Context(), userID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list groups", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list groups"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListGroupResponse(groups))
}

// getGroupByID godoc
// @Summary Get a group
// @Description Returns a group the caller is a member of.
// @Tags groups
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID} [get]
func (h *groupHandler) getGroupByID(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	group, err := h.groupService.GetGroupByID(c.Request.Context(), c.Param("groupID"), userID)
	if err != nil {
		h.respondGroupError(c, err, "Failed to retrieve group")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// updateGroup godoc
// @Summary Update a group
// @Description Updates name or description; requires the ADMIN role.
// @Tags groups
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID"
// @Param group body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} dto.GroupResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID} [patch]
func (h *groupHandler) updateGroup(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), c.Param("groupID"), req, userID)
	if err != nil {
		h.respondGroupError(c, err, "Failed to update group")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// listMembers godoc
// @Summary List group members
// @Tags groups
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {array} dto.GroupMemberResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/members [get]
func (h *groupHandler) listMembers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.groupService.ListMembers(c.Request.Context(), c.Param("groupID"), userID)
	if err != nil {
		h.respondGroupError(c, err, "Failed to list members")
		return
	}

	c.JSON(http.StatusOK, dto.ToListGroupMemberResponse(members))
}

// addMember godoc
// @Summary Add a group member
// @Description Adds a user to the group; requires the ADMIN role.
// @Tags groups
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID"
// @Param member body dto.AddMemberRequest true "User to add"
// @Success 201 "Created"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already a member"
// @Security BearerAuth
// @Router /groups/{groupID}/members [post]
func (h *groupHandler) addMember(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.groupService.AddMember(c.Request.Context(), c.Param("groupID"), req, userID); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "User is already a member"})
			return
		}
		h.respondGroupError(c, err, "Failed to add member")
		return
	}

	c.Status(http.StatusCreated)
}

// removeMember godoc
// @Summary Remove a group member
// @Description Admins can remove anyone; members can remove themselves.
// @Tags groups
// @Param groupID path string true "Group ID"
// @Param userID path string true "User ID to remove"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/members/{userID} [delete]
func (h *groupHandler) removeMember(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.groupService.RemoveMember(c.Request.Context(), c.Param("groupID"), c.Param("userID"), userID); err != nil {
		h.respondGroupError(c, err, "Failed to remove member")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondGroupError maps service errors to HTTP responses for group routes.
func (h *groupHandler) respondGroupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this group"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
