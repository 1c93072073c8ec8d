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

// settlementHandler handles HTTP requests for settlements.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := &settlementHandler{settlementService: settlementService}

	rg.POST("/groups/:groupID/settlements", h.createSettlement)
	rg.GET("/groups/:groupID/settlements", h.listGroupSettlements)
	rg.GET("/settlements/:settlementID", h.getSettlementByID)
}

// createSettlement godoc
// @Summary Record a settlement
// @Description Records a payment from the caller to another member and marks
// @Description the covered expense splits as paid.
// @Tags settlements
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID"
// @Param settlement body dto.CreateSettlementRequest true "Settlement details"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/settlements [post]
func (h *settlementHandler) createSettlement(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	settlement, err := h.settlementService.CreateSettlement(c.Request.Context(), c.Param("groupID"), req, userID)
	if err != nil {
		h.respondSettlementError(c, err, "Failed to record settlement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}

// listGroupSettlements godoc
// @Summary List group settlements
// @Tags settlements
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {array} dto.SettlementResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/settlements [get]
func (h *settlementHandler) listGroupSettlements(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settlements, err := h.settlementService.ListGroupSettlements(c.Request.Context(), c.Param("groupID"), userID)
	if err != nil {
		h.respondSettlementError(c, err, "Failed to list settlements")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSettlementResponse(settlements))
}

// getSettlementByID godoc
// @Summary Get a settlement
// @Tags settlements
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /settlements/{settlementID} [get]
func (h *settlementHandler) getSettlementByID(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settlement, err := h.settlementService.GetSettlementByID(c.Request.Context(), c.Param("settlementID"), userID)
	if err != nil {
		h.respondSettlementError(c, err, "Failed to retrieve settlement")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

func (h *settlementHandler) respondSettlementError(c *gin.Context, err error, fallback string) {
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
