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

type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := &balanceHandler{balanceService: balanceService}
	rg.GET("/balances/me", h.getMyBalance)
}

// getMyBalance godoc
// @Summary Get the caller's balance summary
// @Description Returns the caller's overall and per-group balances derived
// @Description from shared expenses and settlements. Responds 404 when the
// @Description user has no expense or settlement history at all.
// @Tags balances
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ErrorResponse "No history"
// @Security BearerAuth
// @Router /balances/me [get]
func (h *balanceHandler) getMyBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.balanceService.GetUserBalance(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoData) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No expense or settlement history"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to compute balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(result))
}
