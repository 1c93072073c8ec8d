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

// budgetHandler handles HTTP requests for monthly category budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: budgetService}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:budgetID", h.getBudgetStatus)
		budgets.PATCH("/:budgetID", h.updateBudget)
		budgets.DELETE("/:budgetID", h.deleteBudget)
	}
}

// createBudget godoc
// @Summary Create a budget
// @Description Creates a monthly spending limit for a category.
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Budget already exists for this category and month"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Budget already exists for this category and month"})
			return
		}
		h.respondBudgetError(c, err, "Failed to create budget")
		return
	}

	// Fresh budgets report their status against any spend already recorded
	// in the month.
	status, err := h.budgetService.GetBudgetStatus(c.Request.Context(), budget.BudgetID, userID)
	if err != nil {
		h.respondBudgetError(c, err, "Failed to create budget")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetResponse(status))
}

// listBudgets godoc
// @Summary List the caller's budgets
// @Description Returns budgets with their current spend; filter by month with
// @Description the "YYYY-MM" query parameter.
// @Tags budgets
// @Produce json
// @Param month query string false "Month filter (YYYY-MM)"
// @Success 200 {array} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	statuses, err := h.budgetService.ListBudgets(c.Request.Context(), userID, params.Month)
	if err != nil {
		h.respondBudgetError(c, err, "Failed to list budgets")
		return
	}

	res := make([]dto.BudgetResponse, len(statuses))
	for i, s := range statuses {
		res[i] = dto.ToBudgetResponse(&s)
	}
	c.JSON(http.StatusOK, res)
}

// getBudgetStatus godoc
// @Summary Get a budget with its status
// @Tags budgets
// @Produce json
// @Param budgetID path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets/{budgetID} [get]
func (h *budgetHandler) getBudgetStatus(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	status, err := h.budgetService.GetBudgetStatus(c.Request.Context(), c.Param("budgetID"), userID)
	if err != nil {
		h.respondBudgetError(c, err, "Failed to retrieve budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(status))
}

// updateBudget godoc
// @Summary Update a budget
// @Description Updates the spending limit of a budget the caller owns.
// @Tags budgets
// @Accept json
// @Produce json
// @Param budgetID path string true "Budget ID"
// @Param budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets/{budgetID} [patch]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), c.Param("budgetID"), req, userID)
	if err != nil {
		h.respondBudgetError(c, err, "Failed to update budget")
		return
	}

	status, err := h.budgetService.GetBudgetStatus(c.Request.Context(), budget.BudgetID, userID)
	if err != nil {
		h.respondBudgetError(c, err, "Failed to update budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(status))
}

// deleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Param budgetID path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets/{budgetID} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), c.Param("budgetID"), userID); err != nil {
		h.respondBudgetError(c, err, "Failed to delete budget")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *budgetHandler) respondBudgetError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not your budget"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
