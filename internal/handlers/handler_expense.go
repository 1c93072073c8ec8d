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

// expenseHandler handles HTTP requests for shared expenses and split previews.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := &expenseHandler{expenseService: expenseService}

	rg.POST("/groups/:groupID/expenses", h.createExpense)
	rg.GET("/groups/:groupID/expenses", h.listGroupExpenses)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("/preview", h.previewSplit)
		expenses.GET("/:expenseID", h.getExpenseByID)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}

// createExpense godoc
// @Summary Create a shared expense
// @Description Computes the splits per the chosen strategy and persists the
// @Description expense with them.
// @Tags expenses
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID"
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), c.Param("groupID"), req, userID)
	if err != nil {
		h.respondExpenseError(c, err, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listGroupExpenses godoc
// @Summary List group expenses
// @Description Returns a page of the group's expenses, newest first. Pass the
// @Description returned nextToken to fetch the following page.
// @Tags expenses
// @Produce json
// @Param groupID path string true "Group ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/expenses [get]
func (h *expenseHandler) listGroupExpenses(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, nextToken, err := h.expenseService.ListGroupExpenses(c.Request.Context(), c.Param("groupID"), params, userID)
	if err != nil {
		h.respondExpenseError(c, err, "Failed to list expenses")
		return
	}

	res := dto.ListExpensesResponse{
		Expenses:  make([]dto.ExpenseResponse, len(expenses)),
		NextToken: nextToken,
	}
	for i, e := range expenses {
		res.Expenses[i] = dto.ToExpenseResponse(&e)
	}
	c.JSON(http.StatusOK, res)
}

// previewSplit godoc
// @Summary Preview a split
// @Description Runs the split calculator without persisting anything, so the
// @Description client can show the resulting shares before saving.
// @Tags expenses
// @Accept json
// @Produce json
// @Param preview body dto.PreviewSplitRequest true "Split parameters"
// @Success 200 {object} dto.PreviewSplitResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/preview [post]
func (h *expenseHandler) previewSplit(c *gin.Context) {
	var req dto.PreviewSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	splits, summary, err := h.expenseService.PreviewSplit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to preview split", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to preview split"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPreviewSplitResponse(splits, summary))
}

// getExpenseByID godoc
// @Summary Get an expense
// @Description Returns an expense with its splits; caller must be a member of
// @Description the expense's group.
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpenseByID(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("expenseID"), userID)
	if err != nil {
		h.respondExpenseError(c, err, "Failed to retrieve expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Allowed for the payer, the creator, or a group admin.
// @Tags expenses
// @Param expenseID path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("expenseID"), userID); err != nil {
		h.respondExpenseError(c, err, "Failed to delete expense")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *expenseHandler) respondExpenseError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not allowed"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
