package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
	"github.com/jmwalsh/budgetbook/internal/dto"
)

// budgetHandler handles HTTP requests related to monthly budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: budgetService}

	budgets := rg.Group("/budgets")
	{
		budgets.GET("/:yearMonth", h.getMonthBudget)
		budgets.PUT("/:yearMonth", h.updateMonthBudget)
		budgets.GET("/:yearMonth/comparison", h.comparison)
	}
}

func (h *budgetHandler) getMonthBudget(c *gin.Context) {
	items, err := h.budgetService.GetMonthBudget(c.Request.Context(), c.Param("yearMonth"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *budgetHandler) updateMonthBudget(c *gin.Context) {
	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}

	if err := h.budgetService.UpdateMonthBudget(c.Request.Context(), c.Param("yearMonth"), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "budget updated"})
}

func (h *budgetHandler) comparison(c *gin.Context) {
	rows, err := h.budgetService.Comparison(c.Request.Context(), c.Param("yearMonth"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
