package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
	"github.com/jmwalsh/budgetbook/internal/dto"
	"github.com/jmwalsh/budgetbook/internal/middleware"
)

// fundHandler handles HTTP requests related to savings funds.
type fundHandler struct {
	fundService portssvc.FundSvcFacade
}

// registerFundRoutes registers routes related to funds.
func registerFundRoutes(rg *gin.RouterGroup, fundService portssvc.FundSvcFacade) {
	h := &fundHandler{fundService: fundService}

	funds := rg.Group("/funds")
	{
		funds.GET("", h.listFunds)
		funds.POST("", h.createFund)
		funds.GET("/:id", h.getFund)
		funds.PUT("/:id", h.updateFund)
		funds.DELETE("/:id", h.deleteFund)
		funds.POST("/:id/contribute", h.contribute)
		funds.POST("/:id/withdraw", h.withdraw)
		funds.POST("/refresh", h.refreshBalances)
	}
}

func (h *fundHandler) listFunds(c *gin.Context) {
	funds, err := h.fundService.ListFunds(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFundResponses(funds, time.Now()))
}

func (h *fundHandler) createFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind create fund request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}

	fund, err := h.fundService.CreateFund(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToFundResponse(fund, time.Now()))
}

func (h *fundHandler) getFund(c *gin.Context) {
	fund, err := h.fundService.GetFundByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFundResponse(fund, time.Now()))
}

func (h *fundHandler) updateFund(c *gin.Context) {
	var req dto.UpdateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}

	fund, err := h.fundService.UpdateFund(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFundResponse(fund, time.Now()))
}

func (h *fundHandler) deleteFund(c *gin.Context) {
	if err := h.fundService.DeleteFund(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fund and related records deleted"})
}

func (h *fundHandler) contribute(c *gin.Context) {
	var req dto.FundAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}

	fund, err := h.fundService.Contribute(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFundResponse(fund, time.Now()))
}

func (h *fundHandler) withdraw(c *gin.Context) {
	var req dto.FundAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}

	fund, err := h.fundService.Withdraw(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFundResponse(fund, time.Now()))
}

func (h *fundHandler) refreshBalances(c *gin.Context) {
	if err := h.fundService.RefreshBalances(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fund balances recomputed from the ledger"})
}
