package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
)

// reportingHandler serves read-only aggregations over the ledger.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers the summary and export routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	rg.GET("/summary/:yearMonth", h.monthlySummary)
	rg.GET("/export", h.exportCSV)
}

func (h *reportingHandler) monthlySummary(c *gin.Context) {
	summary, err := h.reportingService.MonthlySummary(c.Request.Context(), c.Param("yearMonth"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) exportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportingService.ExportCSV(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
