package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
	"github.com/jmwalsh/budgetbook/internal/dto"
	"github.com/jmwalsh/budgetbook/internal/middleware"
)

// importHandler handles statement uploads and the keyword table.
type importHandler struct {
	importService portssvc.ImportSvcFacade
	categorizer   portssvc.CategorizerSvcFacade
}

// registerImportRoutes registers the statement import and keyword routes.
func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvcFacade, categorizer portssvc.CategorizerSvcFacade) {
	h := &importHandler{importService: importService, categorizer: categorizer}

	rg.POST("/import", h.importStatement)

	keywords := rg.Group("/category-keywords")
	{
		keywords.GET("", h.listKeywords)
		keywords.POST("", h.addKeyword)
	}
}

func (h *importHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload: " + err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Warn("failed to open uploaded statement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	summary, err := h.importService.ImportCSV(c.Request.Context(), file)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("statement imported",
		slog.String("filename", fileHeader.Filename),
		slog.Int("created", summary.Created),
		slog.Int("unresolvedMerchants", len(summary.UnresolvedMerchants)))
	c.JSON(http.StatusOK, summary)
}

func (h *importHandler) listKeywords(c *gin.Context) {
	mappings, err := h.categorizer.ListKeywords(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]dto.KeywordResponse, len(mappings))
	for i, m := range mappings {
		responses[i] = dto.KeywordResponse{Keyword: m.Keyword, Category: m.Category}
	}
	c.JSON(http.StatusOK, responses)
}

func (h *importHandler) addKeyword(c *gin.Context) {
	var req dto.AddKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}

	if err := h.categorizer.AddKeyword(c.Request.Context(), req.Keyword, req.Category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "keyword added"})
}
