package controller

import (
	"errors"
	"fmt"
	"net/http"

	"paperbot-go/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyzeController handles the analysis HTTP endpoints
type AnalyzeController struct {
	analyzer *service.Analyzer
	logger   *zap.Logger
}

// NewAnalyzeController creates a new analyze controller
func NewAnalyzeController(analyzer *service.Analyzer, logger *zap.Logger) *AnalyzeController {
	return &AnalyzeController{
		analyzer: analyzer,
		logger:   logger,
	}
}

// AnalyzeRequest is the request body for source analysis
type AnalyzeRequest struct {
	Source   string `json:"source" binding:"required"`
	Language string `json:"language"` // default: "python"
}

// Analyze handles POST /api/v1/analyze
func (ac *AnalyzeController) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Language == "" {
		req.Language = "python"
	}

	ac.logger.Info("Analyzing source",
		zap.String("language", req.Language),
		zap.Int("bytes", len(req.Source)))

	rep, err := ac.analyzer.Analyze(c.Request.Context(), []byte(req.Source), req.Language)
	if err != nil {
		var malformed *service.MalformedSourceError
		if errors.As(err, &malformed) {
			// surface the parse error verbatim, emit no partial report
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  malformed.Error(),
				"line":   malformed.Line,
				"column": malformed.Column,
			})
			return
		}
		ac.logger.Error("Analysis failed",
			zap.String("language", req.Language),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Analysis failed: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, rep)
}

// Languages handles GET /api/v1/languages
func (ac *AnalyzeController) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": ac.analyzer.Languages(),
	})
}

// Probes handles GET /api/v1/probes
func (ac *AnalyzeController) Probes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"probes": ac.analyzer.ProbeNames(),
	})
}
