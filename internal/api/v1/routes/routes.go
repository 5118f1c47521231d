package routes

import (
	"github.com/gin-gonic/gin"

	"scamshield/internal/api/v1/handlers"
	"scamshield/internal/app/analyzer"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(rg *gin.RouterGroup, a *analyzer.Analyzer) {
	analysisHandler := handlers.NewAnalysisHandler(a)
	historyHandler := handlers.NewHistoryHandler(a.History(), a.Store())
	enginesHandler := handlers.NewEnginesHandler(a.Orchestrator())

	rg.POST("/analyze", analysisHandler.AnalyzeText)
	rg.POST("/analyze/audio", analysisHandler.AnalyzeAudio)

	rg.GET("/history", historyHandler.Recent)
	rg.GET("/history/archive", historyHandler.Archive)

	rg.GET("/engines", enginesHandler.List)
}
