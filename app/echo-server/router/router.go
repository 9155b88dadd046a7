package router

import (
	"postPilot/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAnalysisRoutes(api *echo.Group, handler *rest.AnalysisHandler) {
	analyses := api.Group("/analyses")

	analyses.POST("", handler.Analyze)
	analyses.POST("/compare", handler.Compare)
	analyses.GET("/:request_id", handler.GetAnalysis)
}

func SetupDraftRoutes(api *echo.Group, handler *rest.DraftHandler) {
	drafts := api.Group("/drafts")

	drafts.GET("", handler.GetAllDrafts)
	drafts.GET("/:id", handler.GetDraftByID)
	drafts.POST("", handler.CreateDraft)
	drafts.PUT("/:id", handler.UpdateDraft)
	drafts.DELETE("/:id", handler.DeleteDraft)
}

func SetupExperimentRoutes(api *echo.Group, handler *rest.ExperimentHandler) {
	experiments := api.Group("/experiments")

	experiments.POST("", handler.CreateRun)
	experiments.POST("/:id/run", handler.ExecuteRun)
	experiments.GET("/:id/stats", handler.Stats)
	experiments.GET("/:id/winner", handler.Winner)
}

func SetupExperimentAdminRoutes(api *echo.Group, handler *rest.ExperimentAdminHandler) {
	admin := api.Group("/admin")

	admin.GET("/experiments/config", handler.GetConfig)
	admin.PUT("/experiments/config", handler.UpsertConfig)
	admin.GET("/personas", handler.ListPersonas)
	admin.POST("/personas", handler.CreatePersona)
}
