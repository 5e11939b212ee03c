package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"talentdash/internal/analysis"
	"talentdash/internal/api/middleware"
	"talentdash/internal/auth"
	"talentdash/internal/scan"
	"talentdash/internal/storage"
	"talentdash/internal/store"
	"talentdash/internal/worker"
)

// Deps bundles everything route registration needs. StorageClient and
// AsynqClient are nil in demo mode; the handlers degrade accordingly.
type Deps struct {
	Store                 store.Store
	Users                 UserRepo
	AuthService           *auth.AuthService
	RedisClient           *redis.Client
	Logger                *slog.Logger
	Jitter                analysis.Jitter
	StorageClient         *storage.Client
	Scanner               *scan.Scanner
	AsynqClient           *asynq.Client
	BulkRunner            *worker.BulkAnalyzeHandler
	LoginRateLimitPerHour int
}

// RegisterRoutes registers the API routes without the /api prefix.
func RegisterRoutes(router *gin.Engine, deps Deps) {
	authHandler := NewAuthHandler(deps.Users, deps.AuthService, deps.RedisClient, deps.Logger, deps.LoginRateLimitPerHour)
	jobHandler := NewJobHandler(deps.Store)
	candidateHandler := NewCandidateHandler(deps.Store, deps.StorageClient)
	analysisHandler := NewAnalysisHandler(deps.Store, deps.Jitter, deps.StorageClient, deps.Scanner, deps.AsynqClient, deps.BulkRunner)
	dashboardHandler := NewDashboardHandler(deps.Store)
	settingsHandler := NewSettingsHandler(deps.Store)
	exportHandler := NewExportHandler(deps.Store)
	wsHandler := NewWsHandler(deps.RedisClient, deps.AuthService, deps.Logger)
	authMiddleware := middleware.AuthMiddleware(deps.AuthService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		jobGroup := v1.Group("/jobs")
		jobGroup.Use(authMiddleware)
		{
			jobGroup.GET("", jobHandler.ListJobs)
			jobGroup.POST("", jobHandler.CreateJob)
			jobGroup.PUT("/:id", jobHandler.UpdateJob)
			jobGroup.DELETE("/:id", jobHandler.DeleteJob)
		}

		candidateGroup := v1.Group("/candidates")
		candidateGroup.Use(authMiddleware)
		{
			candidateGroup.GET("", candidateHandler.ListCandidates)
			candidateGroup.POST("", candidateHandler.CreateCandidate)
			candidateGroup.PUT("/:id", candidateHandler.UpdateCandidate)
			candidateGroup.DELETE("/:id", candidateHandler.DeleteCandidate)
			candidateGroup.GET("/:id/resume", candidateHandler.ViewResume)
		}

		analysisGroup := v1.Group("/analysis")
		analysisGroup.Use(authMiddleware)
		{
			analysisGroup.POST("", analysisHandler.Analyze)
			analysisGroup.POST("/export", analysisHandler.ExportAnalysis)
			analysisGroup.POST("/bulk", analysisHandler.AnalyzeBulk)
		}

		dashboardGroup := v1.Group("/dashboard")
		dashboardGroup.Use(authMiddleware)
		{
			dashboardGroup.GET("/stats", dashboardHandler.Stats)
		}

		v1.GET("/activities", authMiddleware, dashboardHandler.Activities)

		settingsGroup := v1.Group("/settings")
		settingsGroup.Use(authMiddleware)
		{
			settingsGroup.GET("", settingsHandler.List)
			settingsGroup.PUT("", settingsHandler.Upsert)
			settingsGroup.POST("/reset", settingsHandler.Reset)
			settingsGroup.GET("/export", settingsHandler.Export)
		}

		exportGroup := v1.Group("/export")
		exportGroup.Use(authMiddleware)
		{
			exportGroup.GET("/candidates.csv", exportHandler.CandidatesCSV)
			exportGroup.GET("/candidates.xlsx", exportHandler.CandidatesXLSX)
			exportGroup.GET("/jobs.csv", exportHandler.JobsCSV)
		}
	}
}
