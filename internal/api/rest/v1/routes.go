package v1

import (
	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/domain/training"
	"subsidy_pilot_service/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1. Every route except
// token issuance requires a bearer token.
func SetupRoutes(r *gin.Engine,
	tokenIssuer *auth.TokenIssuer,
	farmService farms.FarmService,
	documentUploadService documents.DocumentUploadService,
	documentMetadataService documents.DocumentMetadataService,
	documentDownloadService documents.DocumentDownloadService,
	extractionService extraction.ExtractionService,
	reviewService reviews.ReviewService,
	subsidyService subsidies.SubsidyService,
	applicationService subsidies.ApplicationService,
	exportService training.ExportService,
	auditService audit.AuditService) {

	v1 := r.Group(BasePath) // lookup in version file

	// Auth Routes
	authHandler := NewAuthHandler(tokenIssuer, auditService)
	v1.POST("/auth/token", authHandler.IssueToken)

	protected := v1.Group("", tokenIssuer.Middleware())

	// Farm Routes
	farmHandler := NewFarmHandler(farmService)
	protected.POST("/farms", farmHandler.Create)
	protected.GET("/farms", farmHandler.List)
	protected.GET("/farms/:id", farmHandler.GetByID)
	protected.PUT("/farms/:id", farmHandler.UpdateByID)
	protected.DELETE("/farms/:id", farmHandler.DeleteByID)

	// Document Routes
	documentHandler := NewDocumentHandler(documentUploadService, documentMetadataService, documentDownloadService)
	protected.POST("/documents", documentHandler.Upload)
	protected.GET("/documents", documentHandler.ListMetadata)
	protected.GET("/documents/:id", documentHandler.GetMetadataByID)
	protected.GET("/documents/:id/file", documentHandler.DownloadByID)
	protected.DELETE("/documents/:id", documentHandler.DeleteByID)

	// Extraction and Review Routes
	extractionHandler := NewExtractionHandler(extractionService, reviewService)
	protected.POST("/documents/:id/extractions", extractionHandler.StartJob)
	protected.POST("/extractions/:id/process", extractionHandler.ProcessJob)
	protected.GET("/extractions", extractionHandler.List)
	protected.GET("/extractions/:id", extractionHandler.GetByID)
	protected.POST("/extractions/:id/reviews", extractionHandler.SubmitReview)
	protected.GET("/extractions/:id/reviews", extractionHandler.ListReviews)

	// Subsidy and Application Routes
	subsidyHandler := NewSubsidyHandler(subsidyService, applicationService)
	protected.GET("/subsidies", subsidyHandler.List)
	protected.GET("/subsidies/:id", subsidyHandler.GetByID)
	protected.GET("/farms/:id/matches", subsidyHandler.MatchesForFarm)
	protected.GET("/farms/:id/applications", subsidyHandler.ListApplicationsByFarm)
	protected.POST("/applications", subsidyHandler.CreateApplication)
	protected.PUT("/applications/:id/status", subsidyHandler.TransitionApplication)

	// Training Routes
	trainingHandler := NewTrainingHandler(exportService)
	protected.POST("/training/exports", trainingHandler.Export)
	protected.GET("/training/jobs", trainingHandler.ListJobs)
	protected.GET("/training/jobs/:id", trainingHandler.GetJobByID)
	protected.PUT("/training/jobs/:id/status", trainingHandler.AdvanceJob)
	protected.GET("/training/deployments", trainingHandler.ListDeployments)
	protected.PUT("/training/deployments/:id/activate", trainingHandler.ActivateDeployment)

	// Audit Routes
	auditHandler := NewAuditHandler(auditService)
	protected.GET("/audit/events", auditHandler.List)
}
