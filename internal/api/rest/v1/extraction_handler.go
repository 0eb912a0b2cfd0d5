package v1

import (
	"fmt"
	"net/http"

	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/infrastructure/auth"
	"subsidy_pilot_service/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// ExtractionHandler defines the interface for handling extraction job and
// review operations
type ExtractionHandler interface {
	StartJob(ctx *gin.Context)
	ProcessJob(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	SubmitReview(ctx *gin.Context)
	ListReviews(ctx *gin.Context)
}

// extractionHandler struct holds the services
type extractionHandler struct {
	extractionService extraction.ExtractionService
	reviewService     reviews.ReviewService
}

// NewExtractionHandler creates a new ExtractionHandler
func NewExtractionHandler(extractionService extraction.ExtractionService, reviewService reviews.ReviewService) ExtractionHandler {
	return &extractionHandler{
		extractionService: extractionService,
		reviewService:     reviewService,
	}
}

func toExtractionJobResponse(job *extraction.ExtractionJob) ExtractionJobResponse {
	return ExtractionJobResponse{
		ID:           job.ID,
		DocumentID:   job.DocumentID,
		Status:       job.Status,
		Fields:       job.Fields,
		Confidence:   job.Confidence,
		NeedsReview:  job.NeedsReview,
		ModelName:    job.ModelName,
		ErrorMessage: job.ErrorMessage,
		Reviewed:     job.Reviewed,
		StartedAt:    job.StartedAt,
		FinishedAt:   job.FinishedAt,
	}
}

func toReviewResponse(review *reviews.ExtractionReview) ReviewResponse {
	return ReviewResponse{
		ID:             review.ID,
		ExtractionID:   review.ExtractionID,
		ReviewerUserID: review.ReviewerUserID,
		FieldName:      review.FieldName,
		OriginalValue:  review.OriginalValue,
		CorrectedValue: review.CorrectedValue,
		Accepted:       review.Accepted,
		ReviewedAt:     review.ReviewedAt,
	}
}

// StartJob creates a pending extraction job for a document
func (handler *extractionHandler) StartJob(ctx *gin.Context) {
	documentID := ctx.Param("id")

	job, err := handler.extractionService.StartJob(ctx, documentID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error starting extraction for document with id %s: %v", documentID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, toExtractionJobResponse(job))
}

// ProcessJob runs OCR and field extraction for a pending job
func (handler *extractionHandler) ProcessJob(ctx *gin.Context) {
	jobID := ctx.Param("id")

	job, err := handler.extractionService.ProcessJob(ctx, jobID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error processing extraction job with id %s: %v", jobID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, toExtractionJobResponse(job))
}

// List fetches extraction jobs optionally with query parameters
func (handler *extractionHandler) List(ctx *gin.Context) {
	query := extraction.NewExtractionJobQuery()

	if documentID := ctx.Query("documentId"); len(documentID) > 0 {
		query.DocumentID = documentID
	}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}

	if needsReview := ctx.Query("needsReview"); len(needsReview) > 0 {
		value := needsReview == "true"
		query.NeedsReview = &value
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("validation failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	jobs, err := handler.extractionService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []ExtractionJobResponse{}
	for _, job := range jobs {
		listResponse = append(listResponse, toExtractionJobResponse(job))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID fetches an extraction job by ID
func (handler *extractionHandler) GetByID(ctx *gin.Context) {
	jobID := ctx.Param("id")

	job, err := handler.extractionService.GetByID(ctx, jobID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("extraction job with id %s not found", jobID)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, toExtractionJobResponse(job))
}

// SubmitReview stores a human correction for an extraction job
func (handler *extractionHandler) SubmitReview(ctx *gin.Context) {
	extractionID := ctx.Param("id")

	var request ReviewRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("invalid review request: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	review := &reviews.ExtractionReview{
		ExtractionID:   extractionID,
		ReviewerUserID: auth.UserIDFromContext(ctx),
		FieldName:      request.FieldName,
		OriginalValue:  request.OriginalValue,
		CorrectedValue: request.CorrectedValue,
		Accepted:       request.Accepted,
	}

	stored, err := handler.reviewService.SubmitReview(ctx, review)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error submitting review: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, toReviewResponse(stored))
}

// ListReviews fetches all reviews of an extraction job
func (handler *extractionHandler) ListReviews(ctx *gin.Context) {
	extractionID := ctx.Param("id")

	list, err := handler.reviewService.ListByExtraction(ctx, extractionID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []ReviewResponse{}
	for _, review := range list {
		listResponse = append(listResponse, toReviewResponse(review))
	}

	ctx.JSON(http.StatusOK, listResponse)
}
