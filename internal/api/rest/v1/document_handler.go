package v1

import (
	"fmt"
	"net/http"
	"time"

	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/infrastructure/auth"
	"subsidy_pilot_service/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// DocumentHandler defines the interface for handling document operations
type DocumentHandler interface {
	Upload(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// documentHandler struct holds the services
type documentHandler struct {
	documentUploadService   documents.DocumentUploadService
	documentMetadataService documents.DocumentMetadataService
	documentDownloadService documents.DocumentDownloadService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(
	documentUploadService documents.DocumentUploadService,
	documentMetadataService documents.DocumentMetadataService,
	documentDownloadService documents.DocumentDownloadService,
) DocumentHandler {
	return &documentHandler{
		documentUploadService:   documentUploadService,
		documentMetadataService: documentMetadataService,
		documentDownloadService: documentDownloadService,
	}
}

func toDocumentMetaResponse(doc *documents.DocumentMeta) DocumentMetaResponse {
	return DocumentMetaResponse{
		ID:               doc.ID,
		FarmID:           doc.FarmID,
		UserID:           doc.UserID,
		Name:             doc.Name,
		Size:             doc.Size,
		ContentType:      doc.ContentType,
		Checksum:         doc.Checksum,
		ScanStatus:       doc.ScanStatus,
		ExtractionStatus: doc.ExtractionStatus,
		DateTimeCreated:  doc.DateTimeCreated,
	}
}

// Upload scans and uploads documents for a farm
func (handler *documentHandler) Upload(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := "invalid form data"
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var farmID string
	if farmIDs := form.Value["farm_id"]; len(farmIDs) > 0 {
		farmID = farmIDs[0]
	}
	if farmID == "" {
		var errorResponse ErrorResponse
		errorMessage := "farm_id form field is required"
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	userID := auth.UserIDFromContext(ctx)

	docs, err := handler.documentUploadService.Upload(ctx, form, farmID, userID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error uploading documents: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var uploadResponse []DocumentMetaResponse
	for _, doc := range docs {
		uploadResponse = append(uploadResponse, toDocumentMetaResponse(doc))
	}

	ctx.JSON(http.StatusCreated, uploadResponse)
}

// ListMetadata fetches document metadata optionally with query parameters
func (handler *documentHandler) ListMetadata(ctx *gin.Context) {
	query := documents.NewDocumentMetaQuery()

	if farmID := ctx.Query("farmId"); len(farmID) > 0 {
		query.FarmID = farmID
	}

	if name := ctx.Query("name"); len(name) > 0 {
		query.Name = name
	}

	if contentType := ctx.Query("contentType"); len(contentType) > 0 {
		query.ContentType = contentType
	}

	if scanStatus := ctx.Query("scanStatus"); len(scanStatus) > 0 {
		query.ScanStatus = scanStatus
	}

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err == nil {
			query.DateTimeCreated = parsedTime
		}
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("validation failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	docs, err := handler.documentMetadataService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []DocumentMetaResponse{}
	for _, doc := range docs {
		listResponse = append(listResponse, toDocumentMetaResponse(doc))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetMetadataByID fetches document metadata by ID
func (handler *documentHandler) GetMetadataByID(ctx *gin.Context) {
	documentID := ctx.Param("id")

	doc, err := handler.documentMetadataService.GetByID(ctx, documentID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("document with id %s not found", documentID)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, toDocumentMetaResponse(doc))
}

// DownloadByID downloads a document's content by ID
func (handler *documentHandler) DownloadByID(ctx *gin.Context) {
	documentID := ctx.Param("id")

	doc, err := handler.documentMetadataService.GetByID(ctx, documentID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("document with id %s not found", documentID)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	content, err := handler.documentDownloadService.DownloadByID(ctx, documentID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("could not download document with id %s: %v", documentID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	// Headers must be set before the status line is written
	ctx.Writer.Header().Set("Content-Type", "application/octet-stream; charset=utf-8")
	ctx.Writer.Header().Set("Content-Disposition", "attachment; filename="+doc.Name)
	ctx.Writer.WriteHeader(http.StatusOK)
	if _, err := ctx.Writer.Write(content); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("could not write bytes: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}
}

// DeleteByID deletes a document and its metadata by ID
func (handler *documentHandler) DeleteByID(ctx *gin.Context) {
	documentID := ctx.Param("id")

	if err := handler.documentMetadataService.DeleteByID(ctx, documentID); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error deleting document with id %s: %v", documentID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoMessage := fmt.Sprintf("deleted document with id %s", documentID)
	infoResponse.Message = &infoMessage
	ctx.JSON(http.StatusOK, infoResponse)
}
