package v1

import (
	"fmt"
	"net/http"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// AuditHandler defines the interface for reading the audit log
type AuditHandler interface {
	List(ctx *gin.Context)
}

// auditHandler struct holds the services
type auditHandler struct {
	auditService audit.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandler{
		auditService: auditService,
	}
}

func toAuditEventResponse(event *audit.Event) AuditEventResponse {
	return AuditEventResponse{
		ID:        event.ID,
		UserID:    event.UserID,
		Action:    event.Action,
		Resource:  event.Resource,
		Detail:    event.Detail,
		ClientIP:  event.ClientIP,
		CreatedAt: event.CreatedAt,
	}
}

// List fetches audit events optionally with query parameters
func (handler *auditHandler) List(ctx *gin.Context) {
	query := audit.NewEventQuery()

	if userID := ctx.Query("userId"); len(userID) > 0 {
		query.UserID = userID
	}

	if action := ctx.Query("action"); len(action) > 0 {
		query.Action = action
	}

	if since := ctx.Query("since"); len(since) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, since)
		if err == nil {
			query.Since = parsedTime
		}
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

	events, err := handler.auditService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []AuditEventResponse{}
	for _, event := range events {
		listResponse = append(listResponse, toAuditEventResponse(event))
	}

	ctx.JSON(http.StatusOK, listResponse)
}
