package v1

import (
	"fmt"
	"net/http"

	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// SubsidyHandler defines the interface for handling subsidy discovery and
// application operations
type SubsidyHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	MatchesForFarm(ctx *gin.Context)
	CreateApplication(ctx *gin.Context)
	ListApplicationsByFarm(ctx *gin.Context)
	TransitionApplication(ctx *gin.Context)
}

// subsidyHandler struct holds the services
type subsidyHandler struct {
	subsidyService     subsidies.SubsidyService
	applicationService subsidies.ApplicationService
}

// NewSubsidyHandler creates a new SubsidyHandler
func NewSubsidyHandler(subsidyService subsidies.SubsidyService, applicationService subsidies.ApplicationService) SubsidyHandler {
	return &subsidyHandler{
		subsidyService:     subsidyService,
		applicationService: applicationService,
	}
}

func toSubsidyResponse(subsidy *subsidies.Subsidy) SubsidyResponse {
	return SubsidyResponse{
		ID:          subsidy.ID,
		SourceCode:  subsidy.SourceCode,
		ExternalID:  subsidy.ExternalID,
		Title:       subsidy.Title,
		Agency:      subsidy.Agency,
		Country:     subsidy.Country,
		Deadline:    subsidy.Deadline,
		MinFunding:  subsidy.MinFunding,
		MaxFunding:  subsidy.MaxFunding,
		MinHectares: subsidy.MinHectares,
		MaxHectares: subsidy.MaxHectares,
		Eligibility: subsidy.Eligibility,
		UpdatedAt:   subsidy.UpdatedAt,
	}
}

func toApplicationResponse(application *subsidies.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          application.ID,
		FarmID:      application.FarmID,
		SubsidyID:   application.SubsidyID,
		Status:      application.Status,
		CreatedAt:   application.CreatedAt,
		SubmittedAt: application.SubmittedAt,
	}
}

// List fetches subsidies optionally with query parameters
func (handler *subsidyHandler) List(ctx *gin.Context) {
	query := subsidies.NewSubsidyQuery()

	if sourceCode := ctx.Query("sourceCode"); len(sourceCode) > 0 {
		query.SourceCode = sourceCode
	}

	if country := ctx.Query("country"); len(country) > 0 {
		query.Country = country
	}

	if openOnly := ctx.Query("openOnly"); openOnly == "true" {
		query.OpenOnly = true
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

	list, err := handler.subsidyService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []SubsidyResponse{}
	for _, subsidy := range list {
		listResponse = append(listResponse, toSubsidyResponse(subsidy))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID fetches a subsidy by ID
func (handler *subsidyHandler) GetByID(ctx *gin.Context) {
	subsidyID := ctx.Param("id")

	subsidy, err := handler.subsidyService.GetByID(ctx, subsidyID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("subsidy with id %s not found", subsidyID)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, toSubsidyResponse(subsidy))
}

// MatchesForFarm fetches subsidies a farm is eligible for
func (handler *subsidyHandler) MatchesForFarm(ctx *gin.Context) {
	farmID := ctx.Param("id")

	matches, err := handler.subsidyService.MatchesForFarm(ctx, farmID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("could not match subsidies for farm with id %s: %v", farmID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	matchResponse := []SubsidyResponse{}
	for _, subsidy := range matches {
		matchResponse = append(matchResponse, toSubsidyResponse(subsidy))
	}

	ctx.JSON(http.StatusOK, matchResponse)
}

// CreateApplication opens a draft application for a farm and subsidy
func (handler *subsidyHandler) CreateApplication(ctx *gin.Context) {
	var request ApplicationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("invalid application request: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	application, err := handler.applicationService.Create(ctx, request.FarmID, request.SubsidyID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error creating application: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, toApplicationResponse(application))
}

// ListApplicationsByFarm fetches a farm's applications
func (handler *subsidyHandler) ListApplicationsByFarm(ctx *gin.Context) {
	farmID := ctx.Param("id")

	list, err := handler.applicationService.ListByFarm(ctx, farmID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []ApplicationResponse{}
	for _, application := range list {
		listResponse = append(listResponse, toApplicationResponse(application))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// TransitionApplication moves an application to the next status
func (handler *subsidyHandler) TransitionApplication(ctx *gin.Context) {
	applicationID := ctx.Param("id")

	var request TransitionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("invalid transition request: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	application, err := handler.applicationService.Transition(ctx, applicationID, request.Status)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error transitioning application with id %s: %v", applicationID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, toApplicationResponse(application))
}
