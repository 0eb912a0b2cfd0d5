package v1

import (
	"fmt"
	"net/http"

	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
)

// FarmHandler defines the interface for handling farm profile operations
type FarmHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	UpdateByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// farmHandler struct holds the services
type farmHandler struct {
	farmService farms.FarmService
}

// NewFarmHandler creates a new FarmHandler
func NewFarmHandler(farmService farms.FarmService) FarmHandler {
	return &farmHandler{
		farmService: farmService,
	}
}

func toFarmResponse(farm *farms.Farm) FarmResponse {
	return FarmResponse{
		ID:          farm.ID,
		OwnerUserID: farm.OwnerUserID,
		Name:        farm.Name,
		Country:     farm.Country,
		Region:      farm.Region,
		Hectares:    farm.Hectares,
		LegalStatus: farm.LegalStatus,
		CreatedAt:   farm.CreatedAt,
	}
}

// Create registers a new farm owned by the authenticated user
func (handler *farmHandler) Create(ctx *gin.Context) {
	var request FarmRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("invalid farm request: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	farm := &farms.Farm{
		OwnerUserID: auth.UserIDFromContext(ctx),
		Name:        request.Name,
		Country:     request.Country,
		Region:      request.Region,
		Hectares:    request.Hectares,
		LegalStatus: request.LegalStatus,
	}

	created, err := handler.farmService.Create(ctx, farm)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error creating farm: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, toFarmResponse(created))
}

// List fetches the authenticated user's farms
func (handler *farmHandler) List(ctx *gin.Context) {
	list, err := handler.farmService.ListByOwner(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	listResponse := []FarmResponse{}
	for _, farm := range list {
		listResponse = append(listResponse, toFarmResponse(farm))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID fetches a farm by ID
func (handler *farmHandler) GetByID(ctx *gin.Context) {
	farmID := ctx.Param("id")

	farm, err := handler.farmService.GetByID(ctx, farmID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("farm with id %s not found", farmID)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, toFarmResponse(farm))
}

// UpdateByID updates a farm's profile
func (handler *farmHandler) UpdateByID(ctx *gin.Context) {
	farmID := ctx.Param("id")

	var request FarmRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("invalid farm request: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	farm := &farms.Farm{
		ID:          farmID,
		Name:        request.Name,
		Country:     request.Country,
		Region:      request.Region,
		Hectares:    request.Hectares,
		LegalStatus: request.LegalStatus,
	}

	updated, err := handler.farmService.UpdateByID(ctx, farm)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error updating farm with id %s: %v", farmID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, toFarmResponse(updated))
}

// DeleteByID removes a farm
func (handler *farmHandler) DeleteByID(ctx *gin.Context) {
	farmID := ctx.Param("id")

	if err := handler.farmService.DeleteByID(ctx, farmID); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error deleting farm with id %s: %v", farmID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoMessage := fmt.Sprintf("deleted farm with id %s", farmID)
	infoResponse.Message = &infoMessage
	ctx.JSON(http.StatusOK, infoResponse)
}
