package v1

import (
	"fmt"
	"net/http"

	"subsidy_pilot_service/internal/domain/training"

	"github.com/gin-gonic/gin"
)

// TrainingHandler defines the interface for handling training export and
// deployment operations
type TrainingHandler interface {
	Export(ctx *gin.Context)
	ListJobs(ctx *gin.Context)
	GetJobByID(ctx *gin.Context)
	AdvanceJob(ctx *gin.Context)
	ListDeployments(ctx *gin.Context)
	ActivateDeployment(ctx *gin.Context)
}

// trainingHandler struct holds the services
type trainingHandler struct {
	exportService training.ExportService
}

// NewTrainingHandler creates a new TrainingHandler
func NewTrainingHandler(exportService training.ExportService) TrainingHandler {
	return &trainingHandler{
		exportService: exportService,
	}
}

func toTrainingJobResponse(job *training.TrainingJob) TrainingJobResponse {
	return TrainingJobResponse{
		ID:           job.ID,
		DatasetPath:  job.DatasetPath,
		ExampleCount: job.ExampleCount,
		Status:       job.Status,
		CreatedAt:    job.CreatedAt,
		FinishedAt:   job.FinishedAt,
	}
}

func toDeploymentResponse(deployment *training.ModelDeployment) DeploymentResponse {
	return DeploymentResponse{
		ID:            deployment.ID,
		TrainingJobID: deployment.TrainingJobID,
		ModelName:     deployment.ModelName,
		Version:       deployment.Version,
		Active:        deployment.Active,
		DeployedAt:    deployment.DeployedAt,
	}
}

// Export writes accepted corrections as a training dataset
func (handler *trainingHandler) Export(ctx *gin.Context) {
	job, err := handler.exportService.Export(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error exporting training dataset: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, toTrainingJobResponse(job))
}

// ListJobs fetches all training jobs
func (handler *trainingHandler) ListJobs(ctx *gin.Context) {
	jobs, err := handler.exportService.ListJobs(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []TrainingJobResponse{}
	for _, job := range jobs {
		listResponse = append(listResponse, toTrainingJobResponse(job))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetJobByID fetches a training job by ID
func (handler *trainingHandler) GetJobByID(ctx *gin.Context) {
	jobID := ctx.Param("id")

	job, err := handler.exportService.GetJob(ctx, jobID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("training job with id %s not found", jobID)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, toTrainingJobResponse(job))
}

// AdvanceJob moves a training job along its state machine
func (handler *trainingHandler) AdvanceJob(ctx *gin.Context) {
	jobID := ctx.Param("id")

	var request TransitionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("invalid transition request: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	job, err := handler.exportService.AdvanceJob(ctx, jobID, request.Status)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error advancing training job with id %s: %v", jobID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, toTrainingJobResponse(job))
}

// ListDeployments fetches all model deployments
func (handler *trainingHandler) ListDeployments(ctx *gin.Context) {
	deployments, err := handler.exportService.ListDeployments(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []DeploymentResponse{}
	for _, deployment := range deployments {
		listResponse = append(listResponse, toDeploymentResponse(deployment))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// ActivateDeployment marks one deployment active and deactivates the rest
func (handler *trainingHandler) ActivateDeployment(ctx *gin.Context) {
	deploymentID := ctx.Param("id")

	if err := handler.exportService.ActivateDeployment(ctx, deploymentID); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error activating deployment with id %s: %v", deploymentID, err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoMessage := fmt.Sprintf("activated deployment with id %s", deploymentID)
	infoResponse.Message = &infoMessage
	ctx.JSON(http.StatusOK, infoResponse)
}
