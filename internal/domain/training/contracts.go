package training

import "context"

// TrainingExample is one JSONL record in an exported dataset.
type TrainingExample struct {
	DocumentID     string `json:"document_id"`
	FieldName      string `json:"field_name"`
	OriginalValue  string `json:"original_value"`
	CorrectedValue string `json:"corrected_value"`
	ReviewedAt     string `json:"reviewed_at"`
}

// ExportService turns accepted extraction reviews into training datasets.
type ExportService interface {
	// Export collects accepted corrections, writes a JSONL dataset to
	// storage and records a TrainingJob for it.
	Export(ctx context.Context) (*TrainingJob, error)
	// AdvanceJob moves a job along the simulated training state machine.
	AdvanceJob(ctx context.Context, jobID, nextStatus string) (*TrainingJob, error)
	// GetJob retrieves a training job by ID.
	GetJob(ctx context.Context, jobID string) (*TrainingJob, error)
	// ListJobs retrieves all training jobs.
	ListJobs(ctx context.Context) ([]*TrainingJob, error)
	// ListDeployments retrieves all model deployments.
	ListDeployments(ctx context.Context) ([]*ModelDeployment, error)
	// ActivateDeployment marks one deployment active and deactivates the rest.
	ActivateDeployment(ctx context.Context, deploymentID string) error
}

// TrainingJobRepository defines the persistence interface for training jobs
type TrainingJobRepository interface {
	// Create adds a new training job to the database
	Create(ctx context.Context, job *TrainingJob) error
	// List lists all training jobs
	List(ctx context.Context) ([]*TrainingJob, error)
	// GetByID retrieves a training job by ID
	GetByID(ctx context.Context, jobID string) (*TrainingJob, error)
	// UpdateByID updates a training job by ID
	UpdateByID(ctx context.Context, job *TrainingJob) error
}

// DeploymentRepository defines the persistence interface for model deployments
type DeploymentRepository interface {
	// Create adds a new deployment to the database
	Create(ctx context.Context, deployment *ModelDeployment) error
	// List lists all deployments
	List(ctx context.Context) ([]*ModelDeployment, error)
	// GetByID retrieves a deployment by ID
	GetByID(ctx context.Context, deploymentID string) (*ModelDeployment, error)
	// UpdateByID updates a deployment by ID
	UpdateByID(ctx context.Context, deployment *ModelDeployment) error
}
