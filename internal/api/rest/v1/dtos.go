package v1

import (
	"encoding/json"
	"time"
)

// ErrorResponse is returned on any failed request.
type ErrorResponse struct {
	Message *string `json:"message,omitempty"`
}

// InfoResponse is returned on requests without a resource body.
type InfoResponse struct {
	Message *string `json:"message,omitempty"`
}

// TokenRequest asks for an access token for a user. The secret is the
// shared demo credential checked before issuance.
type TokenRequest struct {
	UserID string `json:"user_id" binding:"required,uuid4"`
	Secret string `json:"secret" binding:"required"`
}

// TokenResponse carries a signed access token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FarmRequest creates or updates a farm profile.
type FarmRequest struct {
	Name        string  `json:"name" binding:"required"`
	Country     string  `json:"country" binding:"required"`
	Region      string  `json:"region"`
	Hectares    float64 `json:"hectares" binding:"gte=0"`
	LegalStatus string  `json:"legal_status"`
}

// FarmResponse is the API representation of a farm.
type FarmResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	Region      string    `json:"region,omitempty"`
	Hectares    float64   `json:"hectares"`
	LegalStatus string    `json:"legal_status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentMetaResponse is the API representation of document metadata.
type DocumentMetaResponse struct {
	ID               string    `json:"id"`
	FarmID           string    `json:"farm_id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Size             int64     `json:"size"`
	ContentType      string    `json:"content_type"`
	Checksum         string    `json:"checksum"`
	ScanStatus       string    `json:"scan_status"`
	ExtractionStatus string    `json:"extraction_status"`
	DateTimeCreated  time.Time `json:"date_time_created"`
}

// SubsidyResponse is the API representation of a subsidy.
type SubsidyResponse struct {
	ID          string     `json:"id"`
	SourceCode  string     `json:"source_code"`
	ExternalID  string     `json:"external_id"`
	Title       string     `json:"title"`
	Agency      string     `json:"agency,omitempty"`
	Country     string     `json:"country"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	MinFunding  float64    `json:"min_funding"`
	MaxFunding  float64    `json:"max_funding"`
	MinHectares float64    `json:"min_hectares"`
	MaxHectares float64    `json:"max_hectares"`
	Eligibility string     `json:"eligibility,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ApplicationRequest opens a draft application.
type ApplicationRequest struct {
	FarmID    string `json:"farm_id" binding:"required,uuid4"`
	SubsidyID string `json:"subsidy_id" binding:"required,uuid4"`
}

// TransitionRequest moves a stateful resource to its next status.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// ApplicationResponse is the API representation of an application.
type ApplicationResponse struct {
	ID          string     `json:"id"`
	FarmID      string     `json:"farm_id"`
	SubsidyID   string     `json:"subsidy_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// ExtractionJobResponse is the API representation of an extraction job.
type ExtractionJobResponse struct {
	ID           string          `json:"id"`
	DocumentID   string          `json:"document_id"`
	Status       string          `json:"status"`
	Fields       json.RawMessage `json:"fields,omitempty"`
	Confidence   float64         `json:"confidence"`
	NeedsReview  bool            `json:"needs_review"`
	ModelName    string          `json:"model_name,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Reviewed     bool            `json:"reviewed"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
}

// ReviewRequest submits one field correction.
type ReviewRequest struct {
	FieldName      string `json:"field_name" binding:"required"`
	OriginalValue  string `json:"original_value"`
	CorrectedValue string `json:"corrected_value"`
	Accepted       bool   `json:"accepted"`
}

// ReviewResponse is the API representation of an extraction review.
type ReviewResponse struct {
	ID             string    `json:"id"`
	ExtractionID   string    `json:"extraction_id"`
	ReviewerUserID string    `json:"reviewer_user_id"`
	FieldName      string    `json:"field_name"`
	OriginalValue  string    `json:"original_value,omitempty"`
	CorrectedValue string    `json:"corrected_value,omitempty"`
	Accepted       bool      `json:"accepted"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}

// TrainingJobResponse is the API representation of a training job.
type TrainingJobResponse struct {
	ID           string     `json:"id"`
	DatasetPath  string     `json:"dataset_path"`
	ExampleCount int        `json:"example_count"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// DeploymentResponse is the API representation of a model deployment.
type DeploymentResponse struct {
	ID            string    `json:"id"`
	TrainingJobID string    `json:"training_job_id"`
	ModelName     string    `json:"model_name"`
	Version       string    `json:"version"`
	Active        bool      `json:"active"`
	DeployedAt    time.Time `json:"deployed_at"`
}

// AuditEventResponse is the API representation of one audit log row.
type AuditEventResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
