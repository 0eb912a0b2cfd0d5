package models

import (
	"time"

	"subsidy_pilot_service/internal/domain/training"
)

// TrainingJobModel is the GORM database model for training jobs
type TrainingJobModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	DatasetPath  string `gorm:"not null;type:varchar(512)"`
	ExampleCount int
	Status       string    `gorm:"not null;type:varchar(20);index"`
	Metrics      []byte    `gorm:"type:jsonb"`
	CreatedAt    time.Time `gorm:"not null"`
	FinishedAt   *time.Time
}

// TableName specifies the table name for GORM
func (TrainingJobModel) TableName() string {
	return "model_training_jobs"
}

// ToDomain converts GORM model to domain entity
func (m *TrainingJobModel) ToDomain() *training.TrainingJob {
	return &training.TrainingJob{
		ID:           m.ID,
		DatasetPath:  m.DatasetPath,
		ExampleCount: m.ExampleCount,
		Status:       m.Status,
		Metrics:      m.Metrics,
		CreatedAt:    m.CreatedAt,
		FinishedAt:   m.FinishedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TrainingJobModel) FromDomain(j *training.TrainingJob) {
	m.ID = j.ID
	m.DatasetPath = j.DatasetPath
	m.ExampleCount = j.ExampleCount
	m.Status = j.Status
	m.Metrics = j.Metrics
	m.CreatedAt = j.CreatedAt
	m.FinishedAt = j.FinishedAt
}

// DeploymentModel is the GORM database model for model deployments
type DeploymentModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	TrainingJobID string    `gorm:"not null;index;type:uuid"`
	ModelName     string    `gorm:"not null;type:varchar(100)"`
	Version       string    `gorm:"not null;type:varchar(50)"`
	Active        bool      `gorm:"not null;index"`
	DeployedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (DeploymentModel) TableName() string {
	return "model_deployments"
}

// ToDomain converts GORM model to domain entity
func (m *DeploymentModel) ToDomain() *training.ModelDeployment {
	return &training.ModelDeployment{
		ID:            m.ID,
		TrainingJobID: m.TrainingJobID,
		ModelName:     m.ModelName,
		Version:       m.Version,
		Active:        m.Active,
		DeployedAt:    m.DeployedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DeploymentModel) FromDomain(d *training.ModelDeployment) {
	m.ID = d.ID
	m.TrainingJobID = d.TrainingJobID
	m.ModelName = d.ModelName
	m.Version = d.Version
	m.Active = d.Active
	m.DeployedAt = d.DeployedAt
}
