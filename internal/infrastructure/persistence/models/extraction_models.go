package models

import (
	"time"

	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/reviews"
)

// ExtractionJobModel is the GORM database model for extraction jobs
type ExtractionJobModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	DocumentID   string `gorm:"not null;index;type:uuid"`
	Status       string `gorm:"not null;type:varchar(20);index"`
	Fields       []byte `gorm:"type:jsonb"`
	Confidence   float64
	NeedsReview  bool   `gorm:"not null;index"`
	ModelName    string `gorm:"type:varchar(100)"`
	OCRText      string `gorm:"type:text"`
	ErrorMessage string `gorm:"type:varchar(2000)"`
	Reviewed     bool
	StartedAt    time.Time `gorm:"not null"`
	FinishedAt   *time.Time
}

// TableName specifies the table name for GORM
func (ExtractionJobModel) TableName() string {
	return "document_extractions"
}

// ToDomain converts GORM model to domain entity
func (m *ExtractionJobModel) ToDomain() *extraction.ExtractionJob {
	return &extraction.ExtractionJob{
		ID:           m.ID,
		DocumentID:   m.DocumentID,
		Status:       m.Status,
		Fields:       m.Fields,
		Confidence:   m.Confidence,
		NeedsReview:  m.NeedsReview,
		ModelName:    m.ModelName,
		OCRText:      m.OCRText,
		ErrorMessage: m.ErrorMessage,
		Reviewed:     m.Reviewed,
		StartedAt:    m.StartedAt,
		FinishedAt:   m.FinishedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ExtractionJobModel) FromDomain(j *extraction.ExtractionJob) {
	m.ID = j.ID
	m.DocumentID = j.DocumentID
	m.Status = j.Status
	m.Fields = j.Fields
	m.Confidence = j.Confidence
	m.NeedsReview = j.NeedsReview
	m.ModelName = j.ModelName
	m.OCRText = j.OCRText
	m.ErrorMessage = j.ErrorMessage
	m.Reviewed = j.Reviewed
	m.StartedAt = j.StartedAt
	m.FinishedAt = j.FinishedAt
}

// ReviewModel is the GORM database model for extraction reviews
type ReviewModel struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	ExtractionID   string    `gorm:"not null;index;type:uuid"`
	ReviewerUserID string    `gorm:"not null;index;type:uuid"`
	FieldName      string    `gorm:"not null;type:varchar(100)"`
	OriginalValue  string    `gorm:"type:varchar(4000)"`
	CorrectedValue string    `gorm:"type:varchar(4000)"`
	Accepted       bool      `gorm:"not null;index"`
	ReviewedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ReviewModel) TableName() string {
	return "document_extraction_reviews"
}

// ToDomain converts GORM model to domain entity
func (m *ReviewModel) ToDomain() *reviews.ExtractionReview {
	return &reviews.ExtractionReview{
		ID:             m.ID,
		ExtractionID:   m.ExtractionID,
		ReviewerUserID: m.ReviewerUserID,
		FieldName:      m.FieldName,
		OriginalValue:  m.OriginalValue,
		CorrectedValue: m.CorrectedValue,
		Accepted:       m.Accepted,
		ReviewedAt:     m.ReviewedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ReviewModel) FromDomain(r *reviews.ExtractionReview) {
	m.ID = r.ID
	m.ExtractionID = r.ExtractionID
	m.ReviewerUserID = r.ReviewerUserID
	m.FieldName = r.FieldName
	m.OriginalValue = r.OriginalValue
	m.CorrectedValue = r.CorrectedValue
	m.Accepted = r.Accepted
	m.ReviewedAt = r.ReviewedAt
}
