package models

import (
	"time"

	"subsidy_pilot_service/internal/domain/subsidies"
)

// SubsidyModel is the GORM database model for subsidies
type SubsidyModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	SourceCode  string `gorm:"not null;type:varchar(50);uniqueIndex:idx_subsidies_source_external"`
	ExternalID  string `gorm:"not null;type:varchar(100);uniqueIndex:idx_subsidies_source_external"`
	Title       string `gorm:"not null;type:varchar(500)"`
	Agency      string `gorm:"type:varchar(255)"`
	Country     string `gorm:"not null;type:char(2);index"`
	Deadline    *time.Time
	MinFunding  float64
	MaxFunding  float64
	MinHectares float64
	MaxHectares float64
	Eligibility string    `gorm:"type:text"`
	ContentHash string    `gorm:"type:char(64)"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SubsidyModel) TableName() string {
	return "subsidies"
}

// ToDomain converts GORM model to domain entity
func (m *SubsidyModel) ToDomain() *subsidies.Subsidy {
	return &subsidies.Subsidy{
		ID:          m.ID,
		SourceCode:  m.SourceCode,
		ExternalID:  m.ExternalID,
		Title:       m.Title,
		Agency:      m.Agency,
		Country:     m.Country,
		Deadline:    m.Deadline,
		MinFunding:  m.MinFunding,
		MaxFunding:  m.MaxFunding,
		MinHectares: m.MinHectares,
		MaxHectares: m.MaxHectares,
		Eligibility: m.Eligibility,
		ContentHash: m.ContentHash,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SubsidyModel) FromDomain(s *subsidies.Subsidy) {
	m.ID = s.ID
	m.SourceCode = s.SourceCode
	m.ExternalID = s.ExternalID
	m.Title = s.Title
	m.Agency = s.Agency
	m.Country = s.Country
	m.Deadline = s.Deadline
	m.MinFunding = s.MinFunding
	m.MaxFunding = s.MaxFunding
	m.MinHectares = s.MinHectares
	m.MaxHectares = s.MaxHectares
	m.Eligibility = s.Eligibility
	m.ContentHash = s.ContentHash
	m.UpdatedAt = s.UpdatedAt
}

// ApplicationModel is the GORM database model for applications
type ApplicationModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	FarmID      string    `gorm:"not null;index;type:uuid"`
	SubsidyID   string    `gorm:"not null;index;type:uuid"`
	Status      string    `gorm:"not null;type:varchar(20)"`
	CreatedAt   time.Time `gorm:"not null"`
	SubmittedAt *time.Time
}

// TableName specifies the table name for GORM
func (ApplicationModel) TableName() string {
	return "applications"
}

// ToDomain converts GORM model to domain entity
func (m *ApplicationModel) ToDomain() *subsidies.Application {
	return &subsidies.Application{
		ID:          m.ID,
		FarmID:      m.FarmID,
		SubsidyID:   m.SubsidyID,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		SubmittedAt: m.SubmittedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ApplicationModel) FromDomain(a *subsidies.Application) {
	m.ID = a.ID
	m.FarmID = a.FarmID
	m.SubsidyID = a.SubsidyID
	m.Status = a.Status
	m.CreatedAt = a.CreatedAt
	m.SubmittedAt = a.SubmittedAt
}
