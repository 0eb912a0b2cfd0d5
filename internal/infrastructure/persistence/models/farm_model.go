package models

import (
	"time"

	"subsidy_pilot_service/internal/domain/farms"
)

// FarmModel is the GORM database model for farms
type FarmModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	OwnerUserID string `gorm:"not null;index;type:uuid"`
	Name        string `gorm:"not null;type:varchar(255)"`
	Country     string `gorm:"not null;type:char(2);index"`
	Region      string `gorm:"type:varchar(100)"`
	Hectares    float64
	LegalStatus string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (FarmModel) TableName() string {
	return "farms"
}

// ToDomain converts GORM model to domain entity
func (m *FarmModel) ToDomain() *farms.Farm {
	return &farms.Farm{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		Country:     m.Country,
		Region:      m.Region,
		Hectares:    m.Hectares,
		LegalStatus: m.LegalStatus,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *FarmModel) FromDomain(f *farms.Farm) {
	m.ID = f.ID
	m.OwnerUserID = f.OwnerUserID
	m.Name = f.Name
	m.Country = f.Country
	m.Region = f.Region
	m.Hectares = f.Hectares
	m.LegalStatus = f.LegalStatus
	m.CreatedAt = f.CreatedAt
}
