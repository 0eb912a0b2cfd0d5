package models

import (
	"time"

	"subsidy_pilot_service/internal/domain/documents"
)

// DocumentModel is the GORM database model for document metadata
type DocumentModel struct {
	ID               string    `gorm:"primaryKey;type:uuid"`
	FarmID           string    `gorm:"not null;index;type:uuid"`
	UserID           string    `gorm:"not null;index;type:uuid"`
	Name             string    `gorm:"not null;type:varchar(255)"`
	Size             int64     `gorm:"not null"`
	ContentType      string    `gorm:"not null;type:varchar(100)"`
	Checksum         string    `gorm:"not null;type:char(64);index"`
	ScanStatus       string    `gorm:"not null;type:varchar(20)"`
	ExtractionStatus string    `gorm:"not null;type:varchar(20)"`
	StoragePath      string    `gorm:"not null;type:varchar(512)"`
	DateTimeCreated  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts GORM model to domain entity
func (m *DocumentModel) ToDomain() *documents.DocumentMeta {
	return &documents.DocumentMeta{
		ID:               m.ID,
		FarmID:           m.FarmID,
		UserID:           m.UserID,
		Name:             m.Name,
		Size:             m.Size,
		ContentType:      m.ContentType,
		Checksum:         m.Checksum,
		ScanStatus:       m.ScanStatus,
		ExtractionStatus: m.ExtractionStatus,
		StoragePath:      m.StoragePath,
		DateTimeCreated:  m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DocumentModel) FromDomain(d *documents.DocumentMeta) {
	m.ID = d.ID
	m.FarmID = d.FarmID
	m.UserID = d.UserID
	m.Name = d.Name
	m.Size = d.Size
	m.ContentType = d.ContentType
	m.Checksum = d.Checksum
	m.ScanStatus = d.ScanStatus
	m.ExtractionStatus = d.ExtractionStatus
	m.StoragePath = d.StoragePath
	m.DateTimeCreated = d.DateTimeCreated
}
