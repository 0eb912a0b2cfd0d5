package models

import (
	"time"

	"subsidy_pilot_service/internal/domain/changedetect"
)

// SourceSnapshotModel is the GORM database model for change-detector state
type SourceSnapshotModel struct {
	SourceCode  string `gorm:"primaryKey;type:varchar(50)"`
	RecordCount int
	ContentHash string    `gorm:"type:char(64)"`
	CheckedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SourceSnapshotModel) TableName() string {
	return "source_snapshots"
}

// ToDomain converts GORM model to domain entity
func (m *SourceSnapshotModel) ToDomain() *changedetect.SourceSnapshot {
	return &changedetect.SourceSnapshot{
		SourceCode:  m.SourceCode,
		RecordCount: m.RecordCount,
		ContentHash: m.ContentHash,
		CheckedAt:   m.CheckedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SourceSnapshotModel) FromDomain(s *changedetect.SourceSnapshot) {
	m.SourceCode = s.SourceCode
	m.RecordCount = s.RecordCount
	m.ContentHash = s.ContentHash
	m.CheckedAt = s.CheckedAt
}
