package models

import (
	"time"

	"subsidy_pilot_service/internal/domain/audit"
)

// AuditEventModel is the GORM database model for the security audit log
type AuditEventModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"index;type:uuid"`
	Action    string    `gorm:"not null;type:varchar(100);index"`
	Resource  string    `gorm:"type:varchar(255)"`
	Detail    string    `gorm:"type:varchar(2000)"`
	ClientIP  string    `gorm:"type:varchar(45)"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (AuditEventModel) TableName() string {
	return "security_audit_log"
}

// ToDomain converts GORM model to domain entity
func (m *AuditEventModel) ToDomain() *audit.Event {
	return &audit.Event{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		Resource:  m.Resource,
		Detail:    m.Detail,
		ClientIP:  m.ClientIP,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AuditEventModel) FromDomain(e *audit.Event) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.Action = e.Action
	m.Resource = e.Resource
	m.Detail = e.Detail
	m.ClientIP = e.ClientIP
	m.CreatedAt = e.CreatedAt
}
