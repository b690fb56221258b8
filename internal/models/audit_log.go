package models

// AuditLog records every mutation made through the API.
type AuditLog struct {
	Base
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null;index:idx_audit_logs_resource" json:"resourceType"`
	ResourceID   string `gorm:"type:uuid;index:idx_audit_logs_resource" json:"resourceId"`
	IPAddress    string `json:"ipAddress"`
	Changes      string `json:"changes,omitempty"`
}
