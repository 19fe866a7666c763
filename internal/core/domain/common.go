package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// The user IDs are opaque: identity is established by the external
// permission gate before any call reaches this core.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}
