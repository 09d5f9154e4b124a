package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records one booking action for traceability.
type AuditLog struct {
	ID           string
	Action       string // allocation.create, booking.create, scenario.create, ...
	ResourceType string // bank_line, scenario
	ResourceID   string
	RequestID    string
	Detail       JSON // created entry ids, offset outcome, error detail
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionAllocate           AuditAction = "allocation.create"
	AuditActionBook               AuditAction = "booking.create"
	AuditActionScenarioCreate     AuditAction = "scenario.create"
	AuditActionScenarioActivate   AuditAction = "scenario.activate"
	AuditActionScenarioDeactivate AuditAction = "scenario.deactivate"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalDetail converts a value to JSON for audit logging.
func MarshalDetail(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal detail"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal detail"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
