package models

import (
	"time"

	"searchsync/internal/syncer"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// SyncResponse represents the outcome of a sync request
type SyncResponse struct {
	Success bool           `json:"success"`
	Report  *syncer.Report `json:"report,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// SyncOneResponse represents the outcome of a single-conversation sync
type SyncOneResponse struct {
	Success        bool   `json:"success"`
	ConversationID string `json:"conversation_id"`
	Synced         bool   `json:"synced"`
	Error          string `json:"error,omitempty"`
}

// CleanupResponse represents the outcome of a project cleanup
type CleanupResponse struct {
	Success bool   `json:"success"`
	Deleted int    `json:"deleted"`
	Error   string `json:"error,omitempty"`
}
