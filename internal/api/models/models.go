// Package models defines the request/response bodies of the control API.
package models

import "time"

// StatusResponse is a minimal status reply.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse carries an error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServerStatsResponse reports process runtime statistics.
type ServerStatsResponse struct {
	Uptime        string    `json:"uptime"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	StartTime     time.Time `json:"start_time"`
	GoRoutines    int       `json:"goroutines"`
	MemoryAllocMB float64   `json:"memory_alloc_mb"`
	NumCPU        int       `json:"num_cpu"`
}

// CapacityResponse reports the payload capacity of the active configuration.
type CapacityResponse struct {
	Strategy     string         `json:"strategy"`
	MaxFragments int            `json:"max_fragments"`
	TotalBytes   int            `json:"total_bytes"`
	PerTypeBytes map[string]int `json:"per_type_bytes"`
}

// EncodePreviewRequest asks for a dry-run encode of a payload.
type EncodePreviewRequest struct {
	// PayloadBase64 is the payload bytes, base64-encoded for JSON transport.
	PayloadBase64 string `json:"payload_base64" binding:"required"`
	// BaseDomain overrides the configured channel domain when set.
	BaseDomain string `json:"base_domain,omitempty"`
	// Profile selects a stored profile instead of the active config.
	Profile string `json:"profile,omitempty"`
}

// FragmentSummary describes one generated fragment without exposing its
// payload bytes.
type FragmentSummary struct {
	ID         uint32 `json:"id"`
	RecordType string `json:"record_type"`
	Domain     string `json:"domain"`
	DataBytes  int    `json:"data_bytes"`
	Noise      bool   `json:"noise"`
}

// EncodePreviewResponse summarizes a dry-run encode.
type EncodePreviewResponse struct {
	Strategy      string            `json:"strategy"`
	FragmentCount int               `json:"fragment_count"`
	NoiseCount    int               `json:"noise_count"`
	Truncated     bool              `json:"truncated"`
	Fragments     []FragmentSummary `json:"fragments"`
}

// ProfileRequest creates or updates a stored encoding profile.
type ProfileRequest struct {
	Name           string  `json:"name" binding:"required"`
	Strategy       string  `json:"strategy" binding:"required"`
	MaxTXTLength   int     `json:"max_txt_length"`
	MaxFragments   int     `json:"max_fragments"`
	UseCompression bool    `json:"use_compression"`
	RandomizeOrder bool    `json:"randomize_order"`
	NoiseRatio     float64 `json:"noise_ratio"`
}
