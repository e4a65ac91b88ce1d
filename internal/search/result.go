package search

import (
	"github.com/channelgrid/server/internal/models"
)

// AppliedFilters echoes the filters and sort the engine actually used
// after normalization.
type AppliedFilters struct {
	Status  string `json:"status,omitempty"`
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	Sort    string `json:"sort"`
}

// DebugInfo is attached only when the caller requested debug mode.
type DebugInfo struct {
	SearchType SearchType `json:"search_type"`
	Fallback   SearchType `json:"fallback,omitempty"`
	TotalFound int64      `json:"total_found"`
	Radius     int        `json:"radius,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Result is the envelope every search returns, success or not. Callers
// never see an error value from the engine itself.
type Result struct {
	Success    bool             `json:"success"`
	Channels   []models.Channel `json:"channels"`
	Pagination *PaginationInfo  `json:"pagination"`
	Filters    AppliedFilters   `json:"filters"`
	Message    string           `json:"message,omitempty"`
	Debug      *DebugInfo       `json:"debug,omitempty"`
}
