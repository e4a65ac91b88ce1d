package models

import (
	"time"
)

// Channel status values. The cf-* states mirror the Cloudflare custom-domain
// provisioning lifecycle; domain-* states track DNS linkage.
const (
	StatusLive          = "live"
	StatusPreview       = "preview"
	StatusStatic        = "static"
	StatusDraft         = "draft"
	StatusError         = "error"
	StatusCFActive      = "cf-active"
	StatusCFMissing     = "cf-missing"
	StatusCFInactive    = "cf-inactive"
	StatusCFPending     = "cf-pending"
	StatusDomainLinked  = "domain-linked"
	StatusDomainMissing = "domain-missing"
)

var channelStatuses = map[string]bool{
	StatusLive:          true,
	StatusPreview:       true,
	StatusStatic:        true,
	StatusDraft:         true,
	StatusError:         true,
	StatusCFActive:      true,
	StatusCFMissing:     true,
	StatusCFInactive:    true,
	StatusCFPending:     true,
	StatusDomainLinked:  true,
	StatusDomainMissing: true,
}

// IsValidStatus reports whether s is a known channel status.
func IsValidStatus(s string) bool {
	return channelStatuses[s]
}

// Channel represents a geo-located directory record (a city/state/country
// page, optionally served from its own custom domain).
// DB: channels
type Channel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Slug         string    `gorm:"column:slug;size:255;not null;uniqueIndex:channels_slug_key" json:"slug"`
	CityName     string    `gorm:"column:city_name;size:255;not null;index:idx_channels_city" json:"city_name"`
	StateName    *string   `gorm:"column:state_name;size:255" json:"state_name,omitempty"`
	StateCode    *string   `gorm:"column:state_code;size:10;index:idx_channels_state" json:"state_code,omitempty"`
	CountryName  *string   `gorm:"column:country_name;size:255" json:"country_name,omitempty"`
	CountryCode  *string   `gorm:"column:country_code;size:10;index:idx_channels_country" json:"country_code,omitempty"`
	Population   *int64    `gorm:"column:population" json:"population,omitempty"`
	Latitude     *float64  `gorm:"column:latitude;type:double precision" json:"latitude,omitempty"`
	Longitude    *float64  `gorm:"column:longitude;type:double precision" json:"longitude,omitempty"`
	CustomDomain *string   `gorm:"column:custom_domain;size:255;index:idx_channels_domain" json:"custom_domain,omitempty"`
	Status       *string   `gorm:"column:status;size:20;index:idx_channels_status" json:"status,omitempty"`
	Title        *string   `gorm:"column:title;type:text" json:"title,omitempty"`
	Description  *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	// Computed columns, populated by search queries only.
	Relevance *int     `gorm:"column:relevance;->;-:migration" json:"relevance,omitempty"`
	Distance  *float64 `gorm:"column:distance;->;-:migration" json:"distance,omitempty"`
}

func (Channel) TableName() string {
	return "channels"
}

// GeoComplete reports whether the channel carries a usable coordinate pair.
// Channels without one are excluded from geo searches and the "all" listing.
func (c *Channel) GeoComplete() bool {
	return c.Latitude != nil && c.Longitude != nil
}
