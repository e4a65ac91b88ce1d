package models

import (
	"time"
)

// ZipCode maps a postal code to its coordinate pair. The coordinates column
// keeps the upstream "lat, lng" string format; parsing happens in the search
// package's resolver.
// DB: geo_codes
type ZipCode struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"column:code;size:20;not null;uniqueIndex:geo_codes_code_key" json:"code"`
	Coordinates string    `gorm:"column:coordinates;size:100;not null" json:"coordinates"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (ZipCode) TableName() string {
	return "geo_codes"
}
