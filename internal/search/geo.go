package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/channelgrid/server/internal/models"
)

// Radius bounds for zip searches, in miles. The lower bound doubles as the
// default: a requested radius below 30 is widened to 30, matching the
// behavior of the historical site.
const (
	DefaultRadiusMiles = 30
	MinRadiusMiles     = 30
	MaxRadiusMiles     = 200
)

const earthRadiusMiles = 3959

// ErrZipNotFound is returned when a postal code has no coordinate row.
// Zip searches fail hard on it; they are never degraded to text search.
var ErrZipNotFound = errors.New("zip code not found")

// ZipResolver resolves a postal code to a coordinate pair.
type ZipResolver interface {
	Resolve(ctx context.Context, zip string) (lat, lng float64, err error)
}

// GormZipResolver looks postal codes up in the geo_codes table, whose
// coordinates column holds a "lat, lng" string.
type GormZipResolver struct {
	db *gorm.DB
}

func NewGormZipResolver(db *gorm.DB) *GormZipResolver {
	return &GormZipResolver{db: db}
}

func (r *GormZipResolver) Resolve(ctx context.Context, zip string) (float64, float64, error) {
	var row models.ZipCode
	err := r.db.WithContext(ctx).Where("code = ?", zip).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrZipNotFound
		}
		return 0, 0, err
	}
	return ParseCoordinates(row.Coordinates)
}

// ParseCoordinates parses a "lat, lng" formatted string.
func ParseCoordinates(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinates %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed latitude in %q", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed longitude in %q", s)
	}
	return lat, lng, nil
}

// DistanceMiles computes the haversine great-circle distance between two
// points, in statute miles.
func DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	cosine := math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Cos(rad(lng2)-rad(lng1)) +
		math.Sin(rad(lat1))*math.Sin(rad(lat2))
	// Guard against float drift pushing the value outside acos domain.
	cosine = math.Max(-1, math.Min(1, cosine))
	return earthRadiusMiles * math.Acos(cosine)
}

// ParseZipQuery splits a zip query into the code and its optional radius
// suffix (",N", ".N" or "-N"). The radius is clamped to [30, 200]; absent
// or unparsable suffixes yield the default of 30 miles.
func ParseZipQuery(q string) (zip string, radius int) {
	radius = DefaultRadiusMiles
	idx := strings.IndexAny(q, ",.-")
	if idx < 0 {
		return q, radius
	}
	zip = q[:idx]
	suffix := strings.TrimSpace(q[idx+1:])
	if n, err := strconv.Atoi(suffix); err == nil {
		radius = ClampRadius(n)
	}
	return zip, radius
}

// ClampRadius bounds a requested radius to [MinRadiusMiles, MaxRadiusMiles].
func ClampRadius(n int) int {
	if n < MinRadiusMiles {
		return MinRadiusMiles
	}
	if n > MaxRadiusMiles {
		return MaxRadiusMiles
	}
	return n
}
