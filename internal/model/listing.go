package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Availability states a property can be in. Anything outside this set
// (including an empty string) is treated as unknown by the scorers.
const (
	AvailabilityAvailable   = "available"
	AvailabilityBooked      = "booked"
	AvailabilityMaintenance = "maintenance"
)

// Price holds the pricing block of a listing. Monthly is the rent used by
// scoring; Security is a deposit carried for display only.
type Price struct {
	Monthly  float64 `json:"monthly"`
	Security float64 `json:"security,omitempty"`
}

// Address holds the location block of a listing.
type Address struct {
	City    string `json:"city"`
	Area    string `json:"area,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// Property represents a rental listing. The scoring engine reads it and
// never mutates it; optional fields stay nil/zero when the source record
// did not carry them.
type Property struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	Price         *Price    `json:"price,omitempty"`
	Views         int       `json:"views"`
	BookingsCount int       `json:"bookings_count"`
	Availability  string    `json:"availability,omitempty"`
	Address       Address   `json:"address"`
	Amenities     JSONArray `json:"amenities,omitempty"`
	AILabel       string    `json:"ai_label,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ScoringContext carries dataset-relative normalization bounds for the
// quality scorer. It is recomputed per request and never persisted. The
// zero value disables range normalization (MaxPrice must exceed MinPrice)
// and leaves the scorers on their built-in defaults.
type ScoringContext struct {
	MinPrice         float64 `json:"min_price"`
	MaxPrice         float64 `json:"max_price"`
	ReferencePrice   float64 `json:"reference_price,omitempty"`
	MaxViews         int     `json:"max_views"`
	MaxBookingsCount int     `json:"max_bookings_count"`
}

// ScoredProperty pairs a listing with its viewer-independent quality score.
type ScoredProperty struct {
	Property
	QualityScore int `json:"quality_score"`
}

// JSONArray represents a JSON array column (amenities)
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
