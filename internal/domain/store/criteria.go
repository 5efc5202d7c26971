package store

import (
	"math"
	"strings"
	"time"
)

const (
	DefaultTake = 30
	MaxTake     = 100
)

type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortRatingAsc   SortKey = "rating_asc"
	SortRatingDesc  SortKey = "rating_desc"
)

// ParseSort maps unknown or empty values to SortRecommended.
func ParseSort(v string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(v))) {
	case SortRatingAsc:
		return SortRatingAsc
	case SortRatingDesc:
		return SortRatingDesc
	default:
		return SortRecommended
	}
}

// Criteria describes one store search.
type Criteria struct {
	Q         string
	MinRating float64
	OnlyOpen  bool
	Sort      SortKey
	Take      int
	Skip      int

	// Radius in km plus the requester position. All three are needed for
	// the proximity search.
	Distance *float64
	UserLat  *float64
	UserLng  *float64
}

// Normalize fills defaults and clamps values into a safe range.
func (c Criteria) Normalize() Criteria {
	c.Q = strings.TrimSpace(c.Q)
	if c.MinRating < 0 || math.IsNaN(c.MinRating) {
		c.MinRating = 0
	}
	if c.Take <= 0 {
		c.Take = DefaultTake
	}
	if c.Take > MaxTake {
		c.Take = MaxTake
	}
	if c.Skip < 0 {
		c.Skip = 0
	}
	c.Sort = ParseSort(string(c.Sort))
	return c
}

// WantsDistance selects the proximity strategy. Any non-zero radius
// counts; a negative one matches nothing.
func (c Criteria) WantsDistance() bool {
	return c.Distance != nil && *c.Distance != 0 && !math.IsNaN(*c.Distance) &&
		c.UserLat != nil && c.UserLng != nil
}

// Item is one search hit. Distance is only set by the proximity search.
type Item struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Address      string    `db:"address" json:"address"`
	Phone        string    `db:"phone" json:"phone"`
	ImageURL     *string   `db:"image_url" json:"image_url"`
	Hours        *string   `db:"hours" json:"hours"`
	Lat          *float64  `db:"lat" json:"lat"`
	Lng          *float64  `db:"lng" json:"lng"`
	IsOpen       bool      `db:"is_open" json:"is_open"`
	Rating       float64   `db:"rating" json:"rating"`
	ReviewsCount int       `db:"reviews_count" json:"reviews_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	Distance     *float64  `db:"distance" json:"distance,omitempty"`
}

type Result struct {
	Items []Item `json:"items"`
	Total int64  `json:"total"`
}
