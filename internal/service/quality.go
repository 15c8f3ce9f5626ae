package service

import (
	"math"
	"strings"

	"core/internal/model"
	"core/internal/utils"
)

// Fallback normalization constants used when the caller supplies no
// scoring context (or an unusable one).
const (
	// DefaultReferencePrice anchors the affordability curve: a monthly
	// price equal to the reference scores exactly 0.5. Currency-agnostic,
	// tune per deployment.
	DefaultReferencePrice = 50000.0

	// DefaultMaxViews and DefaultMaxBookings cap the demand normalization
	// when no dataset-relative ceiling is known.
	DefaultMaxViews    = 1000.0
	DefaultMaxBookings = 50.0
)

// QualityWeights defines coefficients for combining the quality sub-scores.
type QualityWeights struct {
	Rating       float64
	Price        float64
	Demand       float64
	Availability float64
}

// DefaultQualityWeights returns the production baseline.
func DefaultQualityWeights() QualityWeights {
	return QualityWeights{
		Rating:       0.35,
		Price:        0.25,
		Demand:       0.25,
		Availability: 0.15,
	}
}

// QualityScorer computes the viewer-independent 0..100 quality score used
// to rank listings by intrinsic merit. It is deliberately separate from
// the recommendation Ranker: one measures absolute quality, the other
// relative personalization, and they share no scoring state.
type QualityScorer struct {
	weights QualityWeights
}

// NewQualityScorer creates a scorer with the given combination weights.
func NewQualityScorer(w QualityWeights) *QualityScorer {
	return &QualityScorer{weights: w}
}

// Score computes the quality score for one property. It is total: missing
// or malformed fields contribute their documented neutral defaults, the
// context may be nil, and the result is always in [0, 100]. Rounding is
// half-away-from-zero.
func (s *QualityScorer) Score(p *model.Property, ctx *model.ScoringContext) int {
	combined := s.weights.Rating*s.ratingScore(p) +
		s.weights.Price*s.priceScore(p, ctx) +
		s.weights.Demand*s.demandScore(p, ctx) +
		s.weights.Availability*s.availabilityScore(p)

	return int(math.Round(utils.Clamp01(combined) * 100))
}

// ratingScore maps the 0-5 star rating onto the unit interval. An absent
// or non-finite rating counts as 0.
func (s *QualityScorer) ratingScore(p *model.Property) float64 {
	if p.Rating == nil {
		return 0
	}
	return utils.Clamp01(utils.SafeNum(*p.Rating) / 5)
}

// priceScore converts the monthly price into a 0..1 affordability score
// (cheaper is closer to 1). Three fallbacks, in order: dataset range
// normalization when the context carries a real price spread, then the
// reference curve ref/(price+ref), then the same curve on the default
// reference. A property with no usable price scores neutral 0.5.
func (s *QualityScorer) priceScore(p *model.Property, ctx *model.ScoringContext) float64 {
	price, ok := monthlyPrice(p)
	if !ok {
		return 0.5
	}

	if ctx != nil {
		minPrice := utils.SafeNum(ctx.MinPrice)
		maxPrice := utils.SafeNum(ctx.MaxPrice)
		if maxPrice > minPrice {
			return utils.Clamp01(1 - (price-minPrice)/(maxPrice-minPrice))
		}
		if ref := utils.SafeNum(ctx.ReferencePrice); ref > 0 {
			return utils.Clamp01(ref / (price + ref))
		}
	}

	return utils.Clamp01(DefaultReferencePrice / (price + DefaultReferencePrice))
}

// demandScore averages log-compressed view and booking ratios. The log1p
// compression keeps one viral listing from dominating the score.
func (s *QualityScorer) demandScore(p *model.Property, ctx *model.ScoringContext) float64 {
	maxViews := DefaultMaxViews
	maxBookings := DefaultMaxBookings
	if ctx != nil {
		if v := float64(ctx.MaxViews); v > 0 {
			maxViews = v
		}
		if b := float64(ctx.MaxBookingsCount); b > 0 {
			maxBookings = b
		}
	}

	views := utils.Clamp01(math.Log1p(nonNegative(p.Views)) / math.Log1p(maxViews))
	bookings := utils.Clamp01(math.Log1p(nonNegative(p.BookingsCount)) / math.Log1p(maxBookings))

	return (views + bookings) / 2
}

// availabilityScore maps the availability enum to a fixed sub-score.
// Unknown or absent states score neutral, same as maintenance.
func (s *QualityScorer) availabilityScore(p *model.Property) float64 {
	switch strings.ToLower(strings.TrimSpace(p.Availability)) {
	case model.AvailabilityAvailable:
		return 1.0
	case model.AvailabilityBooked:
		return 0.0
	default:
		return 0.5
	}
}

// monthlyPrice returns the usable monthly price of a listing. A price is
// usable when the block exists and the monthly value is finite and
// positive.
func monthlyPrice(p *model.Property) (float64, bool) {
	if p.Price == nil {
		return 0, false
	}
	m := utils.SafeNum(p.Price.Monthly)
	if m <= 0 {
		return 0, false
	}
	return m, true
}

func nonNegative(v int) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}
