package service

import (
	"math"
	"testing"

	"core/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func sampleProperty() *model.Property {
	return &model.Property{
		ID:           "p-100",
		Title:        "2BHK near the park",
		Rating:       floatPtr(5),
		Price:        &model.Price{Monthly: 10000},
		Availability: model.AvailabilityAvailable,
		Address:      model.Address{City: "Pune"},
	}
}

func TestQualityScore_DefaultReferenceCurve(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())
	p := sampleProperty()

	// rating 1.0, price 50000/60000 = 0.8333, demand 0, availability 1.0
	// => 0.35 + 0.2083 + 0 + 0.15 = 0.7083 => 71
	if got := s.Score(p, nil); got != 71 {
		t.Fatalf("score = %d, want 71", got)
	}

	p.Availability = model.AvailabilityBooked
	// => 0.35 + 0.2083 + 0 + 0 = 0.5583 => 56
	if got := s.Score(p, nil); got != 56 {
		t.Fatalf("score with booked = %d, want 56", got)
	}
}

func TestQualityScore_TotalAndBounded(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())
	nan := math.NaN()

	tests := []struct {
		name string
		p    *model.Property
		ctx  *model.ScoringContext
	}{
		{"empty property", &model.Property{}, nil},
		{"nan rating", &model.Property{Rating: &nan}, nil},
		{"negative price", &model.Property{Price: &model.Price{Monthly: -500}}, nil},
		{"inverted range context", sampleProperty(), &model.ScoringContext{MinPrice: 900, MaxPrice: 100}},
		{"zero context", sampleProperty(), &model.ScoringContext{}},
		{"negative counts", &model.Property{Views: -3, BookingsCount: -1}, &model.ScoringContext{}},
		{"huge values", &model.Property{Rating: floatPtr(99), Price: &model.Price{Monthly: 1e12}, Views: 1 << 40}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.p, tt.ctx)
			if got < 0 || got > 100 {
				t.Fatalf("score = %d, want within [0,100]", got)
			}
		})
	}
}

func TestQualityScore_Idempotent(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())
	p := sampleProperty()
	ctx := &model.ScoringContext{MinPrice: 5000, MaxPrice: 25000, MaxViews: 400, MaxBookingsCount: 12}

	first := s.Score(p, ctx)
	for i := 0; i < 10; i++ {
		if got := s.Score(p, ctx); got != first {
			t.Fatalf("call %d returned %d, first call returned %d", i, got, first)
		}
	}
}

func TestQualityScore_RatingMonotonic(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())

	prev := -1
	for rating := 0.0; rating <= 5.0; rating += 0.5 {
		p := sampleProperty()
		p.Rating = floatPtr(rating)
		got := s.Score(p, nil)
		if got < prev {
			t.Fatalf("score decreased from %d to %d when rating rose to %.1f", prev, got, rating)
		}
		prev = got
	}
}

func TestPriceScore_RangeMode(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())
	ctx := &model.ScoringContext{MinPrice: 100, MaxPrice: 1100}

	tests := []struct {
		monthly float64
		want    float64
	}{
		{100, 1.0},  // cheapest in range
		{600, 0.5},  // midpoint
		{1100, 0.0}, // most expensive
		{5000, 0.0}, // above range, clamped
	}
	for _, tt := range tests {
		p := &model.Property{Price: &model.Price{Monthly: tt.monthly}}
		if got := s.priceScore(p, ctx); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("priceScore(%.0f) = %f, want %f", tt.monthly, got, tt.want)
		}
	}
}

func TestPriceScore_ReferenceCurveBoundary(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())
	ctx := &model.ScoringContext{ReferencePrice: 20000}

	p := &model.Property{Price: &model.Price{Monthly: 20000}}
	if got := s.priceScore(p, ctx); got != 0.5 {
		t.Fatalf("price equal to reference scored %f, want exactly 0.5", got)
	}
}

func TestPriceScore_MissingPriceIsNeutral(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())

	for _, p := range []*model.Property{
		{},
		{Price: &model.Price{Monthly: 0}},
		{Price: &model.Price{Monthly: -100}},
		{Price: &model.Price{Monthly: math.NaN()}},
	} {
		if got := s.priceScore(p, nil); got != 0.5 {
			t.Fatalf("unusable price scored %f, want 0.5", got)
		}
	}
}

func TestPriceScore_CheaperNeverScoresLower(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())
	ctx := &model.ScoringContext{MinPrice: 1000, MaxPrice: 90000}

	prev := 2.0
	for monthly := 1000.0; monthly <= 90000; monthly += 4450 {
		p := &model.Property{Price: &model.Price{Monthly: monthly}}
		got := s.priceScore(p, ctx)
		if got > prev {
			t.Fatalf("price %.0f scored %f, above cheaper listing's %f", monthly, got, prev)
		}
		prev = got
	}
}

func TestAvailabilityScore(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())

	tests := []struct {
		availability string
		want         float64
	}{
		{model.AvailabilityAvailable, 1.0},
		{model.AvailabilityBooked, 0.0},
		{model.AvailabilityMaintenance, 0.5},
		{"", 0.5},
		{"demolished", 0.5},
		{"  Available  ", 1.0}, // trimmed and case-insensitive
	}
	for _, tt := range tests {
		p := &model.Property{Availability: tt.availability}
		if got := s.availabilityScore(p); got != tt.want {
			t.Errorf("availabilityScore(%q) = %f, want %f", tt.availability, got, tt.want)
		}
	}
}

func TestDemandScore(t *testing.T) {
	s := NewQualityScorer(DefaultQualityWeights())

	zero := &model.Property{}
	if got := s.demandScore(zero, nil); got != 0 {
		t.Fatalf("no views or bookings scored %f, want 0", got)
	}

	ctx := &model.ScoringContext{MaxViews: 400, MaxBookingsCount: 12}
	saturated := &model.Property{Views: 400, BookingsCount: 12}
	if got := s.demandScore(saturated, ctx); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("saturated demand scored %f, want 1.0", got)
	}

	over := &model.Property{Views: 4000, BookingsCount: 500}
	if got := s.demandScore(over, ctx); got != 1.0 {
		t.Fatalf("demand above ceilings scored %f, want clamped 1.0", got)
	}

	// log compression: the first views are worth more than the later ones
	low := s.demandScore(&model.Property{Views: 10}, ctx)
	high := s.demandScore(&model.Property{Views: 100}, ctx)
	if high >= low*10 {
		t.Fatalf("demand scaled linearly: 10 views %f vs 100 views %f", low, high)
	}
}
