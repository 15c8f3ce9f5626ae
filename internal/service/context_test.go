package service

import (
	"testing"

	"core/internal/model"
)

func TestBuildScoringContext(t *testing.T) {
	props := []model.Property{
		{ID: "a", Price: &model.Price{Monthly: 12000}, Views: 10, BookingsCount: 2},
		{ID: "b", Price: &model.Price{Monthly: 8000}, Views: 430, BookingsCount: 9},
		{ID: "c"},                                    // no price block
		{ID: "d", Price: &model.Price{Monthly: -1}}, // unusable price
	}

	sc := BuildScoringContext(props)

	if sc.MinPrice != 8000 || sc.MaxPrice != 12000 {
		t.Fatalf("price range = [%f, %f], want [8000, 12000]", sc.MinPrice, sc.MaxPrice)
	}
	if sc.MaxViews != 430 {
		t.Fatalf("MaxViews = %d, want 430", sc.MaxViews)
	}
	if sc.MaxBookingsCount != 9 {
		t.Fatalf("MaxBookingsCount = %d, want 9", sc.MaxBookingsCount)
	}
}

func TestBuildScoringContext_OrderIndependent(t *testing.T) {
	props := []model.Property{
		{ID: "a", Price: &model.Price{Monthly: 500}, Views: 3},
		{ID: "b", Price: &model.Price{Monthly: 9000}, Views: 77, BookingsCount: 4},
		{ID: "c", Price: &model.Price{Monthly: 2500}},
	}
	reversed := []model.Property{props[2], props[1], props[0]}

	if BuildScoringContext(props) != BuildScoringContext(reversed) {
		t.Fatal("context differs when input order changes")
	}
}

func TestBuildScoringContext_EmptyInput(t *testing.T) {
	sc := BuildScoringContext(nil)

	if sc.MinPrice != 0 || sc.MaxPrice != 0 {
		t.Fatalf("empty input produced price range [%f, %f], want [0, 0]", sc.MinPrice, sc.MaxPrice)
	}
	// floors keep log ratios well-defined downstream
	if sc.MaxViews != 1 || sc.MaxBookingsCount != 1 {
		t.Fatalf("floors = (%d, %d), want (1, 1)", sc.MaxViews, sc.MaxBookingsCount)
	}
}
