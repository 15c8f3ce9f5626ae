package service

import "core/internal/model"

// BuildScoringContext scans a property collection once and derives the
// dataset-relative extremes the quality scorer normalizes against: min and
// max monthly price over listings with a usable price, and maximum views
// and bookings floored at 1 to keep the log ratios well-defined. The
// result depends only on the set of properties, not their order.
func BuildScoringContext(properties []model.Property) model.ScoringContext {
	sc := model.ScoringContext{
		MaxViews:         1,
		MaxBookingsCount: 1,
	}

	havePrice := false
	for i := range properties {
		p := &properties[i]

		if m, ok := monthlyPrice(p); ok {
			if !havePrice {
				sc.MinPrice = m
				sc.MaxPrice = m
				havePrice = true
			} else {
				if m < sc.MinPrice {
					sc.MinPrice = m
				}
				if m > sc.MaxPrice {
					sc.MaxPrice = m
				}
			}
		}

		if p.Views > sc.MaxViews {
			sc.MaxViews = p.Views
		}
		if p.BookingsCount > sc.MaxBookingsCount {
			sc.MaxBookingsCount = p.BookingsCount
		}
	}

	return sc
}
