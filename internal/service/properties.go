package service

import (
	"context"
	"fmt"
	"sort"

	"core/internal/model"
)

// PropertyRepo is the listing repository contract the property service
// depends on.
type PropertyRepo interface {
	PropertySource
	ListProperties(ctx context.Context, f model.PropertyFilter, limit, offset int) ([]model.Property, int, error)
	GetPropertyByID(ctx context.Context, id string) (*model.Property, error)
}

// Listing sort modes.
const (
	SortQuality   = "quality"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRecent    = "recent"
)

// PropertyService serves listing pages, attaching the quality score to
// every item and optionally ordering by it.
type PropertyService struct {
	repo        PropertyRepo
	quality     *QualityScorer
	snapshotMax int
}

// NewPropertyService creates a new property service.
func NewPropertyService(repo PropertyRepo, quality *QualityScorer, snapshotMax int) *PropertyService {
	if snapshotMax <= 0 {
		snapshotMax = 200
	}
	return &PropertyService{repo: repo, quality: quality, snapshotMax: snapshotMax}
}

// List returns one page of listings with quality scores. Database sorts
// are pushed down to the repository; quality sort scores a bounded
// snapshot of the filtered set in memory, since the score depends on
// dataset-relative context the database does not have.
func (s *PropertyService) List(ctx context.Context, f model.PropertyFilter, limit, offset int) ([]model.ScoredProperty, int, error) {
	if f.Sort == SortQuality {
		return s.listByQuality(ctx, f, limit, offset)
	}

	properties, total, err := s.repo.ListProperties(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}

	sc := BuildScoringContext(properties)
	return s.scoreAll(properties, &sc), total, nil
}

func (s *PropertyService) listByQuality(ctx context.Context, f model.PropertyFilter, limit, offset int) ([]model.ScoredProperty, int, error) {
	properties, total, err := s.repo.ListProperties(ctx, f, s.snapshotMax, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}

	sc := BuildScoringContext(properties)
	scored := s.scoreAll(properties, &sc)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].QualityScore > scored[j].QualityScore
	})

	if offset > len(scored) {
		offset = len(scored)
	}
	end := offset + limit
	if end > len(scored) {
		end = len(scored)
	}
	return scored[offset:end], total, nil
}

// Get returns a single listing with its quality score, or nil when the ID
// is unknown. The score uses the default normalization since no dataset
// context exists for a single record.
func (s *PropertyService) Get(ctx context.Context, id string) (*model.ScoredProperty, error) {
	p, err := s.repo.GetPropertyByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property %s: %w", id, err)
	}
	if p == nil {
		return nil, nil
	}
	return &model.ScoredProperty{Property: *p, QualityScore: s.quality.Score(p, nil)}, nil
}

func (s *PropertyService) scoreAll(properties []model.Property, sc *model.ScoringContext) []model.ScoredProperty {
	out := make([]model.ScoredProperty, 0, len(properties))
	for i := range properties {
		out = append(out, model.ScoredProperty{
			Property:     properties[i],
			QualityScore: s.quality.Score(&properties[i], sc),
		})
	}
	return out
}
