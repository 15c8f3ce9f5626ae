package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"core/internal/model"
)

// PropertySource is the slice of the repository the recommendation flow
// needs: a bounded snapshot of current listings to rank.
type PropertySource interface {
	SnapshotForRanking(ctx context.Context, max int) ([]model.Property, error)
}

// FeedbackLog records user actions taken on a recommendation set.
type FeedbackLog interface {
	LogFeedback(ctx context.Context, recommendationID, propertyID, action string) error
}

// RecommendService ties the ranker to the property snapshot and the
// persisted search intent.
type RecommendService struct {
	source      PropertySource
	intents     *SearchIntentStore
	ranker      *Ranker
	feedback    FeedbackLog
	snapshotMax int
}

// NewRecommendService creates a new recommendation service.
func NewRecommendService(source PropertySource, intents *SearchIntentStore, ranker *Ranker, feedback FeedbackLog, snapshotMax int) *RecommendService {
	if snapshotMax <= 0 {
		snapshotMax = 200
	}
	return &RecommendService{
		source:      source,
		intents:     intents,
		ranker:      ranker,
		feedback:    feedback,
		snapshotMax: snapshotMax,
	}
}

// Recommend ranks the current listing snapshot against the caller's
// context. When the request carries no explicit search intent, the user's
// persisted last search is used instead; when that is empty too, ranking
// proceeds on the remaining signals.
func (s *RecommendService) Recommend(ctx context.Context, req *model.RecommendRequest) (*model.RecommendResponse, error) {
	start := time.Now()

	properties, err := s.source.SnapshotForRanking(ctx, s.snapshotMax)
	if err != nil {
		return nil, fmt.Errorf("load property snapshot: %w", err)
	}

	intent := req.SearchIntent
	if intent == nil {
		if last := s.intents.Load(ctx, req.UserID); !last.IsZero() {
			intent = &last
		}
	}

	results := s.ranker.Rank(properties, RankOptions{
		UserID:       req.UserID,
		FavoriteIDs:  req.FavoriteIDs,
		SearchIntent: intent,
		Limit:        req.Limit,
		Mode:         req.Mode,
	})

	return &model.RecommendResponse{
		RecommendationID: uuid.NewString(),
		Results:          results,
		Total:            len(results),
		Took:             time.Since(start).Milliseconds(),
	}, nil
}

// SaveIntent records the search a user just issued.
func (s *RecommendService) SaveIntent(ctx context.Context, userID, city, query string) error {
	return s.intents.Save(ctx, userID, city, query)
}

// LoadIntent returns the user's persisted last search.
func (s *RecommendService) LoadIntent(ctx context.Context, userID string) model.SearchIntent {
	return s.intents.Load(ctx, userID)
}

// LogFeedback records a user action on a recommendation.
func (s *RecommendService) LogFeedback(ctx context.Context, recommendationID, propertyID, action string) error {
	return s.feedback.LogFeedback(ctx, recommendationID, propertyID, action)
}
