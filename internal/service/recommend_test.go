package service

import (
	"context"
	"errors"
	"testing"

	"core/internal/model"
)

type fakeSource struct {
	props []model.Property
	err   error
}

func (f *fakeSource) SnapshotForRanking(ctx context.Context, max int) ([]model.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.props) > max {
		return f.props[:max], nil
	}
	return f.props, nil
}

type fakeFeedback struct {
	entries []string
}

func (f *fakeFeedback) LogFeedback(ctx context.Context, recommendationID, propertyID, action string) error {
	f.entries = append(f.entries, recommendationID+"/"+propertyID+"/"+action)
	return nil
}

func cityProps() []model.Property {
	return []model.Property{
		{ID: "mum-1", Title: "Sea view flat", Price: &model.Price{Monthly: 40000}, Address: model.Address{City: "Mumbai"}},
		{ID: "pun-1", Title: "Garden flat", Price: &model.Price{Monthly: 15000}, Address: model.Address{City: "Pune"}},
	}
}

func newTestRecommendService(source *fakeSource, kv *fakeKV) *RecommendService {
	return NewRecommendService(source, NewSearchIntentStore(kv), NewRanker(6), &fakeFeedback{}, 200)
}

func TestRecommend_FallsBackToStoredIntent(t *testing.T) {
	kv := newFakeKV()
	svc := newTestRecommendService(&fakeSource{props: cityProps()}, kv)

	ctx := context.Background()
	if err := svc.SaveIntent(ctx, "u1", "Pune", ""); err != nil {
		t.Fatalf("save intent: %v", err)
	}

	resp, err := svc.Recommend(ctx, &model.RecommendRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	if resp.RecommendationID == "" {
		t.Fatal("missing recommendation id")
	}
	if resp.Total != len(resp.Results) {
		t.Fatalf("total %d does not match %d results", resp.Total, len(resp.Results))
	}
	if resp.Results[0].Property.ID != "pun-1" {
		t.Fatalf("first result is %s, want pun-1 from the stored search", resp.Results[0].Property.ID)
	}
	if resp.Results[0].ReasonTag != ReasonSearches {
		t.Fatalf("reason = %q, want %q", resp.Results[0].ReasonTag, ReasonSearches)
	}
}

func TestRecommend_ExplicitIntentWins(t *testing.T) {
	kv := newFakeKV()
	svc := newTestRecommendService(&fakeSource{props: cityProps()}, kv)

	ctx := context.Background()
	if err := svc.SaveIntent(ctx, "u1", "Pune", ""); err != nil {
		t.Fatalf("save intent: %v", err)
	}

	resp, err := svc.Recommend(ctx, &model.RecommendRequest{
		UserID:       "u1",
		SearchIntent: &model.SearchIntent{City: "Mumbai"},
	})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if resp.Results[0].Property.ID != "mum-1" {
		t.Fatalf("first result is %s, want mum-1 from the explicit intent", resp.Results[0].Property.ID)
	}
}

func TestRecommend_AnonymousIsPreview(t *testing.T) {
	svc := newTestRecommendService(&fakeSource{props: cityProps()}, newFakeKV())

	resp, err := svc.Recommend(context.Background(), &model.RecommendRequest{})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	for _, res := range resp.Results {
		if !res.Preview {
			t.Fatal("anonymous request produced a non-preview result")
		}
	}
}

func TestRecommend_SourceError(t *testing.T) {
	svc := newTestRecommendService(&fakeSource{err: errors.New("db down")}, newFakeKV())

	if _, err := svc.Recommend(context.Background(), &model.RecommendRequest{UserID: "u1"}); err == nil {
		t.Fatal("expected error when the snapshot cannot be loaded")
	}
}

func TestRecommend_LogFeedback(t *testing.T) {
	feedback := &fakeFeedback{}
	svc := NewRecommendService(&fakeSource{}, NewSearchIntentStore(newFakeKV()), NewRanker(6), feedback, 200)

	if err := svc.LogFeedback(context.Background(), "rec-1", "pun-1", "click"); err != nil {
		t.Fatalf("log feedback: %v", err)
	}
	if len(feedback.entries) != 1 || feedback.entries[0] != "rec-1/pun-1/click" {
		t.Fatalf("feedback log holds %v", feedback.entries)
	}
}
