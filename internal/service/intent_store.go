package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"core/internal/model"
	"core/internal/utils"
)

// KVStore is the narrow persistence contract the intent store requires.
// Get reports whether a value exists; the engine never distinguishes a
// missing value from a backend error beyond degrading to the default.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// intentKey is the well-known namespace key for the last-search slot.
const intentKey = "lastSearch"

// SearchIntentStore persists the single most recent search per user.
// One slot, overwrite-only: no history, no TTL. Concurrent saves race
// with last-writer-wins semantics, which is fine for advisory context.
type SearchIntentStore struct {
	kv  KVStore
	now func() time.Time
}

// NewSearchIntentStore creates a store over the given key-value backend.
func NewSearchIntentStore(kv KVStore) *SearchIntentStore {
	return &SearchIntentStore{kv: kv, now: time.Now}
}

func intentSlotKey(userID string) string {
	if userID == "" {
		return intentKey
	}
	return intentKey + ":" + userID
}

// Save overwrites the slot with the given search, stamped with the current
// time. City and query are stored trimmed and lowercased.
func (s *SearchIntentStore) Save(ctx context.Context, userID, city, query string) error {
	rec := model.SearchIntent{
		City:  utils.NormalizeTerm(city),
		Query: utils.NormalizeTerm(query),
		At:    s.now().UnixMilli(),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal search intent: %w", err)
	}
	if err := s.kv.Set(ctx, intentSlotKey(userID), string(b)); err != nil {
		return fmt.Errorf("persist search intent: %w", err)
	}
	return nil
}

// Load returns the last saved search, or the zero record when nothing was
// saved or the stored value cannot be decoded. Malformed data is swallowed
// on purpose: a lost intent is a conservative default, not a failure the
// user should see.
func (s *SearchIntentStore) Load(ctx context.Context, userID string) model.SearchIntent {
	raw, ok, err := s.kv.Get(ctx, intentSlotKey(userID))
	if err != nil || !ok {
		return model.SearchIntent{}
	}

	var rec model.SearchIntent
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return model.SearchIntent{}
	}
	return rec
}
