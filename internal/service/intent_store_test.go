package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"core/internal/model"
)

type fakeKV struct {
	m   map[string]string
	err error
}

func newFakeKV() *fakeKV {
	return &fakeKV{m: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.m[key]
	return v, ok, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string) error {
	if f.err != nil {
		return f.err
	}
	f.m[key] = value
	return nil
}

func TestIntentStore_LoadWithoutSave(t *testing.T) {
	s := NewSearchIntentStore(newFakeKV())

	got := s.Load(context.Background(), "u1")
	if got != (model.SearchIntent{}) {
		t.Fatalf("got %+v, want zero record", got)
	}
}

func TestIntentStore_SaveLoadRoundtrip(t *testing.T) {
	s := NewSearchIntentStore(newFakeKV())
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	if err := s.Save(context.Background(), "u1", "  Pune ", " 2 BHK with Balcony "); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := s.Load(context.Background(), "u1")
	want := model.SearchIntent{City: "pune", Query: "2 bhk with balcony", At: 1700000000000}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// the anonymous slot is separate
	if anon := s.Load(context.Background(), ""); !anon.IsZero() {
		t.Fatalf("anonymous slot unexpectedly holds %+v", anon)
	}
}

func TestIntentStore_OverwritesSlot(t *testing.T) {
	s := NewSearchIntentStore(newFakeKV())

	ctx := context.Background()
	if err := s.Save(ctx, "u1", "Pune", "2bhk"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(ctx, "u1", "Mumbai", "studio"); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got := s.Load(ctx, "u1")
	if got.City != "mumbai" || got.Query != "studio" {
		t.Fatalf("slot holds %+v, want the latest search", got)
	}
}

func TestIntentStore_MalformedValueIsSwallowed(t *testing.T) {
	kv := newFakeKV()
	kv.m["lastSearch:u1"] = `{"city": not json`
	s := NewSearchIntentStore(kv)

	if got := s.Load(context.Background(), "u1"); got != (model.SearchIntent{}) {
		t.Fatalf("malformed value produced %+v, want zero record", got)
	}
}

func TestIntentStore_BackendErrorIsSwallowedOnLoad(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("disk on fire")
	s := NewSearchIntentStore(kv)

	if got := s.Load(context.Background(), "u1"); got != (model.SearchIntent{}) {
		t.Fatalf("backend error produced %+v, want zero record", got)
	}
}
