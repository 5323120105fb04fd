package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/tier"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func result(id string, score float64, ended time.Time) dive.Result {
	return dive.Result{
		ID:        id,
		Variant:   "week1",
		StartedAt: ended.Add(-40 * time.Minute),
		EndedAt:   ended,
		Elapsed:   40 * time.Minute,
		Score:     score,
		Spawned:   120,
		Taps:      3,
		Reason:    dive.ReasonDuration,
		Tier:      tier.Classify(score),
	}
}

func TestRecordAndGetDive(t *testing.T) {
	store := newTestStore(t)
	ended := time.Date(2026, 5, 4, 21, 30, 15, 500, time.UTC)

	rec, err := store.RecordDive(result("d1", 23.5, ended))
	if err != nil {
		t.Fatalf("RecordDive failed: %v", err)
	}
	if rec.TierName != "deep" {
		t.Errorf("TierName = %q, want deep", rec.TierName)
	}

	got, err := store.GetDive("d1")
	if err != nil {
		t.Fatalf("GetDive failed: %v", err)
	}
	if got.Variant != "week1" || got.Score != 23.5 || got.Taps != 3 || got.Spawned != 120 {
		t.Errorf("GetDive = %+v", got)
	}
	if !got.EndedAt.Equal(ended.Truncate(time.Second)) {
		t.Errorf("EndedAt = %v, want %v", got.EndedAt, ended.Truncate(time.Second))
	}
	if got.Elapsed() != 40*time.Minute {
		t.Errorf("Elapsed = %v, want 40m", got.Elapsed())
	}
	if got.Tier() != tier.DeepDiver {
		t.Errorf("Tier = %v, want DeepDiver", got.Tier().Label)
	}
	if got.Reason != "duration" {
		t.Errorf("Reason = %q, want duration", got.Reason)
	}
}

func TestRecordDiveAssignsID(t *testing.T) {
	store := newTestStore(t)
	rec, err := store.RecordDive(result("", 5, time.Now()))
	if err != nil {
		t.Fatalf("RecordDive failed: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if _, err := store.GetDive(rec.ID); err != nil {
		t.Errorf("GetDive(%s): %v", rec.ID, err)
	}
}

func TestGetDiveNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetDive("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := store.Latest(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest on empty store: err = %v, want ErrNotFound", err)
	}
	if _, err := store.Best(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Best on empty store: err = %v, want ErrNotFound", err)
	}
}

func TestLatestBestAndList(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, score := range []float64{12, 31, 4} {
		if _, err := store.RecordDive(result([]string{"a", "b", "c"}[i], score, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("RecordDive failed: %v", err)
		}
	}

	latest, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.ID != "c" {
		t.Errorf("Latest = %s, want c", latest.ID)
	}

	best, err := store.Best()
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best.ID != "b" || best.Tier() != tier.AbyssDiver {
		t.Errorf("Best = %s (%s), want b (abyss)", best.ID, best.TierName)
	}

	list, err := store.ListDives(2)
	if err != nil {
		t.Fatalf("ListDives failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		t.Errorf("ListDives = %+v", list)
	}
	if list[1].Tier != "abyss" {
		t.Errorf("list[1].Tier = %q, want abyss", list[1].Tier)
	}
}

func TestRecordDiveReplaces(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	if _, err := store.RecordDive(result("x", 3, now)); err != nil {
		t.Fatalf("RecordDive failed: %v", err)
	}
	if _, err := store.RecordDive(result("x", 15, now)); err != nil {
		t.Fatalf("RecordDive failed: %v", err)
	}
	n, _ := store.Count()
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
	got, _ := store.GetDive("x")
	if got.Score != 15 {
		t.Errorf("Score = %v, want 15", got.Score)
	}
}

func TestPruneOlderThan(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	if _, err := store.RecordDive(result("old", 10, now.AddDate(0, 0, -60))); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordDive(result("new", 10, now.AddDate(0, 0, -5))); err != nil {
		t.Fatal(err)
	}

	pruned, err := store.PruneOlderThan(30, true)
	if err != nil {
		t.Fatalf("PruneOlderThan dry-run failed: %v", err)
	}
	if len(pruned) != 1 || pruned[0] != "old" {
		t.Errorf("dry-run pruned = %v, want [old]", pruned)
	}
	if n, _ := store.Count(); n != 2 {
		t.Errorf("dry run deleted rows: Count = %d", n)
	}

	pruned, err = store.PruneOlderThan(30, false)
	if err != nil {
		t.Fatalf("PruneOlderThan failed: %v", err)
	}
	if len(pruned) != 1 || pruned[0] != "old" {
		t.Errorf("pruned = %v, want [old]", pruned)
	}
	if _, err := store.GetDive("old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old dive still present: %v", err)
	}
	if _, err := store.GetDive("new"); err != nil {
		t.Errorf("new dive missing: %v", err)
	}
}

func TestPruneKeepRecent(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c", "d"} {
		if _, err := store.RecordDive(result(id, 1, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}

	pruned, err := store.PruneKeepRecent(2, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}
	if len(pruned) != 2 || pruned[0] != "b" || pruned[1] != "a" {
		t.Errorf("pruned = %v, want [b a]", pruned)
	}
	if n, _ := store.Count(); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}

	pruned, err = store.PruneKeepRecent(5, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}
	if len(pruned) != 0 {
		t.Errorf("pruned = %v, want none", pruned)
	}
}
