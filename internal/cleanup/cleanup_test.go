package cleanup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakePruner returns fixed IDs and records the calls it saw.
type fakePruner struct {
	old    []string
	excess []string
	err    error
	calls  []string
	dryRun []bool
}

func (f *fakePruner) PruneOlderThan(days int, dryRun bool) ([]string, error) {
	f.calls = append(f.calls, "age")
	f.dryRun = append(f.dryRun, dryRun)
	return f.old, f.err
}

func (f *fakePruner) PruneKeepRecent(keep int, dryRun bool) ([]string, error) {
	f.calls = append(f.calls, "keep")
	f.dryRun = append(f.dryRun, dryRun)
	return f.excess, nil
}

func writeJournal(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("writing journal: %v", err)
	}
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading journal: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestPrune_RemovesDivesAndJournalLines(t *testing.T) {
	path := writeJournal(t,
		`{"event":"dive_started","dive":"old"}`,
		`{"event":"spawn","dive":"old"}`,
		`{"event":"dive_started","dive":"new"}`,
	)
	store := &fakePruner{old: []string{"old"}}

	rep, err := Prune(store, path, Policy{MaxAgeDays: 30}, false)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if len(rep.Dives) != 1 || rep.Dives[0] != "old" {
		t.Errorf("Dives = %v, want [old]", rep.Dives)
	}
	if rep.JournalLines != 2 {
		t.Errorf("JournalLines = %d, want 2", rep.JournalLines)
	}

	lines := readLines(t, path)
	if len(lines) != 1 || !strings.Contains(lines[0], `"new"`) {
		t.Errorf("journal after prune = %v", lines)
	}
}

func TestPrune_DryRunLeavesJournal(t *testing.T) {
	path := writeJournal(t, `{"event":"spawn","dive":"old"}`, `{"event":"spawn","dive":"new"}`)
	store := &fakePruner{old: []string{"old"}}

	rep, err := Prune(store, path, Policy{MaxAgeDays: 30}, true)
	if err != nil {
		t.Fatalf("Prune dry-run failed: %v", err)
	}
	if rep.JournalLines != 1 {
		t.Errorf("JournalLines = %d, want 1", rep.JournalLines)
	}
	if len(readLines(t, path)) != 2 {
		t.Error("dry run modified the journal")
	}
	if !store.dryRun[0] {
		t.Error("dry run not passed to the store")
	}
}

func TestPrune_CombinesPolicies(t *testing.T) {
	store := &fakePruner{old: []string{"a"}, excess: []string{"a", "b"}}
	rep, err := Prune(store, "", Policy{MaxAgeDays: 7, Keep: 10}, false)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if strings.Join(store.calls, ",") != "age,keep" {
		t.Errorf("calls = %v", store.calls)
	}
	if strings.Join(rep.Dives, ",") != "a,b" {
		t.Errorf("Dives = %v, want [a b]", rep.Dives)
	}
}

func TestPrune_ZeroPolicyDoesNothing(t *testing.T) {
	store := &fakePruner{old: []string{"a"}}
	rep, err := Prune(store, "", Policy{}, false)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if len(store.calls) != 0 || len(rep.Dives) != 0 {
		t.Errorf("expected no pruning, got calls=%v dives=%v", store.calls, rep.Dives)
	}
}

func TestPrune_StoreError(t *testing.T) {
	store := &fakePruner{err: errors.New("locked")}
	if _, err := Prune(store, "", Policy{MaxAgeDays: 1}, false); err == nil {
		t.Error("expected store error")
	}
}

func TestPruneJournal_MissingFile(t *testing.T) {
	n, err := PruneJournal(filepath.Join(t.TempDir(), "nope.jsonl"), map[string]bool{"a": true}, false)
	if err != nil {
		t.Fatalf("PruneJournal failed: %v", err)
	}
	if n != 0 {
		t.Errorf("dropped = %d, want 0", n)
	}
}

func TestPruneJournal_KeepsUnparsableLines(t *testing.T) {
	path := writeJournal(t, `garbage`, `{"event":"tap","dive":"a"}`)
	n, err := PruneJournal(path, map[string]bool{"a": true}, false)
	if err != nil {
		t.Fatalf("PruneJournal failed: %v", err)
	}
	if n != 1 {
		t.Errorf("dropped = %d, want 1", n)
	}
	lines := readLines(t, path)
	if len(lines) != 1 || lines[0] != "garbage" {
		t.Errorf("journal = %v, want [garbage]", lines)
	}
}
