// Package cleanup implements pruning of old dives from the history
// database and the journal.
package cleanup

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Pruner is the part of the history store cleanup needs.
type Pruner interface {
	PruneOlderThan(days int, dryRun bool) ([]string, error)
	PruneKeepRecent(keep int, dryRun bool) ([]string, error)
}

// Policy selects which dives to prune. Zero fields are ignored.
type Policy struct {
	MaxAgeDays int
	Keep       int
}

// Report lists what a prune removed (or would remove on a dry run).
type Report struct {
	Dives        []string
	JournalLines int
}

// Prune removes dives matched by the policy from the store and drops their
// entries from the journal at journalPath. If dryRun is true nothing is
// modified.
func Prune(store Pruner, journalPath string, p Policy, dryRun bool) (Report, error) {
	var rep Report
	seen := map[string]bool{}
	add := func(ids []string) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				rep.Dives = append(rep.Dives, id)
			}
		}
	}

	if p.MaxAgeDays > 0 {
		ids, err := store.PruneOlderThan(p.MaxAgeDays, dryRun)
		add(ids)
		if err != nil {
			return rep, err
		}
	}
	if p.Keep > 0 {
		ids, err := store.PruneKeepRecent(p.Keep, dryRun)
		add(ids)
		if err != nil {
			return rep, err
		}
	}

	if len(seen) == 0 || journalPath == "" {
		return rep, nil
	}
	n, err := PruneJournal(journalPath, seen, dryRun)
	rep.JournalLines = n
	return rep, err
}

// PruneJournal drops the journal lines that belong to the given dives.
// Lines that do not parse are kept. The file is rewritten through a
// temporary file in the same directory. Returns the number of dropped lines.
func PruneJournal(path string, dives map[string]bool, dryRun bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	var kept [][]byte
	dropped := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		var entry struct {
			Dive string `json:"dive"`
		}
		if json.Unmarshal(line, &entry) == nil && dives[entry.Dive] {
			dropped++
			continue
		}
		kept = append(kept, append([]byte(nil), line...))
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading journal: %w", err)
	}

	if dryRun || dropped == 0 {
		return dropped, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".log-*.jsonl")
	if err != nil {
		return 0, fmt.Errorf("creating temp journal: %w", err)
	}
	w := bufio.NewWriter(tmp)
	for _, line := range kept {
		_, _ = w.Write(line)
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("writing journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("closing journal: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("replacing journal: %w", err)
	}
	return dropped, nil
}
