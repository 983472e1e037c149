// Package journal keeps an append-only record of fired warnings. The hook
// writes it best-effort; status and watch read it back for display.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ctxsentry/ctxsentry/internal/util"
)

// Filename is the journal file under the project's .claude directory.
const Filename = ".context_sentry_journal.jsonl"

// EventFired marks a warning emission. The journal only records fires;
// suppressed evaluations happen on every tool call and would swamp it.
const EventFired = "fired"

// Entry is one journal record.
type Entry struct {
	ID          string  `json:"id"`
	Timestamp   string  `json:"ts"`
	Event       string  `json:"event"`
	SessionID   string  `json:"session_id,omitempty"`
	HookEvent   string  `json:"hook_event,omitempty"`
	SizeKB      float64 `json:"size_kb"`
	ThresholdKB int     `json:"threshold_kb"`
	ElapsedMin  float64 `json:"elapsed_min"`
	GrowthKB    float64 `json:"growth_kb"`
	Transcript  string  `json:"transcript,omitempty"`
}

// Time parses the entry timestamp. Returns the zero time for entries
// written by hand or damaged in place.
func (e Entry) Time() time.Time {
	t, err := time.Parse(time.RFC3339, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Journal appends to and reads one project's journal file.
type Journal struct {
	path string
	mu   sync.Mutex
}

// New returns the journal for a project root.
func New(projectDir string) *Journal {
	return &Journal{path: filepath.Join(projectDir, ".claude", Filename)}
}

// Path returns the journal file location.
func (j *Journal) Path() string {
	return j.path
}

// Append writes one entry. A missing ID or timestamp is filled in.
func (j *Journal) Append(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling journal entry: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := util.EnsureParentDir(j.path); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing journal entry: %w", err)
	}
	return nil
}

// ReadAll returns all entries oldest first. A missing journal is empty,
// and lines that no longer parse are skipped rather than fatal.
func (j *Journal) ReadAll() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	return entries, nil
}

// Tail returns the most recent n entries, oldest first.
func (j *Journal) Tail(n int) ([]Entry, error) {
	entries, err := j.ReadAll()
	if err != nil {
		return nil, err
	}
	if n <= 0 || len(entries) <= n {
		return entries, nil
	}
	return entries[len(entries)-n:], nil
}
