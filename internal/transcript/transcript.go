// Package transcript probes the session transcript artifact: the growing
// JSONL log Claude Code keeps per session.
package transcript

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnvTranscript overrides transcript discovery for status and watch. The
// hook path never needs it: the event payload carries the path.
const EnvTranscript = "CONTEXT_SENTRY_TRANSCRIPT"

// ErrNoTranscript indicates the project has no transcript on disk yet.
var ErrNoTranscript = errors.New("no transcript found for project")

// SizeKB returns the transcript size in kilobytes. Any stat failure is the
// caller's cue to abstain.
func SizeKB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat transcript: %w", err)
	}
	return float64(info.Size()) / 1024, nil
}

// ProjectsDir returns Claude Code's transcript directory for a project:
// ~/.claude/projects/<munged absolute path>, where every non-alphanumeric
// rune becomes a dash.
func ProjectsDir(projectDir string) (string, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("resolving project path: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home: %w", err)
	}
	return filepath.Join(home, ".claude", "projects", mungePath(abs)), nil
}

func mungePath(p string) string {
	var b strings.Builder
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Locate finds the transcript for a project: the env override when set,
// otherwise the most recently modified .jsonl in the project's transcript
// directory.
func Locate(projectDir string) (string, error) {
	if p := os.Getenv(EnvTranscript); p != "" {
		return p, nil
	}

	dir, err := ProjectsDir(projectDir)
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoTranscript
		}
		return "", fmt.Errorf("reading transcript dir: %w", err)
	}

	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, e.Name())
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", ErrNoTranscript
	}
	return newest, nil
}

// Info describes a transcript for operator display. Never used on the
// hook path, which only ever stats.
type Info struct {
	Path    string
	SizeKB  float64
	ModTime time.Time
	Entries int
}

// Stat gathers display info for a transcript, including its entry count.
func Stat(path string) (*Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat transcript: %w", err)
	}

	entries, err := countLines(path)
	if err != nil {
		return nil, err
	}

	return &Info{
		Path:    path,
		SizeKB:  float64(fi.Size()) / 1024,
		ModTime: fi.ModTime(),
		Entries: entries,
	}, nil
}

// countLines counts newlines in fixed-size chunks. Transcript lines can be
// arbitrarily long, so line-oriented readers are the wrong tool.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 32*1024)
	count := 0
	for {
		n, err := f.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' {
				count++
			}
		}
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return 0, fmt.Errorf("reading transcript: %w", err)
		}
	}
}
