// Package claude reads and edits the project's Claude Code settings file,
// touching only the hook entries the sentry owns.
package claude

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctxsentry/ctxsentry/internal/util"
)

// SettingsFile is the settings path relative to the project root.
const SettingsFile = ".claude/settings.json"

// HookAction is one command Claude Code runs when a matcher fires.
type HookAction struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// HookMatcher groups actions under a tool-name pattern. An empty matcher
// matches every tool.
type HookMatcher struct {
	Matcher string       `json:"matcher,omitempty"`
	Hooks   []HookAction `json:"hooks"`
}

// Settings is a loose view of settings.json: hook entries are typed,
// everything else is carried through raw so a rewrite never drops user
// configuration (permissions, env, model, ...).
type Settings struct {
	hooks map[string][]HookMatcher
	extra map[string]json.RawMessage
}

// SettingsPath returns the settings file location for a project root.
func SettingsPath(projectDir string) string {
	return filepath.Join(projectDir, filepath.FromSlash(SettingsFile))
}

// LoadSettings reads settings.json. A missing file yields empty settings;
// a file we cannot faithfully rewrite is an error, never silently dropped.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{
		hooks: make(map[string][]HookMatcher),
		extra: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := json.Unmarshal(data, &s.extra); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if raw, ok := s.extra["hooks"]; ok {
		if err := json.Unmarshal(raw, &s.hooks); err != nil {
			return nil, fmt.Errorf("parsing settings hooks: %w", err)
		}
		delete(s.extra, "hooks")
	}
	return s, nil
}

// Save writes the settings back, pretty-printed, creating .claude/ when
// needed.
func (s *Settings) Save(path string) error {
	merged := make(map[string]interface{}, len(s.extra)+1)
	for k, v := range s.extra {
		merged[k] = v
	}
	if len(s.hooks) > 0 {
		merged["hooks"] = s.hooks
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := util.EnsureParentDir(path); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Hooks returns the matcher groups registered for an event.
func (s *Settings) Hooks(event string) []HookMatcher {
	return s.hooks[event]
}

// HasHookCommand reports whether the command is already registered for the
// event under any matcher.
func (s *Settings) HasHookCommand(event, command string) bool {
	for _, m := range s.hooks[event] {
		for _, h := range m.Hooks {
			if h.Command == command {
				return true
			}
		}
	}
	return false
}

// AddHook registers a command under the event and matcher. Returns false
// when it was already present. An existing group with the same matcher is
// extended rather than duplicated.
func (s *Settings) AddHook(event, matcher, command string) bool {
	if s.HasHookCommand(event, command) {
		return false
	}

	action := HookAction{Type: "command", Command: command}
	for i, m := range s.hooks[event] {
		if m.Matcher == matcher {
			s.hooks[event][i].Hooks = append(m.Hooks, action)
			return true
		}
	}
	s.hooks[event] = append(s.hooks[event], HookMatcher{
		Matcher: matcher,
		Hooks:   []HookAction{action},
	})
	return true
}

// RemoveHookCommand strips every action running the command, pruning
// matcher groups and events left empty. Returns how many were removed.
// Hooks belonging to other tools are never touched.
func (s *Settings) RemoveHookCommand(command string) int {
	removed := 0
	for event, matchers := range s.hooks {
		var keptMatchers []HookMatcher
		for _, m := range matchers {
			var kept []HookAction
			for _, h := range m.Hooks {
				if h.Command == command {
					removed++
					continue
				}
				kept = append(kept, h)
			}
			if len(kept) > 0 {
				m.Hooks = kept
				keptMatchers = append(keptMatchers, m)
			}
		}
		if len(keptMatchers) > 0 {
			s.hooks[event] = keptMatchers
		} else {
			delete(s.hooks, event)
		}
	}
	return removed
}

// EnsureGitignore appends the given patterns to the project's .gitignore
// unless already present. Returns the patterns actually added. A project
// without a .gitignore gets one.
func EnsureGitignore(projectDir string, patterns []string) ([]string, error) {
	path := filepath.Join(projectDir, ".gitignore")

	existing := make(map[string]bool)
	if data, err := os.ReadFile(path); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			existing[strings.TrimSpace(line)] = true
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading .gitignore: %w", err)
	}

	var missing []string
	for _, p := range patterns {
		if !existing[p] {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening .gitignore: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(missing, "\n") + "\n"); err != nil {
		return nil, fmt.Errorf("appending to .gitignore: %w", err)
	}
	return missing, nil
}
