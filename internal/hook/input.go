// Package hook speaks the Claude Code hook protocol: an event payload as
// JSON on stdin, an optional hookSpecificOutput envelope on stdout.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// maxInputBytes caps how much stdin gets parsed. Hook payloads are small;
// anything larger is garbage in.
const maxInputBytes = 1 << 20

// Event names seen on the wire.
const (
	EventPreToolUse = "PreToolUse"
	EventPreCompact = "PreCompact"
)

// Input is the subset of the hook event payload the sentry inspects.
type Input struct {
	SessionID      string    `json:"session_id"`
	TranscriptPath string    `json:"transcript_path"`
	HookEventName  string    `json:"hook_event_name"`
	ToolName       string    `json:"tool_name"`
	ToolInput      toolInput `json:"tool_input"`
}

// toolInput carries the one field per tool shape the guard cares about.
// Everything else in the payload is ignored.
type toolInput struct {
	FilePath string `json:"file_path"`
	Command  string `json:"command"`
}

// Read parses a hook event from r. A missing hook_event_name defaults to
// PreToolUse, matching what Claude Code sends on the tool path. Any parse
// failure is the caller's cue to abstain.
func Read(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes))
	if err != nil {
		return nil, fmt.Errorf("reading hook input: %w", err)
	}

	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing hook input: %w", err)
	}

	if in.HookEventName == "" {
		in.HookEventName = EventPreToolUse
	}
	return &in, nil
}

// Action is the tagged view of the triggering tool call. Each shape
// exposes the single string the self-trigger guard inspects.
type Action interface {
	Target() string
}

// FileAction is a direct file write (Write, Edit, MultiEdit).
type FileAction struct {
	Path string
}

// Target returns the file path being written.
func (a FileAction) Target() string { return a.Path }

// CommandAction is an indirect write through the shell.
type CommandAction struct {
	Command string
}

// Target returns the command text.
func (a CommandAction) Target() string { return a.Command }

// Action returns the typed action for this tool call, or nil for tools the
// guard does not inspect (reads, searches, PreCompact events).
func (in *Input) Action() Action {
	switch in.ToolName {
	case "Write", "Edit", "MultiEdit":
		return FileAction{Path: in.ToolInput.FilePath}
	case "Bash":
		return CommandAction{Command: in.ToolInput.Command}
	}
	return nil
}
