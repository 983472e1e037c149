package claude

import (
	"github.com/ctxsentry/ctxsentry/internal/journal"
	"github.com/ctxsentry/ctxsentry/internal/state"
)

// HookCommand is the command registered in settings.json for every event
// the sentry watches.
const HookCommand = "ctxsentry hook"

// HookEvents are the Claude Code events the sentry registers for.
// PreToolUse drives the evaluator on every tool call; PreCompact gives
// one last chance to checkpoint before history is compacted away.
var HookEvents = []string{"PreToolUse", "PreCompact"}

// DefaultToolMatcher limits PreToolUse invocations to the tools that grow
// the transcript. NotebookEdit is matched even though its paths can never
// be a checkpoint sentinel; its events still count toward the threshold.
const DefaultToolMatcher = "Write|Edit|MultiEdit|NotebookEdit|Bash"

// MatcherFor returns the settings.json matcher to register for an event.
// PreCompact has no tool, so its matcher is empty (match everything).
func MatcherFor(event, toolMatcher string) string {
	if event == "PreToolUse" {
		return toolMatcher
	}
	return ""
}

// GitignorePatterns returns the sentry-owned files that should never be
// committed: per-machine trigger state and the local journal.
func GitignorePatterns() []string {
	return []string{
		".claude/" + state.Filename,
		".claude/" + journal.Filename,
	}
}
