package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output is the response envelope Claude Code reads from a hook's stdout.
type Output struct {
	HookSpecificOutput SpecificOutput `json:"hookSpecificOutput"`
}

// SpecificOutput injects additional context into the assistant's session.
// The event name is passed through from the input.
type SpecificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// WriteNotification emits the fire payload for event on w.
func WriteNotification(w io.Writer, event, message string) error {
	out := Output{
		HookSpecificOutput: SpecificOutput{
			HookEventName:     event,
			AdditionalContext: message,
		},
	}
	if err := json.NewEncoder(w).Encode(&out); err != nil {
		return fmt.Errorf("writing hook output: %w", err)
	}
	return nil
}

// WarningMessage renders the reminder injected into the assistant's
// context. Sizes are shown as truncated whole KB.
func WarningMessage(sizeKB float64, thresholdKB int) string {
	return fmt.Sprintf(warningTemplate, int(sizeKB), thresholdKB)
}

// The template body is load-bearing prose: assistants act on the numbered
// steps verbatim, so edits here change end-user behavior.
const warningTemplate = "**Context Sentry Warning** — Transcript has grown large (%d KB, threshold %d KB).\n" +
	"\n" +
	"Before proceeding with this tool call, you MUST update the following files:\n" +
	"\n" +
	"1. `docs/_runtime/CHECKPOINT.md` — Record:\n" +
	"   - Key decisions and invariants established so far\n" +
	"   - What has been completed (files created/modified, features implemented)\n" +
	"   - What is in progress or next\n" +
	"   - Critical file paths and their purposes\n" +
	"\n" +
	"2. `docs/_runtime/HANDOFF.md` — Record:\n" +
	"   - Concrete next steps (numbered, actionable)\n" +
	"   - Explicit do-not list (things to avoid or that are out of scope)\n" +
	"   - Verification checklist (how to confirm current state is correct)\n" +
	"\n" +
	"Create the `docs/_runtime/` directory if it does not exist.\n" +
	"Write these files NOW, then continue with the original tool call."
