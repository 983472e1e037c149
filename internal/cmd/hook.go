package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/config"
	"github.com/ctxsentry/ctxsentry/internal/hook"
	"github.com/ctxsentry/ctxsentry/internal/journal"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/state"
	"github.com/ctxsentry/ctxsentry/internal/transcript"
	"github.com/ctxsentry/ctxsentry/internal/trigger"
)

var hookCmd = &cobra.Command{
	Use:     "hook",
	GroupID: GroupHook,
	Short:   "Evaluate one tool event from stdin (Claude Code entrypoint)",
	Long: `Read a Claude Code hook event from stdin, decide whether the session
deserves a checkpoint warning, and answer on stdout.

Claude Code invokes this on every tool call once installed
(see 'ctxsentry install'):

  "PreToolUse": [{"matcher": "Write|Edit|...", "hooks": [
    {"type": "command", "command": "ctxsentry hook"}]}]

The event arrives as JSON on stdin:

  {"session_id": "...", "transcript_path": "/path/to/session.jsonl",
   "hook_event_name": "PreToolUse", "tool_name": "Write",
   "tool_input": {"file_path": "..."}}

When the transcript has grown past the threshold and the backoff window is
open, the warning is written as a hookSpecificOutput envelope on stdout and
the trigger state is recorded. Otherwise there is no output at all.

This command never fails: malformed input, a missing transcript or an
unwritable state file all abstain silently. Set CONTEXT_SENTRY_DEBUG=1 to
see the reasoning on stderr.`,
	Args: cobra.NoArgs,
	// Skip theme resolution: this path is machine-to-machine and must not
	// touch the terminal.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	RunE:             runSentryHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

// runSentryHook always returns nil. A non-zero exit would surface as a hook
// failure inside the session, which is worse than a missed warning.
func runSentryHook(cmd *cobra.Command, args []string) error {
	executeHook(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	return nil
}

// executeHook runs the guard, threshold and backoff pipeline for one event.
func executeHook(stdin io.Reader, stdout, stderr io.Writer) {
	dir := project.RootOrCwd()
	cfg := config.Load(dir)

	if !state.Enabled(dir) {
		cfg.Tracef(stderr, "disabled for %s, skipping", dir)
		return
	}

	in, err := hook.Read(stdin)
	if err != nil {
		cfg.Tracef(stderr, "unreadable event, abstaining: %v", err)
		return
	}

	if hook.IsSelfWrite(in.Action()) {
		cfg.Tracef(stderr, "checkpoint write detected, skipping")
		return
	}

	path := in.TranscriptPath
	if path == "" {
		path = os.Getenv(transcript.EnvTranscript)
	}
	if path == "" {
		cfg.Tracef(stderr, "no transcript path in event, abstaining")
		return
	}

	sizeKB, err := transcript.SizeKB(path)
	if err != nil {
		cfg.Tracef(stderr, "cannot stat transcript %s: %v", path, err)
		return
	}

	store := state.NewStore(dir)
	st := store.Read()
	d := trigger.Evaluate(trigger.Input{SizeKB: sizeKB}, cfg.Policy(), st, time.Now())

	switch d.Reason {
	case trigger.ReasonBelowThreshold:
		cfg.Tracef(stderr, "below threshold: %dKB < %dKB", int(sizeKB), cfg.ThresholdKB)
		return
	case trigger.ReasonCoolingDown:
		cfg.Tracef(stderr, "suppressed: elapsed=%.1fmin growth=%.0fKB",
			d.ElapsedMin, d.GrowthKB)
		return
	}

	// Persist before emitting. A crash between the two loses one warning;
	// the reverse order would repeat it on every following tool call.
	if err := store.Write(d.Next); err != nil {
		cfg.Tracef(stderr, "state write failed, warning anyway: %v", err)
	}

	elapsed := d.ElapsedMin
	if st.IsZero() {
		elapsed = 0
	}
	// The journal is an audit aid, never a gate.
	_ = journal.New(dir).Append(journal.Entry{
		Event:       journal.EventFired,
		SessionID:   in.SessionID,
		HookEvent:   in.HookEventName,
		SizeKB:      sizeKB,
		ThresholdKB: cfg.ThresholdKB,
		ElapsedMin:  elapsed,
		GrowthKB:    d.GrowthKB,
		Transcript:  path,
	})

	// Not debug-gated: a fire should be visible in the session's verbose
	// output even with tracing off.
	fmt.Fprintf(stderr, "[context-sentry] TRIGGERED: transcript=%dKB threshold=%dKB backoff=%dmin\n",
		int(sizeKB), cfg.ThresholdKB, cfg.BackoffMin)

	if err := hook.WriteNotification(stdout, in.HookEventName, hook.WarningMessage(sizeKB, cfg.ThresholdKB)); err != nil {
		cfg.Tracef(stderr, "writing notification: %v", err)
	}
}
