package doctor

import (
	"errors"
	"fmt"

	"github.com/ctxsentry/ctxsentry/internal/transcript"
)

// TranscriptCheck verifies a session transcript can be located for this
// project. Without one the hook abstains on every event.
type TranscriptCheck struct {
	BaseCheck
}

// NewTranscriptCheck creates a new transcript lookup check.
func NewTranscriptCheck() *TranscriptCheck {
	return &TranscriptCheck{
		BaseCheck: BaseCheck{
			CheckName:        "transcript",
			CheckDescription: "Verify a session transcript can be located",
			CheckCategory:    CategorySession,
		},
	}
}

// Run locates the newest transcript. A missing transcript is a warning,
// not an error: it is normal for a project that has never hosted a
// session, and the hook receives the path on stdin during real sessions
// anyway.
func (c *TranscriptCheck) Run(ctx *CheckContext) *CheckResult {
	path, err := transcript.Locate(ctx.ProjectDir)
	if err != nil {
		if errors.Is(err, transcript.ErrNoTranscript) {
			dir, dirErr := transcript.ProjectsDir(ctx.ProjectDir)
			details := []string(nil)
			if dirErr == nil {
				details = []string{"expected under " + dir}
			}
			return &CheckResult{
				Name:    c.Name(),
				Status:  StatusWarning,
				Message: "no transcript found for this project",
				Details: details,
				FixHint: "open the project in a Claude Code session first",
			}
		}
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("transcript lookup failed: %v", err),
		}
	}

	info, err := transcript.Stat(path)
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("transcript found but not statable: %v", err),
		}
	}

	return &CheckResult{
		Name:   c.Name(),
		Status: StatusOK,
		Message: fmt.Sprintf("%s (%.0f KB, %d entries)",
			info.Path, info.SizeKB, info.Entries),
	}
}
