package hook

import "strings"

// Sentinels name the checkpoint artifacts whose writes must never trigger
// a warning, or the warning would nag about the very action that satisfies
// it.
var Sentinels = []string{"CHECKPOINT.md", "HANDOFF.md"}

// RuntimeDir is where the reminder tells the assistant to keep the
// checkpoint artifacts, relative to the project root.
const RuntimeDir = "docs/_runtime"

// IsSelfWrite reports whether the action targets a checkpoint artifact.
// Substring match on purpose: paths arrive absolute, relative, or embedded
// in shell command text.
func IsSelfWrite(a Action) bool {
	if a == nil {
		return false
	}
	target := a.Target()
	for _, s := range Sentinels {
		if strings.Contains(target, s) {
			return true
		}
	}
	return false
}
