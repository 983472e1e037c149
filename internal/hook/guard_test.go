package hook

import (
	"strings"
	"testing"
)

func TestIsSelfWrite(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   bool
	}{
		{"checkpoint absolute path", FileAction{Path: "/w/docs/_runtime/CHECKPOINT.md"}, true},
		{"handoff relative path", FileAction{Path: "docs/_runtime/HANDOFF.md"}, true},
		{"sentinel outside runtime dir", FileAction{Path: "/elsewhere/CHECKPOINT.md"}, true},
		{"ordinary source file", FileAction{Path: "/w/internal/trigger/trigger.go"}, false},
		{"lowercase does not match", FileAction{Path: "docs/checkpoint.md"}, false},
		{"command touching checkpoint", CommandAction{Command: "cat notes >> docs/_runtime/CHECKPOINT.md"}, true},
		{"command touching handoff", CommandAction{Command: "mkdir -p docs/_runtime && touch docs/_runtime/HANDOFF.md"}, true},
		{"unrelated command", CommandAction{Command: "go build ./..."}, false},
		{"empty path", FileAction{}, false},
		{"nil action", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSelfWrite(tc.action); got != tc.want {
				t.Errorf("IsSelfWrite = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSelfWriteFromRawPayload(t *testing.T) {
	// The guard must hold end to end: a Write aimed at CHECKPOINT.md can
	// never produce a warning no matter the transcript size.
	payload := `{
		"transcript_path": "/t.jsonl",
		"tool_name": "Write",
		"tool_input": {"file_path": "/w/docs/_runtime/CHECKPOINT.md", "content": "# Checkpoint"}
	}`

	in, err := Read(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !IsSelfWrite(in.Action()) {
		t.Error("checkpoint write not detected as self-write")
	}
}
