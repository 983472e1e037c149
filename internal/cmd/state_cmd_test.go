package cmd

import (
	"testing"
	"time"
)

func TestParseFireTime(t *testing.T) {
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"now", now, false},
		{"", now, false},
		{"-15m", now.Add(-15 * time.Minute), false},
		{"-1h30m", now.Add(-90 * time.Minute), false},
		{"2026-02-03T10:00:00Z", time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC), false},
		{"yesterday", time.Time{}, true},
		{"15 minutes ago", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFireTime(tt.in, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseFireTime(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFireTime(%q) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseFireTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
