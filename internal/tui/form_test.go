package tui

import (
	"testing"

	"github.com/chazuruo/chatfill/internal/placeholder"
)

func TestValidateAnswer(t *testing.T) {
	date := placeholder.Placeholder{ID: "closing-date-1", Label: "Closing Date"}
	name := placeholder.Placeholder{ID: "tenant-name-2", Label: "Tenant Name"}

	tests := []struct {
		name         string
		p            placeholder.Placeholder
		answer       string
		requireDates bool
		wantErr      bool
	}{
		{"plain value", name, "Ada Lovelace", true, false},
		{"blank", name, "   ", true, true},
		{"iso date", date, "2026-03-01", true, false},
		{"free-form date rejected", date, "next tuesday", true, true},
		{"free-form date allowed", date, "next tuesday", false, false},
		{"blank date still rejected", date, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAnswer(tt.p, tt.answer, tt.requireDates)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAnswer(%q, %q, %v) error = %v, wantErr %v",
					tt.p.Label, tt.answer, tt.requireDates, err, tt.wantErr)
			}
		})
	}
}
