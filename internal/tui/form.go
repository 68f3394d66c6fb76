package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/chazuruo/chatfill/internal/placeholder"
)

var formDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// RunFillForm collects answers for every placeholder through a single
// huh form instead of the chat loop. Returns the answers keyed by
// placeholder id. When requireDates is false, date-like placeholders
// accept any non-empty answer.
func RunFillForm(placeholders []placeholder.Placeholder, requireDates bool) (map[string]string, error) {
	if len(placeholders) == 0 {
		return map[string]string{}, nil
	}

	values := make([]string, len(placeholders))
	fields := make([]huh.Field, 0, len(placeholders))
	for i, p := range placeholders {
		p := p
		input := huh.NewInput().
			Title(p.Label).
			Description(p.Question).
			Value(&values[i]).
			Validate(func(s string) error {
				return validateAnswer(p, s, requireDates)
			})
		fields = append(fields, input)
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, fmt.Errorf("fill form aborted: %w", err)
	}

	answers := make(map[string]string, len(placeholders))
	for i, p := range placeholders {
		answers[p.ID] = strings.TrimSpace(values[i])
	}
	return answers, nil
}

// validateAnswer applies the same rules the chat session enforces.
func validateAnswer(p placeholder.Placeholder, s string, requireDates bool) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fmt.Errorf("please provide a value")
	}
	if requireDates && placeholder.IsDateLabel(p.Label) && !formDateRe.MatchString(trimmed) {
		return fmt.Errorf("please use YYYY-MM-DD format")
	}
	return nil
}
