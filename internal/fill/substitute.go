package fill

import (
	"fmt"
	"strings"

	"github.com/chazuruo/chatfill/internal/placeholder"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes an answer for embedding in document markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// formatAnswer escapes an answer and turns newlines into line breaks.
func formatAnswer(answer string) string {
	return strings.ReplaceAll(EscapeHTML(answer), "\n", "<br />")
}

// Apply substitutes answered placeholders into markup, one placeholder
// at a time in extraction order. Unanswered placeholders are left
// untouched so the original token survives in the output.
//
// Replacement is cumulative over the running result, so a token that
// appears more than once is filled everywhere.
func Apply(markup string, placeholders []placeholder.Placeholder, answers map[string]string) string {
	out := markup
	for _, p := range placeholders {
		answer, ok := answers[p.ID]
		if !ok || strings.TrimSpace(answer) == "" {
			continue
		}
		out = strings.ReplaceAll(out, p.Raw, formatAnswer(answer))
	}
	return out
}

// ApplyPreview rewrites markup for the live preview pane. Every
// placeholder token is wrapped in a <mark> element carrying its id and
// fill state; the placeholder whose id matches activeID additionally
// gets an is-active class so the preview can highlight it. Pending
// tokens show their raw text, escaped for embedding.
func ApplyPreview(markup string, placeholders []placeholder.Placeholder, answers map[string]string, activeID string) string {
	out := markup
	for _, p := range placeholders {
		answer, answered := answers[p.ID]
		answered = answered && strings.TrimSpace(answer) != ""

		state := "pending"
		content := EscapeHTML(p.Raw)
		if answered {
			state = "filled"
			content = formatAnswer(answer)
		}

		var class string
		if p.ID == activeID {
			class = ` class="is-active"`
		}

		replacement := fmt.Sprintf(`<mark data-placeholder-id="%s" data-state="%s"%s>%s</mark>`,
			p.ID, state, class, content)
		out = strings.ReplaceAll(out, p.Raw, replacement)
	}
	return out
}
