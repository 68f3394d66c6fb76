package placeholder

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dateKeywords is the fixed keyword set that marks a label as date-like.
// Matching is case-insensitive substring containment, so plain "date"
// already covers the compound forms; they are kept for clarity and for
// parity with the answer validation in the fill session.
var dateKeywords = []string{
	"date",
	"effective date",
	"closing date",
	"execution date",
	"maturity date",
	"issuance date",
	"signature date",
}

var (
	// separatorsRe turns snake_case and kebab-case values into phrases.
	separatorsRe = regexp.MustCompile(`[_\-]+`)
	// slugCharsRe reduces a label to slug characters.
	slugCharsRe = regexp.MustCompile(`[^a-z0-9]+`)

	// titleCaser uppercases the first letter of each word and leaves the
	// rest untouched (so "LLC" stays "LLC").
	titleCaser = cases.Title(language.English, cases.NoLower)
)

// IsDateLabel reports whether a label names a date field.
func IsDateLabel(label string) bool {
	lower := strings.ToLower(label)
	for _, keyword := range dateKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// FormatLabel turns a raw placeholder value into a display label:
// separators become spaces, whitespace collapses, and each word is
// title-cased. An empty value formats as "Field".
func FormatLabel(value string) string {
	cleaned := separatorsRe.ReplaceAllString(value, " ")
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return "Field"
	}
	return titleCaser.String(cleaned)
}

// BuildQuestion builds the conversational prompt for a label. Date-like
// labels get a strict-format prompt matching the answer validation.
func BuildQuestion(label string) string {
	if label == "" {
		return "Please provide a value."
	}
	if IsDateLabel(label) {
		return "Please provide the date (YYYY-MM-DD)."
	}
	return fmt.Sprintf("Please provide the %s.", label)
}

// slugID derives a placeholder id from its label and discovery sequence
// number. A label with no slug characters falls back to "field-<n>".
func slugID(label string, sequence int) string {
	base := slugCharsRe.ReplaceAllString(strings.ToLower(label), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		return fmt.Sprintf("field-%d", sequence)
	}
	return fmt.Sprintf("%s-%d", base, sequence)
}
