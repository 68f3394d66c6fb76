// Package placeholder detects and labels fill-in blanks in legal template text.
//
// A placeholder is any bracket- or delimiter-style token ({{Tenant Name}},
// [Purchase Price], <<Effective Date>>, ...) found in the plain text of a
// document. Each detected token is assigned a stable id, a human-readable
// label, and a conversational question. When a token's own content is not a
// usable label (a row of dashes, a URL, an over-long clause), a label is
// derived from the surrounding text instead.
package placeholder

import (
	"strings"
)

// Placeholder is a detected blank in a template.
type Placeholder struct {
	// ID is a stable identifier: a slug of the label plus the discovery
	// sequence number. Used as the answer-map key and as a DOM anchor.
	ID string `json:"id" yaml:"id"`

	// Raw is the exact token text as it appeared in the source, including
	// delimiters. Substitution replaces occurrences of this string.
	Raw string `json:"raw" yaml:"raw"`

	// Label is the title-cased, punctuation-normalized name of the blank.
	Label string `json:"label" yaml:"label"`

	// Question is the conversational prompt built from Label.
	Question string `json:"question" yaml:"question"`
}

// Extract scans text for placeholder tokens and returns them deduplicated by
// normalized label, each with a label, question, and slug id.
//
// Patterns are processed in a fixed priority order, and each pattern is
// scanned globally across the whole text before the next pattern is
// considered. Emission order is therefore grouped by delimiter type, not by
// document position; within one pattern type matches appear in document
// order. Callers that need this ordering (the conversation walks it) must
// not re-sort.
//
// Two tokens whose derived values differ only in case collapse into a single
// Placeholder carrying the first occurrence's Raw; later spellings are not
// tracked for substitution.
//
// Extract is total: it returns a (possibly empty) slice for any input and
// never fails.
func Extract(text string) []Placeholder {
	var ordered []Placeholder
	seen := make(map[string]bool)
	sequence := 1

	for _, pat := range patterns {
		for _, m := range pat.regex.FindAllStringSubmatchIndex(text, -1) {
			raw := text[m[0]:m[1]]
			value := sanitizeValue(pat.strip(raw))

			if !isReasonableValue(value) {
				ctx, ok := deriveContextLabel(text, m[0], raw)
				if !ok {
					continue
				}
				value = ctx
			}
			if value == "" {
				continue
			}

			normalized := strings.ToLower(value)
			if seen[normalized] {
				continue
			}
			seen[normalized] = true

			label := FormatLabel(value)
			ordered = append(ordered, Placeholder{
				ID:       slugID(label, sequence),
				Raw:      raw,
				Label:    label,
				Question: BuildQuestion(label),
			})
			sequence++
		}
	}

	return ordered
}
