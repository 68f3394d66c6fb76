package placeholder

import (
	"regexp"
	"strings"
)

// tokenPattern pairs a token regex with a function that strips the token's
// delimiters from the raw match.
type tokenPattern struct {
	regex *regexp.Regexp
	strip func(raw string) string
}

// patterns is the ordered pattern set. Order matters twice over: it decides
// emission order (all matches of an earlier pattern precede any match of a
// later one) and which literal token wins when two spellings of the same
// blank dedup-collapse.
var patterns = []tokenPattern{
	{
		regex: regexp.MustCompile(`\{\{([^{}]+)\}\}`),
		strip: func(raw string) string { return raw[2 : len(raw)-2] },
	},
	{
		regex: regexp.MustCompile(`\[\[([^\[\]]+)\]\]`),
		strip: func(raw string) string { return raw[2 : len(raw)-2] },
	},
	{
		regex: regexp.MustCompile(`<<([^<>]+)>>`),
		strip: func(raw string) string { return raw[2 : len(raw)-2] },
	},
	{
		regex: regexp.MustCompile(`<([^<>]+)>`),
		strip: func(raw string) string { return raw[1 : len(raw)-1] },
	},
	{
		regex: regexp.MustCompile(`\[([^\[\]]+)\]`),
		strip: func(raw string) string { return raw[1 : len(raw)-1] },
	},
	{
		regex: regexp.MustCompile(`__([^_]+?)__`),
		strip: func(raw string) string { return strings.Trim(raw, "_") },
	},
	{
		regex: regexp.MustCompile(`\*\*([^*]+?)\*\*`),
		strip: func(raw string) string { return strings.Trim(raw, "*") },
	},
}

var (
	// whitespaceRe collapses internal whitespace runs.
	whitespaceRe = regexp.MustCompile(`\s+`)
	// edgeQuotesRe trims leading/trailing whitespace and straight or curly
	// quotes from a candidate value.
	edgeQuotesRe = regexp.MustCompile(`^[\s"'“”‘’]+|[\s"'“”‘’]+$`)
	// alnumRe reports whether a string carries at least one ASCII
	// letter or digit.
	alnumRe = regexp.MustCompile(`(?i)[a-z0-9]`)
	// urlRe rejects candidates that are really hyperlinks.
	urlRe = regexp.MustCompile(`(?i)https?://`)
)

// sanitizeValue normalizes a delimiter-stripped candidate: whitespace runs
// collapse to single spaces and surrounding quotes are removed.
func sanitizeValue(value string) string {
	value = whitespaceRe.ReplaceAllString(value, " ")
	value = edgeQuotesRe.ReplaceAllString(value, "")
	return strings.TrimSpace(value)
}

// isReasonableValue reports whether a sanitized candidate can serve as a
// label on its own. Values failing this check go through context derivation
// instead of being emitted directly.
func isReasonableValue(value string) bool {
	if !alnumRe.MatchString(value) {
		return false
	}
	if urlRe.MatchString(value) {
		return false
	}
	if len([]rune(value)) > 120 {
		return false
	}
	words := strings.Fields(value)
	if len(words) == 0 || len(words) > 18 {
		return false
	}
	return true
}
