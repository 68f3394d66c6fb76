package placeholder

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// contextWindow is how many bytes of surrounding text are inspected when a
// token's own content cannot serve as a label.
const contextWindow = 160

var (
	// aliasAfterRe matches a defined-term alias immediately after the
	// token, e.g. `____ (the "Tenant")`.
	aliasAfterRe = regexp.MustCompile(`(?i)^\s*\(\s*the\s+["“]([^"”]+)["”]\s*\)`)
	// aliasBeforeRe matches a quoted phrase ending right before the token.
	aliasBeforeRe = regexp.MustCompile(`["“]([^"”]+)["”]\s*$`)
	// titledBeforeRe matches an article followed by a capitalized phrase
	// ending right before the token, e.g. "payable to the Purchase Price".
	titledBeforeRe = regexp.MustCompile(`(?i)(the|a|an)\s+([A-Za-z][A-Za-z0-9\s\-']{2,80})\s*$`)
	// lineBreaksRe flattens newlines inside the before-window.
	lineBreaksRe = regexp.MustCompile(`[\r\n]+`)
	// nonWordRe strips characters that cannot appear in a derived label.
	nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}\s\-']`)
)

// deriveContextLabel infers a label for a token whose content failed
// validation, by reading up to contextWindow bytes on either side. It tries,
// in order: an alias of the form (the "X") after the token, a quoted phrase
// before it, an article + capitalized phrase before it, and finally the last
// few words before it. Returns ok=false when nothing usable is found.
func deriveContextLabel(text string, start int, raw string) (string, bool) {
	before := text[runeFloor(text, max(0, start-contextWindow)):start]
	end := start + len(raw)
	after := text[end:runeCeil(text, min(len(text), end+contextWindow))]

	if m := aliasAfterRe.FindStringSubmatch(after); m != nil && m[1] != "" {
		return m[1], true
	}
	if m := aliasBeforeRe.FindStringSubmatch(before); m != nil && m[1] != "" {
		return m[1], true
	}
	if m := titledBeforeRe.FindStringSubmatch(before); m != nil && m[2] != "" {
		return m[2], true
	}

	trailing := lineBreaksRe.ReplaceAllString(before, " ")
	fields := strings.Fields(trailing)
	if len(fields) > 6 {
		fields = fields[len(fields)-6:]
	}
	cleaned := nonWordRe.ReplaceAllString(strings.Join(fields, " "), " ")
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
	if cleaned != "" && alnumRe.MatchString(cleaned) {
		return cleaned, true
	}

	return "", false
}

// runeFloor moves a byte offset backwards onto a rune boundary so the
// context window never starts mid-rune.
func runeFloor(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// runeCeil moves a byte offset forwards onto a rune boundary.
func runeCeil(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
