package placeholder

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantLabels []string
	}{
		{
			name:       "empty input",
			input:      "",
			wantLabels: []string{},
		},
		{
			name:       "no placeholders",
			input:      "This agreement is made between the parties.",
			wantLabels: []string{},
		},
		{
			name:       "double brace token",
			input:      "This lease is granted to {{Tenant Name}} for the premises.",
			wantLabels: []string{"Tenant Name"},
		},
		{
			name:       "double bracket token",
			input:      "Payable to [[Beneficiary]] on demand.",
			wantLabels: []string{"Beneficiary"},
		},
		{
			name:       "double angle token",
			input:      "Executed on <<Execution Date>> at the offices.",
			wantLabels: []string{"Execution Date"},
		},
		{
			name:       "single angle token",
			input:      "Deliver to <recipient address> by courier.",
			wantLabels: []string{"Recipient Address"},
		},
		{
			name:       "single bracket token",
			input:      "The sum of [Purchase Price] shall be paid.",
			wantLabels: []string{"Purchase Price"},
		},
		{
			name:       "underscore emphasis token",
			input:      "Signed by __Guarantor__ below.",
			wantLabels: []string{"Guarantor"},
		},
		{
			name:       "asterisk emphasis token",
			input:      "Delivered to **Escrow Agent** in trust.",
			wantLabels: []string{"Escrow Agent"},
		},
		{
			name:       "duplicate tokens collapse",
			input:      "{{Name}} agrees that {{Name}} is bound.",
			wantLabels: []string{"Name"},
		},
		{
			name:       "case-insensitive dedup",
			input:      "{{Tenant}} and later {{TENANT}} again.",
			wantLabels: []string{"Tenant"},
		},
		{
			name:       "snake and kebab content formats as phrase",
			input:      "Wire to {{bank_account-number}} promptly.",
			wantLabels: []string{"Bank Account Number"},
		},
		{
			name:       "quoted content is trimmed",
			input:      `The firm {{"Smith Partners"}} acts for the buyer.`,
			wantLabels: []string{"Smith Partners"},
		},
		{
			name:       "url token with no usable context is dropped",
			input:      "<https://example.com/terms> governs use.",
			wantLabels: []string{},
		},
		{
			name:       "symbol-only token with no context is dropped",
			input:      "[-----]",
			wantLabels: []string{},
		},
		{
			name:       "overlong content is dropped",
			input:      "[" + strings.Repeat("word ", 19) + "end]",
			wantLabels: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if len(got) != len(tt.wantLabels) {
				t.Fatalf("Extract() returned %d placeholders, want %d: %+v", len(got), len(tt.wantLabels), got)
			}
			for i, want := range tt.wantLabels {
				if got[i].Label != want {
					t.Errorf("Extract()[%d].Label = %q, want %q", i, got[i].Label, want)
				}
			}
		})
	}
}

func TestExtractPatternPriorityOrder(t *testing.T) {
	// [B] appears first in the document, but brace matches are processed
	// before bracket matches, so A is emitted first.
	got := Extract("First comes [B] and later {{A}} appears.")
	if len(got) != 2 {
		t.Fatalf("Extract() returned %d placeholders, want 2", len(got))
	}
	if got[0].Label != "A" || got[1].Label != "B" {
		t.Errorf("Extract() order = [%s, %s], want [A, B]", got[0].Label, got[1].Label)
	}
	if got[0].ID != "a-1" {
		t.Errorf("Extract()[0].ID = %q, want %q", got[0].ID, "a-1")
	}
	if got[1].ID != "b-2" {
		t.Errorf("Extract()[1].ID = %q, want %q", got[1].ID, "b-2")
	}
}

func TestExtractSequenceNumbersAreDense(t *testing.T) {
	// The bracket token's content fails validation and its context label
	// collapses into the already-seen "First", so it is discarded and must
	// not consume a sequence number.
	got := Extract("{{First}} [@@@] __Second__")
	if len(got) != 2 {
		t.Fatalf("Extract() returned %d placeholders, want 2", len(got))
	}
	if got[0].ID != "first-1" {
		t.Errorf("Extract()[0].ID = %q, want %q", got[0].ID, "first-1")
	}
	if got[1].ID != "second-2" {
		t.Errorf("Extract()[1].ID = %q, want %q", got[1].ID, "second-2")
	}
}

func TestExtractContextDerivation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLabel string
	}{
		{
			name:      "alias after token",
			input:     `entered into by [______] (the "Tenant") on the date below.`,
			wantLabel: "Tenant",
		},
		{
			name:      "alias after token with curly quotes",
			input:     "entered into by [______] (the “Landlord”) on the date below.",
			wantLabel: "Landlord",
		},
		{
			name:      "quoted phrase before token",
			input:     `the party identified as "Guarantor" [______] shall sign.`,
			wantLabel: "Guarantor",
		},
		{
			name:      "article and capitalized phrase before token",
			input:     "payment is due to the Escrow Agent [$$$] on closing.",
			wantLabel: "Escrow Agent",
		},
		{
			name:      "trailing words fallback",
			input:     "wire all settlement funds immediately to [______].",
			wantLabel: "Wire All Settlement Funds Immediately To",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if len(got) != 1 {
				t.Fatalf("Extract() returned %d placeholders, want 1: %+v", len(got), got)
			}
			if got[0].Label != tt.wantLabel {
				t.Errorf("Extract()[0].Label = %q, want %q", got[0].Label, tt.wantLabel)
			}
			if !strings.Contains(tt.input, got[0].Raw) {
				t.Errorf("Extract()[0].Raw = %q is not a substring of the input", got[0].Raw)
			}
		})
	}
}

func TestExtractRawIsVerbatim(t *testing.T) {
	input := "Between {{Seller}} and [Buyer Name] dated <<Closing Date>>."
	for _, ph := range Extract(input) {
		if !strings.Contains(input, ph.Raw) {
			t.Errorf("Raw %q is not a verbatim substring of input", ph.Raw)
		}
	}
}

func TestExtractIdempotent(t *testing.T) {
	input := `This Agreement between {{Landlord}} and [Tenant Name] is effective
as of <<Effective Date>> with monthly rent of [Rent Amount] payable to the
account __Bank Details__ (the "Account").`

	first := Extract(input)
	second := Extract(input)
	if len(first) != len(second) {
		t.Fatalf("extraction is not idempotent: %d vs %d placeholders", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("placeholder %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestExtractLabelsAreUnique(t *testing.T) {
	// Uniqueness of the normalized label must hold for arbitrary input,
	// including pathological nesting and mixed delimiters.
	inputs := []string{
		"{{A}} [[a]] <<A>> <a> [A] __a__ **A**",
		"[[{{nested}}]] and {{[[inverted]]}}",
		strings.Repeat("{{x}} ", 200),
		"<<<<deep>>>> [[[brackets]]] {{{braces}}}",
		"plain text with no tokens at all",
	}
	for i, input := range inputs {
		seen := make(map[string]bool)
		for _, ph := range Extract(input) {
			key := strings.ToLower(ph.Label)
			if seen[key] {
				t.Errorf("input %d: duplicate normalized label %q", i, key)
			}
			seen[key] = true
		}
	}
}

func TestExtractIDsAreUnique(t *testing.T) {
	input := "{{Name}} [Address] <<Date>> <Phone> [Email] __City__ **State**"
	seen := make(map[string]bool)
	for _, ph := range Extract(input) {
		if seen[ph.ID] {
			t.Errorf("duplicate id %q", ph.ID)
		}
		seen[ph.ID] = true
	}
}

func TestExtractTotality(t *testing.T) {
	// Extract must terminate and return for any input, however malformed.
	inputs := []string{
		"{{{{{{",
		"}}}}{{",
		"[[[[]]]]",
		"<<>><<>>",
		"__ __ ** **",
		strings.Repeat("<", 1000),
		"\x00\x01{{\x02}}",
		"日本語の{{テキスト}}も動く",
	}
	for i, input := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("input %d: Extract panicked: %v", i, r)
				}
			}()
			_ = Extract(input)
		}()
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"tenant name", "Tenant Name"},
		{"tenant_name", "Tenant Name"},
		{"tenant-name", "Tenant Name"},
		{"  spaced   out  ", "Spaced Out"},
		{"", "Field"},
		{"___", "Field"},
		{"LLC registration", "LLC Registration"},
		{"123 main street", "123 Main Street"},
	}
	for _, tt := range tests {
		if got := FormatLabel(tt.value); got != tt.want {
			t.Errorf("FormatLabel(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestBuildQuestion(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"", "Please provide a value."},
		{"Tenant Name", "Please provide the Tenant Name."},
		{"Effective Date", "Please provide the date (YYYY-MM-DD)."},
		{"Issuance Date", "Please provide the date (YYYY-MM-DD)."},
		{"Update", "Please provide the date (YYYY-MM-DD)."},
	}
	for _, tt := range tests {
		if got := BuildQuestion(tt.label); got != tt.want {
			t.Errorf("BuildQuestion(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestIsDateLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"Effective Date", true},
		{"closing date", true},
		{"DATE OF BIRTH", true},
		{"Maturity Date", true},
		{"Tenant Name", false},
		{"Dated Reference", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDateLabel(tt.label); got != tt.want {
			t.Errorf("IsDateLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestSlugID(t *testing.T) {
	tests := []struct {
		label    string
		sequence int
		want     string
	}{
		{"Tenant Name", 1, "tenant-name-1"},
		{"Rent (USD)", 3, "rent-usd-3"},
		{"---", 7, "field-7"},
		{"", 2, "field-2"},
	}
	for _, tt := range tests {
		if got := slugID(tt.label, tt.sequence); got != tt.want {
			t.Errorf("slugID(%q, %d) = %q, want %q", tt.label, tt.sequence, got, tt.want)
		}
	}
}

func BenchmarkExtract(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "Clause %d binds {{Party %d}} to pay [Amount %d] by <<Date %d>>. ", i, i, i, i)
	}
	input := sb.String()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Extract(input)
	}
}
