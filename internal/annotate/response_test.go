package annotate

import (
	"strings"
	"testing"
)

func TestExtractResults(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "plain valid array",
			input: `[
				{"index": 0, "text": "konnichiwa"},
				{"index": 1, "text": "sayounara"}
			]`,
			wantCount: 2,
		},
		{
			name: "preamble and trailing text",
			input: `Here are the lines:
			[{"index": 0, "text": "Hello"}]
			Enjoy the song!`,
			wantCount: 1,
		},
		{
			name:      "romanizations wrapper",
			input:     `{"romanizations": [{"index": 0, "text": "ni hao"}]}`,
			wantCount: 1,
		},
		{
			name:      "lines wrapper",
			input:     `{"lines": [{"index": 0, "text": "a"}, {"index": 1, "text": "b"}]}`,
			wantCount: 2,
		},
		{
			name:      "unknown wrapper key",
			input:     `{"output": [{"index": 0, "text": "x"}]}`,
			wantCount: 1,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "all texts empty",
			input:   `[{"index": 0, "text": ""}]`,
			wantErr: true,
		},
		{
			name:    "no JSON",
			input:   `Sorry, I can't help with that.`,
			wantErr: true,
		},
		{
			name:    "truncated JSON",
			input:   `[{"index": 0, "text": "cut`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := extractResults(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != tt.wantCount {
				t.Errorf("got %d results, want %d", len(results), tt.wantCount)
			}
		})
	}
}

func TestExtractResultsKeepsStrayBackslash(t *testing.T) {
	results, err := extractResults(`[{"index": 0, "text": "rock on \m/"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Text != `rock on \m/` {
		t.Errorf("expected backslash preserved, got %q", results[0].Text)
	}
}

func TestExtractResultsPicksStableWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "known key preferred over earlier known key",
			input: `{"lines": [{"index": 0, "text": "from lines"}], "results": [{"index": 0, "text": "from results"}]}`,
			want:  "from results",
		},
		{
			name:  "unknown keys resolve in text order",
			input: `{"zeta": [{"index": 0, "text": "z"}], "alpha": [{"index": 0, "text": "a"}]}`,
			want:  "z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 20 {
				results, err := extractResults(tt.input)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if results[0].Text != tt.want {
					t.Fatalf("got %q, want %q", results[0].Text, tt.want)
				}
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `[{"index": 0}]`, `[{"index": 0}]`},
		{"json fence", "```json\n[{\"index\": 0}]\n```", `[{"index": 0}]`},
		{"bare fence", "```\n[{\"index\": 0}]\n```", `[{"index": 0}]`},
		{"padding", "  \n```json\n[]\n```\n ", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResponseTextCountMismatch(t *testing.T) {
	_, err := parseResponseText("Test", `[{"index": 0, "text": "a"}]`, 2)
	if err == nil || !strings.Contains(err.Error(), "expected 2 results, got 1") {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := parseResponseText("Test", "", 1); err == nil {
		t.Error("expected error for empty response")
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("abcdef", 3); got != "abc..." {
		t.Errorf("expected abc..., got %q", got)
	}
	if got := truncateString("abc", 3); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}
