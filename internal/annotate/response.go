package annotate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var jsonBlockRegex = regexp.MustCompile("```(?:json)?\\s*")

// parseResponseText turns raw model output into results for a batch of
// expectedCount items.
func parseResponseText(provider, text string, expectedCount int) ([]Result, error) {
	if text == "" {
		return nil, fmt.Errorf("no text in %s response", provider)
	}

	text = cleanJSONResponse(text)

	results, err := extractResults(text)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse JSON response: %w (response: %s)",
			err,
			truncateString(text, 200),
		)
	}

	if len(results) != expectedCount {
		return nil, fmt.Errorf(
			"expected %d results, got %d",
			expectedCount,
			len(results),
		)
	}

	return results, nil
}

func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// backslash plus the character it escapes
var escapeRegex = regexp.MustCompile(`(?s)\\.`)

// escapes backslashes that do not start a valid JSON escape, so lyric text
// like "\N" or "\m/" survives decoding verbatim
func fixInvalidEscapes(s string) string {
	return escapeRegex.ReplaceAllStringFunc(s, func(esc string) string {
		if strings.IndexByte(`"\/bfnrtu`, esc[1]) >= 0 {
			return esc
		}
		return `\` + esc
	})
}

// finds the first JSON value in text that decodes to a usable result list
func extractResults(text string) ([]Result, error) {
	text = fixInvalidEscapes(text)

	for i := strings.IndexAny(text, "[{"); i >= 0; {
		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&raw); err == nil {
			if results, ok := decodeResults(raw); ok {
				return results, nil
			}
		}
		next := strings.IndexAny(text[i+1:], "[{")
		if next < 0 {
			break
		}
		i += next + 1
	}
	return nil, fmt.Errorf("no valid result JSON found in response")
}

// object fields a model may wrap the array in, in preference order
var wrapperKeys = []string{"results", "translations", "romanizations", "lines", "data", "items"}

// decodeResults accepts a bare array or an object wrapping one under a
// known key
func decodeResults(raw json.RawMessage) ([]Result, bool) {
	var results []Result
	if json.Unmarshal(raw, &results) == nil {
		return results, hasText(results)
	}

	var wrapper map[string]json.RawMessage
	if json.Unmarshal(raw, &wrapper) != nil {
		return nil, false
	}
	for _, key := range wrapperKeys {
		field, ok := wrapper[key]
		if !ok {
			continue
		}
		if json.Unmarshal(field, &results) == nil && hasText(results) {
			return results, true
		}
	}
	return nil, false
}

// at least one non-empty text
func hasText(results []Result) bool {
	return slices.ContainsFunc(results, func(r Result) bool { return r.Text != "" })
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
