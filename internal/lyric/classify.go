package lyric

import (
	"regexp"
	"strings"
)

// grammar a single raw line was written in
type Grammar int

const (
	GrammarNone Grammar = iota
	GrammarComment
	GrammarMetadata
	GrammarWordNumeric
	GrammarWordAngle
	GrammarPlain
)

func (g Grammar) String() string {
	switch g {
	case GrammarComment:
		return "comment"
	case GrammarMetadata:
		return "metadata"
	case GrammarWordNumeric:
		return "word-numeric"
	case GrammarWordAngle:
		return "word-angle"
	case GrammarPlain:
		return "plain"
	default:
		return "none"
	}
}

const clockPattern = `\d+:\d{1,2}(?:[.:]\d+)?(?::\d{1,2}\.\d+)?`

var (
	commentRegex       = regexp.MustCompile(`^\[(?:` + clockPattern + `|\d+,\d+)\]\s*//`)
	metadataRegex      = regexp.MustCompile(`^\[([A-Za-z][A-Za-z0-9_ -]*):([^\]]*)\]`)
	numericHeaderRegex = regexp.MustCompile(`^\[(\d+),(\d+)\]`)
	timeTagRegex       = regexp.MustCompile(`^\[(` + clockPattern + `)\]`)
	angleMarkerRegex   = regexp.MustCompile(`<(` + clockPattern + `)>`)
)

// Classify picks the grammar of one non-blank line. head reports whether no
// timed line has been seen yet, which is the only place metadata is accepted.
func Classify(line string, head bool) Grammar {
	line = strings.TrimSpace(line)
	if line == "" {
		return GrammarNone
	}

	if commentRegex.MatchString(line) {
		return GrammarComment
	}

	if head && metadataRegex.MatchString(line) {
		return GrammarMetadata
	}

	if numericHeaderRegex.MatchString(line) {
		return GrammarWordNumeric
	}

	if timeTagRegex.MatchString(line) {
		// both an outer time and an inner marker, so "<3" in plain text stays plain
		if angleMarkerRegex.MatchString(line) {
			return GrammarWordAngle
		}
		return GrammarPlain
	}

	return GrammarNone
}

// parseMetadata collects every leading [key:value] group of a header line.
func parseMetadata(line string) Metadata {
	var meta Metadata
	rest := strings.TrimSpace(line)
	for {
		m := metadataRegex.FindStringSubmatch(rest)
		if m == nil {
			return meta
		}
		meta = meta.Set(strings.ToLower(strings.TrimSpace(m[1])), strings.TrimSpace(m[2]))
		rest = strings.TrimSpace(rest[len(m[0]):])
	}
}
