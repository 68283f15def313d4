package lyric

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// one grammar variant; returns nil when the line cannot be read
type lineParser interface {
	parseLine(line string) []Line
}

func parserFor(g Grammar) lineParser {
	switch g {
	case GrammarWordNumeric:
		return numericParser{}
	case GrammarWordAngle:
		return angleParser{}
	case GrammarPlain:
		return plainParser{}
	default:
		return nil
	}
}

// ParseTrack reads one raw lyric document in any of the supported grammars.
// It never fails: input with no readable line degrades to one untimed line
// per non-blank row.
func ParseTrack(raw string) *Track {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	track := &Track{}
	head := true
	var rows []string

	for _, row := range strings.Split(raw, "\n") {
		line := strings.TrimSpace(row)
		if line == "" {
			continue
		}
		rows = append(rows, line)

		grammar := Classify(line, head)
		switch grammar {
		case GrammarNone, GrammarComment:
			continue
		case GrammarMetadata:
			for _, tag := range parseMetadata(line) {
				track.Metadata = track.Metadata.Set(tag.Key, tag.Value)
			}
			continue
		}

		head = false
		track.Lines = append(track.Lines, parserFor(grammar).parseLine(line)...)
	}

	if len(track.Lines) == 0 && len(rows) > 0 {
		track.Lines = make([]Line, len(rows))
		for i, row := range rows {
			track.Lines[i] = Line{Text: row}
		}
	}

	sortLines(track.Lines)
	return track
}

// word text as written plus its resolved timing
type rawWord struct {
	text       string
	startMs    int64
	durationMs int64
}

// orderStarts keeps word starts non-decreasing in text order; a start earlier
// than its predecessor is raised to it
func orderStarts(raw []rawWord) {
	for i := 1; i < len(raw); i++ {
		if raw[i].startMs < raw[i-1].startMs {
			raw[i].startMs = raw[i-1].startMs
		}
	}
}

// assembleWords builds the display text and the word spans. Spans keep their
// trimmed text; the trailing-space flag is read from the display text.
func assembleWords(raw []rawWord) (string, []WordSpan) {
	var sb strings.Builder
	for _, w := range raw {
		sb.WriteString(w.text)
	}
	display := strings.TrimSpace(sb.String())

	spans := make([]WordSpan, 0, len(raw))
	cursor := 0
	for _, w := range raw {
		text := strings.TrimSpace(w.text)
		if text == "" {
			continue
		}

		pos := cursor
		if idx := strings.Index(display[cursor:], text); idx >= 0 {
			pos = cursor + idx
		}
		end := pos + len(text)
		if end > len(display) {
			end = len(display)
		}

		trailing := false
		if end < len(display) {
			r, _ := utf8.DecodeRuneInString(display[end:])
			trailing = unicode.IsSpace(r)
		}
		cursor = end

		duration := w.durationMs
		if duration < MinWordDuration {
			duration = MinWordDuration
		}

		spans = append(spans, WordSpan{
			Text:          text,
			StartMs:       w.startMs,
			DurationMs:    duration,
			TrailingSpace: trailing,
		})
	}

	if len(spans) == 0 {
		return "", nil
	}
	return display, spans
}
