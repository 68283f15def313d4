package lyric

import (
	"regexp"
	"strconv"
	"strings"
)

var wordTimingRegex = regexp.MustCompile(`\((\d+),(\d+)(?:,\d+)*\)`)

// [lineStartMs,lineDurationMs] followed by per-word (startMs,durationMs[,x])
// groups. The group may sit before its word, (1000,500,0)word, or after it,
// word(1000,500); the layout is picked from what precedes the first group.
type numericParser struct{}

func (numericParser) parseLine(line string) []Line {
	m := numericHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	lineStart, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}
	lineDuration, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return nil
	}

	body := line[len(m[0]):]
	locs := wordTimingRegex.FindAllStringSubmatchIndex(body, -1)

	result := Line{
		Time:       msToSeconds(lineStart),
		DurationMs: lineDuration,
	}
	if len(locs) == 0 {
		// header only: a silent interval
		return []Line{result}
	}

	textFirst := strings.TrimSpace(body[:locs[0][0]]) != ""

	raw := make([]rawWord, len(locs))
	for i, loc := range locs {
		start, err := strconv.ParseInt(body[loc[2]:loc[3]], 10, 64)
		if err != nil {
			return nil
		}

		var text string
		if textFirst {
			prevEnd := 0
			if i > 0 {
				prevEnd = locs[i-1][1]
			}
			text = body[prevEnd:loc[0]]
		} else {
			nextStart := len(body)
			if i+1 < len(locs) {
				nextStart = locs[i+1][0]
			}
			text = body[loc[1]:nextStart]
		}

		raw[i] = rawWord{text: text, startMs: start}
	}

	orderStarts(raw)

	lineEnd := lineStart + lineDuration
	for i := range raw {
		if i+1 < len(raw) {
			raw[i].durationMs = raw[i+1].startMs - raw[i].startMs
		} else {
			raw[i].durationMs = lineEnd - raw[i].startMs
		}
	}

	result.Text, result.Words = assembleWords(raw)
	return []Line{result}
}
