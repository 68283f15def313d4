package lyric

import "strings"

// [mm:ss.fff]<mm:ss.fff>word<mm:ss.fff>word<mm:ss.fff>; a bare trailing
// marker closes the line and only sets the last word's duration
type angleParser struct{}

func (angleParser) parseLine(line string) []Line {
	m := timeTagRegex.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	lineStart, err := parseClock(m[1])
	if err != nil {
		return nil
	}

	body := line[len(m[0]):]
	locs := angleMarkerRegex.FindAllStringSubmatchIndex(body, -1)
	if len(locs) == 0 {
		return nil
	}

	raw := make([]rawWord, 0, len(locs)+1)
	for i, loc := range locs {
		start, err := parseClock(body[loc[2]:loc[3]])
		if err != nil {
			return nil
		}
		if i == 0 {
			// text before the first marker starts with the line, never after that marker
			if lead := body[:loc[0]]; strings.TrimSpace(lead) != "" {
				raw = append(raw, rawWord{text: lead, startMs: min(lineStart, start)})
			}
		}
		next := len(body)
		if i+1 < len(locs) {
			next = locs[i+1][0]
		}
		raw = append(raw, rawWord{text: body[loc[1]:next], startMs: start})
	}
	orderStarts(raw)

	for i := range raw {
		if i+1 < len(raw) {
			raw[i].durationMs = raw[i+1].startMs - raw[i].startMs
		}
	}

	result := Line{Time: msToSeconds(lineStart)}
	if last := raw[len(raw)-1]; strings.TrimSpace(last.text) == "" {
		if d := last.startMs - lineStart; d > 0 {
			result.DurationMs = d
		}
	}

	// all markers and no words: silent line, never the raw markers
	result.Text, result.Words = assembleWords(raw)
	return []Line{result}
}
