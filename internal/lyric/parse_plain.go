package lyric

import "strings"

// [mm:ss.xx][mm:ss.xx]text; every tag yields its own line with the same text
type plainParser struct{}

func (plainParser) parseLine(line string) []Line {
	var times []int64
	rest := strings.TrimSpace(line)

	for {
		m := timeTagRegex.FindStringSubmatch(rest)
		if m == nil {
			break
		}
		ms, err := parseClock(m[1])
		if err != nil {
			return nil
		}
		times = append(times, ms)
		rest = strings.TrimLeft(rest[len(m[0]):], " \t")
	}

	if len(times) == 0 {
		return nil
	}

	text := strings.TrimSpace(rest)
	lines := make([]Line, len(times))
	for i, ms := range times {
		lines[i] = Line{
			Time: msToSeconds(ms),
			Text: text,
		}
	}
	return lines
}
