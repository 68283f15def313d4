package lyric

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockRegex     = regexp.MustCompile(`^(\d+):(\d{1,2})(?:([.:])(\d+))?$`)
	longClockRegex = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})\.(\d+)$`)
)

// parseClock converts mm:ss, mm:ss.fff, mm:ss:ff or hh:mm:ss.fff to milliseconds.
func parseClock(s string) (int64, error) {
	s = strings.TrimSpace(s)

	if m := longClockRegex.FindStringSubmatch(s); m != nil {
		hours, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, err
		}
		minutes, _ := strconv.ParseInt(m[2], 10, 64)
		seconds, _ := strconv.ParseInt(m[3], 10, 64)
		if minutes >= 60 || seconds >= 60 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		return hours*3600000 + minutes*60000 + seconds*1000 + fractionMs(m[4]), nil
	}

	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	minutes, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, err
	}
	seconds, _ := strconv.ParseInt(m[2], 10, 64)
	if seconds >= 60 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	return minutes*60000 + seconds*1000 + fractionMs(m[4]), nil
}

// fractionMs reads a decimal fraction of a second; digits past the third are dropped.
func fractionMs(digits string) int64 {
	if digits == "" {
		return 0
	}
	if len(digits) > 3 {
		digits = digits[:3]
	}
	for len(digits) < 3 {
		digits += "0"
	}
	v, _ := strconv.ParseInt(digits, 10, 64)
	return v
}

// formats as [mm:ss.xx] style body, centiseconds
func formatCentis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	cs := (ms + 5) / 10
	return fmt.Sprintf("%02d:%02d.%02d", cs/6000, (cs/100)%60, cs%100)
}

// formats as mm:ss.fff
func formatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}
