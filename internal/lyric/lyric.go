package lyric

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// shortest duration a word span may carry
const MinWordDuration int64 = 50

// default window under which lines of different tracks are the same moment
const DefaultTolerance = 50 * time.Millisecond

// represents a single timed word inside a line
type WordSpan struct {
	Text          string
	StartMs       int64 // absolute, track-relative
	DurationMs    int64
	TrailingSpace bool
}

// EndMs is the absolute end of the span in milliseconds.
func (w WordSpan) EndMs() int64 {
	return w.StartMs + w.DurationMs
}

// represents one lyric line on the timeline
type Line struct {
	Time  float64 // seconds
	Text  string  // empty marks an instrumental break
	Index int

	// nil means the track was never supplied, "" means supplied but silent here
	Translation  *string
	Romanization *string

	Words             []WordSpan
	RomanizationWords []WordSpan

	DurationMs             int64 // 0 when not declared
	RomanizationDurationMs int64

	Origin Kind
}

// TimeMs returns the line start in whole milliseconds.
func (l *Line) TimeMs() int64 {
	return secondsToMs(l.Time)
}

// TranslationText returns the translation or "" when absent.
func (l *Line) TranslationText() string {
	if l.Translation == nil {
		return ""
	}
	return *l.Translation
}

// RomanizationText returns the romanization or "" when absent.
func (l *Line) RomanizationText() string {
	if l.Romanization == nil {
		return ""
	}
	return *l.Romanization
}

// identifies one independently time-coded lyric stream
type Kind string

const (
	KindOriginal     Kind = "original"
	KindTranslation  Kind = "translation"
	KindRomanization Kind = "romanization"
)

// DefaultOrder is the serialization order used when none is given.
var DefaultOrder = []Kind{KindOriginal, KindTranslation, KindRomanization}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "original", "orig", "lyric":
		return KindOriginal, nil
	case "translation", "trans", "tlyric":
		return KindTranslation, nil
	case "romanization", "roma", "romaji", "romalrc":
		return KindRomanization, nil
	default:
		return "", fmt.Errorf("unknown track kind: %q", s)
	}
}

// ParseOrder parses a track ordering list, rejecting duplicates.
func ParseOrder(values []string) ([]Kind, error) {
	if len(values) == 0 {
		return append([]Kind(nil), DefaultOrder...), nil
	}

	seen := make(map[Kind]bool, len(values))
	order := make([]Kind, 0, len(values))
	for _, v := range values {
		k, err := ParseKind(v)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			return nil, fmt.Errorf("track kind %q listed twice", k)
		}
		seen[k] = true
		order = append(order, k)
	}
	return order, nil
}

// single metadata tag in document order
type Tag struct {
	Key   string
	Value string
}

// ordered metadata mapping captured from the document head
type Metadata []Tag

func (m Metadata) Get(key string) (string, bool) {
	for _, t := range m {
		if strings.EqualFold(t.Key, key) {
			return t.Value, true
		}
	}
	return "", false
}

// Set replaces an existing key or appends it.
func (m Metadata) Set(key, value string) Metadata {
	for i, t := range m {
		if strings.EqualFold(t.Key, key) {
			m[i].Value = value
			return m
		}
	}
	return append(m, Tag{Key: key, Value: value})
}

func (m Metadata) Title() string {
	v, _ := m.Get("ti")
	return v
}

func (m Metadata) Artist() string {
	v, _ := m.Get("ar")
	return v
}

func (m Metadata) Album() string {
	v, _ := m.Get("al")
	return v
}

// OffsetSec converts the [offset:ms] tag to seconds. Unparseable values count as 0.
func (m Metadata) OffsetSec() float64 {
	v, ok := m.Get("offset")
	if !ok {
		return 0
	}
	ms, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return ms / 1000
}

// lines produced by one parse call
type Track struct {
	Lines    []Line
	Metadata Metadata
}

// merged lyric document, immutable once built
type Timeline struct {
	Lines           []Line
	HasTranslation  bool
	HasRomanization bool
	Metadata        Metadata

	// user offset in seconds, added on top of the metadata offset
	Offset float64
}

// TotalOffset is the shift applied to playback time before lookup.
func (t *Timeline) TotalOffset() float64 {
	return t.Metadata.OffsetSec() + t.Offset
}

// Len reports the number of lines.
func (t *Timeline) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Lines)
}

// sortLines stable-sorts by time and rewrites every index.
func sortLines(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Time < lines[j].Time
	})
	for i := range lines {
		lines[i].Index = i
	}
}

func secondsToMs(sec float64) int64 {
	if sec < 0 {
		return -int64(-sec*1000 + 0.5)
	}
	return int64(sec*1000 + 0.5)
}

func msToSeconds(ms int64) float64 {
	return float64(ms) / 1000
}

func stringPtr(s string) *string {
	return &s
}
