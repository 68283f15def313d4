package lyric

import "math"

// Cursor answers "which line is active" for a playback time. It remembers
// the last match so monotonically increasing queries scan forward from it.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	lines  []Line
	offset float64
	last   int

	// lines examined by the most recent Locate
	probes int
}

// NewCursor positions a fresh cursor over tl.
func NewCursor(tl *Timeline) *Cursor {
	c := &Cursor{last: -1}
	if tl != nil {
		c.lines = tl.Lines
		c.offset = tl.TotalOffset()
	}
	return c
}

// Reset forgets the cached position.
func (c *Cursor) Reset() {
	c.last = -1
	c.probes = 0
}

// Locate returns the line whose [Time, next.Time) interval contains sec
// after the offset is applied, nil before the first line or for NaN, and the
// last line once past the end.
func (c *Cursor) Locate(sec float64) *Line {
	c.probes = 0
	n := len(c.lines)
	if n == 0 {
		return nil
	}

	t := sec + c.offset
	if math.IsNaN(t) || t < c.lines[0].Time {
		return nil
	}

	start := c.last
	if start < 0 {
		start = 0
	}

	for i := start; i < n; i++ {
		c.probes++
		if c.lines[i].Time > t {
			break
		}
		if c.contains(i, t) {
			c.last = i
			return &c.lines[i]
		}
	}

	// backward seek
	for i := 0; i < start; i++ {
		c.probes++
		if c.contains(i, t) {
			c.last = i
			return &c.lines[i]
		}
	}

	return nil
}

func (c *Cursor) contains(i int, t float64) bool {
	if c.lines[i].Time > t {
		return false
	}
	return i == len(c.lines)-1 || t < c.lines[i+1].Time
}

// Position reports the cached index, -1 when not yet positioned.
func (c *Cursor) Position() int {
	return c.last
}
