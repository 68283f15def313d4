package lyric

import (
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// raw lyric text for one song, as handed over by the loading layer
type Sources struct {
	Original     string
	Translation  string // optional
	Romanization string // optional

	// user offset in seconds, may be negative
	Offset float64
}

type Options struct {
	// alignment window; zero means DefaultTolerance
	Tolerance time.Duration
	Logger    *zap.SugaredLogger
}

// Build parses and merges src. Blank secondary text counts as an absent track.
func Build(src Sources, tolerance time.Duration) *Timeline {
	primary := ParseTrack(src.Original)

	var translation, romanization *Track
	if strings.TrimSpace(src.Translation) != "" {
		translation = ParseTrack(src.Translation)
	}
	if strings.TrimSpace(src.Romanization) != "" {
		romanization = ParseTrack(src.Romanization)
	}

	tl := Merge(primary, translation, romanization, tolerance)
	tl.Offset = src.Offset
	return tl
}

// published timeline together with the cursor positioned over it
type snapshot struct {
	timeline *Timeline
	cursor   *Cursor
}

// Engine owns the current timeline and its position cursor. Timelines are
// built aside and swapped in whole, so a reader sees either the old or the
// new one. Locate and Reset share one cursor and belong to a single reader.
type Engine struct {
	tolerance time.Duration
	logger    *zap.SugaredLogger
	current   atomic.Pointer[snapshot]
}

func NewEngine(opts Options) *Engine {
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	e := &Engine{
		tolerance: tolerance,
		logger:    logger,
	}
	e.Publish(&Timeline{})
	return e
}

// Tolerance reports the alignment window in use.
func (e *Engine) Tolerance() time.Duration {
	return e.tolerance
}

// Load builds a timeline from src and publishes it.
func (e *Engine) Load(src Sources) *Timeline {
	tl := Build(src, e.tolerance)
	e.Publish(tl)
	return tl
}

// Publish replaces the current timeline and resets the cursor.
func (e *Engine) Publish(tl *Timeline) {
	if tl == nil {
		tl = &Timeline{}
	}
	e.current.Store(&snapshot{timeline: tl, cursor: NewCursor(tl)})

	e.logger.Debugw("Published lyric timeline",
		"lines", len(tl.Lines),
		"translation", tl.HasTranslation,
		"romanization", tl.HasRomanization,
		"offset", tl.TotalOffset(),
	)
}

func (e *Engine) Timeline() *Timeline {
	return e.current.Load().timeline
}

// Locate returns the line active at playback time sec, or nil before the
// first line.
func (e *Engine) Locate(sec float64) *Line {
	return e.current.Load().cursor.Locate(sec)
}

// Current returns the published timeline together with the line active at
// sec in that same timeline.
func (e *Engine) Current(sec float64) (*Timeline, *Line) {
	s := e.current.Load()
	return s.timeline, s.cursor.Locate(sec)
}

// Reset forgets the cursor position of the current timeline.
func (e *Engine) Reset() {
	e.current.Load().cursor.Reset()
}

// Write renders the current timeline.
func (e *Engine) Write(opts WriteOptions) string {
	return Write(e.Timeline(), opts)
}
