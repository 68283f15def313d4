package lyric

import (
	"math"
	"time"
)

// Merge aligns the optional translation and romanization tracks onto the
// primary track. A nil secondary track is treated as absent. The inputs are
// not modified; every output line is a fresh record.
func Merge(
	primary, translation, romanization *Track,
	tolerance time.Duration,
) *Timeline {
	if tolerance < 0 {
		tolerance = 0
	}
	tol := tolerance.Seconds()

	tl := &Timeline{}
	var lines []Line
	if primary != nil {
		tl.Metadata = append(Metadata(nil), primary.Metadata...)
		lines = make([]Line, len(primary.Lines))
		for i, l := range primary.Lines {
			l.Origin = KindOriginal
			l.Translation = nil
			l.Romanization = nil
			l.RomanizationWords = nil
			l.RomanizationDurationMs = 0
			lines[i] = l
		}
		sortLines(lines)
	}

	if translation != nil {
		tl.HasTranslation = true
		lines = mergePass(lines, translation.Lines, KindTranslation, tol)
	}
	if romanization != nil {
		tl.HasRomanization = true
		lines = mergePass(lines, romanization.Lines, KindRomanization, tol)
	}

	// lines inserted by the romanization pass still need a translation field
	if tl.HasTranslation {
		for i := range lines {
			if lines[i].Translation == nil {
				lines[i].Translation = stringPtr("")
			}
		}
	}

	tl.Lines = lines
	return tl
}

// mergePass runs one two-pointer alignment of secondary onto primary. Lines
// of secondary that find no partner are appended as standalone cue points,
// then the result is sorted and re-indexed once.
func mergePass(primary, secondary []Line, kind Kind, tol float64) []Line {
	out := make([]Line, 0, len(primary)+len(secondary))
	consumed := make([]bool, len(secondary))

	p2 := 0
	for _, line := range primary {
		for p2 < len(secondary)-1 && secondary[p2].Time < line.Time-tol {
			p2++
		}

		if p2 < len(secondary) && !consumed[p2] &&
			math.Abs(secondary[p2].Time-line.Time) <= tol+1e-9 {
			line = attach(line, secondary[p2], kind)
			consumed[p2] = true
			p2++
		} else {
			line = attachEmpty(line, kind)
		}
		out = append(out, line)
	}

	for i, sec := range secondary {
		if consumed[i] {
			continue
		}
		out = append(out, standalone(sec, kind))
	}

	sortLines(out)
	return out
}

func attach(line, sec Line, kind Kind) Line {
	switch kind {
	case KindTranslation:
		line.Translation = stringPtr(sec.Text)
	case KindRomanization:
		line.Romanization = stringPtr(sec.Text)
		line.RomanizationWords = sec.Words
		line.RomanizationDurationMs = sec.DurationMs
	}
	return line
}

func attachEmpty(line Line, kind Kind) Line {
	switch kind {
	case KindTranslation:
		if line.Translation == nil {
			line.Translation = stringPtr("")
		}
	case KindRomanization:
		if line.Romanization == nil {
			line.Romanization = stringPtr("")
		}
	}
	return line
}

// standalone carries only the secondary field; the original text is empty
// and Origin marks it as not belonging to the primary track.
func standalone(sec Line, kind Kind) Line {
	return attach(Line{Time: sec.Time, Origin: kind}, sec, kind)
}
