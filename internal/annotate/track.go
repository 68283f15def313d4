package annotate

import (
	"strings"

	"github.com/mgpai22/lyrisync/internal/lyric"
)

// Items lists the distinct non-blank texts of lines in first-seen order, so
// a repeated chorus is sent once.
func Items(lines []lyric.Line) []Item {
	items := make([]Item, 0, len(lines))
	for _, text := range distinctTexts(lines) {
		items = append(items, Item{Index: len(items), Text: text})
	}
	return items
}

// BuildTrack renders results as a plain timed track aligned to lines. Lines
// whose text has no result are left out.
func BuildTrack(lines []lyric.Line, results []Result) string {
	byIndex := make(map[int]string, len(results))
	for _, r := range results {
		byIndex[r.Index] = strings.TrimSpace(r.Text)
	}

	texts := distinctTexts(lines)
	byText := make(map[string]string, len(texts))
	for i, text := range texts {
		if generated, ok := byIndex[i]; ok && generated != "" {
			byText[text] = generated
		}
	}

	tl := &lyric.Timeline{}
	for _, line := range lines {
		generated, ok := byText[strings.TrimSpace(line.Text)]
		if !ok {
			continue
		}
		tl.Lines = append(tl.Lines, lyric.Line{
			Time:  line.Time,
			Text:  generated,
			Index: len(tl.Lines),
		})
	}

	return lyric.Write(tl, lyric.WriteOptions{Order: []lyric.Kind{lyric.KindOriginal}})
}

func distinctTexts(lines []lyric.Line) []string {
	seen := make(map[string]bool, len(lines))
	var texts []string
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		texts = append(texts, text)
	}
	return texts
}
