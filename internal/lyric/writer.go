package lyric

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// controls how a timeline is rendered back to text
type WriteOptions struct {
	// tracks to emit and their order per timestamp; empty means DefaultOrder
	Order []Kind

	// emit <mm:ss.fff> word markers for tracks that carry word spans
	WordByWord bool
}

// header tags written first, in this order
var knownTags = []string{"ti", "ar", "al", "au", "by", "offset", "length", "re", "ve"}

// renders timelines to lyric files
type Writer struct {
	Options WriteOptions
}

func NewWriter(opts WriteOptions) *Writer {
	return &Writer{Options: opts}
}

// writes the timeline to path, creating parent directories
func (w *Writer) Write(tl *Timeline, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(Write(tl, w.Options)), 0644); err != nil {
		return fmt.Errorf("failed to write lyric file: %w", err)
	}
	return nil
}

// Write renders tl as text. Without word-by-word every present track becomes
// its own [mm:ss.xx] line sharing the line's time; with it, tracks that carry
// word spans become one <mm:ss.fff> interleaved line each.
func Write(tl *Timeline, opts WriteOptions) string {
	if tl == nil {
		return ""
	}

	order := opts.Order
	if len(order) == 0 {
		order = DefaultOrder
	}

	var sb strings.Builder

	if header := writeHeader(tl.Metadata); header != "" {
		sb.WriteString(header)
		sb.WriteString("\n")
	}

	stamp := formatCentis
	if opts.WordByWord {
		stamp = formatMillis
	}

	for _, line := range tl.Lines {
		ms := line.TimeMs()
		for _, kind := range order {
			switch kind {
			case KindOriginal:
				if line.Origin != "" && line.Origin != KindOriginal {
					continue
				}
				if opts.WordByWord && len(line.Words) > 0 {
					writeWordLine(&sb, ms, line.Words, line.DurationMs)
					continue
				}
				// an empty text still emits its bare timestamp as a break marker
				fmt.Fprintf(&sb, "[%s]%s\n", stamp(ms), line.Text)

			case KindTranslation:
				if line.TranslationText() == "" {
					continue
				}
				fmt.Fprintf(&sb, "[%s]%s\n", stamp(ms), line.TranslationText())

			case KindRomanization:
				if line.RomanizationText() == "" {
					continue
				}
				if opts.WordByWord && len(line.RomanizationWords) > 0 {
					writeWordLine(&sb, ms, line.RomanizationWords, line.RomanizationDurationMs)
					continue
				}
				fmt.Fprintf(&sb, "[%s]%s\n", stamp(ms), line.RomanizationText())
			}
		}
	}

	return sb.String()
}

func writeHeader(meta Metadata) string {
	if len(meta) == 0 {
		return ""
	}

	var sb strings.Builder
	written := make(map[string]bool, len(meta))
	for _, key := range knownTags {
		if v, ok := meta.Get(key); ok {
			fmt.Fprintf(&sb, "[%s:%s]\n", key, v)
			written[key] = true
		}
	}
	for _, tag := range meta {
		if written[strings.ToLower(tag.Key)] {
			continue
		}
		fmt.Fprintf(&sb, "[%s:%s]\n", tag.Key, tag.Value)
	}
	return sb.String()
}

// [start]<w1>text <w2>text<end>; the end marker covers both the last word and
// the declared line duration
func writeWordLine(sb *strings.Builder, lineMs int64, words []WordSpan, declaredMs int64) {
	sb.WriteString("[" + formatMillis(lineMs) + "]")
	for _, w := range words {
		sb.WriteString("<" + formatMillis(w.StartMs) + ">")
		sb.WriteString(w.Text)
		if w.TrailingSpace {
			sb.WriteString(" ")
		}
	}

	end := words[len(words)-1].EndMs()
	if declaredMs > 0 && lineMs+declaredMs > end {
		end = lineMs + declaredMs
	}
	sb.WriteString("<" + formatMillis(end) + ">\n")
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
