package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mgpai22/lyrisync/internal/lyric"
	"github.com/mgpai22/lyrisync/internal/source"
	"github.com/spf13/cobra"
)

// adds the track and alignment flags shared by merge, locate and play
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("translation", "", "Translation lyrics file")
	cmd.Flags().String("romanization", "", "Romanization lyrics file")
	cmd.Flags().Int("tolerance", 0, "Merge tolerance in milliseconds (default from config)")
	cmd.Flags().Float64("offset", 0, "User offset in seconds added to the playback time")
}

// lyric files behind one song
type songFiles struct {
	Original     string
	Translation  string
	Romanization string
}

func (f songFiles) paths() []string {
	var out []string
	for _, p := range []string{f.Original, f.Translation, f.Romanization} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func songFilesFrom(cmd *cobra.Command, original string) songFiles {
	translation, _ := cmd.Flags().GetString("translation")
	romanization, _ := cmd.Flags().GetString("romanization")
	return songFiles{
		Original:     original,
		Translation:  translation,
		Romanization: romanization,
	}
}

func toleranceFrom(cmd *cobra.Command) (time.Duration, error) {
	ms, _ := cmd.Flags().GetInt("tolerance")
	if ms < 0 {
		return 0, fmt.Errorf("tolerance must not be negative, got %d", ms)
	}
	if !cmd.Flags().Changed("tolerance") {
		return cfg.Tolerance(), nil
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func offsetFrom(cmd *cobra.Command) float64 {
	if cmd.Flags().Changed("offset") {
		offset, _ := cmd.Flags().GetFloat64("offset")
		return offset
	}
	return cfg.Playback.OffsetSeconds
}

// loadTimeline reads every file and merges them into one timeline
func loadTimeline(files songFiles, tolerance time.Duration, offset float64) (*lyric.Timeline, error) {
	doc, err := source.Load(files.Original)
	if err != nil {
		return nil, err
	}

	src := lyric.Sources{Original: doc.Lyrics, Offset: offset}
	if files.Translation != "" {
		if src.Translation, err = source.Read(files.Translation); err != nil {
			return nil, err
		}
	}
	if files.Romanization != "" {
		if src.Romanization, err = source.Read(files.Romanization); err != nil {
			return nil, err
		}
	}

	tl := lyric.Build(src, tolerance)
	tl.Metadata = fillTags(tl.Metadata, doc)

	logger.Debugw("Loaded lyrics",
		"original", files.Original,
		"lines", tl.Len(),
		"translation", tl.HasTranslation,
		"romanization", tl.HasRomanization,
	)

	return tl, nil
}

// copies container tags into the lyric header where the lyrics lack them
func fillTags(meta lyric.Metadata, doc *source.Document) lyric.Metadata {
	for _, tag := range []lyric.Tag{
		{Key: "ti", Value: doc.Title},
		{Key: "ar", Value: doc.Artist},
		{Key: "al", Value: doc.Album},
	} {
		if strings.TrimSpace(tag.Value) == "" {
			continue
		}
		if _, ok := meta.Get(tag.Key); ok {
			continue
		}
		meta = meta.Set(tag.Key, tag.Value)
	}
	return meta
}

// formatLine renders a located line with its secondary texts indented below
func formatLine(line *lyric.Line) string {
	if line == nil {
		return "(no active line)"
	}

	var parts []string
	switch {
	case line.Text != "":
		parts = append(parts, line.Text)
	case line.Origin == "" || line.Origin == lyric.KindOriginal:
		parts = append(parts, "♪")
	}
	for _, text := range []string{line.TranslationText(), line.RomanizationText()} {
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "")
	}

	total := line.TimeMs() / 10
	stamp := fmt.Sprintf("[%02d:%02d.%02d] ", total/6000, total/100%60, total%100)
	return stamp + strings.Join(parts, "\n    ")
}
