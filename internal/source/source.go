package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".mp4":  true,
	".ogg":  true,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// lyrics text plus whatever tags the container carried
type Document struct {
	Path   string
	Lyrics string
	Title  string
	Artist string
	Album  string
}

// IsAudioFile reports whether path is read through the tag reader.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Read returns the lyric text stored at path.
func Read(path string) (string, error) {
	doc, err := Load(path)
	if err != nil {
		return "", err
	}
	return doc.Lyrics, nil
}

// Load reads a lyric text file, or the lyrics embedded in an audio file.
func Load(path string) (*Document, error) {
	if IsAudioFile(path) {
		return loadAudio(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics file: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	return &Document{Path: path, Lyrics: string(data)}, nil
}

func loadAudio(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags from %s: %w", filepath.Base(path), err)
	}

	lyrics := strings.TrimPrefix(metadata.Lyrics(), "\ufeff")
	if strings.TrimSpace(lyrics) == "" {
		return nil, fmt.Errorf("no embedded lyrics in %s", filepath.Base(path))
	}

	return &Document{
		Path:   path,
		Lyrics: lyrics,
		Title:  metadata.Title(),
		Artist: metadata.Artist(),
		Album:  metadata.Album(),
	}, nil
}
