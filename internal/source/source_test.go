package source

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"SONG.FLAC", true},
		{"a/b/c.m4a", true},
		{"track.ogg", true},
		{"lyrics.lrc", false},
		{"lyrics.yrc", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsAudioFile(tt.path); got != tt.want {
				t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestReadTextFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"plain", []byte("[00:01.00]Hello"), "[00:01.00]Hello"},
		{"bom", append([]byte{0xEF, 0xBB, 0xBF}, "[00:01.00]Hi"...), "[00:01.00]Hi"},
		{"empty", []byte{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".lrc")
			if err := os.WriteFile(path, tt.content, 0644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}
			got, err := Read(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.lrc")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadEmbeddedLyrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	tagBytes := id3v23(
		textFrame("TIT2", "Song"),
		textFrame("TPE1", "Artist"),
		lyricsFrame("[00:01.00]la la\n[00:02.00]da"),
	)
	if err := os.WriteFile(path, tagBytes, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Lyrics != "[00:01.00]la la\n[00:02.00]da" {
		t.Errorf("unexpected lyrics %q", doc.Lyrics)
	}
	if doc.Title != "Song" {
		t.Errorf("expected title Song, got %q", doc.Title)
	}
	if doc.Artist != "Artist" {
		t.Errorf("expected artist Artist, got %q", doc.Artist)
	}
}

func TestLoadAudioWithoutLyrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	if err := os.WriteFile(path, id3v23(textFrame("TIT2", "Song")), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if !strings.Contains(err.Error(), "no embedded lyrics") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.lrc")
	other := filepath.Join(dir, "other.lrc")
	if err := os.WriteFile(path, []byte("[00:01.00]a"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{path}, 50*time.Millisecond, nil, func(p string) {
			changed <- p
		})
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(other, []byte("ignored"), 0644); err != nil {
		t.Fatalf("failed to write other file: %v", err)
	}
	if err := os.WriteFile(path, []byte("[00:01.00]b"), 0644); err != nil {
		t.Fatalf("failed to rewrite fixture: %v", err)
	}

	select {
	case got := <-changed:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

// id3v23 builds a minimal ID3v2.3 tag around the given frames.
func id3v23(frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	size := len(body)

	var buf bytes.Buffer
	buf.WriteString("ID3")
	buf.Write([]byte{3, 0, 0})
	buf.Write([]byte{
		byte(size >> 21 & 0x7f),
		byte(size >> 14 & 0x7f),
		byte(size >> 7 & 0x7f),
		byte(size & 0x7f),
	})
	buf.Write(body)
	return buf.Bytes()
}

func frame(id string, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(payload)))
	buf.Write(size)
	buf.Write([]byte{0, 0})
	buf.Write(payload)
	return buf.Bytes()
}

func textFrame(id, text string) []byte {
	return frame(id, append([]byte{0}, text...))
}

func lyricsFrame(text string) []byte {
	payload := []byte{0}
	payload = append(payload, "eng"...)
	payload = append(payload, 0)
	payload = append(payload, text...)
	return frame("USLT", payload)
}
