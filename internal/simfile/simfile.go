// Package simfile locates and parses StepMania simfiles (.ssc and .sm).
//
// A simfile is a loosely formatted text file whose header carries
// fields of the shape #KEY:value; — only TITLE, SUBTITLE and ARTIST are
// extracted here, everything else in the file is ignored.
package simfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Simfile extensions, in selection priority order.
const (
	ExtSSC = ".ssc"
	ExtSM  = ".sm"
)

// Header field patterns. Values run from the colon to the next
// semicolon; a second occurrence of a key is ignored (first match
// wins, matching established tagger behaviour on real simfile packs).
var (
	titleRe    = regexp.MustCompile(`(?i)#TITLE:([^;]*);`)
	subtitleRe = regexp.MustCompile(`(?i)#SUBTITLE:([^;]*);`)
	artistRe   = regexp.MustCompile(`(?i)#ARTIST:([^;]*);`)
)

// Fields holds the extracted header fields. The Has booleans
// distinguish a missing field from one present with an empty value.
type Fields struct {
	Title    string
	Subtitle string
	Artist   string

	HasTitle    bool
	HasSubtitle bool
	HasArtist   bool
}

// SongTitle returns the display title: the subtitle appended to the
// title when one is present, whitespace-trimmed. Empty when the
// simfile carries neither field.
func (f Fields) SongTitle() string {
	title := f.Title
	if f.Subtitle != "" {
		title = strings.TrimSpace(title + " " + f.Subtitle)
	}
	return title
}

// Find returns the simfile to use for a song directory, or ok=false if
// the directory holds none. Any .ssc file beats any .sm file; within an
// extension class the lexicographically first name wins, which keeps
// selection deterministic across platforms (directory enumeration order
// is not guaranteed by the OS). Extension matching is case-insensitive
// and dot-prefixed file names are considered. Names are compared
// literally, so folders like "Song [Remix]" need no escaping.
func Find(dir string) (path string, ok bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var ssc, sm string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		// os.ReadDir sorts by name, so the first hit per class is the
		// lexicographic minimum.
		switch strings.ToLower(filepath.Ext(name)) {
		case ExtSSC:
			if ssc == "" {
				ssc = name
			}
		case ExtSM:
			if sm == "" {
				sm = name
			}
		}
	}

	switch {
	case ssc != "":
		return filepath.Join(dir, ssc), true
	case sm != "":
		return filepath.Join(dir, sm), true
	}
	return "", false
}

// Parse reads a simfile and extracts its header fields. Simfiles in the
// wild carry mixed and broken encodings; invalid byte sequences are
// harmless here since the patterns are matched over raw bytes. A read
// failure is returned to the caller, which typically logs it and
// proceeds with empty fields.
func Parse(path string) (Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fields{}, fmt.Errorf("read simfile: %w", err)
	}
	return parse(data), nil
}

func parse(data []byte) Fields {
	var f Fields
	if m := titleRe.FindSubmatch(data); m != nil {
		f.Title = strings.TrimSpace(string(m[1]))
		f.HasTitle = true
	}
	if m := subtitleRe.FindSubmatch(data); m != nil {
		f.Subtitle = strings.TrimSpace(string(m[1]))
		f.HasSubtitle = true
	}
	if m := artistRe.FindSubmatch(data); m != nil {
		f.Artist = strings.TrimSpace(string(m[1]))
		f.HasArtist = true
	}
	return f
}
