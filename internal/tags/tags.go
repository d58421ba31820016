// Package tags provides unified tag reading and writing for the audio
// formats found in StepMania song folders. It consolidates metadata
// handling for Ogg Vorbis and MP3 files.
package tags

import (
	"path/filepath"
	"strings"
)

// File extensions supported by the tags package.
const (
	ExtOGG = ".ogg"
	ExtMP3 = ".mp3"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Format identifies the tag container of an audio file.
type Format int

const (
	FormatVorbis Format = iota // Vorbis comments in an Ogg container
	FormatID3                  // ID3v2 tag in an MP3 file
)

// String returns the format label used in log output.
func (f Format) String() string {
	if f == FormatVorbis {
		return "OGG"
	}
	return "MP3"
}

// Tag is the field set written to an audio file.
//
// Album is always written. Title is written only when non-empty. Artist
// is written only when HasArtist is set: a simfile without an #ARTIST:
// field must leave no artist tag behind, which is different from an
// empty artist value.
type Tag struct {
	Title     string
	Artist    string
	HasArtist bool
	Album     string
}

// FormatForPath returns the tag format for an audio file path, keyed on
// the file extension (case-insensitive). ok is false for anything that
// is not a supported audio file.
func FormatForPath(path string) (format Format, ok bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtOGG:
		return FormatVorbis, true
	case ExtMP3:
		return FormatID3, true
	}
	return 0, false
}

// IsAudioFile returns true if the path has a supported audio file extension.
func IsAudioFile(path string) bool {
	_, ok := FormatForPath(path)
	return ok
}
