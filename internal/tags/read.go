package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from an audio file. It is used for
// verification after a rewrite; audio stream properties are not read.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2Fallback(path)
		case ExtOGG:
			// dhowden/tag can fail on some Ogg files
			return readOggWithTaglib(path)
		}
		return nil, err
	}

	artist := m.Artist()
	return &Tag{
		Title:     m.Title(),
		Artist:    artist,
		HasArtist: artist != "",
		Album:     m.Album(),
	}, nil
}
