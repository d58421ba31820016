package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// writeOggTags writes Vorbis comments to an Ogg file using TagLib.
func writeOggTags(path string, t *Tag) error {
	// ALBUM is unconditional; TITLE and ARTIST follow the presence rules
	// on Tag.
	tags := map[string][]string{
		taglib.Album: {t.Album},
	}
	if t.Title != "" {
		tags[taglib.Title] = []string{t.Title}
	}
	if t.HasArtist {
		tags[taglib.Artist] = []string{t.Artist}
	}

	// Clear removes every existing comment field not in our map.
	if err := taglib.WriteTags(path, tags, taglib.Clear); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}

	return nil
}
