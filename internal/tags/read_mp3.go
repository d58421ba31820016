package tags

import (
	"github.com/bogem/id3v2/v2"
)

// readMP3WithID3v2Fallback reads MP3 metadata using only the id3v2 library.
// This is used as a fallback when dhowden/tag fails (e.g., on some UTF-16 encoded tags).
func readMP3WithID3v2Fallback(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	artist := id3tag.Artist()
	return &Tag{
		Title:     id3tag.Title(),
		Artist:    artist,
		HasArtist: len(id3tag.GetFrames(id3tag.CommonID("Artist"))) > 0,
		Album:     id3tag.Album(),
	}, nil
}
