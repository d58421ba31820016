package tags

import (
	"go.senan.xyz/taglib"
)

// readOggWithTaglib reads Ogg metadata using TagLib as fallback when dhowden/tag fails.
func readOggWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}

	get := func(key string) string {
		if values, ok := rawTags[key]; ok && len(values) > 0 {
			return values[0]
		}
		return ""
	}

	_, hasArtist := rawTags[taglib.Artist]
	return &Tag{
		Title:     get(taglib.Title),
		Artist:    get(taglib.Artist),
		HasArtist: hasArtist,
		Album:     get(taglib.Album),
	}, nil
}
