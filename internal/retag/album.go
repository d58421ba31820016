package retag

import "path/filepath"

// AlbumName derives the album tag for an audio file from its position
// in the tree: the name of the directory two levels up, i.e. the pack
// folder in a Songs/Pack/Song/file layout. Purely positional - the
// directory is never checked for existence. Empty only when the file
// sits close enough to the filesystem root that no pack level exists.
func AlbumName(path string) string {
	name := filepath.Base(filepath.Dir(filepath.Dir(path)))
	if name == string(filepath.Separator) || name == "." {
		return ""
	}
	return name
}
