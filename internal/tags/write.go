package tags

import (
	"fmt"
	"os"
)

// Write replaces all tag metadata on an audio file with the given field
// set. Existing tags are wiped entirely before the new fields are
// written, so no stale fields survive from a prior tagging pass and
// rerunning over the same file is idempotent. The file is modified in
// place.
func Write(path string, t *Tag) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	format, ok := FormatForPath(path)
	if !ok {
		return fmt.Errorf("unsupported file format: %s", path)
	}

	if format == FormatVorbis {
		return writeOggTags(path, t)
	}
	return writeMP3Tags(path, t)
}
