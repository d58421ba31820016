// Package retag walks a StepMania songs tree and rewrites the tags of
// every .ogg and .mp3 file from the simfile found next to it.
package retag

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pdaderko/stepsync/internal/errmsg"
	"github.com/pdaderko/stepsync/internal/simfile"
	"github.com/pdaderko/stepsync/internal/tags"
)

// ErrInvalidRoot is returned when the songs root is not a directory.
// It is the only fault that stops a run; everything below it is logged
// and skipped.
var ErrInvalidRoot = errors.New("not a directory")

// Runner retags a songs tree. Processing is sequential and carries no
// state across directories, so log output order is deterministic.
type Runner struct {
	log *log.Logger
}

// NewRunner creates a Runner writing progress to the given logger, or
// to stdout when logger is nil.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(os.Stdout, "", 0)
	}
	return &Runner{log: logger}
}

// Run processes every directory under root once. Audio files with a
// sibling simfile are retagged; ones without are reported and left
// untouched. Subtree read errors are skipped so one unreadable folder
// cannot stop the rest of the tree.
func (r *Runner) Run(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("%s: %w", root, ErrInvalidRoot)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrInvalidRoot)
	}

	return filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		// Skip any walk errors - intentionally continuing to scan other paths
		if walkErr != nil {
			return nil //nolint:nilerr // intentionally skipping errors
		}
		if !d.IsDir() {
			return nil
		}
		r.processDir(path)
		return nil
	})
}

// processDir retags the audio files of a single song directory.
func (r *Runner) processDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.log.Println(errmsg.FormatWith(errmsg.OpTreeScan, dir, err))
		return
	}

	simPath, hasSimfile := simfile.Find(dir)

	// The simfile content is static for the directory, so it is parsed
	// once and reused for every audio file. An unreadable simfile still
	// tags its files, just with no title or artist.
	var fields simfile.Fields
	if hasSimfile {
		fields, err = simfile.Parse(simPath)
		if err != nil {
			r.log.Println(errmsg.FormatWith(errmsg.OpSimfileRead, simPath, err))
		}
	}

	var sawVorbis, sawID3 bool
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format, ok := tags.FormatForPath(e.Name())
		if !ok {
			continue
		}
		switch format {
		case tags.FormatVorbis:
			sawVorbis = true
		case tags.FormatID3:
			sawID3 = true
		}

		if !hasSimfile {
			r.log.Printf("WARNING: no tags applied to '%s'. No .ssc or .sm found in %s", e.Name(), dir)
			continue
		}
		r.tagFile(filepath.Join(dir, e.Name()), format, fields)
	}

	// Both formats in one song folder usually means a leftover from a
	// pack conversion. Advisory only, files were still tagged above.
	if sawVorbis && sawID3 {
		r.log.Printf("WARNING: mixed formats detected in %s (both .ogg and .mp3 present)", dir)
	}
}

// tagFile wipes and rewrites the tags of a single audio file.
func (r *Runner) tagFile(path string, format tags.Format, fields simfile.Fields) {
	t := &tags.Tag{
		Title:     fields.SongTitle(),
		Artist:    fields.Artist,
		HasArtist: fields.HasArtist,
		Album:     AlbumName(path),
	}

	if err := tags.Write(path, t); err != nil {
		r.logWriteFailure(filepath.Base(path), err)
		return
	}

	r.log.Printf("Tagged [%s]: %s (Title: %s)", format, filepath.Base(path), t.Title)
}

// logWriteFailure reports a failed tag write. A name that is not valid
// UTF-8 would come out mangled on the log sink, so those fall back to a
// generic line without the name.
func (r *Runner) logWriteFailure(name string, err error) {
	if !utf8.ValidString(name) {
		r.log.Println(errmsg.Format(errmsg.OpTagWrite, err))
		return
	}
	r.log.Println(errmsg.FormatWith(errmsg.OpTagWrite, name, err))
}
