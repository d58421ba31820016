package retag

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2/v2"

	"github.com/pdaderko/stepsync/internal/tags"
)

// newTestRunner returns a Runner logging into the returned buffer.
func newTestRunner() (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRunner(log.New(&buf, "", 0)), &buf
}

// createMP3 creates a minimal untagged MP3 file at dir/name.
func createMP3(t *testing.T, dir, name string) string {
	t.Helper()

	// Minimal MP3 frame (MPEG1 Layer3, 128kbps, 44100Hz, stereo)
	frame := make([]byte, 417)
	frame[0] = 0xff
	frame[1] = 0xfb
	frame[2] = 0x90
	frame[3] = 0x00

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, frame, 0o600); err != nil {
		t.Fatalf("create MP3: %v", err)
	}
	return path
}

// mkSongDir creates root/pack/song and returns its path.
func mkSongDir(t *testing.T, root, pack, song string) string {
	t.Helper()
	dir := filepath.Join(root, pack, song)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return dir
}

func writeSimfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write simfile: %v", err)
	}
	return path
}

func TestRun_InvalidRoot(t *testing.T) {
	runner, _ := newTestRunner()

	if err := runner.Run(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("Run(missing) error = %v, want ErrInvalidRoot", err)
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := runner.Run(file); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("Run(file) error = %v, want ErrInvalidRoot", err)
	}
}

func TestRun_TagsFromSimfile(t *testing.T) {
	root := t.TempDir()
	dir := mkSongDir(t, root, "Cool Pack", "Some Song")
	writeSimfile(t, dir, "song.sm", "#TITLE:Foo;\n#SUBTITLE:Bar;\n#ARTIST:Baz;\n#BPMS:0=150;")
	path := createMP3(t, dir, "song.mp3")

	runner, buf := newTestRunner()
	if err := runner.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got, err := tags.Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.Title != "Foo Bar" {
		t.Errorf("Title = %q, want %q", got.Title, "Foo Bar")
	}
	if got.Artist != "Baz" {
		t.Errorf("Artist = %q, want %q", got.Artist, "Baz")
	}
	if got.Album != "Cool Pack" {
		t.Errorf("Album = %q, want %q", got.Album, "Cool Pack")
	}

	if !strings.Contains(buf.String(), "Tagged [MP3]: song.mp3 (Title: Foo Bar)") {
		t.Errorf("missing confirmation line in log:\n%s", buf.String())
	}
}

func TestRun_SSCBeatsSM(t *testing.T) {
	root := t.TempDir()
	dir := mkSongDir(t, root, "Pack", "Song")
	writeSimfile(t, dir, "song.sm", "#TITLE:From SM;")
	writeSimfile(t, dir, "song.ssc", "#TITLE:From SSC;")
	path := createMP3(t, dir, "song.mp3")

	runner, _ := newTestRunner()
	if err := runner.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got, err := tags.Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.Title != "From SSC" {
		t.Errorf("Title = %q, want %q", got.Title, "From SSC")
	}
}

func TestRun_NoSimfileLeavesFilesUntouched(t *testing.T) {
	root := t.TempDir()
	dir := mkSongDir(t, root, "Pack", "Orphan")
	path := createMP3(t, dir, "a.mp3")
	if err := tags.Write(path, &tags.Tag{Title: "Old", Album: "Old Pack"}); err != nil {
		t.Fatalf("pre-tag: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	createMP3(t, dir, "b.mp3")

	runner, buf := newTestRunner()
	if err := runner.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("file modified despite missing simfile")
	}

	// One warning per orphaned audio file
	warnings := strings.Count(buf.String(), "No .ssc or .sm found")
	if warnings != 2 {
		t.Errorf("warning count = %d, want 2:\n%s", warnings, buf.String())
	}
}

func TestRun_MixedFormatWarningOnce(t *testing.T) {
	root := t.TempDir()
	dir := mkSongDir(t, root, "Pack", "Song")
	writeSimfile(t, dir, "song.ssc", "#TITLE:Foo;")
	mp3 := createMP3(t, dir, "song.mp3")

	// Not a valid Ogg container: its tag write fails, but format
	// detection and the mixed warning only look at the extension.
	if err := os.WriteFile(filepath.Join(dir, "song.ogg"), []byte("junk"), 0o600); err != nil {
		t.Fatalf("write ogg: %v", err)
	}

	runner, buf := newTestRunner()
	if err := runner.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	warnings := strings.Count(buf.String(), "mixed formats detected")
	if warnings != 1 {
		t.Errorf("mixed format warnings = %d, want 1:\n%s", warnings, buf.String())
	}

	// The MP3 is still tagged normally
	got, err := tags.Read(mp3)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.Title != "Foo" {
		t.Errorf("Title = %q, want %q", got.Title, "Foo")
	}
}

func TestRun_UnreadableSimfileTagsAlbumOnly(t *testing.T) {
	root := t.TempDir()
	dir := mkSongDir(t, root, "Pack", "Broken")
	// A dangling symlink selects as a simfile but cannot be read
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "song.ssc")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	path := createMP3(t, dir, "song.mp3")

	sibling := mkSongDir(t, root, "Pack", "Fine")
	writeSimfile(t, sibling, "song.sm", "#TITLE:Ok;")
	siblingMP3 := createMP3(t, sibling, "song.mp3")

	runner, buf := newTestRunner()
	if err := runner.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !strings.Contains(buf.String(), "Failed to read simfile") {
		t.Errorf("missing simfile read failure in log:\n%s", buf.String())
	}

	// Album still written, no title or artist frames
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer tag.Close()
	if tag.Album() != "Pack" {
		t.Errorf("Album = %q, want %q", tag.Album(), "Pack")
	}
	if frames := tag.GetFrames(tag.CommonID("Title")); len(frames) != 0 {
		t.Errorf("unexpected title frames: %v", frames)
	}
	if frames := tag.GetFrames(tag.CommonID("Artist")); len(frames) != 0 {
		t.Errorf("unexpected artist frames: %v", frames)
	}

	// The sibling directory was still processed
	got, err := tags.Read(siblingMP3)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.Title != "Ok" {
		t.Errorf("sibling Title = %q, want %q", got.Title, "Ok")
	}
}

func TestRun_GlobSpecialCharactersInFolder(t *testing.T) {
	root := t.TempDir()
	dir := mkSongDir(t, root, "Pack", "Song [Remix]")
	writeSimfile(t, dir, "song.ssc", "#TITLE:Remixed;")
	path := createMP3(t, dir, "song.mp3")

	runner, _ := newTestRunner()
	if err := runner.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got, err := tags.Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.Title != "Remixed" {
		t.Errorf("Title = %q, want %q", got.Title, "Remixed")
	}
}

func TestRun_IdempotentRerun(t *testing.T) {
	root := t.TempDir()
	dir := mkSongDir(t, root, "Pack", "Song")
	writeSimfile(t, dir, "song.sm", "#TITLE:Foo;#ARTIST:Baz;")
	path := createMP3(t, dir, "song.mp3")

	runner, _ := newTestRunner()
	if err := runner.Run(root); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	if err := runner.Run(root); err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("rerun over unchanged tree changed file contents")
	}
}

func TestAlbumName(t *testing.T) {
	sep := string(filepath.Separator)

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(sep+"Songs", "Cool Pack", "Some Song", "song.ogg"), "Cool Pack"},
		{filepath.Join("packs", "Pack", "Song", "song.mp3"), "Pack"},
		{filepath.Join("Song", "song.mp3"), ""},
		{"song.mp3", ""},
		{filepath.Join(sep, "song.mp3"), ""},
	}

	for _, tt := range tests {
		if got := AlbumName(tt.path); got != tt.want {
			t.Errorf("AlbumName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
