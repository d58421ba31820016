// Package export consolidates per-song similarity results into a
// single denormalized CSV report.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/pdaderko/stepsync/internal/audiomuse"
	"github.com/pdaderko/stepsync/internal/errmsg"
)

// FarthestRank marks the one "most different" row emitted per source song.
const FarthestRank = -1

// reportHeader is the column layout of the consolidated report: the
// source song repeated on every row, then the ranked match.
var reportHeader = []string{
	"source_title", "source_artist", "source_album",
	"rank", "title", "artist", "album", "distance",
}

// manifest columns required in the input CSV; extra columns are ignored.
var manifestColumns = []string{"id", "title", "artist", "album"}

// Song is one row of the library manifest.
type Song struct {
	ID     string
	Title  string
	Artist string
	Album  string
}

// Consolidator streams similarity results for a song manifest into a
// CSV report.
type Consolidator struct {
	Client *audiomuse.Client
	Count  int // similar tracks requested per song
	Log    *log.Logger
}

// NewConsolidator creates a Consolidator logging progress to stdout
// when logger is nil.
func NewConsolidator(client *audiomuse.Client, count int, logger *log.Logger) *Consolidator {
	if logger == nil {
		logger = log.New(os.Stdout, "", 0)
	}
	return &Consolidator{Client: client, Count: count, Log: logger}
}

// Run reads the manifest CSV from manifest and writes the consolidated
// report to out. Each source song yields its similar tracks ranked
// 1..Count followed by one farthest-track row with rank -1. An API
// failure for a song is logged and the song skipped; rows already
// written stay written. Output is streamed, nothing is held per run
// beyond the current song.
func (c *Consolidator) Run(ctx context.Context, manifest io.Reader, out io.Writer) error {
	reader := csv.NewReader(manifest)
	columns, err := readManifestHeader(reader)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpManifestRead, err)
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(reportHeader); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpReportWrite, err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", errmsg.OpManifestRead, err)
		}

		song := Song{
			ID:     record[columns["id"]],
			Title:  record[columns["title"]],
			Artist: record[columns["artist"]],
			Album:  record[columns["album"]],
		}

		c.Log.Printf("Retrieving similarities for: %s", song.Title)
		if err := c.writeSong(ctx, writer, song); err != nil {
			c.Log.Println(errmsg.FormatWith(errmsg.OpSimilarityQuery, song.Title, err))
			continue
		}

		// Flush per song so the report streams out as it is built
		writer.Flush()
		if err := writer.Error(); err != nil {
			return fmt.Errorf("%s: %w", errmsg.OpReportWrite, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeSong fetches and writes all report rows for one source song.
// All three API calls must succeed before anything is written, so a
// failing song contributes no partial block.
func (c *Consolidator) writeSong(ctx context.Context, writer *csv.Writer, song Song) error {
	similar, err := c.Client.SimilarTracks(ctx, song.ID, c.Count)
	if err != nil {
		return err
	}

	maxDist, err := c.Client.MaxDistance(ctx, song.ID)
	if err != nil {
		return err
	}
	farthest, err := c.Client.Track(ctx, maxDist.FarthestItemID)
	if err != nil {
		return err
	}

	for i := range similar {
		if err := writer.Write(reportRow(song, i+1, &similar[i], similar[i].Distance)); err != nil {
			return err
		}
	}
	return writer.Write(reportRow(song, FarthestRank, farthest, maxDist.MaxDistance))
}

// reportRow builds one output record.
func reportRow(song Song, rank int, track *audiomuse.Track, distance float64) []string {
	return []string{
		song.Title,
		song.Artist,
		song.Album,
		strconv.Itoa(rank),
		track.Title,
		track.Author,
		track.Album,
		strconv.FormatFloat(distance, 'g', -1, 64),
	}
}

// readManifestHeader maps required manifest column names to indices.
func readManifestHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range manifestColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return columns, nil
}
