// Package store persists transcript records as flat files, one per video.
// Filenames are deterministic (<videoID>.md), which makes runs idempotent:
// an existing file means the video is already done.
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"ytscribe/youtube"
)

// separator divides the record header from the transcript body.
const separator = "========================================"

// Record is one video's transcript with its metadata.
type Record struct {
	ID    string
	Title string
	Text  string

	// Stats is nil when enrichment was disabled or failed.
	Stats *youtube.Statistics
}

// Store manages a directory of transcript records.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the record filename for a video.
func (s *Store) Path(videoID string) string {
	return filepath.Join(s.dir, videoID+".md")
}

// Exists reports whether a record for the video is already on disk.
// Contents are not inspected.
func (s *Store) Exists(videoID string) bool {
	_, err := os.Stat(s.Path(videoID))
	return err == nil
}

// Write renders the record and commits it atomically. A crash mid-write
// leaves no partial file under the final name.
func (s *Store) Write(rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record has no video id")
	}

	w, err := newAtomicWriter(s.Path(rec.ID))
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte(renderRecord(rec))); err != nil {
		w.Abort()
		return fmt.Errorf("write record %s: %w", rec.ID, err)
	}
	if err := w.Commit(); err != nil {
		return fmt.Errorf("commit record %s: %w", rec.ID, err)
	}
	return nil
}

// List returns the paths of all records in the store, sorted by filename.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Read parses a record file back into a Record.
func Read(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("open record: %w", err)
	}
	defer f.Close()

	var rec Record
	var body []string
	inBody := false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if inBody {
			body = append(body, line)
			continue
		}
		if line == separator {
			inBody = true
			continue
		}

		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		switch key {
		case "Title":
			rec.Title = value
		case "Video ID":
			rec.ID = value
		case "View Count":
			setCount(&statsOf(&rec).ViewCount, value)
		case "Like Count":
			setCount(&statsOf(&rec).LikeCount, value)
		case "Favorite Count":
			setCount(&statsOf(&rec).FavoriteCount, value)
		case "Comment Count":
			setCount(&statsOf(&rec).CommentCount, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return Record{}, fmt.Errorf("read record: %w", err)
	}

	rec.Text = strings.TrimSpace(strings.Join(body, "\n"))
	if rec.ID == "" {
		return Record{}, fmt.Errorf("%s: no video id header", filepath.Base(path))
	}
	return rec, nil
}

func statsOf(rec *Record) *youtube.Statistics {
	if rec.Stats == nil {
		rec.Stats = &youtube.Statistics{}
	}
	return rec.Stats
}

func setCount(field **uint64, value string) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return
	}
	*field = &n
}

func renderRecord(rec Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", rec.Title)
	fmt.Fprintf(&b, "Video ID: %s\n", rec.ID)
	fmt.Fprintf(&b, "URL: https://www.youtube.com/watch?v=%s\n", rec.ID)

	if s := rec.Stats; s != nil {
		writeCount(&b, "View Count", s.ViewCount)
		writeCount(&b, "Like Count", s.LikeCount)
		writeCount(&b, "Favorite Count", s.FavoriteCount)
		writeCount(&b, "Comment Count", s.CommentCount)
	}

	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n\n")
	b.WriteString(rec.Text)
	b.WriteString("\n")
	return b.String()
}

func writeCount(b *strings.Builder, label string, n *uint64) {
	if n == nil {
		return
	}
	fmt.Fprintf(b, "%s: %d\n", label, *n)
}
