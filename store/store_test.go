package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytscribe/youtube"
)

func u64(n uint64) *uint64 { return &n }

func TestWriteAndRead(t *testing.T) {
	s := New(t.TempDir())

	rec := Record{
		ID:    "dQw4w9WgXcQ",
		Title: "Test Video",
		Text:  "hello world this is a transcript",
		Stats: &youtube.Statistics{
			ViewCount:     u64(1000),
			LikeCount:     u64(50),
			FavoriteCount: u64(0),
			CommentCount:  u64(7),
		},
	}
	if err := s.Write(rec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(s.Path(rec.ID))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.ID != rec.ID || got.Title != rec.Title || got.Text != rec.Text {
		t.Errorf("Read() = %+v, want %+v", got, rec)
	}
	if got.Stats == nil {
		t.Fatal("Read() lost statistics")
	}
	if *got.Stats.ViewCount != 1000 || *got.Stats.CommentCount != 7 {
		t.Errorf("Read() stats = %+v, want views 1000, comments 7", got.Stats)
	}
}

func TestWriteFormat(t *testing.T) {
	s := New(t.TempDir())

	rec := Record{
		ID:    "abc123def45",
		Title: "A Title",
		Text:  "the transcript body",
		Stats: &youtube.Statistics{ViewCount: u64(42)},
	}
	if err := s.Write(rec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(s.Path(rec.ID))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	want := "Title: A Title\n" +
		"Video ID: abc123def45\n" +
		"URL: https://www.youtube.com/watch?v=abc123def45\n" +
		"View Count: 42\n" +
		"\n" +
		strings.Repeat("=", 40) + "\n" +
		"\n" +
		"the transcript body\n"
	if string(data) != want {
		t.Errorf("record content:\n%s\nwant:\n%s", data, want)
	}
}

func TestWriteOmitsAbsentCounts(t *testing.T) {
	s := New(t.TempDir())

	if err := s.Write(Record{ID: "vid", Title: "T", Text: "body"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(s.Path("vid"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(data), "Count:") {
		t.Errorf("record without stats contains count lines:\n%s", data)
	}
}

func TestExists(t *testing.T) {
	s := New(t.TempDir())

	if s.Exists("vid") {
		t.Error("Exists() = true before write")
	}
	if err := s.Write(Record{ID: "vid", Title: "T", Text: "x"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !s.Exists("vid") {
		t.Error("Exists() = false after write")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	for _, id := range []string{"bbb", "aaa", "ccc"} {
		if err := s.Write(Record{ID: id, Title: id, Text: "x"}); err != nil {
			t.Fatalf("Write(%s) error = %v", id, err)
		}
	}
	// Non-record files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	want := []string{"aaa.md", "bbb.md", "ccc.md"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestListMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))
	paths, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if paths != nil {
		t.Errorf("List() = %v, want nil for missing directory", paths)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.Write(Record{ID: "vid", Title: "T", Text: "x"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestReadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.md")
	if err := os.WriteFile(path, []byte("no headers here\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(path); err == nil {
		t.Error("Read() expected error for record without a video id")
	}
}
