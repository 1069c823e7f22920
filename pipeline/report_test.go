package pipeline

import (
	"testing"

	"ytscribe/store"
	"ytscribe/youtube"
)

func u64(n uint64) *uint64 { return &n }

func writeRecords(t *testing.T, s *store.Store, recs []store.Record) {
	t.Helper()
	for _, rec := range recs {
		if err := s.Write(rec); err != nil {
			t.Fatalf("Write(%s) error = %v", rec.ID, err)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := store.New(t.TempDir())
	writeRecords(t, s, []store.Record{
		{ID: "a", Title: "A", Text: "one two three",
			Stats: &youtube.Statistics{ViewCount: u64(100)}},
		{ID: "b", Title: "B", Text: "one two three four five",
			Stats: &youtube.Statistics{ViewCount: u64(300)}},
		{ID: "c", Title: "C", Text: "one"},
	})

	report, err := Summarize(s)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if report.Videos != 3 {
		t.Errorf("Videos = %d, want 3", report.Videos)
	}
	if report.VideosWithViews != 2 {
		t.Errorf("VideosWithViews = %d, want 2", report.VideosWithViews)
	}
	if report.TotalViews != 400 {
		t.Errorf("TotalViews = %d, want 400", report.TotalViews)
	}
	if report.AverageViews != 200 {
		t.Errorf("AverageViews = %g, want 200", report.AverageViews)
	}
	if report.MedianViews != 300 {
		t.Errorf("MedianViews = %d, want 300", report.MedianViews)
	}
	if report.TotalWords != 9 {
		t.Errorf("TotalWords = %d, want 9", report.TotalWords)
	}
	if report.MedianWords != 3 {
		t.Errorf("MedianWords = %d, want 3", report.MedianWords)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	report, err := Summarize(store.New(t.TempDir()))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if report.Videos != 0 || report.TotalViews != 0 || report.TotalWords != 0 {
		t.Errorf("report = %+v, want zeroes", report)
	}
}

func TestClean(t *testing.T) {
	src := store.New(t.TempDir())
	dst := store.New(t.TempDir())

	writeRecords(t, src, []store.Record{
		{ID: "a", Title: "A", Text: "hello [Music] world   extra",
			Stats: &youtube.Statistics{ViewCount: u64(5)}},
		{ID: "b", Title: "B", Text: "already clean"},
	})

	n, err := Clean(src, dst)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Clean() = %d, want 2", n)
	}

	rec, err := store.Read(dst.Path("a"))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Text != "hello world extra" {
		t.Errorf("cleaned text = %q, want %q", rec.Text, "hello world extra")
	}
	if rec.Stats == nil || rec.Stats.ViewCount == nil || *rec.Stats.ViewCount != 5 {
		t.Errorf("cleaning dropped statistics: %+v", rec.Stats)
	}

	rec, err = store.Read(dst.Path("b"))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Text != "already clean" {
		t.Errorf("clean record changed: %q", rec.Text)
	}
}
