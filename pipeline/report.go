package pipeline

import (
	"fmt"
	"sort"

	"ytscribe/normalize"
	"ytscribe/store"
)

// Report aggregates statistics over a directory of transcript records.
type Report struct {
	Videos int

	// View statistics cover only records that carry a view count.
	VideosWithViews int
	TotalViews      uint64
	AverageViews    float64
	MedianViews     uint64

	TotalWords   int
	AverageWords float64
	MedianWords  int
}

// Summarize reads every record in the store and computes aggregate counts.
func Summarize(s *store.Store) (*Report, error) {
	paths, err := s.List()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	var views []uint64
	var words []int

	for _, path := range paths {
		rec, err := store.Read(path)
		if err != nil {
			return nil, fmt.Errorf("summarize: %w", err)
		}
		report.Videos++

		wc := normalize.WordCount(rec.Text)
		words = append(words, wc)
		report.TotalWords += wc

		if rec.Stats != nil && rec.Stats.ViewCount != nil {
			views = append(views, *rec.Stats.ViewCount)
			report.TotalViews += *rec.Stats.ViewCount
		}
	}

	report.VideosWithViews = len(views)
	if len(views) > 0 {
		report.AverageViews = float64(report.TotalViews) / float64(len(views))
		sort.Slice(views, func(i, j int) bool { return views[i] < views[j] })
		report.MedianViews = views[len(views)/2]
	}
	if len(words) > 0 {
		report.AverageWords = float64(report.TotalWords) / float64(len(words))
		sort.Ints(words)
		report.MedianWords = words[len(words)/2]
	}
	return report, nil
}

// Clean re-runs the normalizer over every record in src and writes the
// results into dst. Records already clean come out unchanged; the pass is
// idempotent.
func Clean(src, dst *store.Store) (int, error) {
	paths, err := src.List()
	if err != nil {
		return 0, err
	}

	var cleaned int
	for _, path := range paths {
		rec, err := store.Read(path)
		if err != nil {
			return cleaned, fmt.Errorf("clean: %w", err)
		}
		rec.Text = normalize.Text(rec.Text)
		if err := dst.Write(rec); err != nil {
			return cleaned, fmt.Errorf("clean: %w", err)
		}
		cleaned++
	}
	return cleaned, nil
}
