package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Statistics holds engagement counts for one video. Fields are nil when the
// Data API omits them (e.g. hidden like counts on some videos).
type Statistics struct {
	ViewCount     *uint64
	LikeCount     *uint64
	FavoriteCount *uint64
	CommentCount  *uint64
}

// StatsProvider fetches engagement statistics for videos.
// Implementations must never be fatal to the caller: a nil result with an
// error simply degrades the record.
type StatsProvider interface {
	Fetch(ctx context.Context, videoID string) (*Statistics, error)
}

// StatsClient fetches statistics via the YouTube Data API v3.
type StatsClient struct {
	service *yt.Service
}

// NewStatsClient creates a Data API client authenticated with an API key.
func NewStatsClient(ctx context.Context, apiKey string) (*StatsClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &StatsClient{service: service}, nil
}

// Fetch returns statistics for a single video, or nil if the API has no
// statistics for it.
func (c *StatsClient) Fetch(ctx context.Context, videoID string) (*Statistics, error) {
	batch, err := c.FetchBatch(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	return batch[videoID], nil
}

// FetchBatch returns statistics for up to 50 videos in one API call.
// Videos the API does not know are absent from the result map.
func (c *StatsClient) FetchBatch(ctx context.Context, videoIDs []string) (map[string]*Statistics, error) {
	resp, err := c.service.Videos.List([]string{"statistics"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}

	out := make(map[string]*Statistics, len(resp.Items))
	for _, item := range resp.Items {
		if item.Statistics == nil {
			continue
		}
		out[item.Id] = statisticsFromAPI(item.Statistics)
	}
	return out, nil
}

// statisticsFromAPI maps the Data API statistics object onto Statistics.
// The API reports hidden counters as zero; those are carried through as-is.
func statisticsFromAPI(s *yt.VideoStatistics) *Statistics {
	view := s.ViewCount
	like := s.LikeCount
	favorite := s.FavoriteCount
	comment := s.CommentCount
	return &Statistics{
		ViewCount:     &view,
		LikeCount:     &like,
		FavoriteCount: &favorite,
		CommentCount:  &comment,
	}
}
