package innertube

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	ythttp "ytscribe/http"
	"ytscribe/youtube"
)

// Source implements youtube.TranscriptSource using the Innertube player
// endpoint for track discovery and the timedtext API for track contents.
type Source struct {
	client     *Client
	httpClient *ythttp.Client
}

// NewSource creates a transcript source sharing the catalog's clients.
func NewSource(client *Client, httpClient *ythttp.Client) *Source {
	return &Source{client: client, httpClient: httpClient}
}

// ListTracks returns the caption tracks the player exposes for videoID.
func (s *Source) ListTracks(ctx context.Context, videoID string) ([]youtube.CaptionTrack, error) {
	resp, err := s.client.Player(ctx, videoID)
	if err != nil {
		return nil, err
	}

	switch resp.PlayabilityStatus.Status {
	case "", "OK":
		// Playable.
	case "ERROR", "UNPLAYABLE", "LOGIN_REQUIRED":
		return nil, fmt.Errorf("%w: %s (%s)", youtube.ErrVideoUnavailable,
			videoID, resp.PlayabilityStatus.Reason)
	default:
		return nil, fmt.Errorf("%w: %s: playability %s", youtube.ErrVideoUnavailable,
			videoID, resp.PlayabilityStatus.Status)
	}

	raw := resp.Captions.TracklistRenderer.CaptionTracks
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", youtube.ErrCaptionsDisabled, videoID)
	}

	tracks := make([]youtube.CaptionTrack, 0, len(raw))
	for _, t := range raw {
		tracks = append(tracks, youtube.CaptionTrack{
			BaseURL:   t.BaseURL,
			Language:  t.LanguageCode,
			Name:      t.DisplayName(),
			Generated: t.Kind == "asr",
		})
	}
	return tracks, nil
}

// timedtextResponse is the json3 timedtext payload.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	StartMs    int64              `json:"tStartMs"`
	DurationMs int64              `json:"dDurationMs"`
	Segs       []timedtextSegment `json:"segs,omitempty"`
}

type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// FetchTrack downloads a caption track in json3 format and decodes it into
// timed segments.
func (s *Source) FetchTrack(ctx context.Context, track youtube.CaptionTrack) ([]youtube.Segment, error) {
	url := track.BaseURL
	if !strings.Contains(url, "fmt=") {
		if strings.Contains(url, "?") {
			url += "&fmt=json3"
		} else {
			url += "?fmt=json3"
		}
	}

	resp, err := s.httpClient.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	return parseTimedtext(resp.Body)
}

// parseTimedtext decodes a json3 timedtext document. Events without text
// segments (styling/window events) are skipped.
func parseTimedtext(data []byte) ([]youtube.Segment, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal timedtext: %w", err)
	}

	var segments []youtube.Segment
	for _, event := range resp.Events {
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}

		segments = append(segments, youtube.Segment{
			Text:     text.String(),
			Start:    float64(event.StartMs) / 1000.0,
			Duration: float64(event.DurationMs) / 1000.0,
		})
	}
	return segments, nil
}
