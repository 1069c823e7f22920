package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ythttp "ytscribe/http"
	"ytscribe/internal/retry"
)

// Kind distinguishes creator-supplied caption tracks from machine-generated ones.
type Kind string

const (
	// KindManual is a creator- or platform-supplied caption track.
	KindManual Kind = "manual"
	// KindGenerated is an auto-generated caption track.
	KindGenerated Kind = "generated"
)

// Segment is one timed caption fragment.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// CaptionTrack describes one caption track exposed for a video.
type CaptionTrack struct {
	// BaseURL is the track download URL.
	BaseURL string
	// Language is the track's BCP-47 language code (e.g. "en", "en-US").
	Language string
	// Name is the human-readable track name.
	Name string
	// Generated is true for auto-generated (ASR) tracks.
	Generated bool
}

// Transcript is a retrieved caption track for one video.
type Transcript struct {
	VideoID  string
	Kind     Kind
	Language string
	Segments []Segment
}

// Texts returns the segment texts in order.
func (t *Transcript) Texts() []string {
	out := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		out[i] = s.Text
	}
	return out
}

// TranscriptSource exposes caption tracks for videos.
type TranscriptSource interface {
	// ListTracks returns the caption tracks available for a video.
	// Returns ErrCaptionsDisabled or ErrVideoUnavailable for videos that
	// can never yield a transcript.
	ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)

	// FetchTrack downloads and decodes one caption track.
	FetchTrack(ctx context.Context, track CaptionTrack) ([]Segment, error)
}

// RetrievalError reports a failed transcript retrieval.
type RetrievalError struct {
	// VideoID is the video that failed.
	VideoID string
	// Exhausted is true when retries on transient failures ran out,
	// false when the failure was permanent.
	Exhausted bool
	// Err is the underlying error.
	Err error
}

func (e *RetrievalError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("youtube: transcript for %s: retries exhausted: %v", e.VideoID, e.Err)
	}
	return fmt.Sprintf("youtube: transcript for %s: %v", e.VideoID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Retriever fetches transcripts with language-priority selection and
// backoff-based retry under rate limiting.
type Retriever struct {
	source   TranscriptSource
	retryCfg retry.Config
}

// NewRetriever creates a retriever over the given transcript source.
func NewRetriever(source TranscriptSource, cfg retry.Config) *Retriever {
	return &Retriever{source: source, retryCfg: cfg}
}

// Retrieve fetches the best transcript for videoID given the ordered language
// priority list. Manual tracks win over generated ones across all preferred
// languages; a video whose tracks are all in unrelated languages fails with
// ErrTranscriptUnavailable rather than substituting one of them.
//
// Transient failures (throttling, 5xx, network) are retried with exponential
// backoff up to the configured attempt ceiling. Every failure is returned as
// a *RetrievalError wrapping ErrTranscriptUnavailable; its Exhausted field
// distinguishes ran-out-of-retries from permanently unavailable.
func (r *Retriever) Retrieve(ctx context.Context, videoID string, languages []string) (*Transcript, error) {
	var transcript *Transcript

	err := retry.Do(ctx, r.retryCfg, isTransientRetrievalError, func(ctx context.Context) error {
		tracks, err := r.source.ListTracks(ctx, videoID)
		if err != nil {
			return err
		}

		track, ok := selectTrack(tracks, languages)
		if !ok {
			return fmt.Errorf("%w: no track in preferred languages %v", ErrTranscriptUnavailable, languages)
		}

		segments, err := r.source.FetchTrack(ctx, track)
		if err != nil {
			return err
		}

		kind := KindManual
		if track.Generated {
			kind = KindGenerated
		}
		transcript = &Transcript{
			VideoID:  videoID,
			Kind:     kind,
			Language: track.Language,
			Segments: segments,
		}
		return nil
	})

	if err != nil {
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			return nil, &RetrievalError{
				VideoID:   videoID,
				Exhausted: true,
				Err:       fmt.Errorf("%w: %v", ErrTranscriptUnavailable, exhausted.Err),
			}
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if !errors.Is(err, ErrTranscriptUnavailable) {
			err = fmt.Errorf("%w: %v", ErrTranscriptUnavailable, err)
		}
		return nil, &RetrievalError{VideoID: videoID, Err: err}
	}

	return transcript, nil
}

// selectTrack picks the first preferred language with a manual track, falling
// back to the first preferred language with a generated track.
func selectTrack(tracks []CaptionTrack, languages []string) (CaptionTrack, bool) {
	for _, lang := range languages {
		for _, t := range tracks {
			if !t.Generated && strings.EqualFold(t.Language, lang) {
				return t, true
			}
		}
	}
	for _, lang := range languages {
		for _, t := range tracks {
			if t.Generated && strings.EqualFold(t.Language, lang) {
				return t, true
			}
		}
	}
	return CaptionTrack{}, false
}

// isTransientRetrievalError classifies retrieval failures. Throttling signals
// and server errors are transient; disabled captions, unavailable videos, and
// missing preferred languages are permanent.
func isTransientRetrievalError(err error) bool {
	if errors.Is(err, ErrCaptionsDisabled) ||
		errors.Is(err, ErrVideoUnavailable) ||
		errors.Is(err, ErrTranscriptUnavailable) {
		return false
	}

	var rateLimitErr *ythttp.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}

	var httpErr *ythttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}

	return retry.IsTransient(err)
}
