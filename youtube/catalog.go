// Package youtube provides channel resolution, lazy video enumeration,
// transcript retrieval, and video statistics for YouTube channels.
package youtube

import (
	"context"
	"errors"
)

// Sentinel errors for channel and transcript operations.
var (
	// ErrInvalidReference indicates the channel reference shape is not recognized.
	ErrInvalidReference = errors.New("youtube: invalid channel reference")
	// ErrChannelNotFound indicates the channel does not exist.
	ErrChannelNotFound = errors.New("youtube: channel not found")
	// ErrTranscriptUnavailable indicates no usable transcript for the video.
	ErrTranscriptUnavailable = errors.New("youtube: transcript unavailable")
	// ErrCaptionsDisabled indicates the video has captions turned off.
	ErrCaptionsDisabled = errors.New("youtube: captions disabled")
	// ErrVideoUnavailable indicates the video is private, deleted, or blocked.
	ErrVideoUnavailable = errors.New("youtube: video unavailable")
	// ErrDone signals the end of a video sequence.
	ErrDone = errors.New("youtube: no more videos")
)

// VideoStub is the minimal listing entry for one channel video.
type VideoStub struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// URL returns the full watch URL for this video.
func (v VideoStub) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// VideoIterator produces channel videos one at a time, in upload-list order.
// The underlying pages are fetched lazily; each Next call may cost a network
// round trip. Iterators are consumed once and are not restartable.
type VideoIterator interface {
	// Next returns the next video, or ErrDone when the sequence is exhausted.
	Next(ctx context.Context) (VideoStub, error)
}

// Catalog enumerates a channel's videos and resolves vanity names.
type Catalog interface {
	NameResolver

	// Videos returns a lazy iterator over all videos of the channel.
	Videos(channelID string) VideoIterator
}

// NameResolver looks up a channel ID from a handle or vanity URL.
type NameResolver interface {
	// ResolveName resolves a channel page URL to its canonical channel ID.
	// Returns ErrChannelNotFound if no channel lives at that URL.
	ResolveName(ctx context.Context, pageURL string) (string, error)
}

// Limit caps an iterator at exactly n items. n <= 0 means no limit.
func Limit(it VideoIterator, n int) VideoIterator {
	if n <= 0 {
		return it
	}
	return &limitIterator{it: it, remaining: n}
}

type limitIterator struct {
	it        VideoIterator
	remaining int
}

func (l *limitIterator) Next(ctx context.Context) (VideoStub, error) {
	if l.remaining <= 0 {
		return VideoStub{}, ErrDone
	}
	stub, err := l.it.Next(ctx)
	if err != nil {
		return VideoStub{}, err
	}
	l.remaining--
	return stub, nil
}

// CatalogError wraps enumeration errors with the channel being listed.
type CatalogError struct {
	// Channel is the channel ID or URL that was being enumerated.
	Channel string
	// Err is the underlying error.
	Err error
}

func (e *CatalogError) Error() string {
	return "youtube: listing " + e.Channel + ": " + e.Err.Error()
}

func (e *CatalogError) Unwrap() error { return e.Err }
