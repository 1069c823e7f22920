package innertube

import (
	"context"
	"fmt"

	"ytscribe/youtube"
)

// Catalog implements youtube.Catalog over the Innertube API.
// Videos are enumerated lazily: each page is fetched only when the iterator
// runs out of buffered entries.
type Catalog struct {
	client *Client
}

// NewCatalog creates a catalog over the given Innertube client.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// ResolveName resolves a channel page URL to its channel ID via the
// navigation endpoint.
func (c *Catalog) ResolveName(ctx context.Context, pageURL string) (string, error) {
	id, err := c.client.Resolve(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%w: %s", youtube.ErrChannelNotFound, pageURL)
	}
	return id, nil
}

// Videos returns a lazy iterator over the channel's Videos tab.
func (c *Catalog) Videos(channelID string) youtube.VideoIterator {
	return &videoIterator{
		client:    c.client,
		channelID: channelID,
	}
}

// videoIterator pages through browse responses, buffering one page at a time.
type videoIterator struct {
	client    *Client
	channelID string

	buffer  []VideoEntry
	token   string
	started bool
	done    bool
}

// Next returns the next video, fetching the following page when the buffer
// is empty. It returns youtube.ErrDone after the last page is drained.
func (it *videoIterator) Next(ctx context.Context) (youtube.VideoStub, error) {
	for len(it.buffer) == 0 {
		if it.done {
			return youtube.VideoStub{}, youtube.ErrDone
		}
		if err := it.fetchPage(ctx); err != nil {
			return youtube.VideoStub{}, &youtube.CatalogError{Channel: it.channelID, Err: err}
		}
	}

	entry := it.buffer[0]
	it.buffer = it.buffer[1:]
	return youtube.VideoStub{ID: entry.VideoID, Title: entry.Title}, nil
}

func (it *videoIterator) fetchPage(ctx context.Context) error {
	if it.started && it.token == "" {
		it.done = true
		return nil
	}

	resp, err := it.client.Browse(ctx, it.channelID, it.token)
	if err != nil {
		return err
	}

	it.buffer = append(it.buffer, ExtractVideos(resp)...)
	it.token = ExtractContinuation(resp)
	it.started = true

	if it.token == "" {
		it.done = true
	}
	return nil
}
