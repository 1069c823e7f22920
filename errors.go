package ytscribe

import (
	"ytscribe/youtube"
)

// Error handling types exported for library users.
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytscribe.ErrTranscriptUnavailable) {
//		fmt.Println("no transcript for this video")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var catErr *ytscribe.CatalogError
//	if errors.As(err, &catErr) {
//		fmt.Printf("enumerating %s failed: %v\n", catErr.Channel, catErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// RetrievalError wraps transcript retrieval failures; its Exhausted
	// field distinguishes exhausted retries from permanent unavailability.
	RetrievalError = youtube.RetrievalError
	// CatalogError wraps errors during channel video enumeration.
	CatalogError = youtube.CatalogError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrInvalidReference indicates the channel reference has no recognized shape.
	ErrInvalidReference = youtube.ErrInvalidReference
	// ErrChannelNotFound indicates no channel lives at the given reference.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrTranscriptUnavailable indicates no transcript in a preferred language exists.
	ErrTranscriptUnavailable = youtube.ErrTranscriptUnavailable
	// ErrCaptionsDisabled indicates the video has captions turned off.
	ErrCaptionsDisabled = youtube.ErrCaptionsDisabled
	// ErrVideoUnavailable indicates the video is private, deleted, or region-locked.
	ErrVideoUnavailable = youtube.ErrVideoUnavailable
)
