// Package ytscribe downloads the transcripts of a YouTube channel.
//
// It resolves any common channel reference (URL, @handle, channel ID,
// vanity name), walks the channel's videos lazily, retrieves the best
// transcript per video according to a language preference order, cleans the
// text of non-speech annotations, optionally enriches each record with
// engagement statistics, and writes one flat file per video. Runs are
// idempotent: a record already on disk is skipped without any network work,
// so an interrupted run can simply be restarted.
//
// # Quick Start
//
// The ytscribe command drives a full run:
//
//	ytscribe run https://www.youtube.com/@veritasium
//	ytscribe run --max 10 --out ./transcripts UCxxxxx
//
// Re-normalize or summarize an existing directory:
//
//	ytscribe clean ./transcripts --out ./cleaned
//	ytscribe stats ./transcripts
//
// # Configuration
//
// Settings load from multiple sources, highest priority first:
//
//  1. Command-line flags
//  2. Environment variables (YTSCRIBE_*)
//  3. Config file (ytscribe.json or ~/.config/ytscribe/ytscribe.json)
//  4. Default values
//
// Environment variables:
//
//   - YTSCRIBE_OUTPUT_DIR: Directory for transcript records
//   - YTSCRIBE_MAX_VIDEOS: Maximum videos to process (0 = all)
//   - YTSCRIBE_REQUEST_DELAY: Delay between processed videos
//   - YTSCRIBE_DELAY_SKIPPED: Also delay after skipped videos (true/false)
//   - YTSCRIBE_LANGUAGES: Comma-separated language preference order
//   - YTSCRIBE_COOKIE_FILE: Cookie file passed to the HTTP session
//   - YTSCRIBE_PROXY_FILE: File listing proxy URLs
//   - YTSCRIBE_STATS_ENABLED: Statistics enrichment (true/false)
//   - YTSCRIBE_API_KEY: YouTube Data API key
//   - YTSCRIBE_MAX_RETRIES: Attempt ceiling for transient failures
//   - YTSCRIBE_INITIAL_BACKOFF: First retry delay
//   - YTSCRIBE_MAX_BACKOFF: Retry delay cap
//
// # Error Handling
//
// All operations return errors supporting the standard patterns:
//
//	if errors.Is(err, ytscribe.ErrChannelNotFound) {
//		fmt.Println("channel not found")
//	}
//
//	var retErr *ytscribe.RetrievalError
//	if errors.As(err, &retErr) && retErr.Exhausted {
//		fmt.Printf("gave up on %s after retries\n", retErr.VideoID)
//	}
//
// # Sub-packages
//
// For more control, use the sub-packages directly:
//
//   - youtube: channel resolution, video enumeration, transcripts, statistics
//   - youtube/innertube: the Innertube API transport behind the youtube types
//   - normalize: transcript text cleanup
//   - store: the on-disk record format
//   - pipeline: the run orchestrator, directory cleaning and summaries
//   - config: configuration management
package ytscribe
