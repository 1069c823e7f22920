// Package pipeline orchestrates a transcript acquisition run: resolve the
// channel, walk its videos, retrieve and normalize transcripts, enrich with
// statistics, and persist one record per video.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ytscribe/normalize"
	"ytscribe/store"
	"ytscribe/youtube"
)

// Options control a run.
type Options struct {
	// Languages in preference order for transcript selection.
	Languages []string

	// MaxVideos caps the number of videos considered. 0 means unlimited.
	MaxVideos int

	// RequestDelay is slept after each processed video to avoid hammering
	// the endpoints.
	RequestDelay time.Duration

	// DelaySkipped also applies the delay after videos skipped via the
	// exists check. Skipped videos make no network calls, so this defaults
	// to off.
	DelaySkipped bool
}

// Outcome summarizes a run. The per-video failure counters are disjoint.
type Outcome struct {
	Downloaded       int
	Skipped          int
	Failed           int
	RetriesExhausted int
	Unavailable      int
}

// Processed returns the number of videos that were not skipped.
func (o *Outcome) Processed() int {
	return o.Downloaded + o.Failed + o.RetriesExhausted + o.Unavailable
}

// Runner wires the pipeline stages together. All collaborators are
// interfaces or small structs so tests can substitute fakes.
type Runner struct {
	resolver  *youtube.Resolver
	catalog   youtube.Catalog
	retriever *youtube.Retriever
	stats     youtube.StatsProvider // nil disables enrichment
	store     *store.Store
	opts      Options
	log       *logrus.Logger

	// sleep is swappable in tests.
	sleep func(context.Context, time.Duration) error
}

// NewRunner creates a runner. stats may be nil to disable enrichment.
func NewRunner(catalog youtube.Catalog, retriever *youtube.Retriever,
	stats youtube.StatsProvider, st *store.Store, opts Options, log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.New()
	}
	return &Runner{
		resolver:  youtube.NewResolver(catalog),
		catalog:   catalog,
		retriever: retriever,
		stats:     stats,
		store:     st,
		opts:      opts,
		log:       log,
		sleep:     sleepContext,
	}
}

// Run processes every video of the channel identified by ref. Enumeration
// and resolution errors abort the run; per-video errors are counted in the
// outcome and the run continues.
func (r *Runner) Run(ctx context.Context, ref string) (*Outcome, error) {
	log := r.log.WithField("run_id", uuid.NewString())

	channelID, err := r.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ref, err)
	}
	log = log.WithField("channel_id", channelID)
	log.Info("starting run")

	it := r.catalog.Videos(channelID)
	if r.opts.MaxVideos > 0 {
		it = youtube.Limit(it, r.opts.MaxVideos)
	}

	outcome := &Outcome{}
	for {
		video, err := it.Next(ctx)
		if errors.Is(err, youtube.ErrDone) {
			break
		}
		if err != nil {
			return outcome, fmt.Errorf("enumerate videos: %w", err)
		}

		processed, err := r.processVideo(ctx, log, video, outcome)
		if err != nil {
			// Only context errors propagate out of processVideo.
			return outcome, err
		}

		if processed || r.opts.DelaySkipped {
			if err := r.delay(ctx); err != nil {
				return outcome, err
			}
		}
	}

	log.WithFields(logrus.Fields{
		"downloaded":        outcome.Downloaded,
		"skipped":           outcome.Skipped,
		"failed":            outcome.Failed,
		"retries_exhausted": outcome.RetriesExhausted,
		"unavailable":       outcome.Unavailable,
	}).Info("run complete")
	return outcome, nil
}

// processVideo moves one video through the pipeline stages. It reports
// whether any network work happened, and returns an error only when the
// context is done.
func (r *Runner) processVideo(ctx context.Context, log *logrus.Entry,
	video youtube.VideoStub, outcome *Outcome) (bool, error) {

	vlog := log.WithField("video_id", video.ID)

	// The exists check precedes all network work.
	if r.store.Exists(video.ID) {
		outcome.Skipped++
		vlog.Debug("already downloaded, skipping")
		return false, nil
	}

	transcript, err := r.retriever.Retrieve(ctx, video.ID, r.opts.Languages)
	if err != nil {
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		r.countRetrievalFailure(vlog, err, outcome)
		return true, nil
	}

	text := normalize.Text(normalize.Join(transcript.Texts()))

	var stats *youtube.Statistics
	if r.stats != nil {
		stats, err = r.stats.Fetch(ctx, video.ID)
		if err != nil {
			if ctx.Err() != nil {
				return true, ctx.Err()
			}
			vlog.WithError(err).Warn("statistics fetch failed, writing record without counts")
			stats = nil
		}
	}

	rec := store.Record{
		ID:    video.ID,
		Title: video.Title,
		Text:  text,
		Stats: stats,
	}
	if err := r.store.Write(rec); err != nil {
		outcome.Failed++
		vlog.WithError(err).Error("write failed")
		return true, nil
	}

	outcome.Downloaded++
	vlog.WithFields(logrus.Fields{
		"language": transcript.Language,
		"kind":     transcript.Kind,
		"words":    normalize.WordCount(text),
	}).Info("transcript saved")
	return true, nil
}

func (r *Runner) countRetrievalFailure(vlog *logrus.Entry, err error, outcome *Outcome) {
	var retErr *youtube.RetrievalError
	if errors.As(err, &retErr) && retErr.Exhausted {
		outcome.RetriesExhausted++
		vlog.WithError(err).Warn("retries exhausted")
		return
	}
	if errors.Is(err, youtube.ErrTranscriptUnavailable) ||
		errors.Is(err, youtube.ErrCaptionsDisabled) ||
		errors.Is(err, youtube.ErrVideoUnavailable) {
		outcome.Unavailable++
		vlog.WithError(err).Info("no transcript available")
		return
	}
	outcome.Failed++
	vlog.WithError(err).Error("transcript retrieval failed")
}

func (r *Runner) delay(ctx context.Context) error {
	if r.opts.RequestDelay <= 0 {
		return nil
	}
	return r.sleep(ctx, r.opts.RequestDelay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
