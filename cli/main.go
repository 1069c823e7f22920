package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"ytscribe/config"
	ythttp "ytscribe/http"
	"ytscribe/internal/retry"
	"ytscribe/pipeline"
	"ytscribe/store"
	"ytscribe/youtube"
	"ytscribe/youtube/innertube"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "clean":
		cmdClean(args)
	case "stats":
		cmdStats(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		// A channel reference as the first argument means run.
		cmdRun(os.Args[1:])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ytscribe - YouTube channel transcript downloader

Usage:
  ytscribe run [flags] <channel>     Download all transcripts of a channel
  ytscribe clean [flags] <dir>       Re-normalize an existing transcript directory
  ytscribe stats [flags] <dir>       Summarize a transcript directory
  ytscribe help                      Show this help message

Examples:
  ytscribe run https://www.youtube.com/@veritasium
  ytscribe run --max 10 --out ./transcripts UCxxxxx
  ytscribe run @mkbhd --langs en,de
  ytscribe clean ./transcripts --out ./cleaned
  ytscribe stats ./transcripts

For help on a specific command: ytscribe <command> -h
`)
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// signalContext returns a context canceled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	outDir := fs.String("out", "", "output directory (default from config)")
	maxVideos := fs.Int("max", -1, "maximum videos to process (0 = all)")
	langs := fs.String("langs", "", "comma-separated language preference order")
	delay := fs.Duration("delay", -1, "delay between processed videos")
	noStats := fs.Bool("no-stats", false, "skip statistics enrichment")
	cookieFile := fs.String("cookies", "", "cookie file passed to the HTTP session")
	proxyFile := fs.String("proxies", "", "file listing proxy URLs, one per line")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe run [flags] <channel-url-or-handle-or-id>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	ref := fs.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override config file and environment.
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *maxVideos >= 0 {
		cfg.MaxVideos = *maxVideos
	}
	if *langs != "" {
		cfg.Languages = splitLangs(*langs)
	}
	if *delay >= 0 {
		cfg.RequestDelay = *delay
	}
	if *noStats {
		cfg.StatsEnabled = false
	}
	if *cookieFile != "" {
		cfg.CookieFile = *cookieFile
	}
	if *proxyFile != "" {
		cfg.ProxyFile = *proxyFile
	}

	log := newLogger(*verbose)

	ctx, cancel := signalContext()
	defer cancel()

	proxies, err := cfg.LoadProxies()
	if err != nil {
		log.WithError(err).Fatal("loading proxies")
	}

	httpCfg := ythttp.DefaultConfig()
	httpCfg.CookieFile = cfg.CookieFile
	httpCfg.ProxyURLs = proxies
	httpClient, err := ythttp.New(httpCfg)
	if err != nil {
		log.WithError(err).Fatal("creating http client")
	}
	defer httpClient.Close()

	itClient := innertube.NewClient(httpClient)
	catalog := innertube.NewCatalog(itClient)
	source := innertube.NewSource(itClient, httpClient)

	retryCfg := retry.Config{
		MaxAttempts:    cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Multiplier:     cfg.BackoffMultiplier,
		JitterFraction: 0.1,
	}
	retriever := youtube.NewRetriever(source, retryCfg)

	var stats youtube.StatsProvider
	if cfg.StatsEnabled {
		if cfg.APIKey == "" {
			log.Warn("stats enabled but no API key configured, records will have no counts")
		} else {
			client, err := youtube.NewStatsClient(ctx, cfg.APIKey)
			if err != nil {
				log.WithError(err).Warn("statistics client unavailable, continuing without counts")
			} else {
				stats = client
			}
		}
	}

	runner := pipeline.NewRunner(catalog, retriever, stats,
		store.New(cfg.OutputDir), pipeline.Options{
			Languages:    cfg.Languages,
			MaxVideos:    cfg.MaxVideos,
			RequestDelay: cfg.RequestDelay,
			DelaySkipped: cfg.DelaySkipped,
		}, log)

	start := time.Now()
	outcome, err := runner.Run(ctx, ref)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted")
		} else {
			log.WithError(err).Error("run failed")
		}
		// A partial run still did useful work.
		if outcome == nil || outcome.Downloaded == 0 {
			os.Exit(1)
		}
	}

	if outcome != nil {
		fmt.Printf("Done in %s: %d downloaded, %d skipped, %d unavailable, %d retries exhausted, %d failed\n",
			time.Since(start).Round(time.Second),
			outcome.Downloaded, outcome.Skipped, outcome.Unavailable,
			outcome.RetriesExhausted, outcome.Failed)
	}
}

func cmdClean(args []string) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	outDir := fs.String("out", "", "destination directory (default: in place)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe clean [flags] <transcript-dir>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	src := store.New(fs.Arg(0))
	dst := src
	if *outDir != "" {
		dst = store.New(*outDir)
	}

	n, err := pipeline.Clean(src, dst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cleaned %d records into %s\n", n, dst.Dir())
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe stats <transcript-dir>\n")
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	report, err := pipeline.Summarize(store.New(fs.Arg(0)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Videos:          %d\n", report.Videos)
	fmt.Printf("Total words:     %d\n", report.TotalWords)
	fmt.Printf("Average words:   %.0f\n", report.AverageWords)
	fmt.Printf("Median words:    %d\n", report.MedianWords)
	if report.VideosWithViews > 0 {
		fmt.Printf("With view data:  %d\n", report.VideosWithViews)
		fmt.Printf("Total views:     %d\n", report.TotalViews)
		fmt.Printf("Average views:   %.0f\n", report.AverageViews)
		fmt.Printf("Median views:    %d\n", report.MedianViews)
	}
}

func splitLangs(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
