// Package normalize converts raw caption text into a single cleaned paragraph.
package normalize

import (
	"regexp"
	"strings"
)

// Non-speech cues YouTube commonly embeds in caption tracks.
var annotationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[music\]`),
	regexp.MustCompile(`(?i)\[applause\]`),
	regexp.MustCompile(`(?i)\[laughter\]`),
	regexp.MustCompile(`(?i)\[cheering\]`),
	regexp.MustCompile(`(?i)\[audience\]`),
	regexp.MustCompile(`(?i)\[inaudible\]`),
	regexp.MustCompile(`(?i)\[silence\]`),
	regexp.MustCompile(`(?i)\[background music\]`),
	regexp.MustCompile(`(?i)\[background noise\]`),
	regexp.MustCompile(`(?i)\[intro music\]`),
	regexp.MustCompile(`(?i)\[outro music\]`),
	regexp.MustCompile(`(?i)\[theme music\]`),
	regexp.MustCompile(`(?i)\[upbeat music\]`),
	regexp.MustCompile(`(?i)\[soft music\]`),
	regexp.MustCompile(`(?i)\[dramatic music\]`),
	regexp.MustCompile(`(?i)\[foreign\]`),
	regexp.MustCompile(`(?i)\[speaking foreign language\]`),
	regexp.MustCompile(`\[♪+\]`),
}

var (
	// The lexicon above is a documented subset; any remaining bracketed
	// span is stripped generically.
	bracketSpan = regexp.MustCompile(`\[[^\]]*\]`)

	noteGlyphs = strings.NewReplacer("♪", "", "♫", "", "♬", "", "♩", "")

	whitespaceRun = regexp.MustCompile(`\s+`)

	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
	punctThenLetter  = regexp.MustCompile(`([.,!?;:])([A-Za-z])`)
)

// Join concatenates caption fragment texts with single spaces and cleans
// the result.
func Join(parts []string) string {
	return Text(strings.Join(parts, " "))
}

// Text cleans raw transcript text into a single human-readable paragraph.
// It is a total function and idempotent: Text(Text(s)) == Text(s).
func Text(s string) string {
	for _, p := range annotationPatterns {
		s = p.ReplaceAllString(s, "")
	}
	s = bracketSpan.ReplaceAllString(s, "")
	s = noteGlyphs.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = punctThenLetter.ReplaceAllString(s, "$1 $2")
	return strings.TrimSpace(s)
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
