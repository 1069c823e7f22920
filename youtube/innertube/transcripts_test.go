package innertube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ytscribe/youtube"
)

func newSourceServer(t *testing.T, playerBody string) *Source {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(playerBody))
	}))
	t.Cleanup(server.Close)

	httpClient := newTestClient(t)
	client := NewClient(httpClient)
	client.PlayerURL = server.URL
	return NewSource(client, httpClient)
}

func TestListTracks(t *testing.T) {
	src := newSourceServer(t, `{
		"playabilityStatus": {"status": "OK"},
		"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
			{"baseUrl": "https://example.com/a", "languageCode": "en",
			 "name": {"simpleText": "English"}},
			{"baseUrl": "https://example.com/b", "languageCode": "en", "kind": "asr",
			 "name": {"runs": [{"text": "English "}, {"text": "(auto-generated)"}]}}
		]}}
	}`)

	tracks, err := src.ListTracks(context.Background(), "video-1")
	if err != nil {
		t.Fatalf("ListTracks() error = %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("ListTracks() returned %d tracks, want 2", len(tracks))
	}

	if tracks[0].Generated {
		t.Errorf("track 0 marked generated, want manual")
	}
	if tracks[0].Name != "English" {
		t.Errorf("track 0 name = %q, want %q", tracks[0].Name, "English")
	}
	if !tracks[1].Generated {
		t.Errorf("track 1 marked manual, want generated")
	}
	if tracks[1].Name != "English (auto-generated)" {
		t.Errorf("track 1 name = %q, want %q", tracks[1].Name, "English (auto-generated)")
	}
}

func TestListTracksUnavailable(t *testing.T) {
	for _, status := range []string{"ERROR", "UNPLAYABLE", "LOGIN_REQUIRED"} {
		t.Run(status, func(t *testing.T) {
			src := newSourceServer(t, `{"playabilityStatus": {"status": "`+status+`", "reason": "gone"}}`)

			_, err := src.ListTracks(context.Background(), "video-1")
			if !errors.Is(err, youtube.ErrVideoUnavailable) {
				t.Errorf("ListTracks() error = %v, want ErrVideoUnavailable", err)
			}
		})
	}
}

func TestListTracksCaptionsDisabled(t *testing.T) {
	src := newSourceServer(t, `{"playabilityStatus": {"status": "OK"}}`)

	_, err := src.ListTracks(context.Background(), "video-1")
	if !errors.Is(err, youtube.ErrCaptionsDisabled) {
		t.Errorf("ListTracks() error = %v, want ErrCaptionsDisabled", err)
	}
}

func TestFetchTrack(t *testing.T) {
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{"events": [
			{"tStartMs": 0, "dDurationMs": 1500, "segs": [{"utf8": "hello "}, {"utf8": "there"}]},
			{"tStartMs": 1500, "dDurationMs": 2000},
			{"tStartMs": 3500, "dDurationMs": 500, "segs": [{"utf8": "bye"}]}
		]}`))
	}))
	defer server.Close()

	httpClient := newTestClient(t)
	src := NewSource(NewClient(httpClient), httpClient)

	segments, err := src.FetchTrack(context.Background(), youtube.CaptionTrack{
		BaseURL: server.URL + "/api/timedtext?v=video-1",
	})
	if err != nil {
		t.Fatalf("FetchTrack() error = %v", err)
	}

	if !strings.Contains(gotURL, "fmt=json3") {
		t.Errorf("request URL %q missing fmt=json3", gotURL)
	}

	want := []youtube.Segment{
		{Text: "hello there", Start: 0, Duration: 1.5},
		{Text: "bye", Start: 3.5, Duration: 0.5},
	}
	if len(segments) != len(want) {
		t.Fatalf("FetchTrack() returned %d segments, want %d", len(segments), len(want))
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment[%d] = %+v, want %+v", i, segments[i], want[i])
		}
	}
}

func TestParseTimedtextInvalid(t *testing.T) {
	if _, err := parseTimedtext([]byte("not json")); err == nil {
		t.Error("parseTimedtext() expected error for malformed payload")
	}
}
