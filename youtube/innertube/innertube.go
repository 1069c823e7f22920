// Package innertube provides access to YouTube's internal Innertube API:
// channel video listings with continuation-token pagination, vanity name
// resolution, and caption track discovery.
package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	ythttp "ytscribe/http"
)

const (
	browseEndpoint  = "https://www.youtube.com/youtubei/v1/browse"
	resolveEndpoint = "https://www.youtube.com/youtubei/v1/navigation/resolve_url"
	playerEndpoint  = "https://www.youtube.com/youtubei/v1/player"

	clientName    = "WEB"
	clientVersion = "2.20240101.00.00"

	// videosTabParams selects the Videos tab of a channel browse request.
	videosTabParams = "EgZ2aWRlb3PyBgQKAjoA"
)

// Client handles Innertube API interactions.
type Client struct {
	httpClient *ythttp.Client

	// Endpoint overrides, settable by tests.
	BrowseURL  string
	ResolveURL string
	PlayerURL  string
}

// NewClient creates a new Innertube API client over httpClient.
func NewClient(httpClient *ythttp.Client) *Client {
	return &Client{
		httpClient: httpClient,
		BrowseURL:  browseEndpoint,
		ResolveURL: resolveEndpoint,
		PlayerURL:  playerEndpoint,
	}
}

// clientContext identifies the caller in every Innertube request.
type clientContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
}

func webContext() clientContext {
	return clientContext{
		Client: innertubeClient{
			ClientName:    clientName,
			ClientVersion: clientVersion,
			HL:            "en",
			GL:            "US",
		},
	}
}

// post sends an Innertube API request and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, endpoint string, req, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Origin":       "https://www.youtube.com",
		"Referer":      "https://www.youtube.com/",
	}

	resp, err := c.httpClient.Do(ctx, http.MethodPost, endpoint, bytes.NewReader(body), headers)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// browseRequest is the payload for the browse endpoint.
type browseRequest struct {
	Context      clientContext `json:"context"`
	BrowseID     string        `json:"browseId,omitempty"`
	Continuation string        `json:"continuation,omitempty"`
	Params       string        `json:"params,omitempty"`
}

// Browse fetches one page of a channel's Videos tab. An empty continuation
// fetches the first page; subsequent pages use the token from the previous
// response.
func (c *Client) Browse(ctx context.Context, channelID, continuation string) (*BrowseResponse, error) {
	req := &browseRequest{Context: webContext()}
	if continuation != "" {
		req.Continuation = continuation
	} else {
		req.BrowseID = channelID
		req.Params = videosTabParams
	}

	var resp BrowseResponse
	if err := c.post(ctx, c.BrowseURL, req, &resp); err != nil {
		return nil, fmt.Errorf("browse %s: %w", channelID, err)
	}
	return &resp, nil
}

// resolveRequest is the payload for the navigation resolve endpoint.
type resolveRequest struct {
	Context clientContext `json:"context"`
	URL     string        `json:"url"`
}

// resolveResponse carries the resolved navigation endpoint.
type resolveResponse struct {
	Endpoint struct {
		BrowseEndpoint struct {
			BrowseID string `json:"browseId"`
		} `json:"browseEndpoint"`
	} `json:"endpoint"`
}

// Resolve maps a channel page URL (handle, /c/, /user/, vanity path) to its
// canonical channel ID. An empty result means no channel lives at that URL.
func (c *Client) Resolve(ctx context.Context, pageURL string) (string, error) {
	req := &resolveRequest{Context: webContext(), URL: pageURL}

	var resp resolveResponse
	if err := c.post(ctx, c.ResolveURL, req, &resp); err != nil {
		return "", fmt.Errorf("resolve %s: %w", pageURL, err)
	}
	return resp.Endpoint.BrowseEndpoint.BrowseID, nil
}

// playerRequest is the payload for the player endpoint.
type playerRequest struct {
	Context clientContext `json:"context"`
	VideoID string        `json:"videoId"`
}

// PlayerResponse is the subset of the player endpoint response covering
// playability and caption tracks.
type PlayerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		TracklistRenderer struct {
			CaptionTracks []CaptionTrackData `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// CaptionTrackData is one caption track entry in a player response.
type CaptionTrackData struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	// Kind is "asr" for auto-generated tracks.
	Kind string `json:"kind"`
	Name struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

// DisplayName returns the human-readable track name.
func (t CaptionTrackData) DisplayName() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	var out string
	for _, r := range t.Name.Runs {
		out += r.Text
	}
	return out
}

// Player fetches playability status and caption metadata for a video.
func (c *Client) Player(ctx context.Context, videoID string) (*PlayerResponse, error) {
	req := &playerRequest{Context: webContext(), VideoID: videoID}

	var resp PlayerResponse
	if err := c.post(ctx, c.PlayerURL, req, &resp); err != nil {
		return nil, fmt.Errorf("player %s: %w", videoID, err)
	}
	return &resp, nil
}
