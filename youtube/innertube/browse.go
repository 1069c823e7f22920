package innertube

import "strings"

// BrowseResponse is the subset of the browse endpoint response the catalog
// needs: rich grid contents on the first page, appended continuation items on
// later pages, and the continuation token for the next page.
type BrowseResponse struct {
	Contents           *contents        `json:"contents,omitempty"`
	OnResponseReceived []responseAction `json:"onResponseReceivedActions,omitempty"`
}

type contents struct {
	TwoColumnBrowseResultsRenderer *twoColumnRenderer `json:"twoColumnBrowseResultsRenderer,omitempty"`
}

type twoColumnRenderer struct {
	Tabs []tab `json:"tabs,omitempty"`
}

type tab struct {
	TabRenderer *tabRenderer `json:"tabRenderer,omitempty"`
}

type tabRenderer struct {
	Content *tabContent `json:"content,omitempty"`
}

type tabContent struct {
	RichGridRenderer *richGridRenderer `json:"richGridRenderer,omitempty"`
}

type richGridRenderer struct {
	Contents []gridItem `json:"contents,omitempty"`
}

type responseAction struct {
	AppendContinuationItemsAction *appendItemsAction `json:"appendContinuationItemsAction,omitempty"`
}

type appendItemsAction struct {
	ContinuationItems []gridItem `json:"continuationItems,omitempty"`
}

// gridItem is either a video entry or a continuation marker.
type gridItem struct {
	RichItemRenderer         *richItemRenderer         `json:"richItemRenderer,omitempty"`
	ContinuationItemRenderer *continuationItemRenderer `json:"continuationItemRenderer,omitempty"`
}

type richItemRenderer struct {
	Content *richItemContent `json:"content,omitempty"`
}

type richItemContent struct {
	VideoRenderer *videoRenderer `json:"videoRenderer,omitempty"`
}

type videoRenderer struct {
	VideoID string    `json:"videoId,omitempty"`
	Title   *textRuns `json:"title,omitempty"`
}

type continuationItemRenderer struct {
	ContinuationEndpoint *continuationEndpoint `json:"continuationEndpoint,omitempty"`
}

type continuationEndpoint struct {
	ContinuationCommand *continuationCommand `json:"continuationCommand,omitempty"`
}

type continuationCommand struct {
	Token string `json:"token,omitempty"`
}

// textRuns is YouTube's text wrapper: either a simple string or runs.
type textRuns struct {
	Runs       []textRun `json:"runs,omitempty"`
	SimpleText string    `json:"simpleText,omitempty"`
}

type textRun struct {
	Text string `json:"text,omitempty"`
}

func (t *textRuns) text() string {
	if t == nil {
		return ""
	}
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var parts []string
	for _, run := range t.Runs {
		parts = append(parts, run.Text)
	}
	return strings.Join(parts, "")
}

// VideoEntry is one video extracted from a browse page.
type VideoEntry struct {
	VideoID string
	Title   string
}

// ExtractVideos collects the video entries on a browse page, in page order.
func ExtractVideos(resp *BrowseResponse) []VideoEntry {
	if resp == nil {
		return nil
	}

	var videos []VideoEntry
	for _, item := range pageItems(resp) {
		if item.RichItemRenderer == nil || item.RichItemRenderer.Content == nil {
			continue
		}
		v := item.RichItemRenderer.Content.VideoRenderer
		if v == nil || v.VideoID == "" {
			continue
		}
		videos = append(videos, VideoEntry{
			VideoID: v.VideoID,
			Title:   v.Title.text(),
		})
	}
	return videos
}

// ExtractContinuation returns the next-page token, or "" on the last page.
func ExtractContinuation(resp *BrowseResponse) string {
	if resp == nil {
		return ""
	}
	for _, item := range pageItems(resp) {
		r := item.ContinuationItemRenderer
		if r != nil && r.ContinuationEndpoint != nil && r.ContinuationEndpoint.ContinuationCommand != nil {
			return r.ContinuationEndpoint.ContinuationCommand.Token
		}
	}
	return ""
}

// pageItems flattens the grid items of either a first-page or a continuation
// response.
func pageItems(resp *BrowseResponse) []gridItem {
	var items []gridItem

	for _, action := range resp.OnResponseReceived {
		if action.AppendContinuationItemsAction != nil {
			items = append(items, action.AppendContinuationItemsAction.ContinuationItems...)
		}
	}

	if resp.Contents != nil && resp.Contents.TwoColumnBrowseResultsRenderer != nil {
		for _, t := range resp.Contents.TwoColumnBrowseResultsRenderer.Tabs {
			if t.TabRenderer != nil && t.TabRenderer.Content != nil &&
				t.TabRenderer.Content.RichGridRenderer != nil {
				items = append(items, t.TabRenderer.Content.RichGridRenderer.Contents...)
			}
		}
	}

	return items
}
