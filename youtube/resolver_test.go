package youtube

import (
	"context"
	"errors"
	"testing"
)

// fakeNames maps channel page URLs to channel IDs.
type fakeNames struct {
	byURL map[string]string
	calls []string
}

func (f *fakeNames) ResolveName(_ context.Context, pageURL string) (string, error) {
	f.calls = append(f.calls, pageURL)
	id, ok := f.byURL[pageURL]
	if !ok {
		return "", ErrChannelNotFound
	}
	return id, nil
}

const testChannelID = "UCuAXFkgsw1L7xaCfnd5JJOw"

func TestResolve_AllShapesSameChannel(t *testing.T) {
	names := &fakeNames{byURL: map[string]string{
		"https://www.youtube.com/@somecreator":     testChannelID,
		"https://www.youtube.com/c/SomeCreator":    testChannelID,
		"https://www.youtube.com/user/somecreator": testChannelID,
		"https://www.youtube.com/somecreator":      testChannelID,
	}}
	r := NewResolver(names)

	refs := []string{
		"https://www.youtube.com/@somecreator",
		"@somecreator",
		"https://www.youtube.com/channel/" + testChannelID,
		testChannelID,
		"https://www.youtube.com/c/SomeCreator",
		"https://www.youtube.com/user/somecreator",
		"youtube.com/somecreator",
		"www.youtube.com/@somecreator",
	}

	for _, ref := range refs {
		got, err := r.Resolve(context.Background(), ref)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", ref, err)
			continue
		}
		if got != testChannelID {
			t.Errorf("Resolve(%q) = %q, want %q", ref, got, testChannelID)
		}
	}
}

func TestResolve_ChannelURLNeedsNoLookup(t *testing.T) {
	names := &fakeNames{byURL: map[string]string{}}
	r := NewResolver(names)

	got, err := r.Resolve(context.Background(), "https://www.youtube.com/channel/"+testChannelID)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != testChannelID {
		t.Errorf("Resolve() = %q, want %q", got, testChannelID)
	}
	if len(names.calls) != 0 {
		t.Errorf("Resolve() made %d name lookups for a /channel/ URL, want 0", len(names.calls))
	}
}

func TestResolve_InvalidReference(t *testing.T) {
	r := NewResolver(&fakeNames{byURL: map[string]string{}})

	refs := []string{
		"",
		"https://vimeo.com/somecreator",
		"https://www.youtube.com/channel/notachannelid",
		"https://www.youtube.com/",
	}

	for _, ref := range refs {
		_, err := r.Resolve(context.Background(), ref)
		if !errors.Is(err, ErrInvalidReference) {
			t.Errorf("Resolve(%q) error = %v, want ErrInvalidReference", ref, err)
		}
	}
}

func TestResolve_ChannelNotFound(t *testing.T) {
	r := NewResolver(&fakeNames{byURL: map[string]string{}})

	_, err := r.Resolve(context.Background(), "@nosuchcreator")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("Resolve() error = %v, want ErrChannelNotFound", err)
	}
}
