package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// channelIDPattern matches canonical YouTube channel IDs.
var channelIDPattern = regexp.MustCompile(`^UC[\w-]{22}$`)

// Resolver turns a user-supplied channel reference into a canonical channel ID.
//
// Accepted shapes: full URLs with /@handle, /channel/<id>, /c/<name> or
// /user/<name> paths, bare vanity path URLs, and a bare @handle token.
// Shapes without an embedded channel ID are resolved through the catalog's
// name lookup, so every shape denoting the same channel yields the same ID.
type Resolver struct {
	names NameResolver
}

// NewResolver creates a resolver that delegates name lookups to names.
func NewResolver(names NameResolver) *Resolver {
	return &Resolver{names: names}
}

// Resolve resolves ref to a channel ID. A lookup miss is terminal: it returns
// ErrChannelNotFound without retrying. Unrecognized shapes return
// ErrInvalidReference.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}

	// Bare channel ID.
	if channelIDPattern.MatchString(ref) {
		return ref, nil
	}

	// Bare @handle token.
	if strings.HasPrefix(ref, "@") {
		return r.lookup(ctx, "https://www.youtube.com/"+ref)
	}

	u, err := parseChannelURL(ref)
	if err != nil {
		return "", err
	}

	path := strings.Trim(u.EscapedPath(), "/")
	if path == "" {
		return "", fmt.Errorf("%w: no channel path in %q", ErrInvalidReference, ref)
	}
	segments := strings.Split(path, "/")

	switch {
	case segments[0] == "channel" && len(segments) > 1:
		id := segments[1]
		if !channelIDPattern.MatchString(id) {
			return "", fmt.Errorf("%w: malformed channel ID %q", ErrInvalidReference, id)
		}
		return id, nil

	case strings.HasPrefix(segments[0], "@"):
		return r.lookup(ctx, "https://www.youtube.com/"+segments[0])

	case (segments[0] == "c" || segments[0] == "user") && len(segments) > 1:
		return r.lookup(ctx, "https://www.youtube.com/"+segments[0]+"/"+segments[1])

	default:
		// Bare vanity path: youtube.com/<name>. Shape is ambiguous, so
		// the catalog's own lookup decides whether a channel lives there.
		return r.lookup(ctx, "https://www.youtube.com/"+segments[0])
	}
}

func (r *Resolver) lookup(ctx context.Context, pageURL string) (string, error) {
	id, err := r.names.ResolveName(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if !channelIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: lookup returned malformed ID %q", ErrChannelNotFound, id)
	}
	return id, nil
}

// parseChannelURL parses ref as a YouTube URL, tolerating a missing scheme.
func parseChannelURL(ref string) (*url.URL, error) {
	raw := ref
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "youtube.com" {
		return nil, fmt.Errorf("%w: host %q is not youtube.com", ErrInvalidReference, ref)
	}
	return u, nil
}
