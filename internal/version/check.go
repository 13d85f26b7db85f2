package version

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/conductor-cli/conductor/internal/logging"
)

// Client looks up the newest published release.
type Client struct {
	github *github.Client
}

// NewClient builds the release-lookup client. A non-empty token
// authenticates requests to raise the API rate limit; anonymous access is
// enough for the public repository.
func NewClient(token string) *Client {
	if token == "" {
		return &Client{github: github.NewClient(nil)}
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Client{github: github.NewClient(tc)}
}

// Latest fetches the newest released version, without any leading "v".
func (c *Client) Latest(ctx context.Context) (string, error) {
	release, resp, err := c.github.Repositories.GetLatestRelease(ctx, repoOwner, repoName)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %v (status: %d)", err, respStatus(resp))
	}

	return strings.TrimPrefix(release.GetTagName(), "v"), nil
}

// Notice runs the throttled update check and returns the newer version if
// one exists. Every failure is silent: update nagging must never break a
// workflow run.
func Notice(ctx context.Context, client *Client, cache *Cache) (string, bool) {
	if !cache.ShouldCheck() {
		return "", false
	}

	latest, err := client.Latest(ctx)
	cache.MarkChecked()
	if err != nil {
		logging.Debug("update check failed", "error", err)
		return "", false
	}
	if latest == "" || !IsNewer(Current, latest) {
		return "", false
	}

	return latest, true
}

func respStatus(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
