package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

// PullRequestFetcher retrieves the metadata and diff of a GitHub pull
// request, typically a rejected one, as raw text for the lessons-learned
// extraction.
type PullRequestFetcher struct {
	client  *http.Client
	baseURL string
}

type pullRequestMeta struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	State string `json:"state"`
}

var prURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)`)

func NewPullRequestFetcher() *PullRequestFetcher {
	return &PullRequestFetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.github.com",
	}
}

// FetchFailedPR returns a text bundle of the PR's title, description, and
// diff. The diff is truncated like git history to protect the context window.
func (f *PullRequestFetcher) FetchFailedPR(ctx context.Context, prURL string) (string, error) {
	matches := prURLPattern.FindStringSubmatch(prURL)
	if matches == nil {
		return "", fmt.Errorf("malformed pull request URL: %s", prURL)
	}
	owner, repo, number := matches[1], matches[2], matches[3]
	apiURL := fmt.Sprintf("%s/repos/%s/%s/pulls/%s", f.baseURL, owner, repo, number)

	metaRaw, err := f.get(ctx, apiURL, "application/vnd.github+json")
	if err != nil {
		return "", err
	}
	var meta pullRequestMeta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return "", fmt.Errorf("failed to decode pull request metadata: %w", err)
	}

	diffRaw, err := f.get(ctx, apiURL, "application/vnd.github.v3.diff")
	if err != nil {
		return "", err
	}
	diff := string(diffRaw)
	if len(diff) > maxHistoryChars {
		diff = diff[:maxHistoryChars] + "\n... [TRUNCATED DUE TO LENGTH]"
	}

	return fmt.Sprintf("PR Title: %s\nPR State: %s\n\nPR Description:\n%s\n\nPR Diff:\n%s",
		meta.Title, meta.State, meta.Body, diff), nil
}

func (f *PullRequestFetcher) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("github request failed (%d): %s", resp.StatusCode, url)
	}
	return raw, nil
}
