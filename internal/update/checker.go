// Package update gates startup on the published release version.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultReleaseURL  = "https://api.github.com/repos/wyeaKR/AlwaysOnTop/releases/latest"
	DefaultHomepageURL = "https://www.wyea.info"
	DefaultTimeout     = 5 * time.Second
)

// Status is the outcome of a version check.
type Status int

const (
	StatusError Status = iota
	StatusLatest
	StatusUpdateNeeded
)

func (s Status) String() string {
	switch s {
	case StatusLatest:
		return "latest"
	case StatusUpdateNeeded:
		return "update_needed"
	default:
		return "error"
	}
}

// MarshalText lets Status render as its name in YAML and JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Policy decides when the remote version requires an update.
type Policy string

const (
	// PolicyNewer requires an update only when the remote version is
	// strictly greater than the running build.
	PolicyNewer Policy = "newer"
	// PolicyExact requires the running build to match the remote exactly.
	PolicyExact Policy = "exact"
)

// ParsePolicy validates a policy name. Empty means PolicyNewer.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyNewer:
		return PolicyNewer, nil
	case PolicyExact:
		return PolicyExact, nil
	default:
		return "", fmt.Errorf("unknown update policy %q (use newer or exact)", s)
	}
}

// Release is the subset of the release metadata the check needs.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker fetches the latest release and compares it to the running build.
type Checker struct {
	URL     string
	Current string
	Policy  Policy
	Timeout time.Duration
	Client  *http.Client
}

// Check returns StatusLatest or StatusUpdateNeeded, or StatusError with the
// cause on transport failure, timeout, non-2xx status or a malformed tag.
func (c *Checker) Check(ctx context.Context) (Status, Release, error) {
	rel, err := c.fetch(ctx)
	if err != nil {
		return StatusError, Release{}, err
	}
	status, err := Decide(c.Current, rel.TagName, c.Policy)
	if err != nil {
		return StatusError, rel, err
	}
	return status, rel, nil
}

// Decide compares the running version with a remote tag under policy.
func Decide(current, remoteTag string, policy Policy) (Status, error) {
	local, err := ParseVersion(current)
	if err != nil {
		return StatusError, fmt.Errorf("current version: %w", err)
	}
	remote, err := ParseVersion(remoteTag)
	if err != nil {
		return StatusError, fmt.Errorf("remote tag: %w", err)
	}
	cmp := Compare(remote, local)
	switch policy {
	case PolicyExact:
		if cmp != 0 {
			return StatusUpdateNeeded, nil
		}
	default:
		if cmp > 0 {
			return StatusUpdateNeeded, nil
		}
	}
	return StatusLatest, nil
}

func (c *Checker) fetch(ctx context.Context) (Release, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	url := c.URL
	if url == "" {
		url = DefaultReleaseURL
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Release{}, fmt.Errorf("build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Release{}, fmt.Errorf("release check timed out after %s: %w", timeout, err)
		}
		return Release{}, fmt.Errorf("release check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Release{}, fmt.Errorf("release check: unexpected status %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&rel); err != nil {
		return Release{}, fmt.Errorf("decode release: %w", err)
	}
	if rel.TagName == "" {
		return Release{}, fmt.Errorf("release response has no tag_name")
	}
	return rel, nil
}
