package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/per2jensen/clonepulse/internal/utils"
	log "github.com/sirupsen/logrus"
)

const baseURL = "https://api.github.com"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)

// ClonesPayload is the response of the repository traffic/clones endpoint:
// up to 14 days of raw daily entries. Entries are kept undecoded so a
// single malformed one can be skipped without discarding the batch.
type ClonesPayload struct {
	Count   int               `json:"count"`
	Uniques int               `json:"uniques"`
	Clones  []json.RawMessage `json:"clones"`
}

// Client retrieves clone traffic statistics for a repository.
type Client interface {
	// FetchClones calls GET /repos/{user}/{repo}/traffic/clones with the
	// given bearer token.
	FetchClones(ctx context.Context, user string, repo string, token string) (ClonesPayload, error)
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *ClientImpl {
	return &ClientImpl{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(baseURL string) *ClientImpl {
	client := NewClient()
	client.baseURL = baseURL
	return client
}

func (c *ClientImpl) FetchClones(ctx context.Context, user string, repo string, token string) (ClonesPayload, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/traffic/clones", c.baseURL, user, repo)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return ClonesPayload{}, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return ClonesPayload{}, fmt.Errorf("failed to fetch clone traffic: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("GitHub API returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return ClonesPayload{}, err
	}

	var payload ClonesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return ClonesPayload{}, fmt.Errorf("failed to decode clone traffic response: %w", err)
	}

	return payload, nil
}

// ValidateName checks a GitHub user or repository name. The kind is used
// in the error message ("GitHub user", "GitHub repo").
func ValidateName(name string, kind string) error {
	if !namePattern.MatchString(name) {
		return utils.NewValidationError("invalid %s: %q", kind, name)
	}
	return nil
}
