package discovery

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://github.com"
	// downloadTimeout bounds one whole archive attempt (connect + body).
	downloadTimeout = 60 * time.Second
)

// Client downloads repository archives from GitHub codeload URLs.
type Client struct {
	restyClient *resty.Client
	baseURL     string
}

// NewClient creates a download client. token can be empty for public
// repositories; proxy is an optional HTTP proxy URL.
func NewClient(token, proxy string) *Client {
	client := resty.New()
	client.SetTimeout(downloadTimeout)
	client.SetHeader("User-Agent", "skillsync-cli/1.0")
	if token != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	if proxy != "" {
		client.SetProxy(proxy)
	}

	return &Client{
		restyClient: client,
		baseURL:     defaultBaseURL,
	}
}

// SetBaseURL overrides the archive host. Used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// ArchiveURL builds the codeload URL for one branch of a repository.
func (c *Client) ArchiveURL(owner, name, branch string) string {
	return fmt.Sprintf("%s/%s/%s/archive/refs/heads/%s.zip", c.baseURL, owner, name, branch)
}

// FetchArchive downloads one branch archive into memory.
func (c *Client) FetchArchive(url string) ([]byte, error) {
	resp, err := c.restyClient.R().Get(url)
	if err != nil {
		return nil, &DiscoveryError{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("download failed for %s", url),
			Err:     err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &DiscoveryError{
			Type: ErrorTypeNetwork,
			Message: fmt.Sprintf("download returned %d for %s (%s)",
				resp.StatusCode(), url, statusHint(resp.StatusCode())),
		}
	}

	return resp.Body(), nil
}

// ProbeLatency measures the round-trip time of a single GET against url.
// Used by the endpoint probe worker.
func (c *Client) ProbeLatency(url string) (time.Duration, error) {
	resp, err := c.restyClient.R().Get(url)
	if err != nil {
		return 0, &DiscoveryError{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("probe failed for %s", url),
			Err:     err,
		}
	}
	return resp.Time(), nil
}
