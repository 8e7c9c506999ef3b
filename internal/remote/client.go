package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/newsletter-press/internal/config"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound marks a missing path: "no data yet", not a failure
	ErrNotFound = errors.New("remote: file not found")

	// ErrConflict marks a conditional write rejected because the stored
	// revision moved since the caller last read it. Never auto-retried.
	ErrConflict = errors.New("remote: revision conflict")
)

// APIError carries the provider's status and message for non-2xx responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote: API error %d: %s", e.StatusCode, e.Message)
}

// File is the content of a hosted file together with its revision token
type File struct {
	Content []byte
	SHA     string
}

// Client performs authenticated reads and conditional writes of files in a
// GitHub-hosted repository used as a durable store.
type Client struct {
	baseURL     string
	repo        string
	branch      string
	token       string
	fetchClient *http.Client
	putClient   *http.Client
	log         zerolog.Logger
}

// NewClient creates a remote file store client from the GitHub configuration
func NewClient(cfg *config.GitHubConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.APIBaseURL, "/"),
		repo:        cfg.Repo,
		branch:      cfg.Branch,
		token:       cfg.Token,
		fetchClient: &http.Client{Timeout: cfg.FetchTimeout},
		putClient:   &http.Client{Timeout: cfg.PutTimeout},
		log:         log.With().Str("component", "remote").Logger(),
	}
}

// contentResponse is the subset of the contents API response we read
type contentResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// putResponse is the subset of the write response carrying the new revision
type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// Fetch performs an authenticated GET of a file. A missing path returns
// ErrNotFound; any other non-2xx response surfaces as an *APIError.
func (c *Client) Fetch(ctx context.Context, path string) (*File, error) {
	u := fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s",
		c.baseURL, c.repo, path, url.QueryEscape(c.branch))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: building fetch request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var body contentResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("remote: decoding fetch response: %w", err)
		}
		// The contents API wraps base64 payloads with newlines
		raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(body.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("remote: decoding file content: %w", err)
		}
		return &File{Content: raw, SHA: body.SHA}, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, c.apiError(resp)
	}
}

// putRequest is the conditional write payload for the contents API
type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// Put performs an authenticated conditional PUT. A non-empty sha enforces
// optimistic concurrency: a stale sha yields ErrConflict. An empty sha is an
// unconditional create or overwrite. Returns the new revision token.
func (c *Client) Put(ctx context.Context, path string, content []byte, message, sha string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, c.repo, path)

	payload, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  c.branch,
		SHA:     sha,
	})
	if err != nil {
		return "", fmt.Errorf("remote: encoding put request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("remote: building put request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.putClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote: writing %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var body putResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("remote: decoding put response: %w", err)
		}
		c.log.Debug().Str("path", path).Str("sha", body.Content.SHA).Msg("File written")
		return body.Content.SHA, nil
	case http.StatusConflict, http.StatusUnprocessableEntity:
		apiErr := c.apiError(resp)
		c.log.Warn().Str("path", path).Str("sha", sha).Msg("Conditional write rejected")
		return "", fmt.Errorf("%w: %v", ErrConflict, apiErr)
	default:
		return "", c.apiError(resp)
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}

func (c *Client) apiError(resp *http.Response) *APIError {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
}
