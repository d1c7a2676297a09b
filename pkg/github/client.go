package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com"

var (
	// ErrLocationIncomplete is returned before any network call when the
	// sync location is missing owner or repo.
	ErrLocationIncomplete = errors.New("github sync requires owner and repo")
	// ErrFileNotFound is returned when the remote file does not exist.
	ErrFileNotFound = errors.New("file not found in repository")
)

// Location addresses the remote document: a file at path on branch in
// owner/repo.
type Location struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

// Validate checks the non-empty owner/repo precondition. Branch and path
// have defaults applied at config load.
func (l Location) Validate() error {
	if l.Owner == "" || l.Repo == "" {
		return ErrLocationIncomplete
	}
	return nil
}

// File is a remote file's decoded content together with its revision
// marker (content SHA).
type File struct {
	Content []byte
	SHA     string
}

// Client talks to the GitHub Contents API for a single file.
type Client interface {
	// GetFile fetches content and SHA. Missing file -> ErrFileNotFound.
	GetFile(ctx context.Context, loc Location) (File, error)
	// GetFileSHA returns the current revision marker, or "" when the
	// file does not exist (absence is not an error).
	GetFileSHA(ctx context.Context, loc Location) (string, error)
	// PutFile upserts the file content. sha references the previous
	// revision when updating; pass "" to create.
	PutFile(ctx context.Context, loc Location, content []byte, sha string, message string) error
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Contents API client. The token is sent as a bearer
// credential via an oauth2 static token source; an empty token falls
// back to unauthenticated requests.
func NewClient(token string) *ClientImpl {
	return NewClientWithBaseURL(token, defaultBaseURL)
}

func NewClientWithBaseURL(token string, baseURL string) *ClientImpl {
	httpClient := http.DefaultClient
	if token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	return &ClientImpl{baseURL: baseURL, httpClient: httpClient}
}

func (c *ClientImpl) contentsURL(loc Location) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, loc.Owner, loc.Repo, url.PathEscape(loc.Path))
}

// apiError extracts the server-provided message from an error payload,
// falling back to the HTTP status.
func apiError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Message != "" {
			return fmt.Errorf("GitHub API error (%d): %s", resp.StatusCode, payload.Message)
		}
		if payload.Error != "" {
			return fmt.Errorf("GitHub API error (%d): %s", resp.StatusCode, payload.Error)
		}
	}
	return fmt.Errorf("GitHub API returned non-OK status: %d", resp.StatusCode)
}

// GetFile retrieves the file's content and revision marker.
func (c *ClientImpl) GetFile(ctx context.Context, loc Location) (File, error) {
	reqURL := fmt.Sprintf("%s?ref=%s", c.contentsURL(loc), url.QueryEscape(loc.Branch))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return File{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return File{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return File{}, ErrFileNotFound
	}
	if resp.StatusCode != http.StatusOK {
		err := apiError(resp)
		log.Error(err)
		return File{}, err
	}

	var response struct {
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return File{}, err
	}

	// The Contents API wraps base64 content with newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(response.Content, "\n", ""))
	if err != nil {
		err := fmt.Errorf("could not decode file content: %w", err)
		log.Error(err)
		return File{}, err
	}

	return File{Content: decoded, SHA: response.SHA}, nil
}

// GetFileSHA looks up the current revision marker of the file. A missing
// file yields an empty SHA without error, so callers can distinguish
// create from update.
func (c *ClientImpl) GetFileSHA(ctx context.Context, loc Location) (string, error) {
	file, err := c.GetFile(ctx, loc)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return "", nil
		}
		return "", err
	}
	return file.SHA, nil
}

// PutFile creates or updates the file content on the branch.
func (c *ClientImpl) PutFile(ctx context.Context, loc Location, content []byte, sha string, message string) error {
	body := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  loc.Branch,
	}
	if sha != "" {
		body["sha"] = sha
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", c.contentsURL(loc), bytes.NewReader(encoded))
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err := apiError(resp)
		log.Error(err)
		return err
	}
	return nil
}
