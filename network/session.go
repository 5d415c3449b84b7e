package network

import (
	"fmt"
	"io"
	"net/http"

	"github.com/nekosama-cli/nekosama/constant"
)

// StatusError reports a request that reached the server but returned a non-2xx status.
// The response body is retained so callers can surface the server's explanation.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// Session wraps a shared HTTP client with the scraping defaults (User-Agent stamping,
// full-body reads). One Session instance is shared by reference across every entity
// built from the same Client; it is not safe for concurrent use by external callers.
type Session struct {
	client *http.Client
}

// NewSession returns a Session backed by the shared application client.
func NewSession() *Session {
	return &Session{client: Client}
}

// NewSessionWith returns a Session backed by a caller-supplied client.
// Used by tests to point the session at an httptest server.
func NewSessionWith(c *http.Client) *Session {
	return &Session{client: c}
}

// Get issues a blocking GET and returns the full response body and status code.
// A non-2xx status is not an error at this level; callers decide the policy.
func (s *Session) Get(url string, headers map[string]string) (body []byte, status int, err error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// GetOK issues a blocking GET and converts any non-2xx status into a typed *StatusError.
func (s *Session) GetOK(url string, headers map[string]string) ([]byte, error) {
	body, status, err := s.Get(url, headers)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &StatusError{URL: url, StatusCode: status, Body: string(body)}
	}
	return body, nil
}
