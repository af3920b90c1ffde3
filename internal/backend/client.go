// Package backend implements the HTTP client for the production-records
// API: auth lifecycle, registros de envases, and the error translation both
// share.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/envaplast/planta-cli/internal/core/domain"
	"github.com/envaplast/planta-cli/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Client is the shared transport for all backend calls. It owns the base
// URL, the request deadline, and the mapping from HTTP outcomes onto the
// domain error taxonomy.
type Client struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
	store   ports.CredentialStore
	log     zerolog.Logger
}

// NewClient builds a Client for the given origin. A non-positive timeout
// falls back to the 30s default.
func NewClient(baseURL string, timeout time.Duration, store ports.CredentialStore, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpc:   &http.Client{},
		store:   store,
		log:     log,
	}
}

// Request describes one backend call. All options are explicit; there are no
// ambient defaults beyond the client-wide timeout.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// RequireAuth attaches the stored bearer token. When no token is
	// stored the call fails with domain.ErrNotAuthenticated before any
	// network I/O.
	RequireAuth bool
	// Timeout overrides the client-wide deadline for this call only.
	Timeout time.Duration
}

// apiErrorBody is the backend's error envelope. Message arrives as either a
// single string or a list of strings.
type apiErrorBody struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
}

// Do performs req and decodes a 2xx response body into out (skipped when out
// is nil). Failures are always one of the domain error classes.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var token string
	if req.RequireAuth {
		t, err := c.store.Token(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("credential store read failed")
		}
		if t == "" {
			return domain.ErrNotAuthenticated
		}
		token = t
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", domain.ErrUnknown, err)
		}
		body = bytes.NewReader(raw)
	}

	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", domain.ErrUnknown, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return c.translateTransportError(err, timeout)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.translateStatusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrUnknown, err)
	}
	return nil
}

func (c *Client) translateTransportError(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %s", domain.ErrTimeout, timeout, c.baseURL)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%w: %s: %v", domain.ErrConnection, c.baseURL, uerr.Err)
	}
	return fmt.Errorf("%w: %v", domain.ErrUnknown, err)
}

func (c *Client) translateStatusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var envelope apiErrorBody
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.StatusCode == 0 {
		// Undecodable body. 401/403 still map onto the auth sentinels so
		// session handling stays correct.
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &domain.APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("%w: status %d", domain.ErrUnknown, resp.StatusCode)
	}

	return &domain.APIError{
		StatusCode: resp.StatusCode,
		Message:    normalizeMessage(envelope.Message, resp.StatusCode),
	}
}

// normalizeMessage joins a string-or-list message into one string.
func normalizeMessage(raw json.RawMessage, status int) string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return strings.Join(many, ", ")
	}
	return fmt.Sprintf("Error %d", status)
}
