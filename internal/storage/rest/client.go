// Package rest implements storage.Store against a hosted PostgREST-style
// table API (endpoint URL + public API key).
package rest

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

	"github.com/mmynk/tripplanner/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

const (
	preferRepresentation = "return=representation"
	preferMergeDupes     = "resolution=merge-duplicates,return=minimal"
)

// APIError is the error body returned by the table API.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Hint    string `json:"hint"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("table api: %d", e.Status)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Store talks to the table API over HTTP.
type Store struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.client = c }
}

// New creates a store for the service at baseURL.
func New(baseURL, apiKey string, opts ...Option) (*Store, error) {
	if baseURL == "" {
		return nil, errors.New("table api url is required")
	}
	if apiKey == "" {
		return nil, errors.New("table api key is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid table api url: %w", err)
	}

	s := &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close is a no-op; the HTTP client holds no per-store resources.
func (s *Store) Close() error {
	return nil
}

// Ping fetches one itinerary id to prove the endpoint and key work.
func (s *Store) Ping(ctx context.Context) error {
	var rows []struct {
		ID string `json:"id"`
	}
	q := url.Values{"select": {"id"}, "limit": {"1"}}
	if err := s.do(ctx, http.MethodGet, "itinerario", q, nil, "", &rows); err != nil {
		return fmt.Errorf("failed to query itinerario: %w", err)
	}
	return nil
}

// do performs one request against table. body is JSON-encoded when non-nil
// and the response is decoded into out when out is non-nil.
func (s *Store) do(ctx context.Context, method, table string, query url.Values, body any, prefer string, out any) error {
	endpoint := s.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s body: %w", table, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", table, err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(raw, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", table, err)
	}
	return nil
}

// eq builds a PostgREST equality filter value.
func eq(v string) string {
	return "eq." + v
}

// byID is the query addressing one row.
func byID(id string) url.Values {
	return url.Values{"id": {eq(id)}}
}

// unixOf converts an optional server timestamp.
func unixOf(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}

// timeOf converts a Unix timestamp for writing; zero lets the server default apply.
func timeOf(unix int64) *time.Time {
	if unix == 0 {
		return nil
	}
	t := time.Unix(unix, 0).UTC()
	return &t
}

// first returns the only element of rows or storage.ErrNotFound.
func first[T any](rows []T, what string) (T, error) {
	var zero T
	if len(rows) == 0 {
		return zero, fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return rows[0], nil
}
