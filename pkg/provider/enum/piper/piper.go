// Package piper provides an [enum.Enumerator] backed by a Piper HTTP server's
// voice inventory endpoint.
package piper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/0x0all/brojko/pkg/provider/enum"
)

const voicesPath = "/voices"

// Option is a functional option for configuring the piper Enumerator.
type Option func(*Enumerator)

// WithHTTPClient sets the HTTP client used for all requests. Useful for tests
// and for callers that need custom timeouts or transports.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Enumerator) {
		e.httpClient = c
	}
}

// Enumerator implements [enum.Enumerator] against a Piper HTTP server.
type Enumerator struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time interface assertion.
var _ enum.Enumerator = (*Enumerator)(nil)

// New creates a piper Enumerator for the server at baseURL
// (e.g. "http://127.0.0.1:5000"). baseURL must be non-empty.
func New(baseURL string, opts ...Option) (*Enumerator, error) {
	if baseURL == "" {
		return nil, errors.New("piper: baseURL must not be empty")
	}
	e := &Enumerator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// voiceEntry mirrors one entry of the Piper voices response.
type voiceEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language struct {
		Code   string `json:"code"`
		Family string `json:"family"`
		Region string `json:"region"`
	} `json:"language"`
	Quality string `json:"quality"`
}

// AwaitReady probes the voices endpoint once. A Piper server answers it as
// soon as its voice table is loaded, so a 200 response is the readiness
// signal. Callers that need to wait out a slow startup poll this (see
// internal/ready).
func (e *Enumerator) AwaitReady(ctx context.Context) error {
	resp, err := e.getVoices(ctx)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("piper: not ready: status %d", resp.StatusCode)
	}
	return nil
}

// ListVoices fetches the current voice inventory.
func (e *Enumerator) ListVoices(ctx context.Context) ([]enum.RawVoice, error) {
	resp, err := e.getVoices(ctx)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("piper: list voices: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("piper: read voices response: %w", err)
	}
	return parseVoicesResponse(body)
}

// getVoices issues the GET request for the voices endpoint.
func (e *Enumerator) getVoices(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+voicesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("piper: build request: %w", err)
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("piper: request voices: %w", err)
	}
	return resp, nil
}

// parseVoicesResponse decodes the JSON voice list into RawVoice records.
//
// Piper reports language codes with an underscore ("en_US"); they are mapped
// to hyphenated BCP-47 form here, at the platform boundary. Names and codes
// are otherwise passed through untouched.
func parseVoicesResponse(body []byte) ([]enum.RawVoice, error) {
	var entries []voiceEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("piper: decode voices response: %w", err)
	}

	voices := make([]enum.RawVoice, 0, len(entries))
	for _, entry := range entries {
		voices = append(voices, enum.RawVoice{
			Language: strings.ReplaceAll(entry.Language.Code, "_", "-"),
			Name:     entry.Name,
			Engine:   "piper",
			Metadata: map[string]string{
				"id":      entry.ID,
				"quality": entry.Quality,
			},
		})
	}
	return voices, nil
}
