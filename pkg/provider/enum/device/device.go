// Package device provides an [enum.Enumerator] for an on-device speech engine
// reached over its local WebSocket control socket.
//
// Embedded engines load their voice tables asynchronously after boot, so the
// control protocol is built around an explicit status handshake: the client
// asks for engine status and the engine answers "loading" until every voice
// pack is indexed. Voice listing is a plain request/response exchange on the
// same socket. Each Enumerator call dials a fresh connection; the control
// socket is cheap to open and holding it would pin the engine's session slot.
package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coder/websocket"

	"github.com/0x0all/brojko/pkg/provider/enum"
)

// Control protocol message types.
const (
	msgStatus     = "status"
	msgListVoices = "list_voices"
	msgVoices     = "voices"
	msgError      = "error"
)

// stateReady is the engine state that signals a fully loaded voice table.
const stateReady = "ready"

// request is the JSON frame sent to the engine.
type request struct {
	Type string `json:"type"`
}

// response is the JSON frame received from the engine. Fields are populated
// depending on Type.
type response struct {
	Type    string        `json:"type"`
	State   string        `json:"state,omitempty"`   // for "status"
	Voices  []deviceVoice `json:"voices,omitempty"`  // for "voices"
	Message string        `json:"message,omitempty"` // for "error"
}

// deviceVoice mirrors one voice entry in a "voices" frame.
type deviceVoice struct {
	Language string `json:"language"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Quality  string `json:"quality"`
}

// Option is a functional option for configuring the device Enumerator.
type Option func(*Enumerator)

// WithEngineName overrides the engine label stamped onto enumerated voices.
// Default: "device".
func WithEngineName(name string) Option {
	return func(e *Enumerator) {
		e.engine = name
	}
}

// Enumerator implements [enum.Enumerator] over a speech engine's WebSocket
// control socket.
type Enumerator struct {
	url    string
	engine string
}

// Compile-time interface assertion.
var _ enum.Enumerator = (*Enumerator)(nil)

// New creates a device Enumerator for the control socket at url
// (e.g. "ws://127.0.0.1:59125/control"). url must be non-empty.
func New(url string, opts ...Option) (*Enumerator, error) {
	if url == "" {
		return nil, errors.New("device: url must not be empty")
	}
	e := &Enumerator{url: url, engine: "device"}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// AwaitReady asks the engine for its status and returns nil once the engine
// reports a loaded voice table. While the engine is still loading, the error
// carries the reported state.
func (e *Enumerator) AwaitReady(ctx context.Context) error {
	resp, err := e.roundTrip(ctx, request{Type: msgStatus})
	if err != nil {
		return err
	}
	if resp.Type != msgStatus {
		return fmt.Errorf("device: unexpected frame %q to status request", resp.Type)
	}
	if resp.State != stateReady {
		return fmt.Errorf("device: engine not ready: state %q", resp.State)
	}
	return nil
}

// ListVoices requests the engine's current voice table.
func (e *Enumerator) ListVoices(ctx context.Context) ([]enum.RawVoice, error) {
	resp, err := e.roundTrip(ctx, request{Type: msgListVoices})
	if err != nil {
		return nil, err
	}
	return e.parseVoicesFrame(resp)
}

// roundTrip dials the control socket, sends one request frame, and reads one
// response frame.
func (e *Enumerator) roundTrip(ctx context.Context, req request) (*response, error) {
	conn, _, err := websocket.Dial(ctx, e.url, nil)
	if err != nil {
		return nil, fmt.Errorf("device: dial %q: %w", e.url, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("device: encode %q request: %w", req.Type, err)
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		return nil, fmt.Errorf("device: send %q request: %w", req.Type, err)
	}

	_, payload, err := conn.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("device: read %q response: %w", req.Type, err)
	}
	return parseFrame(payload)
}

// parseFrame decodes a control frame and surfaces engine-reported errors.
func parseFrame(payload []byte) (*response, error) {
	var resp response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("device: decode frame: %w", err)
	}
	if resp.Type == msgError {
		return nil, fmt.Errorf("device: engine error: %s", resp.Message)
	}
	return &resp, nil
}

// parseVoicesFrame converts a "voices" frame into RawVoice records.
func (e *Enumerator) parseVoicesFrame(resp *response) ([]enum.RawVoice, error) {
	if resp.Type != msgVoices {
		return nil, fmt.Errorf("device: unexpected frame %q to list_voices request", resp.Type)
	}
	voices := make([]enum.RawVoice, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		raw := enum.RawVoice{
			Language: v.Language,
			Name:     v.Name,
			Engine:   e.engine,
			Gender:   v.Gender,
		}
		if v.Quality != "" {
			raw.Metadata = map[string]string{"quality": v.Quality}
		}
		voices = append(voices, raw)
	}
	return voices, nil
}
