package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"
)

// Config holds the transport timeouts. Zero disables a timeout.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Responder answers requests of a mock transport with a raw response line.
type Responder func(path string, payload any, pathParams map[string]string) (string, error)

// Transport speaks the request/response framing of the polarstick API.
//
// A request is the lowercased path, optionally followed by a space and the
// payload, terminated by \x00. Only the terminator ends a request, so the
// payload may span lines. The server answers with one line and closes the
// connection; the response is everything read until EOF minus the final
// newline.
type Transport struct {
	addr      string
	cfg       Config
	responder Responder
}

// NewTransport creates a transport for addr with default timeouts.
func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithConfig creates a transport for addr. A nil cfg selects the
// default timeouts.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	t := &Transport{addr: addr, cfg: defaultConfig()}
	if cfg != nil {
		t.cfg = *cfg
	}
	return t
}

// NewMockTransport creates a transport that never touches the network.
func NewMockTransport(r Responder) *Transport {
	return &Transport{addr: "mock", cfg: defaultConfig(), responder: r}
}

// Do sends one request and returns the response line.
//
// Payloads are sent as-is for []byte and string, omitted for nil, and JSON
// encoded otherwise.
func (t *Transport) Do(path string, payload any, pathParams map[string]string) (string, error) {
	return t.DoCtx(context.Background(), path, payload, pathParams)
}

// DoCtx is Do with a context bounding the dial.
func (t *Transport) DoCtx(ctx context.Context, path string, payload any, pathParams map[string]string) (string, error) {
	if t.responder != nil {
		return t.responder(path, payload, pathParams)
	}
	req, err := encodeRequest(path, payload, pathParams)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("dial: %w", err)
	}

	conn, err := t.dial(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	setDeadline(conn.SetWriteDeadline, t.cfg.WriteTimeout)
	if _, err := conn.Write(req); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	setDeadline(conn.SetReadDeadline, t.cfg.ReadTimeout)
	resp, err := io.ReadAll(conn)
	if err != nil && len(resp) == 0 {
		return "", fmt.Errorf("read: %w", err)
	}
	return strings.TrimSuffix(string(resp), "\n"), nil
}

// dial connects with TCP_NODELAY set so small stream frames go out at once.
func (t *Transport) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: t.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		if err := tc.SetNoDelay(true); err != nil {
			slog.Warn("Failed to set TCP_NODELAY", "addr", t.addr, "error", err)
		}
	}
	return conn, nil
}

func setDeadline(set func(time.Time) error, d time.Duration) {
	if d > 0 {
		_ = set(time.Now().Add(d))
	}
}

// encodeRequest builds the framed request bytes including the terminator.
func encodeRequest(path string, payload any, params map[string]string) ([]byte, error) {
	body, err := payloadBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req := []byte(expandPath(path, params))
	if len(body) > 0 {
		req = append(req, ' ')
		req = append(req, body...)
	}
	return append(req, 0), nil
}

func expandPath(pattern string, params map[string]string) string {
	for k, v := range params {
		pattern = strings.ReplaceAll(pattern, "{"+k+"}", url.PathEscape(v))
	}
	return strings.ToLower(pattern)
}

func payloadBytes(v any) ([]byte, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return p, nil
	case string:
		return []byte(p), nil
	default:
		return json.Marshal(v)
	}
}
