package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Alia5/polarstick/apitypes"
)

// Client provides a high-level interface to the polarstick API, handling request
// formatting, response parsing, and error handling.
type Client struct{ transport *Transport }

// New constructs a high-level API client using the internal low-level Transport.
// The addr parameter specifies the TCP address (host:port) of the API server.
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport implementation.
// This is primarily useful for testing or when advanced transport configuration is needed.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping returns the version and identity of the server.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

// PingCtx is the context-aware version of Ping.
func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	const path = "ping"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.PingResponse](raw)
}

// Compute converts one axis pair with the server's settings.
func (c *Client) Compute(x, y float64) (*apitypes.ComputeResponse, error) {
	return c.ComputeCtx(context.Background(), x, y)
}

func (c *Client) ComputeCtx(ctx context.Context, x, y float64) (*apitypes.ComputeResponse, error) {
	const path = "polar/compute"
	raw, err := c.transport.DoCtx(ctx, path, apitypes.ComputeRequest{X: x, Y: y}, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.ComputeResponse](raw)
}

// Settings reports the settings the server converts with.
func (c *Client) Settings() (*apitypes.SettingsResponse, error) {
	return c.SettingsCtx(context.Background())
}

func (c *Client) SettingsCtx(ctx context.Context) (*apitypes.SettingsResponse, error) {
	const path = "polar/settings"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.SettingsResponse](raw)
}

// DeviceTypes lists the device types that can be streamed.
func (c *Client) DeviceTypes() (*apitypes.DeviceTypesResponse, error) {
	return c.DeviceTypesCtx(context.Background())
}

func (c *Client) DeviceTypesCtx(ctx context.Context) (*apitypes.DeviceTypesResponse, error) {
	const path = "device/list"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.DeviceTypesResponse](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem apitypes.ApiError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
