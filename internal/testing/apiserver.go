// Package testing holds helpers shared by the API server tests.
package testing

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Alia5/polarstick/internal/server/api"
	"github.com/Alia5/polarstick/polar"
)

// StartAPIServer starts an API server on a random local port converting with
// p (default settings when nil), lets register add routes, and returns its
// address and a shutdown func.
func StartAPIServer(t *testing.T, p api.Pipeline, register func(r *api.Router, s *api.Server)) (addr string, done func()) {
	t.Helper()
	if p == nil {
		p = polar.DefaultSettings()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := api.New(p, api.ServerConfig{Addr: "127.0.0.1:0", ConnectionTimeout: 5 * time.Second}, logger)
	if register != nil {
		register(srv.Router(), srv)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("start api server: %v", err)
	}
	return srv.Addr(), srv.Close
}

type mockRegistration struct {
	handler api.StreamHandlerFunc
}

func (m *mockRegistration) StreamHandler(api.Pipeline) api.StreamHandlerFunc { return m.handler }

// CreateMockRegistration returns a device registration serving h.
func CreateMockRegistration(h api.StreamHandlerFunc) api.DeviceRegistration {
	return &mockRegistration{handler: h}
}
