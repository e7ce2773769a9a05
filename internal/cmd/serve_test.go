package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Alia5/polarstick/apiclient"
	"github.com/Alia5/polarstick/device/xbox360"
	"github.com/Alia5/polarstick/internal/log"
	"github.com/Alia5/polarstick/internal/server/api"
	"github.com/Alia5/polarstick/polar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeEndToEnd(t *testing.T) {
	s := Serve{
		ApiServerConfig: api.ServerConfig{Addr: "127.0.0.1:0", ConnectionTimeout: 5 * time.Second},
		Polar:           polar.DefaultSettings(),
	}
	var samples bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() { errCh <- s.StartServer(ctx, discardLogger(), log.NewSamples(&samples), ready) }()

	var addr string
	select {
	case addr = <-ready:
	case err := <-errCh:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	c := apiclient.New(addr)
	ping, err := c.Ping()
	require.NoError(t, err)
	assert.Equal(t, "polarstick", ping.Server)

	resp, err := c.Compute(3, 4)
	require.NoError(t, err)
	assert.Equal(t, polar.Magnitudes{X: 4, Y: 3}, resp.Result.Magnitudes)

	settings, err := c.Settings()
	require.NoError(t, err)
	assert.Equal(t, polar.DefaultSentinel, settings.Sentinel)

	types, err := c.DeviceTypes()
	require.NoError(t, err)
	assert.Contains(t, types.Types, "xbox360")
	assert.Contains(t, types.Types, "gamecube")

	stream, err := c.OpenStream(context.Background(), "xbox360")
	require.NoError(t, err)
	require.NoError(t, stream.SetReadDeadline(time.Now().Add(5*time.Second)))
	var rep xbox360.StickReport
	require.NoError(t, stream.Exchange(&xbox360.InputState{RX: 3, RY: -4}, &rep, xbox360.StickReportSize))
	assert.Equal(t, xbox360.StickReport{RX: 4, RY: 3}, rep)
	require.NoError(t, stream.Close())

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, samples.String(), "in=(3,4)")
}

func TestServeRejectsInvalidSettings(t *testing.T) {
	s := Serve{
		ApiServerConfig: api.ServerConfig{Addr: "127.0.0.1:0"},
		Polar:           polar.DefaultSettings(),
	}
	s.Polar.Sentinel = -1
	err := s.StartServer(context.Background(), discardLogger(), log.NewSamples(nil), nil)
	assert.ErrorIs(t, err, polar.ErrInvalidSentinel)
}
