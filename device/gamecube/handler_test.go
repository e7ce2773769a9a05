package gamecube_test

import (
	"context"
	"testing"
	"time"

	"github.com/Alia5/polarstick/apiclient"
	"github.com/Alia5/polarstick/apitypes"
	"github.com/Alia5/polarstick/device/gamecube"
	"github.com/Alia5/polarstick/internal/server/api"
	th "github.com/Alia5/polarstick/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) (string, func()) {
	return th.StartAPIServer(t, nil, func(r *api.Router, srv *api.Server) {
		r.RegisterStream("stream/{device}", api.DeviceStreamHandler(srv.Pipeline()))
	})
}

func TestStreamHandler(t *testing.T) {
	addr, done := startServer(t)
	defer done()

	stream, err := apiclient.New(addr).OpenStream(context.Background(), "gamecube")
	require.NoError(t, err)
	defer stream.Close()
	require.NoError(t, stream.SetReadDeadline(time.Now().Add(5*time.Second)))

	in := samplePayload()
	var got gamecube.Report
	require.NoError(t, stream.Exchange(&in, &got, gamecube.ReportSize))
	assert.Equal(t, gamecube.PortReport{MainX: 4, MainY: 3, CX: 4, CY: 3}, got.Ports[0])
	assert.Equal(t, gamecube.PortReport{}, got.Ports[1])

	var idle gamecube.Payload
	require.NoError(t, stream.Exchange(&idle, &got, gamecube.ReportSize))
	assert.Equal(t, gamecube.Report{}, got)
}

// rawFrame is sent as-is, bypassing Payload encoding.
type rawFrame []byte

func (f rawFrame) MarshalBinary() ([]byte, error) { return f, nil }

func TestStreamHandlerBadHeader(t *testing.T) {
	addr, done := startServer(t)
	defer done()

	stream, err := apiclient.New(addr).OpenStream(context.Background(), "gamecube")
	require.NoError(t, err)
	defer stream.Close()
	require.NoError(t, stream.SetReadDeadline(time.Now().Add(5*time.Second)))

	var got gamecube.Report
	err = stream.Exchange(rawFrame(make([]byte, gamecube.PayloadSize)), &got, gamecube.ReportSize)
	var apiErr *apitypes.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "unexpected payload header")
}
