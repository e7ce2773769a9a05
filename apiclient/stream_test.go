package apiclient_test

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	apiclient "github.com/Alia5/polarstick/apiclient"
	"github.com/Alia5/polarstick/apitypes"
	api "github.com/Alia5/polarstick/internal/server/api"
	htesting "github.com/Alia5/polarstick/internal/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ A, B int16 }

func (p *pair) MarshalBinary() ([]byte, error) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint16(b[0:2], uint16(p.A))
	binary.LittleEndian.PutUint16(b[2:4], uint16(p.B))
	return b, nil
}

func (p *pair) UnmarshalBinary(b []byte) error {
	if len(b) < 4 {
		return io.ErrUnexpectedEOF
	}
	p.A = int16(binary.LittleEndian.Uint16(b[0:2]))
	p.B = int16(binary.LittleEndian.Uint16(b[2:4]))
	return nil
}

func TestOpenStream_NotSupportedWithMockTransport(t *testing.T) {
	c := testClient(map[string]string{}, nil)
	_, err := c.OpenStream(context.Background(), "xbox360")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not supported with mock transport")
}

func TestStreamExchange(t *testing.T) {
	// swapper answers every pair with its halves swapped.
	swapper := htesting.CreateMockRegistration(func(conn net.Conn, _ *api.Request, _ *slog.Logger) error {
		buf := make([]byte, 4)
		for {
			if _, err := io.ReadFull(conn, buf); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			if err := api.WriteFrame(conn, append(buf[2:4:4], buf[0:2]...)); err != nil {
				return err
			}
		}
	})
	api.RegisterDevice("swapper", swapper)

	addr, done := htesting.StartAPIServer(t, nil, func(r *api.Router, srv *api.Server) {
		r.RegisterStream("stream/{device}", api.DeviceStreamHandler(srv.Pipeline()))
	})
	defer done()

	stream, err := apiclient.New(addr).OpenStream(context.Background(), "swapper")
	require.NoError(t, err)
	require.NoError(t, stream.SetReadDeadline(time.Now().Add(5*time.Second)))

	for _, in := range []pair{{1, 2}, {-5, 300}} {
		var out pair
		require.NoError(t, stream.Exchange(&in, &out, 4))
		assert.Equal(t, pair{in.B, in.A}, out)
	}

	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())
	assert.Error(t, stream.WriteBinary(&pair{}))
}

func TestOpenStreamUnknownDevice(t *testing.T) {
	addr, done := htesting.StartAPIServer(t, nil, func(r *api.Router, srv *api.Server) {
		r.RegisterStream("stream/{device}", api.DeviceStreamHandler(srv.Pipeline()))
	})
	defer done()

	_, err := apiclient.New(addr).OpenStream(context.Background(), "nosuchpad")
	require.Error(t, err)
	var apiErr *apitypes.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "nosuchpad")
}

func TestStreamFailureSurfacesApiError(t *testing.T) {
	// picky accepts one frame and then rejects the next.
	picky := htesting.CreateMockRegistration(func(conn net.Conn, _ *api.Request, _ *slog.Logger) error {
		buf := make([]byte, 4)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return err
		}
		if err := api.WriteFrame(conn, buf); err != nil {
			return err
		}
		if _, err := io.ReadFull(conn, buf); err != nil {
			return err
		}
		return api.ErrBadRequest("frame rejected")
	})
	api.RegisterDevice("picky", picky)

	addr, done := htesting.StartAPIServer(t, nil, func(r *api.Router, srv *api.Server) {
		r.RegisterStream("stream/{device}", api.DeviceStreamHandler(srv.Pipeline()))
	})
	defer done()

	stream, err := apiclient.New(addr).OpenStream(context.Background(), "picky")
	require.NoError(t, err)
	defer stream.Close()
	require.NoError(t, stream.SetReadDeadline(time.Now().Add(5*time.Second)))

	var out pair
	require.NoError(t, stream.Exchange(&pair{7, 8}, &out, 4))
	assert.Equal(t, pair{7, 8}, out)

	err = stream.Exchange(&pair{1, 2}, &out, 4)
	var apiErr *apitypes.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "frame rejected", apiErr.Detail)
}

func TestOpenStreamUnacknowledged(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = conn.Read(make([]byte, 64))
		_, _ = conn.Write([]byte("garbage\n"))
	}()

	_, err = apiclient.New(ln.Addr().String()).OpenStream(context.Background(), "xbox360")
	assert.ErrorContains(t, err, "unexpected stream status byte 0x67")
}
