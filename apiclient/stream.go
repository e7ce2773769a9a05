package apiclient

import (
	"bufio"
	"context"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/Alia5/polarstick/apitypes"
)

// streamOK prefixes the acknowledgement and every reply frame; anything else
// starts a problem+json line.
const streamOK byte = 0x00

// DeviceStream is a long-lived connection on which the client sends device
// input reports and receives one converted report per input.
type DeviceStream struct {
	conn   net.Conn
	r      *bufio.Reader
	Device string
	closed bool
}

// OpenStream opens the stream for a registered device type. It waits for the
// server's acknowledgement, so an unknown device fails here with the
// server's *apitypes.ApiError.
func (c *Client) OpenStream(ctx context.Context, deviceType string) (*DeviceStream, error) {
	if c.transport.responder != nil {
		return nil, fmt.Errorf("stream connections not supported with mock transport")
	}
	conn, err := c.transport.dial(ctx)
	if err != nil {
		return nil, err
	}

	req, err := encodeRequest("stream/{device}", nil, map[string]string{"device": deviceType})
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Write(req); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write stream path: %w", err)
	}

	s := &DeviceStream{conn: conn, r: bufio.NewReader(conn), Device: deviceType}
	setDeadline(conn.SetReadDeadline, c.transport.cfg.ReadTimeout)
	if err := s.readStatus(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open stream %s: %w", deviceType, err)
	}
	_ = conn.SetReadDeadline(time.Time{})
	return s, nil
}

// readStatus consumes the status byte preceding a frame. A problem line in
// its place is decoded and returned as *apitypes.ApiError.
func (s *DeviceStream) readStatus() error {
	b, err := s.r.ReadByte()
	if err != nil {
		return err
	}
	if b == streamOK {
		return nil
	}
	if err := s.r.UnreadByte(); err != nil {
		return err
	}
	line, err := s.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	var apiErr apitypes.ApiError
	if jerr := json.Unmarshal([]byte(strings.TrimSpace(line)), &apiErr); jerr != nil || apiErr.Status == 0 {
		return fmt.Errorf("unexpected stream status byte 0x%02x", b)
	}
	return &apiErr
}

// WriteBinary marshals and sends one input report (e.g. xbox360.InputState).
func (s *DeviceStream) WriteBinary(v encoding.BinaryMarshaler) error {
	if s.closed {
		return errors.New("stream closed")
	}
	data, err := v.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = s.conn.Write(data)
	return err
}

// ReadBinary reads one reply frame of size bytes and decodes it into v. A
// stream failure reported by the server is returned as *apitypes.ApiError.
func (s *DeviceStream) ReadBinary(v encoding.BinaryUnmarshaler, size int) error {
	if s.closed {
		return errors.New("stream closed")
	}
	if err := s.readStatus(); err != nil {
		return err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return err
	}
	return v.UnmarshalBinary(buf)
}

// Exchange sends one input report and reads its reply into out.
func (s *DeviceStream) Exchange(in encoding.BinaryMarshaler, out encoding.BinaryUnmarshaler, size int) error {
	if err := s.WriteBinary(in); err != nil {
		return err
	}
	return s.ReadBinary(out, size)
}

// SetReadDeadline sets the read deadline for the underlying connection.
func (s *DeviceStream) SetReadDeadline(t time.Time) error {
	return s.conn.SetReadDeadline(t)
}

// Close closes the stream connection.
func (s *DeviceStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
