package api

import "io"

// StreamOK prefixes the stream acknowledgement and every reply frame. A
// problem+json line takes its place when the stream fails; it always starts
// with '{'.
const StreamOK byte = 0x00

// AckStream tells the client the stream route resolved and frames may follow.
func AckStream(w io.Writer) error {
	_, err := w.Write([]byte{StreamOK})
	return err
}

// WriteFrame writes one reply frame.
func WriteFrame(w io.Writer, frame []byte) error {
	buf := make([]byte, 0, len(frame)+1)
	buf = append(buf, StreamOK)
	_, err := w.Write(append(buf, frame...))
	return err
}
