package gamecube

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/Alia5/polarstick/internal/server/api"
)

func init() {
	api.RegisterDevice("gamecube", &handler{})
}

type handler struct{}

// StreamHandler reads adapter payloads and answers each with a Report.
func (h *handler) StreamHandler(p api.Pipeline) api.StreamHandlerFunc {
	return func(conn net.Conn, req *api.Request, logger *slog.Logger) error {
		buf := make([]byte, PayloadSize)
		for {
			if _, err := io.ReadFull(conn, buf); err != nil {
				if errors.Is(err, io.EOF) {
					logger.Info("client disconnected")
					return nil
				}
				return fmt.Errorf("read payload: %w", err)
			}

			var payload Payload
			if err := payload.UnmarshalBinary(buf); err != nil {
				if errors.Is(err, ErrBadHeader) {
					return api.ErrBadRequest(err.Error())
				}
				return fmt.Errorf("unmarshal payload: %w", err)
			}
			report, err := payload.Sticks(p)
			if err != nil {
				return err
			}
			data, err := report.MarshalBinary()
			if err != nil {
				return fmt.Errorf("marshal report: %w", err)
			}
			if err := api.WriteFrame(conn, data); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		}
	}
}
