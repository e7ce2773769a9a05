package xbox360

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/Alia5/polarstick/internal/server/api"
)

func init() {
	api.RegisterDevice("xbox360", &handler{})
}

type handler struct{}

// StreamHandler reads InputState frames and answers each with a StickReport.
func (h *handler) StreamHandler(p api.Pipeline) api.StreamHandlerFunc {
	return func(conn net.Conn, req *api.Request, logger *slog.Logger) error {
		buf := make([]byte, InputStateSize)
		for {
			if _, err := io.ReadFull(conn, buf); err != nil {
				if errors.Is(err, io.EOF) {
					logger.Info("client disconnected")
					return nil
				}
				return fmt.Errorf("read input state: %w", err)
			}

			var state InputState
			if err := state.UnmarshalBinary(buf); err != nil {
				return fmt.Errorf("unmarshal input state: %w", err)
			}
			report, err := state.Sticks(p)
			if err != nil {
				return err
			}
			data, err := report.MarshalBinary()
			if err != nil {
				return fmt.Errorf("marshal stick report: %w", err)
			}
			if err := api.WriteFrame(conn, data); err != nil {
				return fmt.Errorf("write stick report: %w", err)
			}
		}
	}
}
