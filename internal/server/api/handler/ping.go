package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/polarstick/apitypes"
	"github.com/Alia5/polarstick/internal/server/api"
)

// Version is reported by ping; overridden at build time with -ldflags.
var Version = "dev"

// Ping returns a handler identifying the server.
func Ping() api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		b, err := json.Marshal(apitypes.PingResponse{Server: "polarstick", Version: Version})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
