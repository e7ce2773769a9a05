package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/polarstick/apitypes"
	"github.com/Alia5/polarstick/internal/server/api"
	"github.com/Alia5/polarstick/polar"
)

// Settings returns a handler reporting the settings the server converts with.
func Settings(s polar.Settings) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		b, err := json.Marshal(apitypes.SettingsResponse{
			Width:       s.Width,
			ZeroPolicy:  s.ZeroPolicy,
			Sentinel:    s.Sentinel,
			Placeholder: s.Placeholder,
			Precision:   s.Precision,
			Assignment:  s.Assignment,
		})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
