package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/polarstick/apitypes"
	"github.com/Alia5/polarstick/internal/server/api"
)

// Compute returns a handler converting the axis pair in the payload.
// Error logging is centralized in the API server.
func Compute(p api.Pipeline) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		in, err := apitypes.ParseComputeRequest(req.Payload)
		if err != nil {
			return api.ErrBadRequest(err.Error())
		}
		r, err := p.Compute(in.X, in.Y)
		if err != nil {
			return err
		}
		b, err := json.Marshal(apitypes.ComputeResponse{X: in.X, Y: in.Y, Result: r})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
