package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/polarstick/apitypes"
	"github.com/Alia5/polarstick/internal/server/api"
)

// DeviceList returns a handler listing the device types accepted on
// stream/{device}.
func DeviceList() api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		b, err := json.Marshal(apitypes.DeviceTypesResponse{Types: api.ListDeviceTypes()})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
