package api

import (
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strings"
	"sync"
)

// DeviceRegistration describes a controller type whose input reports can be
// streamed through the polar pipeline.
type DeviceRegistration interface {
	// StreamHandler returns the handler that decodes the device's reports and
	// answers each with its converted sticks.
	StreamHandler(p Pipeline) StreamHandlerFunc
}

var (
	deviceRegistry   = make(map[string]DeviceRegistration)
	deviceRegistryMu sync.RWMutex
)

// RegisterDevice registers a device type for stream dispatch.
// This should be called from device package init() functions.
// The name is case-insensitive and will be lowercased.
func RegisterDevice(name string, reg DeviceRegistration) {
	deviceRegistryMu.Lock()
	defer deviceRegistryMu.Unlock()
	deviceRegistry[strings.ToLower(name)] = reg
}

// GetRegistration retrieves a registered device by name.
// Returns nil if not found. Name lookup is case-insensitive.
func GetRegistration(name string) DeviceRegistration {
	deviceRegistryMu.RLock()
	defer deviceRegistryMu.RUnlock()
	return deviceRegistry[strings.ToLower(name)]
}

// ListDeviceTypes returns the sorted names of all registered device types.
func ListDeviceTypes() []string {
	deviceRegistryMu.RLock()
	defer deviceRegistryMu.RUnlock()
	types := make([]string, 0, len(deviceRegistry))
	for name := range deviceRegistry {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// DeviceStreamHandler returns a stream handler that dispatches to the
// registration named by the "device" route parameter. The stream is
// acknowledged once the device resolves.
func DeviceStreamHandler(p Pipeline) StreamHandlerFunc {
	return func(conn net.Conn, req *Request, logger *slog.Logger) error {
		name := req.Params["device"]
		reg := GetRegistration(name)
		if reg == nil {
			return ErrNotFound(fmt.Sprintf("unknown device type: %s", name))
		}
		if err := AckStream(conn); err != nil {
			return fmt.Errorf("acknowledge stream: %w", err)
		}
		return reg.StreamHandler(p)(conn, req, logger.With("device", name))
	}
}
