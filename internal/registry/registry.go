// Package registry links in every device package that registers a stream
// handler with the API server.
package registry

import (
	_ "github.com/Alia5/polarstick/device/gamecube" // Register gamecube stream handler
	_ "github.com/Alia5/polarstick/device/xbox360"  // Register xbox360 stream handler
)
