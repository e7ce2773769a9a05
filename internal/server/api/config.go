package api

import "time"

// ServerConfig represents the serve subcommand's API configuration.
type ServerConfig struct {
	Addr              string        `help:"API server listen address" default:":3243" env:"POLARSTICK_API_ADDR"`
	ConnectionTimeout time.Duration `help:"Time a client has to send a complete request" default:"30s" env:"POLARSTICK_API_CONNECTION_TIMEOUT"`
	StreamIdleTimeout time.Duration `help:"Close device streams that send nothing for this long; 0 disables" default:"0s" env:"POLARSTICK_API_STREAM_IDLE_TIMEOUT"`
}
