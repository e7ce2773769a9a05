package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/polarstick/internal/log"
	"github.com/Alia5/polarstick/internal/server/api"
	"github.com/Alia5/polarstick/internal/server/api/handler"
	"github.com/Alia5/polarstick/polar"

	_ "github.com/Alia5/polarstick/internal/registry" // Register all device stream handlers
)

// Serve exposes the polar pipeline over the TCP API.
type Serve struct {
	ApiServerConfig api.ServerConfig `embed:"" prefix:"api."`
	Polar           polar.Settings   `embed:"" prefix:"polar."`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, samples log.SampleLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, samples, nil)
}

// StartServer serves until ctx is done. ready, if non-nil, receives the bound
// address once the listener is up.
func (s *Serve) StartServer(ctx context.Context, logger *slog.Logger, samples log.SampleLogger, ready chan<- string) error {
	if err := s.Polar.Validate(); err != nil {
		return fmt.Errorf("invalid polar settings: %w", err)
	}

	apiSrv := api.New(api.WithSamples(s.Polar, samples), s.ApiServerConfig, logger)
	r := apiSrv.Router()
	r.Register("ping", handler.Ping())
	r.Register("polar/compute", handler.Compute(apiSrv.Pipeline()))
	r.Register("polar/settings", handler.Settings(s.Polar))
	r.Register("device/list", handler.DeviceList())
	r.RegisterStream("stream/{device}", api.DeviceStreamHandler(apiSrv.Pipeline()))

	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		return err
	}
	logger.Info("Serving polar pipeline",
		"addr", apiSrv.Addr(),
		"width", s.Polar.Width,
		"sentinel", s.Polar.Sentinel,
		"devices", api.ListDeviceTypes())
	if ready != nil {
		ready <- apiSrv.Addr()
	}

	<-ctx.Done()
	apiSrv.Close()
	return nil
}
