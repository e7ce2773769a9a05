package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Alia5/polarstick/internal/config"
	"github.com/Alia5/polarstick/internal/configpaths"
	"github.com/Alia5/polarstick/internal/log"
	"github.com/Alia5/polarstick/internal/util"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("polarstick"),
		kong.Description("Convert analog stick axes to quadrant-aware polar magnitudes"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var samples log.SampleLogger
	if cli.Log.SampleFile != "" {
		f, err := os.OpenFile(cli.Log.SampleFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open sample log file", "file", cli.Log.SampleFile, "error", err)
			samples = log.NewSamples(nil)
		} else {
			samples = log.NewSamples(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		// stdout carries command output.
		samples = log.NewSamples(os.Stderr)
	} else {
		samples = log.NewSamples(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(samples, (*log.SampleLogger)(nil))

	err = ctx.Run()
	if err != nil && util.IsRunFromGUI() {
		fmt.Fprintln(os.Stderr, "error:", err)
		fmt.Fprintln(os.Stderr, "Press Enter to exit")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("POLARSTICK_CONFIG"); v != "" {
		return v
	}
	return ""
}
