package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, cli *CLI, opts ...kong.Option) *kong.Kong {
	t.Helper()
	opts = append([]kong.Option{kong.Name("polarstick"), kong.Exit(func(int) { t.Fatal("unexpected exit") })}, opts...)
	p, err := kong.New(cli, opts...)
	require.NoError(t, err)
	return p
}

func TestCLIDefaults(t *testing.T) {
	var cli CLI
	p := newParser(t, &cli)

	ctx, err := p.Parse([]string{"compute", "3", "4"})
	require.NoError(t, err)
	assert.Equal(t, "compute <x> <y>", ctx.Command())

	assert.Equal(t, 3.0, cli.Compute.X)
	assert.Equal(t, 4.0, cli.Compute.Y)
	assert.Equal(t, "float64", cli.Compute.Polar.Width)
	assert.Equal(t, "substitute", cli.Compute.Polar.ZeroPolicy)
	assert.Equal(t, 32766, cli.Compute.Polar.Sentinel)
	assert.Equal(t, uint(166), cli.Compute.Polar.Precision)
	assert.Equal(t, "leading", cli.Compute.Polar.Assignment)
	assert.Equal(t, "json", cli.Compute.Format)
	assert.Equal(t, "info", cli.Log.Level)
	assert.Equal(t, "text", cli.Log.Format)
}

func TestCLIFlags(t *testing.T) {
	var cli CLI
	p := newParser(t, &cli)

	_, err := p.Parse([]string{
		"compute", "--polar.width=float32", "--polar.zero-policy=reject",
		"--polar.sentinel=28000", "--format=yaml", "--log.level=debug",
		"--", "-1", "-2",
	})
	require.NoError(t, err)
	assert.Equal(t, -1.0, cli.Compute.X)
	assert.Equal(t, -2.0, cli.Compute.Y)
	assert.Equal(t, "float32", cli.Compute.Polar.Width)
	assert.Equal(t, "reject", cli.Compute.Polar.ZeroPolicy)
	assert.Equal(t, 28000, cli.Compute.Polar.Sentinel)
	assert.Equal(t, "yaml", cli.Compute.Format)
	assert.Equal(t, "debug", cli.Log.Level)
}

func TestCLIRejectsUnknownWidth(t *testing.T) {
	var cli CLI
	p := newParser(t, &cli)

	_, err := p.Parse([]string{"compute", "--polar.width=float16", "1", "1"})
	assert.Error(t, err)
}

func TestCLIEnvironment(t *testing.T) {
	t.Setenv("POLARSTICK_SENTINEL", "1000")
	t.Setenv("POLARSTICK_ASSIGNMENT", "trailing")

	var cli CLI
	p := newParser(t, &cli)

	_, err := p.Parse([]string{"report", "00"})
	require.NoError(t, err)
	assert.Equal(t, 1000, cli.Report.Polar.Sentinel)
	assert.Equal(t, "trailing", cli.Report.Polar.Assignment)
}

func TestCLIConfigurationFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "polarstick.json")
	content := `{"polar": {"sentinel": 12345, "width": "precise"}, "log": {"level": "warn"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var cli CLI
	p := newParser(t, &cli, kong.Configuration(kong.JSON, path))

	_, err := p.Parse([]string{"compute", "1", "0"})
	require.NoError(t, err)
	assert.Equal(t, 12345, cli.Compute.Polar.Sentinel)
	assert.Equal(t, "precise", cli.Compute.Polar.Width)
	assert.Equal(t, "warn", cli.Log.Level)
}
