package api_test

import (
	"log/slog"
	"net"
	"testing"

	"github.com/Alia5/polarstick/internal/server/api"
	"github.com/stretchr/testify/assert"
)

func TestRouterMatch(t *testing.T) {
	r := api.NewRouter()
	hit := ""
	r.Register("polar/compute", func(*api.Request, *api.Response, *slog.Logger) error { hit = "compute"; return nil })
	r.Register("device/{deviceType}/info", func(*api.Request, *api.Response, *slog.Logger) error { hit = "info"; return nil })
	r.RegisterStream("stream/{device}", func(net.Conn, *api.Request, *slog.Logger) error { return nil })

	tests := []struct {
		path       string
		wantHit    string
		wantParams map[string]string
	}{
		{"polar/compute", "compute", map[string]string{}},
		{"POLAR/Compute", "compute", map[string]string{}},
		{"device/xbox360/info", "info", map[string]string{"deviceType": "xbox360"}},
		{"polar", "", nil},
		{"polar/compute/extra", "", nil},
		{"stream/xbox360", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			hit = ""
			h, params := r.Match(tt.path)
			if tt.wantHit == "" {
				assert.Nil(t, h)
				assert.Nil(t, params)
				return
			}
			if assert.NotNil(t, h) {
				assert.NoError(t, h(nil, nil, nil))
			}
			assert.Equal(t, tt.wantHit, hit)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestRouterMatchStream(t *testing.T) {
	r := api.NewRouter()
	r.RegisterStream("stream/{device}", func(net.Conn, *api.Request, *slog.Logger) error { return nil })

	h, params := r.MatchStream("stream/XBOX360")
	assert.NotNil(t, h)
	assert.Equal(t, map[string]string{"device": "xbox360"}, params)

	h, _ = r.MatchStream("polar/compute")
	assert.Nil(t, h)
}
