package apitypes_test

import (
	"testing"

	"github.com/Alia5/polarstick/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  apitypes.ApiError
		want string
	}{
		{name: "empty", err: apitypes.ApiError{}, want: "unknown error"},
		{name: "no status", err: apitypes.ApiError{Title: "Oops", Detail: "broken"}, want: "Oops: broken"},
		{name: "full", err: apitypes.ApiError{Status: 404, Title: "Not Found", Detail: "unknown path"}, want: "404 Not Found: unknown path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestParseComputeRequest(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    apitypes.ComputeRequest
		wantErr string
	}{
		{name: "object", payload: `{"x":3,"y":-4}`, want: apitypes.ComputeRequest{X: 3, Y: -4}},
		{name: "array", payload: `[1.5, 2]`, want: apitypes.ComputeRequest{X: 1.5, Y: 2}},
		{name: "space separated", payload: "  3 4\n", want: apitypes.ComputeRequest{X: 3, Y: 4}},
		{name: "comma separated", payload: "-3,4", want: apitypes.ComputeRequest{X: -3, Y: 4}},
		{name: "zero object", payload: `{"x":0,"y":0}`, want: apitypes.ComputeRequest{}},
		{name: "empty", payload: "   ", wantErr: "empty payload"},
		{name: "missing y", payload: `{"x":1}`, wantErr: "x and y are required"},
		{name: "short array", payload: `[1]`, wantErr: "expected 2 values, got 1"},
		{name: "three values", payload: "1 2 3", wantErr: "expected 2 values, got 3"},
		{name: "bad x", payload: "a 2", wantErr: "invalid x"},
		{name: "bad y", payload: "1,b", wantErr: "invalid y"},
		{name: "broken json", payload: `{"x":`, wantErr: "unexpected end of JSON input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := apitypes.ParseComputeRequest(tt.payload)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
