package apitypes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Alia5/polarstick/polar"
)

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type DeviceTypesResponse struct {
	Types []string `json:"types"`
}

type SettingsResponse struct {
	Width       string  `json:"width"`
	ZeroPolicy  string  `json:"zeroPolicy"`
	Sentinel    int     `json:"sentinel"`
	Placeholder float64 `json:"placeholder"`
	Precision   uint    `json:"precision"`
	Assignment  string  `json:"assignment"`
}

type ComputeResponse struct {
	X      float64               `json:"x"`
	Y      float64               `json:"y"`
	Result polar.Result[float64] `json:"result"`
}

type ComputeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UnmarshalJSON accepts the object form {"x":1,"y":2} as well as the
// array form [1, 2].
func (c *ComputeRequest) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("expected 2 values, got %d", len(pair))
		}
		c.X, c.Y = pair[0], pair[1]
		return nil
	}
	var raw struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.X == nil || raw.Y == nil {
		return fmt.Errorf("x and y are required")
	}
	c.X, c.Y = *raw.X, *raw.Y
	return nil
}

// ParseComputeRequest parses a request payload that is either JSON or two
// whitespace or comma separated numbers ("3 4", "3,4").
func ParseComputeRequest(payload string) (ComputeRequest, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return ComputeRequest{}, fmt.Errorf("empty payload")
	}
	if payload[0] == '{' || payload[0] == '[' {
		var req ComputeRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return ComputeRequest{}, err
		}
		return req, nil
	}
	fields := strings.FieldsFunc(payload, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 2 {
		return ComputeRequest{}, fmt.Errorf("expected 2 values, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return ComputeRequest{}, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return ComputeRequest{}, fmt.Errorf("invalid y: %w", err)
	}
	return ComputeRequest{X: x, Y: y}, nil
}
