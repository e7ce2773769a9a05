package api

import (
	"errors"

	"github.com/Alia5/polarstick/apitypes"
	"github.com/Alia5/polarstick/polar"
)

// Factory helpers returning *apitypes.ApiError (single canonical error type).
func ErrBadRequest(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 400, Title: "Bad Request", Detail: detail}
}
func ErrNotFound(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 404, Title: "Not Found", Detail: detail}
}
func ErrUnprocessable(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 422, Title: "Unprocessable Entity", Detail: detail}
}
func ErrInternal(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 500, Title: "Internal Server Error", Detail: detail}
}

// WrapError normalizes any error into *apitypes.ApiError. Input the polar
// pipeline refuses maps to 422, anything else unknown to 500.
func WrapError(err error) *apitypes.ApiError {
	if err == nil {
		return nil
	}
	var ae *apitypes.ApiError
	if errors.As(err, &ae) {
		return ae
	}
	var av apitypes.ApiError
	if errors.As(err, &av) {
		return &av
	}
	if errors.Is(err, polar.ErrNotANumber) || errors.Is(err, polar.ErrDegenerateInput) ||
		errors.Is(err, polar.ErrRadiusOverflow) {
		return ErrUnprocessable(err.Error())
	}
	return ErrInternal(err.Error())
}
