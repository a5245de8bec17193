// Package common defines shared constants and sentinel errors used across
// the ImageProof client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors (rejected or expired credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// Local pre-flight validation errors.
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image too large")
)
