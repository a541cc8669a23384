// Package errorx holds the sentinel errors shared by the dc3 services.
// Callers match them with errors.Is.
package errorx

import "errors"

var (
	// repository errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// validation errors
	ErrInvalidArgument = errors.New("invalid argument")
)
