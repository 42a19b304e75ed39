package config

import "errors"

// Validation errors returned by [Load].
var (
	// ErrInvalidNetwork indicates an unknown network without a complete
	// custom override (horizon URL and passphrase).
	ErrInvalidNetwork = errors.New("invalid network configuration")
	// ErrInvalidFee indicates a base fee below the ledger minimum.
	ErrInvalidFee = errors.New("invalid base fee")
	// ErrInvalidTimeout indicates a non-positive validity window or
	// request timeout.
	ErrInvalidTimeout = errors.New("invalid timeout")
)
