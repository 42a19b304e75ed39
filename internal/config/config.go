// Package config assembles the session configuration from built-in
// defaults, the selected network's registry entry, HH_* environment
// variables and command-line flags.
//
// Precedence, highest first: flags, environment, network registry, defaults.
package config

import (
	"time"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "HH_"

// Config holds everything a session needs to reach the ledger.
//
// Struct tags:
//   - env: environment variable name (without EnvPrefix) parsed by caarlos0/env.
type Config struct {
	// Network selects a registry entry, e.g. "diamante-testnet".
	// Env: HH_NETWORK
	Network string `env:"NETWORK"`

	// HorizonURL is the base URL of the ledger-access server.
	// Env: HH_HORIZON_URL
	HorizonURL string `env:"HORIZON_URL"`

	// FaucetURL is the friendbot endpoint used to fund new accounts.
	// Empty disables funding.
	// Env: HH_FAUCET_URL
	FaucetURL string `env:"FAUCET_URL"`

	// Passphrase identifies the network when hashing and signing.
	// Env: HH_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// NativeCode is the display code of the native asset (DIAM, XLM).
	// Env: HH_NATIVE_CODE
	NativeCode string `env:"NATIVE_CODE"`

	// BaseFee is the per-operation fee in stroops.
	// Env: HH_BASE_FEE
	BaseFee int64 `env:"BASE_FEE"`

	// PaymentTimeout is the validity window of a simple payment.
	// Env: HH_PAYMENT_TIMEOUT
	PaymentTimeout time.Duration `env:"PAYMENT_TIMEOUT"`

	// OperationTimeout is the validity window of every other transaction kind.
	// Env: HH_OPERATION_TIMEOUT
	OperationTimeout time.Duration `env:"OPERATION_TIMEOUT"`

	// RequestTimeout bounds faucet requests.
	// Env: HH_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Secret is an optional S... seed; when empty a fresh keypair is generated.
	// Env: HH_SECRET
	Secret string `env:"SECRET"`

	// SkipFund disables the faucet call at startup.
	// Env: HH_SKIP_FUND
	SkipFund bool `env:"SKIP_FUND"`

	// LogLevel is a zerolog level name.
	// Env: HH_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BaseFee:          100,
		PaymentTimeout:   30 * time.Second,
		OperationTimeout: 180 * time.Second,
		RequestTimeout:   30 * time.Second,
		LogLevel:         "warn",
	}
}
