package config

import (
	"errors"
	"fmt"
	"net/url"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/stellar/go/txnbuild"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/network"
)

// Load merges flags over the process environment, the network registry and
// [Defaults], then validates the result.
func Load(flags Config) (*Config, error) {
	return load(flags, nil)
}

// load is Load with an explicit environment; nil means the process
// environment.
func load(flags Config, environ map[string]string) (*Config, error) {
	envCfg, err := parseEnv(environ)
	if err != nil {
		return nil, err
	}

	cfg := flags
	if err := mergo.Merge(&cfg, envCfg); err != nil {
		return nil, fmt.Errorf("error merging env config: %w", err)
	}

	if cfg.Network == "" {
		cfg.Network = network.DefaultNetwork
	}
	if info, lookupErr := network.Lookup(cfg.Network); lookupErr == nil {
		cfg.Network = info.ID
		netCfg := Config{
			HorizonURL: info.HorizonURL,
			FaucetURL:  info.FaucetURL,
			Passphrase: info.Passphrase,
			NativeCode: info.NativeCode,
		}
		if err := mergo.Merge(&cfg, netCfg); err != nil {
			return nil, fmt.Errorf("error merging network config: %w", err)
		}
	} else if cfg.HorizonURL == "" || cfg.Passphrase == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNetwork, lookupErr)
	}

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("error merging defaults: %w", err)
	}
	if cfg.NativeCode == "" {
		cfg.NativeCode = "native"
	}

	return &cfg, cfg.validate()
}

// parseEnv populates a Config from HH_* environment variables using the
// caarlos0/env library.
func parseEnv(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	var errs []error

	if u, err := url.Parse(cfg.HorizonURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: horizon url %q", ErrInvalidNetwork, cfg.HorizonURL))
	}
	if cfg.FaucetURL != "" {
		if u, err := url.Parse(cfg.FaucetURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: faucet url %q", ErrInvalidNetwork, cfg.FaucetURL))
		}
	}
	if cfg.BaseFee < txnbuild.MinBaseFee {
		errs = append(errs, fmt.Errorf("%w: %d is below the minimum of %d stroops", ErrInvalidFee, cfg.BaseFee, txnbuild.MinBaseFee))
	}
	if cfg.PaymentTimeout <= 0 || cfg.OperationTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: validity windows must be positive", ErrInvalidTimeout))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: request timeout must be positive", ErrInvalidTimeout))
	}

	return errors.Join(errs...)
}
