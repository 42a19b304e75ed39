// Package commands implements the CLI commands using Cobra.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/config"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/logger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/output"
)

// Version information (set at build time via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Global flags
var (
	verbose    bool
	jsonOutput bool
	flagCfg    config.Config
)

// rootCmd is the base command when called without subcommands. It starts
// an interactive session, like `run`.
var rootCmd = &cobra.Command{
	Use:   "hackerhouse",
	Short: "Interactive demo of ledger operations on a Diamante testnet",
	Long: `hackerhouse generates a keypair, funds it from the testnet faucet and
walks through ledger operations from an interactive menu: trustlines, asset
issuance, payments, offers, payment streaming, time-bounded payments,
path-finding and payment channels.

Commands:
  run          Start an interactive session (default)
  keygen       Generate a keypair without touching the network
  fund         Fund an address from the network faucet
  networks     List known networks
  version      Show version information

Examples:
  # Start a session on the Diamante testnet
  hackerhouse

  # Reuse an existing account on the Stellar testnet
  hackerhouse run --network testnet --secret S...

  # Drive the menu from a script
  printf '3\n10\n0\n' | hackerhouse run --skip-fund --secret S...`,
	Args:          cobra.NoArgs,
	RunE:          runSession,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors are printed and the process still
// exits 0.
func Execute() {
	execute(os.Stderr)
}

func execute(stderr io.Writer) {
	if err := rootCmd.Execute(); err != nil {
		output.FprintError(stderr, err)
	}
}

func init() {
	// Global flags available to all commands
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	pf.BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	pf.StringVar(&flagCfg.Network, "network", "", "Network to use (env HH_NETWORK, default diamante-testnet)")
	pf.StringVar(&flagCfg.HorizonURL, "horizon-url", "", "Override the Horizon server URL")
	pf.StringVar(&flagCfg.FaucetURL, "faucet-url", "", "Override the faucet URL")
	pf.StringVar(&flagCfg.Passphrase, "passphrase", "", "Override the network passphrase")
	pf.Int64Var(&flagCfg.BaseFee, "base-fee", 0, "Base fee per operation in stroops (default 100)")
	pf.DurationVar(&flagCfg.PaymentTimeout, "payment-timeout", 0, "Validity window of simple payments (default 30s)")
	pf.DurationVar(&flagCfg.OperationTimeout, "operation-timeout", 0, "Validity window of other transactions (default 3m0s)")
	pf.DurationVar(&flagCfg.RequestTimeout, "request-timeout", 0, "Faucet request timeout (default 30s)")
	pf.StringVar(&flagCfg.Secret, "secret", "", "Secret key to use instead of a fresh keypair (\"-\" to prompt)")
	pf.BoolVar(&flagCfg.SkipFund, "skip-fund", false, "Do not call the faucet at startup")
	pf.StringVar(&flagCfg.LogLevel, "log-level", "", "Diagnostic log level (default warn)")
}

// GetVerbose returns the verbose flag value.
func GetVerbose() bool {
	return verbose
}

// GetJSONOutput returns the json output flag value.
func GetJSONOutput() bool {
	return jsonOutput
}

// loadConfig resolves the session configuration from flags and environment.
func loadConfig() (*config.Config, error) {
	flags := flagCfg
	if verbose && flags.LogLevel == "" {
		flags.LogLevel = "debug"
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger returns the diagnostic logger writing to w, human-readable when
// w is a terminal.
func newLogger(w io.Writer, level string) (*logger.Logger, error) {
	if output.IsTerminal(w) {
		return logger.NewConsoleLogger(w, level, "hackerhouse")
	}
	return logger.NewLogger(w, level, "hackerhouse")
}
