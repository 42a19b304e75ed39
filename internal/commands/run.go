package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/client"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/dispatch"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/faucet"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/network"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/output"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/stream"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/txbuild"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/wallet"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive session",
	Long: `Start an interactive session.

A fresh keypair is generated (or loaded with --secret), funded from the
network faucet unless --skip-fund is set, and a menu of ledger operations is
shown until you choose 0 or input ends.

Examples:
  hackerhouse run
  hackerhouse run --network testnet --verbose
  hackerhouse run --secret - --skip-fund`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	log = log.WithField("network", cfg.Network)

	if cfg.Secret == wallet.PromptMarker && !output.IsStdinTTY() {
		return errors.New("--secret - needs an interactive terminal")
	}
	kp, generated, err := wallet.Resolve(cfg.Secret)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer := output.NewPrinter(cmd.OutOrStdout(), GetJSONOutput())

	display := output.KeypairDisplay{
		PublicKey: kp.PublicKey(),
		Network:   cfg.Network,
		Explorer:  network.GetAccountExplorerURL(cfg.Network, kp.PublicKey()),
	}
	if generated {
		display.SecretKey = kp.SecretKey()
	}
	printer.Keypair(display)

	if !cfg.SkipFund && cfg.FaucetURL != "" {
		httpClient := client.New(
			client.WithTimeout(cfg.RequestTimeout),
			client.WithHeader("User-Agent", "hackerhouse/"+Version),
		)
		fund(ctx, printer, faucet.New(cfg.FaucetURL, httpClient, log), kp.PublicKey())
	}

	// The Horizon client also carries the payment stream, so no timeout.
	horizon := ledger.NewHorizon(cfg.HorizonURL, client.New(client.WithTimeout(0)).HTTPClient(), Version, log)

	session := workflow.New(workflow.Config{
		Ledger: horizon,
		Builder: txbuild.Builder{
			Passphrase:       cfg.Passphrase,
			BaseFee:          cfg.BaseFee,
			PaymentTimeout:   cfg.PaymentTimeout,
			OperationTimeout: cfg.OperationTimeout,
		},
		Signer: kp,
		Logger: log,
	})

	if _, err := session.Account(ctx); err != nil {
		printer.Error(err)
	}

	d := dispatch.New(dispatch.Config{
		In:         cmd.InOrStdin(),
		Printer:    printer,
		Session:    session,
		Streamer:   stream.New(horizon, log),
		NativeCode: cfg.NativeCode,
		ViewURL: func(hash string) string {
			return network.GetExplorerURL(cfg.Network, hash)
		},
		Logger: log,
	})

	// The session ends with exit code 0 even when it stops on an error.
	if err := d.Run(ctx); err != nil {
		printer.Error(err)
	}
	return nil
}

// fund calls the faucet and prints its answer. Failures are printed, not
// returned: the session continues without funding.
func fund(ctx context.Context, printer *output.Printer, f *faucet.Faucet, address string) {
	receipt, err := f.Fund(ctx, address)
	if receipt != nil {
		printer.FundingResponse(receipt.Body)
	}
	if err != nil {
		printer.Error(err)
	}
}
