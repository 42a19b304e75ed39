package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/client"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/faucet"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/input"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/network"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/output"
)

var fundCmd = &cobra.Command{
	Use:   "fund <address>",
	Short: "Fund an address from the network faucet",
	Long: `Ask the network's friendbot faucet to create and fund an account.

Examples:
  hackerhouse fund GABC...
  hackerhouse fund GABC... --network testnet --json`,
	Args: cobra.ExactArgs(1),
	RunE: runFund,
}

func init() {
	rootCmd.AddCommand(fundCmd)
}

func runFund(cmd *cobra.Command, args []string) error {
	address, err := input.PublicKey("address", args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.FaucetURL == "" {
		return errors.New(network.GetNetworkName(cfg.Network) + " has no faucet; pass --faucet-url")
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	httpClient := client.New(
		client.WithTimeout(cfg.RequestTimeout),
		client.WithHeader("User-Agent", "hackerhouse/"+Version),
	)
	receipt, err := faucet.New(cfg.FaucetURL, httpClient, log).Fund(cmd.Context(), address)

	if GetJSONOutput() && receipt != nil {
		if jsonErr := output.FprintJSON(cmd.OutOrStdout(), receipt); jsonErr != nil {
			return jsonErr
		}
		return err
	}

	if receipt != nil {
		output.NewPrinter(cmd.OutOrStdout(), false).FundingResponse(receipt.Body)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Funded %s on %s in %dms\n",
		network.FormatShortKey(address), network.GetNetworkName(cfg.Network), receipt.LatencyMs)
	if view := network.GetExplorerURL(cfg.Network, receipt.Hash); view != "" && receipt.Hash != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  View:     %s\n", view)
	}
	return nil
}
