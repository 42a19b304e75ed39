package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/network"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/output"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List supported networks",
	Long: `List all known ledger networks with their identifiers, native asset,
faucet availability and block explorer URLs.

Examples:
  hackerhouse networks
  hackerhouse networks --json`,
	Args: cobra.NoArgs,
	RunE: runNetworks,
}

func init() {
	rootCmd.AddCommand(networksCmd)
}

func runNetworks(cmd *cobra.Command, args []string) error {
	entries := network.ListNetworks()
	out := cmd.OutOrStdout()

	if GetJSONOutput() {
		return output.FprintJSON(out, entries)
	}

	fmt.Fprintln(out, "Supported Networks")
	fmt.Fprintln(out)

	for _, e := range entries {
		testnet := ""
		if e.IsTestnet {
			testnet = "  (testnet)"
		}

		faucet := "-"
		if e.HasFaucet() {
			faucet = "faucet"
		}

		fmt.Fprintf(out, "    %-20s %-18s %-5s %-7s %s%s\n",
			e.Name, e.ID, e.NativeCode, faucet, network.GetExplorerHost(e.ID), testnet)
	}

	fmt.Fprintln(out)
	return nil
}
