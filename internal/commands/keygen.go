package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/output"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/wallet"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a keypair",
	Long: `Generate a random ed25519 keypair and print it. Nothing is sent to the
network and nothing is stored; keep the secret key if you want to reuse the
account with --secret.

Examples:
  hackerhouse keygen
  hackerhouse keygen --json`,
	Args: cobra.NoArgs,
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(cmd *cobra.Command, args []string) error {
	kp, err := wallet.NewKeypair()
	if err != nil {
		return err
	}

	display := output.KeypairDisplay{PublicKey: kp.PublicKey(), SecretKey: kp.SecretKey()}
	if GetJSONOutput() {
		return output.FprintJSON(cmd.OutOrStdout(), display)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Public Key: %s\n", display.PublicKey)
	fmt.Fprintf(cmd.OutOrStdout(), "Secret Key: %s\n", display.SecretKey)
	return nil
}
