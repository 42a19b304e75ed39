package network

import "fmt"

// explorerURLs maps network identifiers to block explorer base URLs.
var explorerURLs = map[string]string{
	"stellar-testnet":   "https://stellar.expert/explorer/testnet",
	"stellar-futurenet": "https://stellar.expert/explorer/futurenet",
	"stellar-mainnet":   "https://stellar.expert/explorer/public",
}

// GetExplorerURL returns the block explorer URL for a transaction.
// Returns empty string if the network has no known explorer.
func GetExplorerURL(id, txHash string) string {
	baseURL, ok := explorerURLs[id]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", baseURL, txHash)
}

// GetAccountExplorerURL returns the block explorer URL for an account.
func GetAccountExplorerURL(id, accountID string) string {
	baseURL, ok := explorerURLs[id]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/account/%s", baseURL, accountID)
}

// GetExplorerHost returns the explorer host for display, or "-".
func GetExplorerHost(id string) string {
	baseURL, ok := explorerURLs[id]
	if !ok {
		return "-"
	}
	return baseURL
}

// FormatShortKey truncates a public key for display.
// Example: "GCEZWKCA5VLDNRLN3RPRJMRZOX3Z6G5CHCGSNFHEYVXM3XOJMDS674JZ" → "GCEZWK...74JZ"
func FormatShortKey(key string) string {
	if len(key) <= 12 {
		return key
	}
	return key[:6] + "..." + key[len(key)-4:]
}
