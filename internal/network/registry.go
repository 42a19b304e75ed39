// Package network provides ledger network metadata and block explorer URLs.
package network

import (
	"fmt"
	"sort"
	"strings"

	stellarnet "github.com/stellar/go/network"
)

// DefaultNetwork is used when no network is selected.
const DefaultNetwork = "diamante-testnet"

// Info contains the endpoints and identity of a known ledger network.
type Info struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HorizonURL string `json:"horizonUrl"`
	FaucetURL  string `json:"faucetUrl,omitempty"`
	Passphrase string `json:"passphrase"`
	// NativeCode is the display code of the native asset.
	NativeCode string `json:"nativeCode"`
	IsTestnet  bool   `json:"isTestnet"`
}

// HasFaucet reports whether the network offers a friendbot-style faucet.
func (i Info) HasFaucet() bool {
	return i.FaucetURL != ""
}

// knownNetworks maps network identifiers to their metadata.
var knownNetworks = map[string]Info{
	"diamante-testnet": {
		ID:         "diamante-testnet",
		Name:       "Diamante Testnet",
		HorizonURL: "https://diamtestnet.diamcircle.io",
		FaucetURL:  "https://friendbot.diamcircle.io",
		Passphrase: "Diamante Testnet 2024",
		NativeCode: "DIAM",
		IsTestnet:  true,
	},
	"stellar-testnet": {
		ID:         "stellar-testnet",
		Name:       "Stellar Testnet",
		HorizonURL: "https://horizon-testnet.stellar.org",
		FaucetURL:  "https://friendbot.stellar.org",
		Passphrase: stellarnet.TestNetworkPassphrase,
		NativeCode: "XLM",
		IsTestnet:  true,
	},
	"stellar-futurenet": {
		ID:         "stellar-futurenet",
		Name:       "Stellar Futurenet",
		HorizonURL: "https://horizon-futurenet.stellar.org",
		FaucetURL:  "https://friendbot-futurenet.stellar.org",
		Passphrase: stellarnet.FutureNetworkPassphrase,
		NativeCode: "XLM",
		IsTestnet:  true,
	},
	"stellar-mainnet": {
		ID:         "stellar-mainnet",
		Name:       "Stellar Mainnet",
		HorizonURL: "https://horizon.stellar.org",
		Passphrase: stellarnet.PublicNetworkPassphrase,
		NativeCode: "XLM",
		IsTestnet:  false,
	},
}

// aliases maps short names to network identifiers.
var aliases = map[string]string{
	"diamante":  "diamante-testnet",
	"testnet":   "stellar-testnet",
	"futurenet": "stellar-futurenet",
	"mainnet":   "stellar-mainnet",
	"pubnet":    "stellar-mainnet",
}

// Lookup returns the network registered under id or one of its aliases.
// Lookup is case-insensitive.
func Lookup(id string) (Info, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	info, ok := knownNetworks[key]
	if !ok {
		return Info{}, fmt.Errorf("unknown network %q (run `hackerhouse networks` to list them)", id)
	}
	return info, nil
}

// GetNetworkName returns a human-readable network name.
// Falls back to the raw identifier if not found.
func GetNetworkName(id string) string {
	if info, err := Lookup(id); err == nil {
		return info.Name
	}
	return id
}

// ListNetworks returns all known networks, testnets first, sorted by id.
func ListNetworks() []Info {
	entries := make([]Info, 0, len(knownNetworks))
	for _, info := range knownNetworks {
		entries = append(entries, info)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsTestnet != entries[j].IsTestnet {
			return entries[i].IsTestnet
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}
