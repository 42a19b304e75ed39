// hackerhouse is an interactive walkthrough of ledger operations on a
// Diamante (or Stellar) testnet.
//
// A session generates a keypair, funds it from the network faucet and then
// offers a menu of operations: trustlines, asset issuance, payments, buy and
// sell offers, payment streaming, time-bounded payments, path-finding and a
// simple payment channel.
//
// Usage:
//
//	hackerhouse                      Start an interactive session
//	hackerhouse keygen               Generate a keypair
//	hackerhouse fund <address>       Fund an address from the faucet
//	hackerhouse networks             List known networks
//	hackerhouse version              Show version info
package main

import "github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/commands"

func main() {
	commands.Execute()
}
