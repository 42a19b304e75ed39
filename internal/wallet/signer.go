package wallet

import (
	"fmt"

	"github.com/stellar/go/txnbuild"
)

// Signer signs transaction envelopes for a network.
type Signer interface {
	// Address returns the signer's account address.
	Address() string

	// Sign returns a copy of tx carrying the signer's signature over the
	// transaction hash for the given network passphrase.
	Sign(tx *txnbuild.Transaction, passphrase string) (*txnbuild.Transaction, error)
}

// Address implements Signer.
func (k *Keypair) Address() string {
	return k.PublicKey()
}

// Sign implements Signer.
func (k *Keypair) Sign(tx *txnbuild.Transaction, passphrase string) (*txnbuild.Transaction, error) {
	signed, err := tx.Sign(passphrase, k.full)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}
