package wallet

import (
	"fmt"
	"strings"

	"github.com/stellar/go/keypair"
)

// Keypair is the session identity. It lives only in process memory.
type Keypair struct {
	full *keypair.Full
}

// NewKeypair returns a cryptographically random ed25519 keypair.
func NewKeypair() (*Keypair, error) {
	full, err := keypair.Random()
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return &Keypair{full: full}, nil
}

// LoadSecret parses an S... secret seed.
func LoadSecret(seed string) (*Keypair, error) {
	full, err := keypair.ParseFull(strings.TrimSpace(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid secret key: %w", err)
	}
	return &Keypair{full: full}, nil
}

// PublicKey returns the G... account address.
func (k *Keypair) PublicKey() string {
	return k.full.Address()
}

// SecretKey returns the S... seed.
func (k *Keypair) SecretKey() string {
	return k.full.Seed()
}

