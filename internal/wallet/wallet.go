// Package wallet handles the session keypair: generation, loading and signing.
package wallet

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// PromptMarker is the --secret value that asks for the seed interactively.
const PromptMarker = "-"

// Resolve returns the session keypair.
// Priority: explicit seed → interactive prompt (seed == "-") → fresh keypair.
// The second return value reports whether the keypair was freshly generated.
func Resolve(seed string) (*Keypair, bool, error) {
	switch seed {
	case "":
		kp, err := NewKeypair()
		return kp, true, err
	case PromptMarker:
		secret, err := PromptSecret("Enter secret key: ")
		if err != nil {
			return nil, false, fmt.Errorf("failed to read secret key: %w", err)
		}
		kp, err := LoadSecret(secret)
		return kp, false, err
	default:
		kp, err := LoadSecret(seed)
		return kp, false, err
	}
}

// PromptSecret prompts for a secret without echoing to terminal.
func PromptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // Newline after secret

	if err != nil {
		return "", err
	}

	return string(secret), nil
}
