// Package ledger is the narrow interface to the remote ledger-access
// server: account state, transaction submission, path queries and the
// payment event feed.
//
// Failures are classified with the fault package: fault.KindNotFound for
// missing accounts, fault.KindRejected for transactions the server refused
// (carrying its result codes) and fault.KindNetwork for transport failures.
package ledger

import (
	"context"
	"time"

	"github.com/stellar/go/txnbuild"
)

// Ledger is implemented by Horizon and by ledgertest.Fake.
type Ledger interface {
	// LoadAccount returns a snapshot of accountID's ledger state.
	LoadAccount(ctx context.Context, accountID string) (*Account, error)

	// Submit sends a signed transaction and waits for the server's verdict.
	Submit(ctx context.Context, tx *txnbuild.Transaction) (*SubmitResult, error)

	// FindPaths runs a strict-receive path query. A zero destination amount
	// yields an empty slice.
	FindPaths(ctx context.Context, q PathQuery) ([]Path, error)

	// StreamPayments delivers payment events for accountID, starting from
	// now, in server order, until ctx is done.
	StreamPayments(ctx context.Context, accountID string, handler PaymentHandler) error
}

// PaymentHandler receives streamed payment events.
type PaymentHandler func(PaymentEvent)

// Account is a ledger account snapshot.
type Account struct {
	ID       string    `json:"id"`
	Sequence int64     `json:"sequence"`
	Balances []Balance `json:"balances"`
}

// Source returns a builder account positioned at the snapshot's sequence.
func (a *Account) Source() txnbuild.SimpleAccount {
	return txnbuild.NewSimpleAccount(a.ID, a.Sequence)
}

// Balance is one asset holding of an account.
type Balance struct {
	Asset  Asset  `json:"asset"`
	Amount string `json:"amount"`
}

// SubmitResult is the server's record of an accepted transaction.
type SubmitResult struct {
	Hash        string `json:"hash"`
	Ledger      int32  `json:"ledger"`
	Successful  bool   `json:"successful"`
	EnvelopeXDR string `json:"envelopeXdr,omitempty"`
	ResultXDR   string `json:"resultXdr,omitempty"`
}

// PathQuery describes a strict-receive path search.
type PathQuery struct {
	SourceAccount      string
	DestinationAccount string
	DestinationAsset   Asset
	DestinationAmount  string
}

// Path is one route found by the server.
type Path struct {
	SourceAsset       Asset   `json:"sourceAsset"`
	SourceAmount      string  `json:"sourceAmount"`
	DestinationAsset  Asset   `json:"destinationAsset"`
	DestinationAmount string  `json:"destinationAmount"`
	Hops              []Asset `json:"hops"`
}

// PaymentEvent is one entry of the payment feed.
type PaymentEvent struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	TransactionHash string    `json:"transactionHash"`
	From            string    `json:"from,omitempty"`
	To              string    `json:"to,omitempty"`
	Amount          string    `json:"amount,omitempty"`
	Asset           Asset     `json:"asset"`
	CreatedAt       time.Time `json:"createdAt"`
}
