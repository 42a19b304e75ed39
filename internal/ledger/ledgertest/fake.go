// Package ledgertest provides an in-memory ledger.Ledger for tests.
package ledgertest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stellar/go/amount"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
)

// Passphrase is the network passphrase the fake hashes transactions under
// unless Fake.Passphrase is set.
const Passphrase = network.TestNetworkPassphrase

// createdSequence is the starting sequence of accounts created on the fake.
const createdSequence = int64(100) << 32

// DefaultReserve is the native balance every account must keep unless
// Fake.Reserve is set.
const DefaultReserve = "1"

// Fake records submissions and applies the native-balance effects of
// CreateAccount, Payment and AccountMerge. It checks time bounds, sequence
// numbers, fees and the presence of a signature the way the server does.
// Credit-asset operations only consume a sequence and the fee.
type Fake struct {
	Passphrase string
	// Reserve is the minimum native balance of an account.
	Reserve string
	// Now is the ledger close time used for time-bound checks.
	Now func() time.Time

	mu         sync.Mutex
	accounts   map[string]*ledger.Account
	attempts   []*txnbuild.Transaction
	submitted  []*txnbuild.Transaction
	pathCalls  []ledger.PathQuery
	loadCalls  int
	nextLedger int32

	// SubmitErr, when set, is returned by the next Submit instead of applying it.
	SubmitErr error
	// LoadErr, when set, is returned by every LoadAccount.
	LoadErr error
	// Paths is returned by FindPaths for non-zero amounts.
	Paths []ledger.Path
	// Events are delivered by StreamPayments before it blocks on ctx.
	Events []ledger.PaymentEvent
	// StreamErr, when set, ends StreamPayments after the events are delivered.
	StreamErr error
}

// New returns an empty fake.
func New() *Fake {
	return &Fake{
		Passphrase: Passphrase,
		Reserve:    DefaultReserve,
		Now:        time.Now,
		accounts:   make(map[string]*ledger.Account),
		nextLedger: 1,
	}
}

// AddAccount creates an account with a native balance.
func (f *Fake) AddAccount(id string, sequence int64, nativeBalance string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[id] = &ledger.Account{
		ID:       id,
		Sequence: sequence,
		Balances: []ledger.Balance{{Asset: ledger.Native(), Amount: nativeBalance}},
	}
}

// Account returns a copy of the stored account, if any.
func (f *Fake) Account(id string) (ledger.Account, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acct, ok := f.accounts[id]
	if !ok {
		return ledger.Account{}, false
	}
	return copyAccount(acct), true
}

// Attempts returns every transaction handed to Submit, accepted or not.
func (f *Fake) Attempts() []*txnbuild.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*txnbuild.Transaction(nil), f.attempts...)
}

// Submitted returns the accepted transactions in submission order.
func (f *Fake) Submitted() []*txnbuild.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*txnbuild.Transaction(nil), f.submitted...)
}

// PathQueries returns the path queries that reached the fake.
func (f *Fake) PathQueries() []ledger.PathQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ledger.PathQuery(nil), f.pathCalls...)
}

// Loads returns how many times LoadAccount was called.
func (f *Fake) Loads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadCalls
}

// LoadAccount implements ledger.Ledger.
func (f *Fake) LoadAccount(_ context.Context, accountID string) (*ledger.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++

	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	acct, ok := f.accounts[accountID]
	if !ok {
		return nil, fault.NotFound("load account", fmt.Errorf("account %s does not exist", accountID))
	}
	c := copyAccount(acct)
	return &c, nil
}

// Submit implements ledger.Ledger. A transaction whose operation fails
// still consumes its sequence and fee, as on the network.
func (f *Fake) Submit(_ context.Context, tx *txnbuild.Transaction) (*ledger.SubmitResult, error) {
	const op = "submit transaction"

	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, tx)

	if f.SubmitErr != nil {
		err := f.SubmitErr
		f.SubmitErr = nil
		return nil, err
	}

	if code := f.checkTimeBounds(tx.Timebounds()); code != "" {
		return nil, fault.Rejected(op, errors.New("outside the validity window"), code)
	}

	src := tx.SourceAccount()
	acct, ok := f.accounts[src.AccountID]
	if !ok {
		return nil, fault.Rejected(op, errors.New("source account missing"), "tx_no_source_account")
	}
	if src.Sequence != acct.Sequence+1 {
		return nil, fault.Rejected(op, fmt.Errorf("sequence %d, want %d", src.Sequence, acct.Sequence+1), "tx_bad_seq")
	}
	if len(tx.Signatures()) == 0 {
		return nil, fault.Rejected(op, errors.New("unsigned"), "tx_bad_auth")
	}

	fee := tx.BaseFee() * int64(len(tx.Operations()))
	if native(acct)-fee < f.reserve() {
		return nil, fault.Rejected(op, errors.New("fee would breach the reserve"), "tx_insufficient_balance")
	}

	hash, err := tx.HashHex(f.passphrase())
	if err != nil {
		return nil, fault.Rejected(op, err)
	}

	acct.Sequence = src.Sequence
	setNative(acct, native(acct)-fee)

	snapshot := f.snapshot()
	for _, o := range tx.Operations() {
		if code := f.apply(src.AccountID, o); code != "" {
			f.accounts = snapshot
			return nil, fault.Rejected(op, errors.New("operation failed"), "tx_failed", code)
		}
	}
	f.submitted = append(f.submitted, tx)

	res := &ledger.SubmitResult{Hash: hash, Ledger: f.nextLedger, Successful: true}
	f.nextLedger++
	return res, nil
}

func (f *Fake) checkTimeBounds(tb txnbuild.TimeBounds) string {
	now := f.now().Unix()
	switch {
	case now < tb.MinTime:
		return "tx_too_early"
	case tb.MaxTime > 0 && now > tb.MaxTime:
		return "tx_too_late"
	}
	return ""
}

// apply returns the failing operation's result code, or "".
func (f *Fake) apply(source string, o txnbuild.Operation) string {
	from := f.accounts[source]
	switch v := o.(type) {
	case *txnbuild.CreateAccount:
		if _, exists := f.accounts[v.Destination]; exists {
			return "op_already_exists"
		}
		amt, err := amount.ParseInt64(v.Amount)
		if err != nil || native(from)-amt < f.reserve() {
			return "op_underfunded"
		}
		setNative(from, native(from)-amt)
		f.accounts[v.Destination] = &ledger.Account{
			ID:       v.Destination,
			Sequence: createdSequence,
			Balances: []ledger.Balance{{Asset: ledger.Native(), Amount: amount.StringFromInt64(amt)}},
		}
	case *txnbuild.Payment:
		if _, isNative := v.Asset.(txnbuild.NativeAsset); !isNative || v.Destination == source {
			return ""
		}
		to, ok := f.accounts[v.Destination]
		if !ok {
			return "op_no_destination"
		}
		amt, err := amount.ParseInt64(v.Amount)
		if err != nil || native(from)-amt < f.reserve() {
			return "op_underfunded"
		}
		setNative(from, native(from)-amt)
		setNative(to, native(to)+amt)
	case *txnbuild.AccountMerge:
		to, ok := f.accounts[v.Destination]
		if !ok {
			return "op_no_account"
		}
		setNative(to, native(to)+native(from))
		delete(f.accounts, source)
	}
	return ""
}

func (f *Fake) snapshot() map[string]*ledger.Account {
	out := make(map[string]*ledger.Account, len(f.accounts))
	for id, acct := range f.accounts {
		c := copyAccount(acct)
		out[id] = &c
	}
	return out
}

// FindPaths implements ledger.Ledger.
func (f *Fake) FindPaths(_ context.Context, q ledger.PathQuery) ([]ledger.Path, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if q.DestinationAmount == "0" || q.DestinationAmount == "0.0000000" {
		return []ledger.Path{}, nil
	}
	f.pathCalls = append(f.pathCalls, q)
	return append([]ledger.Path{}, f.Paths...), nil
}

// StreamPayments implements ledger.Ledger.
func (f *Fake) StreamPayments(ctx context.Context, _ string, handler ledger.PaymentHandler) error {
	f.mu.Lock()
	events := append([]ledger.PaymentEvent(nil), f.Events...)
	streamErr := f.StreamErr
	f.mu.Unlock()

	for _, ev := range events {
		if ctx.Err() != nil {
			return nil
		}
		handler(ev)
	}
	if streamErr != nil {
		return streamErr
	}
	<-ctx.Done()
	return nil
}

func (f *Fake) passphrase() string {
	if f.Passphrase == "" {
		return Passphrase
	}
	return f.Passphrase
}

func (f *Fake) reserve() int64 {
	v, err := amount.ParseInt64(f.Reserve)
	if err != nil {
		return 0
	}
	return v
}

func (f *Fake) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// native returns the account's native balance in stroops.
func native(a *ledger.Account) int64 {
	for _, b := range a.Balances {
		if b.Asset.IsNative() {
			v, _ := amount.ParseInt64(b.Amount)
			return v
		}
	}
	return 0
}

func setNative(a *ledger.Account, stroops int64) {
	for i, b := range a.Balances {
		if b.Asset.IsNative() {
			a.Balances[i].Amount = amount.StringFromInt64(stroops)
			return
		}
	}
	a.Balances = append(a.Balances, ledger.Balance{Asset: ledger.Native(), Amount: amount.StringFromInt64(stroops)})
}

func copyAccount(a *ledger.Account) ledger.Account {
	c := *a
	c.Balances = append([]ledger.Balance(nil), a.Balances...)
	return c
}

var _ ledger.Ledger = (*Fake)(nil)
