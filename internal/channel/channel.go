// Package channel implements a two-party payment channel backed by an
// escrow account.
//
// Open funds a fresh escrow account from party A with A's balance plus the
// account reserve and the fees of the two closing transactions. Send moves
// value between the parties off-ledger. Close settles on-ledger: the escrow
// pays B the net amount sent and merges its remainder back into A.
package channel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stellar/go/amount"
	"github.com/stellar/go/txnbuild"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/logger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/txbuild"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/wallet"
)

// State is the channel lifecycle position.
type State int

const (
	StateIdle State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DefaultReserve is the minimum balance an escrow account keeps.
const DefaultReserve = "1"

// Owner submits transactions from party A's account.
type Owner interface {
	Address() string
	Submit(ctx context.Context, req txbuild.Request) (*ledger.SubmitResult, error)
}

// Config wires a Channel.
type Config struct {
	Ledger       ledger.Ledger
	Builder      txbuild.Builder
	Owner        Owner
	Counterparty string
	// Reserve is the native minimum balance of the escrow. Empty means
	// DefaultReserve.
	Reserve string
	Logger  *logger.Logger
}

// Summary reports a channel's on-ledger footprint and final balances.
type Summary struct {
	Escrow      string `json:"escrow"`
	OpenHash    string `json:"openHash"`
	PaymentHash string `json:"paymentHash,omitempty"`
	MergeHash   string `json:"mergeHash"`
	BalanceA    string `json:"balanceA"`
	BalanceB    string `json:"balanceB"`
	Sent        string `json:"sent"`
	Iterations  int    `json:"iterations"`
}

// Channel is safe for concurrent use; calls are serialised.
type Channel struct {
	ledger       ledger.Ledger
	builder      txbuild.Builder
	owner        Owner
	counterparty string
	reserve      string
	log          *logger.Logger

	mu        sync.Mutex
	state     State
	escrow    *wallet.Keypair
	balanceA  int64
	balanceB  int64
	sent      int64
	iteration int
	paid      bool
	summary   Summary
}

// New returns an idle channel between cfg.Owner and cfg.Counterparty.
func New(cfg Config) *Channel {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Channel{
		ledger:       cfg.Ledger,
		builder:      cfg.Builder,
		owner:        cfg.Owner,
		counterparty: cfg.Counterparty,
		reserve:      cfg.Reserve,
		log:          log.WithField("counterparty", cfg.Counterparty),
	}
}

// State returns the current lifecycle state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Escrow returns the escrow account address once the channel is open.
func (c *Channel) Escrow() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.escrow == nil {
		return ""
	}
	return c.escrow.PublicKey()
}

// Balances returns the off-ledger balances of A and B.
func (c *Channel) Balances() (a, b string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return amount.StringFromInt64(c.balanceA), amount.StringFromInt64(c.balanceB)
}

// Open funds a new escrow account from A with balanceA plus the reserve and
// closing fees. balanceB is B's declared opening balance, tracked off-ledger.
func (c *Channel) Open(ctx context.Context, balanceA, balanceB string) error {
	const op = "open channel"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return fault.State(op, fmt.Errorf("channel is %s", c.state))
	}

	a, err := parseAmount(op, "starting balance A", balanceA)
	if err != nil {
		return err
	}
	b, err := parseAmount(op, "starting balance B", balanceB)
	if err != nil {
		return err
	}
	if a == 0 {
		return fault.Newf(fault.KindInput, op, "starting balance A must be greater than zero")
	}
	overhead, err := c.overhead(op)
	if err != nil {
		return err
	}

	escrow, err := wallet.NewKeypair()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := c.owner.Submit(ctx, txbuild.CreateAccount{
		Destination:     escrow.PublicKey(),
		StartingBalance: amount.StringFromInt64(a + overhead),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.escrow = escrow
	c.balanceA, c.balanceB = a, b
	c.state = StateOpen
	c.summary = Summary{Escrow: escrow.PublicKey(), OpenHash: res.Hash}

	c.log.Info().Str("escrow", escrow.PublicKey()).Str("hash", res.Hash).Msg("channel opened")
	return nil
}

// Send moves amt from A to B off-ledger.
func (c *Channel) Send(_ context.Context, amt string) error {
	const op = "send on channel"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen {
		return fault.State(op, fmt.Errorf("channel is %s", c.state))
	}

	v, err := parseAmount(op, "amount", amt)
	if err != nil {
		return err
	}
	if v > c.balanceA {
		return fault.Newf(fault.KindInput, op, "amount %s exceeds channel balance %s",
			amount.StringFromInt64(v), amount.StringFromInt64(c.balanceA))
	}

	c.balanceA -= v
	c.balanceB += v
	c.sent += v
	c.iteration++

	c.log.Debug().Int("iteration", c.iteration).Str("amount", amount.StringFromInt64(v)).Msg("channel update")
	return nil
}

// Close settles the channel on-ledger and returns its summary. If the
// settlement payment fails the escrow is still merged back into A; the
// channel closes and the payment error is returned with the summary.
func (c *Channel) Close(ctx context.Context) (Summary, error) {
	const op = "close channel"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen {
		return Summary{}, fault.State(op, fmt.Errorf("channel is %s", c.state))
	}

	acct, err := c.ledger.LoadAccount(ctx, c.escrow.PublicKey())
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}
	src := acct.Source()

	var payErr error
	if c.sent > 0 && !c.paid {
		res, err := c.submitEscrow(ctx, &src, txbuild.Payment{
			Destination: c.counterparty,
			Asset:       ledger.Native(),
			Amount:      amount.StringFromInt64(c.sent),
		})
		if err == nil {
			c.paid = true
			c.summary.PaymentHash = res.Hash
		} else {
			payErr = fmt.Errorf("%s: settle with counterparty: %w", op, err)
			c.log.Warn().Err(err).Str("escrow", c.summary.Escrow).Msg("settlement payment failed, merging escrow back")

			// a failed payment may still have consumed a sequence
			acct, err := c.ledger.LoadAccount(ctx, c.escrow.PublicKey())
			if err != nil {
				return Summary{}, errors.Join(payErr, fmt.Errorf("%s: %w", op, err))
			}
			src = acct.Source()
		}
	}

	res, err := c.submitEscrow(ctx, &src, txbuild.AccountMerge{Destination: c.owner.Address()})
	if err != nil {
		return Summary{}, errors.Join(payErr, fmt.Errorf("%s: %w", op, err))
	}

	c.state = StateClosed
	c.summary.MergeHash = res.Hash
	c.summary.BalanceA = amount.StringFromInt64(c.balanceA)
	c.summary.BalanceB = amount.StringFromInt64(c.balanceB)
	c.summary.Sent = amount.StringFromInt64(c.sent)
	c.summary.Iterations = c.iteration

	c.log.Info().Str("escrow", c.summary.Escrow).Str("hash", res.Hash).Msg("channel closed")
	return c.summary, payErr
}

// overhead is what the escrow needs on top of A's balance: the reserve and
// the fees of the settlement payment and the merge.
func (c *Channel) overhead(op string) (int64, error) {
	reserve := c.reserve
	if reserve == "" {
		reserve = DefaultReserve
	}
	r, err := parseAmount(op, "reserve", reserve)
	if err != nil {
		return 0, err
	}
	return r + 2*c.builder.Fee(), nil
}

// submitEscrow signs req with the escrow key and advances src on success.
func (c *Channel) submitEscrow(ctx context.Context, src *txnbuild.SimpleAccount, req txbuild.Request) (*ledger.SubmitResult, error) {
	tx, err := c.builder.BuildSigned(*src, req, c.escrow)
	if err != nil {
		return nil, err
	}
	res, err := c.ledger.Submit(ctx, tx)
	if err != nil {
		return nil, err
	}
	src.Sequence = tx.SourceAccount().Sequence
	return res, nil
}

func parseAmount(op, field, s string) (int64, error) {
	v, err := amount.ParseInt64(s)
	if err != nil {
		return 0, fault.Input(op, fmt.Errorf("%s: %q is not a valid amount", field, s))
	}
	if v < 0 {
		return 0, fault.Input(op, fmt.Errorf("%s: %w", field, errNegative))
	}
	return v, nil
}

var errNegative = errors.New("amount must not be negative")
