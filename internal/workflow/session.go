// Package workflow runs the session's ledger operations: it owns the
// session account snapshot and turns each user-level operation into exactly
// one signed, submitted transaction.
package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/logger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/txbuild"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/wallet"
)

// Config wires a Session.
type Config struct {
	Ledger  ledger.Ledger
	Builder txbuild.Builder
	Signer  wallet.Signer
	Logger  *logger.Logger
}

// Session submits transactions for one account. Calls are serialised.
type Session struct {
	ledger  ledger.Ledger
	builder txbuild.Builder
	signer  wallet.Signer
	log     *logger.Logger

	mu      sync.Mutex
	account *ledger.Account
}

// New returns a Session. The account is loaded on first use.
func New(cfg Config) *Session {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		ledger:  cfg.Ledger,
		builder: cfg.Builder,
		signer:  cfg.Signer,
		log:     log.WithField("account", cfg.Signer.Address()),
	}
}

// Address returns the session account's public key.
func (s *Session) Address() string {
	return s.signer.Address()
}

// Account returns the cached account snapshot, loading it if needed.
func (s *Session) Account(ctx context.Context) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.loadLocked(ctx)
	if err != nil {
		return ledger.Account{}, err
	}
	return *acct, nil
}


func (s *Session) loadLocked(ctx context.Context) (*ledger.Account, error) {
	if s.account != nil {
		return s.account, nil
	}
	acct, err := s.ledger.LoadAccount(ctx, s.signer.Address())
	if err != nil {
		return nil, err
	}
	s.account = acct
	return acct, nil
}

// Submit builds, signs and submits req from the session account. The local
// sequence advances only when the server accepts the transaction; any
// submission failure drops the snapshot so the next call reloads it.
func (s *Session) Submit(ctx context.Context, req txbuild.Request) (*ledger.SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opID := uuid.NewString()
	log := s.log.WithField("op_id", opID)

	acct, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.builder.BuildSigned(acct.Source(), req, s.signer)
	if err != nil {
		log.Debug().Err(err).Str("kind", req.Kind().String()).Msg("transaction not built")
		return nil, err
	}
	seq := tx.SourceAccount().Sequence

	log.Debug().
		Str("kind", req.Kind().String()).
		Int64("sequence", seq).
		Msg("submitting transaction")

	res, err := s.ledger.Submit(ctx, tx)
	if err != nil {
		s.account = nil
		log.Warn().Err(err).Str("kind", req.Kind().String()).Int64("sequence", seq).Msg("transaction failed")
		return nil, err
	}

	acct.Sequence = seq
	log.Info().
		Str("kind", req.Kind().String()).
		Int64("sequence", seq).
		Str("hash", res.Hash).
		Int32("ledger", res.Ledger).
		Msg("transaction accepted")
	return res, nil
}

// SetTrust opens a trustline from the session account to asset.
func (s *Session) SetTrust(ctx context.Context, asset ledger.Asset) (*ledger.SubmitResult, error) {
	return s.submit(ctx, txbuild.SetTrust{Asset: asset})
}

// IssueAsset pays amount of asset to the session account itself.
func (s *Session) IssueAsset(ctx context.Context, asset ledger.Asset, amount string) (*ledger.SubmitResult, error) {
	return s.submit(ctx, txbuild.IssueAsset{Asset: asset, Destination: s.Address(), Amount: amount})
}

// Pay sends a native payment of amount to the session account itself.
func (s *Session) Pay(ctx context.Context, amount string) (*ledger.SubmitResult, error) {
	return s.submit(ctx, txbuild.Payment{Destination: s.Address(), Asset: ledger.Native(), Amount: amount})
}

// ManageBuyOffer submits a buy offer.
func (s *Session) ManageBuyOffer(ctx context.Context, req txbuild.ManageBuyOffer) (*ledger.SubmitResult, error) {
	return s.submit(ctx, req)
}

// ManageSellOffer submits a sell offer.
func (s *Session) ManageSellOffer(ctx context.Context, req txbuild.ManageSellOffer) (*ledger.SubmitResult, error) {
	return s.submit(ctx, req)
}

// PreconditionedPayment sends a native self-payment valid only between
// minTime and maxTime.
func (s *Session) PreconditionedPayment(ctx context.Context, minTime, maxTime int64, amount string) (*ledger.SubmitResult, error) {
	return s.submit(ctx, txbuild.PreconditionedPayment{
		Destination: s.Address(),
		Amount:      amount,
		MinTime:     minTime,
		MaxTime:     maxTime,
	})
}

// FindPaths looks for strict-receive paths delivering amount of the native
// asset to the session account.
func (s *Session) FindPaths(ctx context.Context, amount string) ([]ledger.Path, error) {
	paths, err := s.ledger.FindPaths(ctx, ledger.PathQuery{
		SourceAccount:      s.Address(),
		DestinationAccount: s.Address(),
		DestinationAsset:   ledger.Native(),
		DestinationAmount:  amount,
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("amount", amount).Int("paths", len(paths)).Msg("paths found")
	return paths, nil
}

func (s *Session) submit(ctx context.Context, req txbuild.Request) (*ledger.SubmitResult, error) {
	res, err := s.Submit(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Kind(), err)
	}
	return res, nil
}
