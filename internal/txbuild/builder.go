// Package txbuild turns operation requests into signed single-operation
// transactions.
package txbuild

import (
	"errors"
	"fmt"
	"time"

	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/wallet"
)

// Default validity windows.
const (
	DefaultPaymentTimeout   = 30 * time.Second
	DefaultOperationTimeout = 180 * time.Second
)

// Builder holds the network-wide transaction parameters.
type Builder struct {
	Passphrase       string
	BaseFee          int64
	PaymentTimeout   time.Duration
	OperationTimeout time.Duration
}

// Build returns an unsigned transaction carrying req's operation. account is
// copied; the transaction uses its sequence plus one. A preconditioned
// payment whose MaxTime precedes its MinTime is built as given and left for
// the ledger to refuse.
func (b Builder) Build(account txnbuild.SimpleAccount, req Request) (*txnbuild.Transaction, error) {
	op := "build " + req.Kind().String()

	operation, err := operationFor(req)
	if err != nil {
		return nil, fault.Rejected(op, err)
	}

	bounds := b.timeBounds(req)
	pp, inverted := req.(PreconditionedPayment)
	inverted = inverted && pp.boundsInverted()
	if inverted {
		// txnbuild refuses the window; it is written into the envelope below
		bounds = txnbuild.NewTimebounds(pp.MinTime, 0)
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &account,
		IncrementSequenceNum: true,
		BaseFee:              b.baseFee(),
		Preconditions:        txnbuild.Preconditions{TimeBounds: bounds},
		Operations:           []txnbuild.Operation{operation},
	})
	if err != nil {
		return nil, fault.Rejected(op, err)
	}

	if inverted {
		tx, err = withTimeBounds(tx, pp.MinTime, pp.MaxTime)
		if err != nil {
			return nil, fault.Rejected(op, err)
		}
	}
	return tx, nil
}

// withTimeBounds returns an unsigned copy of tx whose envelope carries the
// given window verbatim. The ledger, not the builder, decides whether such a
// window is acceptable.
func withTimeBounds(tx *txnbuild.Transaction, minTime, maxTime int64) (*txnbuild.Transaction, error) {
	raw, err := tx.Base64()
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}

	var env xdr.TransactionEnvelope
	if err := xdr.SafeUnmarshalBase64(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.V1 == nil {
		return nil, fmt.Errorf("unexpected envelope type %s", env.Type)
	}
	env.V1.Tx.Cond = xdr.Preconditions{
		Type: xdr.PreconditionTypePrecondTime,
		TimeBounds: &xdr.TimeBounds{
			MinTime: xdr.TimePoint(minTime),
			MaxTime: xdr.TimePoint(maxTime),
		},
	}

	raw, err = xdr.MarshalBase64(env)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	generic, err := txnbuild.TransactionFromXDR(raw)
	if err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	out, ok := generic.Transaction()
	if !ok {
		return nil, errors.New("parse envelope: not a plain transaction")
	}
	return out, nil
}

// Sign signs tx for the builder's network with every signer in order.
func (b Builder) Sign(tx *txnbuild.Transaction, signers ...wallet.Signer) (*txnbuild.Transaction, error) {
	if len(signers) == 0 {
		return nil, errors.New("sign transaction: no signers")
	}
	for _, s := range signers {
		signed, err := s.Sign(tx, b.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("sign transaction for %s: %w", s.Address(), err)
		}
		tx = signed
	}
	return tx, nil
}

// BuildSigned is Build followed by Sign.
func (b Builder) BuildSigned(account txnbuild.SimpleAccount, req Request, signers ...wallet.Signer) (*txnbuild.Transaction, error) {
	tx, err := b.Build(account, req)
	if err != nil {
		return nil, err
	}
	return b.Sign(tx, signers...)
}

// Fee returns the fee charged for one single-operation transaction.
func (b Builder) Fee() int64 {
	return b.baseFee()
}

func (b Builder) baseFee() int64 {
	if b.BaseFee < txnbuild.MinBaseFee {
		return txnbuild.MinBaseFee
	}
	return b.BaseFee
}

func (b Builder) timeBounds(req Request) txnbuild.TimeBounds {
	switch r := req.(type) {
	case PreconditionedPayment:
		return txnbuild.NewTimebounds(r.MinTime, r.MaxTime)
	case Payment:
		return txnbuild.NewTimeout(seconds(b.PaymentTimeout, DefaultPaymentTimeout))
	default:
		return txnbuild.NewTimeout(seconds(b.OperationTimeout, DefaultOperationTimeout))
	}
}

func seconds(d, fallback time.Duration) int64 {
	if d <= 0 {
		d = fallback
	}
	return int64(d / time.Second)
}

func operationFor(req Request) (txnbuild.Operation, error) {
	switch r := req.(type) {
	case SetTrust:
		line, err := r.Asset.TxAsset().ToChangeTrustAsset()
		if err != nil {
			return nil, err
		}
		return &txnbuild.ChangeTrust{Line: line, Limit: r.Limit}, nil
	case IssueAsset:
		return &txnbuild.Payment{Destination: r.Destination, Amount: r.Amount, Asset: r.Asset.TxAsset()}, nil
	case Payment:
		return &txnbuild.Payment{Destination: r.Destination, Amount: r.Amount, Asset: r.Asset.TxAsset()}, nil
	case ManageBuyOffer:
		return &txnbuild.ManageBuyOffer{
			Selling: r.Selling.TxAsset(),
			Buying:  r.Buying.TxAsset(),
			Amount:  r.BuyAmount,
			Price:   r.Price,
			OfferID: r.OfferID,
		}, nil
	case ManageSellOffer:
		return &txnbuild.ManageSellOffer{
			Selling: r.Selling.TxAsset(),
			Buying:  r.Buying.TxAsset(),
			Amount:  r.Amount,
			Price:   r.Price,
			OfferID: r.OfferID,
		}, nil
	case PreconditionedPayment:
		return &txnbuild.Payment{Destination: r.Destination, Amount: r.Amount, Asset: txnbuild.NativeAsset{}}, nil
	case CreateAccount:
		return &txnbuild.CreateAccount{Destination: r.Destination, Amount: r.StartingBalance}, nil
	case AccountMerge:
		return &txnbuild.AccountMerge{Destination: r.Destination}, nil
	default:
		return nil, fmt.Errorf("unsupported request %T", req)
	}
}
