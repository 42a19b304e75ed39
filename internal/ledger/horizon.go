package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stellar/go/amount"
	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/protocols/horizon/base"
	"github.com/stellar/go/protocols/horizon/operations"
	"github.com/stellar/go/txnbuild"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/logger"
)

// AppName is reported to Horizon with every request.
const AppName = "hackerhouse"

// Horizon implements Ledger on top of the SDK's Horizon client.
type Horizon struct {
	client *horizonclient.Client
	logger *logger.Logger
}

// NewHorizon returns a Ledger for the server at horizonURL. httpClient must
// not carry a request timeout, since it also serves the payment stream.
func NewHorizon(horizonURL string, httpClient *http.Client, version string, log *logger.Logger) *Horizon {
	if log == nil {
		log = logger.Nop()
	}
	hc := &horizonclient.Client{
		HorizonURL: strings.TrimRight(horizonURL, "/") + "/",
		HTTP:       httpClient,
		AppName:    AppName,
		AppVersion: version,
	}
	return &Horizon{client: hc, logger: log}
}

// LoadAccount implements Ledger.
func (h *Horizon) LoadAccount(ctx context.Context, accountID string) (*Account, error) {
	const op = "load account"
	if err := ctx.Err(); err != nil {
		return nil, fault.Network(op, err)
	}

	detail, err := h.client.AccountDetail(horizonclient.AccountRequest{AccountID: accountID})
	if err != nil {
		return nil, classify(op, err)
	}

	seq, err := detail.GetSequenceNumber()
	if err != nil {
		return nil, fault.Network(op, fmt.Errorf("decode sequence: %w", err))
	}

	acct := &Account{ID: accountID, Sequence: seq}
	for _, b := range detail.Balances {
		if b.Type != "native" && b.Code == "" {
			// liquidity pool shares carry no asset code
			continue
		}
		acct.Balances = append(acct.Balances, Balance{
			Asset:  assetFromParts(b.Type, b.Code, b.Issuer),
			Amount: b.Balance,
		})
	}

	h.logger.Debug().Str("account", accountID).Int64("sequence", seq).Msg("account loaded")
	return acct, nil
}

// Submit implements Ledger.
func (h *Horizon) Submit(ctx context.Context, tx *txnbuild.Transaction) (*SubmitResult, error) {
	const op = "submit transaction"
	if err := ctx.Err(); err != nil {
		return nil, fault.Network(op, err)
	}

	resp, err := h.client.SubmitTransactionWithOptions(tx, horizonclient.SubmitTxOpts{SkipMemoRequiredCheck: true})
	if err != nil {
		return nil, classify(op, err)
	}

	return &SubmitResult{
		Hash:        resp.Hash,
		Ledger:      resp.Ledger,
		Successful:  resp.Successful,
		EnvelopeXDR: resp.EnvelopeXdr,
		ResultXDR:   resp.ResultXdr,
	}, nil
}

// FindPaths implements Ledger.
func (h *Horizon) FindPaths(ctx context.Context, q PathQuery) ([]Path, error) {
	const op = "find paths"
	if err := ctx.Err(); err != nil {
		return nil, fault.Network(op, err)
	}

	if v, err := amount.Parse(q.DestinationAmount); err == nil && v == 0 {
		return []Path{}, nil
	}

	req := horizonclient.PathsRequest{
		SourceAccount:      q.SourceAccount,
		DestinationAccount: q.DestinationAccount,
		DestinationAmount:  q.DestinationAmount,
	}
	switch {
	case q.DestinationAsset.IsNative():
		req.DestinationAssetType = horizonclient.AssetTypeNative
	case len(q.DestinationAsset.Code) <= 4:
		req.DestinationAssetType = horizonclient.AssetType4
	default:
		req.DestinationAssetType = horizonclient.AssetType12
	}
	if !q.DestinationAsset.IsNative() {
		req.DestinationAssetCode = q.DestinationAsset.Code
		req.DestinationAssetIssuer = q.DestinationAsset.Issuer
	}

	page, err := h.client.StrictReceivePaths(req)
	if err != nil {
		return nil, classify(op, err)
	}

	paths := make([]Path, 0, len(page.Embedded.Records))
	for _, r := range page.Embedded.Records {
		p := Path{
			SourceAsset:       assetFromParts(r.SourceAssetType, r.SourceAssetCode, r.SourceAssetIssuer),
			SourceAmount:      r.SourceAmount,
			DestinationAsset:  assetFromParts(r.DestinationAssetType, r.DestinationAssetCode, r.DestinationAssetIssuer),
			DestinationAmount: r.DestinationAmount,
			Hops:              make([]Asset, 0, len(r.Path)),
		}
		for _, hop := range r.Path {
			p.Hops = append(p.Hops, assetFromParts(hop.Type, hop.Code, hop.Issuer))
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// StreamPayments implements Ledger. It returns nil once ctx is done.
func (h *Horizon) StreamPayments(ctx context.Context, accountID string, handler PaymentHandler) error {
	req := horizonclient.OperationRequest{ForAccount: accountID, Cursor: "now"}

	h.logger.Debug().Str("account", accountID).Msg("payment stream opening")
	err := h.client.StreamPayments(ctx, req, func(op operations.Operation) {
		handler(paymentEvent(op))
	})
	if err != nil && ctx.Err() == nil {
		return classify("stream payments", err)
	}
	return nil
}

// paymentEvent flattens the payment-like operation kinds.
func paymentEvent(op operations.Operation) PaymentEvent {
	ev := PaymentEvent{
		ID:              op.GetID(),
		Type:            op.GetType(),
		TransactionHash: op.GetTransactionHash(),
	}

	switch o := op.(type) {
	case operations.Payment:
		ev.From, ev.To, ev.Amount = o.From, o.To, o.Amount
		ev.Asset = assetFromBase(o.Asset)
		ev.CreatedAt = o.LedgerCloseTime
	case operations.PathPayment:
		ev.From, ev.To, ev.Amount = o.From, o.To, o.Amount
		ev.Asset = assetFromBase(o.Asset)
		ev.CreatedAt = o.LedgerCloseTime
	case operations.PathPaymentStrictSend:
		ev.From, ev.To, ev.Amount = o.From, o.To, o.Amount
		ev.Asset = assetFromBase(o.Asset)
		ev.CreatedAt = o.LedgerCloseTime
	case operations.CreateAccount:
		ev.From, ev.To, ev.Amount = o.Funder, o.Account, o.StartingBalance
		ev.CreatedAt = o.LedgerCloseTime
	case operations.AccountMerge:
		ev.From, ev.To = o.Account, o.Into
		ev.CreatedAt = o.LedgerCloseTime
	}
	return ev
}

func assetFromBase(a base.Asset) Asset {
	return assetFromParts(a.Type, a.Code, a.Issuer)
}

// classify maps Horizon client errors onto the fault taxonomy.
func classify(op string, err error) error {
	herr := horizonError(err)
	if herr == nil {
		return fault.Network(op, err)
	}

	status := herr.Problem.Status
	if status == 0 && herr.Response != nil {
		status = herr.Response.StatusCode
	}

	detail := herr.Problem.Title
	if herr.Problem.Detail != "" {
		detail = herr.Problem.Detail
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	cause := fmt.Errorf("horizon %d: %s", status, detail)

	switch {
	case status == http.StatusNotFound || horizonclient.IsNotFoundError(err):
		return fault.NotFound(op, cause)
	case status >= http.StatusInternalServerError:
		// 504 on submit means the outcome is unknown, not that it was refused
		return fault.Network(op, cause)
	default:
		return fault.Rejected(op, cause, resultCodes(herr)...)
	}
}

func horizonError(err error) *horizonclient.Error {
	var herr *horizonclient.Error
	if errors.As(err, &herr) {
		return herr
	}
	return nil
}

func resultCodes(herr *horizonclient.Error) []string {
	rc, err := herr.ResultCodes()
	if err != nil || rc == nil {
		return nil
	}
	codes := make([]string, 0, 1+len(rc.OperationCodes))
	if rc.TransactionCode != "" {
		codes = append(codes, rc.TransactionCode)
	}
	if rc.InnerTransactionCode != "" {
		codes = append(codes, rc.InnerTransactionCode)
	}
	return append(codes, rc.OperationCodes...)
}
