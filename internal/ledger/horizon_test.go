package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/protocols/horizon/base"
	"github.com/stellar/go/protocols/horizon/operations"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
)

func newTestHorizon(t *testing.T, handler http.HandlerFunc) *Horizon {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHorizon(server.URL, server.Client(), "test", nil)
}

func signedPayment(t *testing.T) *txnbuild.Transaction {
	t.Helper()
	kp := keypair.MustRandom()
	acct := txnbuild.NewSimpleAccount(kp.Address(), 41)
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &acct,
		IncrementSequenceNum: true,
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(30)},
		Operations: []txnbuild.Operation{&txnbuild.Payment{
			Destination: kp.Address(),
			Amount:      "10",
			Asset:       txnbuild.NativeAsset{},
		}},
	})
	require.NoError(t, err)
	tx, err = tx.Sign(network.TestNetworkPassphrase, kp)
	require.NoError(t, err)
	return tx
}

func TestHorizon_LoadAccount(t *testing.T) {
	issuer := keypair.MustRandom().Address()
	account := keypair.MustRandom().Address()

	h := newTestHorizon(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/"+account, r.URL.Path)
		w.Header().Set("Content-Type", "application/hal+json")
		fmt.Fprintf(w, `{
			"id": %[1]q,
			"account_id": %[1]q,
			"sequence": "123",
			"balances": [
				{"balance": "5.0000000", "asset_type": "credit_alphanum4", "asset_code": "USD", "asset_issuer": %[2]q},
				{"balance": "1.0000000", "asset_type": "liquidity_pool_shares", "liquidity_pool_id": "abcd"},
				{"balance": "9999.9999900", "asset_type": "native"}
			]
		}`, account, issuer)
	})

	acct, err := h.LoadAccount(context.Background(), account)
	require.NoError(t, err)

	assert.Equal(t, account, acct.ID)
	assert.Equal(t, int64(123), acct.Sequence)
	require.Len(t, acct.Balances, 2)
	assert.Equal(t, Credit("USD", issuer), acct.Balances[0].Asset)
	assert.Equal(t, "5.0000000", acct.Balances[0].Amount)
	assert.True(t, acct.Balances[1].Asset.IsNative())

	src := acct.Source()
	assert.Equal(t, account, src.AccountID)
	assert.Equal(t, int64(123), src.Sequence)
}

func TestHorizon_LoadAccount_NotFound(t *testing.T) {
	h := newTestHorizon(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"type":"https://stellar.org/horizon-errors/not_found","title":"Resource Missing","status":404,"detail":"The resource at the url requested was not found."}`)
	})

	_, err := h.LoadAccount(context.Background(), keypair.MustRandom().Address())
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrNotFound)
	assert.Contains(t, err.Error(), "404")
}

func TestHorizon_LoadAccount_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	h := NewHorizon(url, http.DefaultClient, "test", nil)
	_, err := h.LoadAccount(context.Background(), keypair.MustRandom().Address())
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrNetwork)
}

func TestHorizon_Submit(t *testing.T) {
	tx := signedPayment(t)
	hash, err := tx.HashHex(network.TestNetworkPassphrase)
	require.NoError(t, err)

	h := newTestHorizon(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.PostForm.Get("tx"))
		fmt.Fprintf(w, `{"hash": %q, "ledger": 77, "successful": true, "envelope_xdr": "AAAA", "result_xdr": "BBBB"}`, hash)
	})

	res, err := h.Submit(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, hash, res.Hash)
	assert.Equal(t, int32(77), res.Ledger)
	assert.True(t, res.Successful)
	assert.Equal(t, "AAAA", res.EnvelopeXDR)
}

func TestHorizon_Submit_Rejected(t *testing.T) {
	h := newTestHorizon(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{
			"type": "https://stellar.org/horizon-errors/transaction_failed",
			"title": "Transaction Failed",
			"status": 400,
			"detail": "The transaction failed when submitted to the network.",
			"extras": {"result_codes": {"transaction": "tx_failed", "operations": ["op_no_trust"]}}
		}`)
	})

	_, err := h.Submit(context.Background(), signedPayment(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrRejected)
	assert.Equal(t, []string{"tx_failed", "op_no_trust"}, fault.CodesOf(err))
}

func TestHorizon_Submit_ServerError(t *testing.T) {
	h := newTestHorizon(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusGatewayTimeout)
		fmt.Fprint(w, `{"type":"https://stellar.org/horizon-errors/timeout","title":"Timeout","status":504}`)
	})

	_, err := h.Submit(context.Background(), signedPayment(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrNetwork)
}

func TestHorizon_Submit_CancelledContext(t *testing.T) {
	called := false
	h := newTestHorizon(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Submit(ctx, signedPayment(t))
	assert.ErrorIs(t, err, fault.ErrNetwork)
	assert.False(t, called)
}

func TestHorizon_FindPaths(t *testing.T) {
	issuer := keypair.MustRandom().Address()
	source := keypair.MustRandom().Address()

	h := newTestHorizon(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/paths", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, source, q.Get("source_account"))
		assert.Equal(t, "credit_alphanum4", q.Get("destination_asset_type"))
		assert.Equal(t, "USD", q.Get("destination_asset_code"))
		assert.Equal(t, issuer, q.Get("destination_asset_issuer"))
		assert.Equal(t, "10", q.Get("destination_amount"))
		fmt.Fprintf(w, `{"_embedded": {"records": [{
			"source_asset_type": "native",
			"source_amount": "12.5000000",
			"destination_asset_type": "credit_alphanum4",
			"destination_asset_code": "USD",
			"destination_asset_issuer": %[1]q,
			"destination_amount": "10.0000000",
			"path": [{"asset_type": "credit_alphanum12", "asset_code": "BRIDGECOIN", "asset_issuer": %[1]q}]
		}]}}`, issuer)
	})

	paths, err := h.FindPaths(context.Background(), PathQuery{
		SourceAccount:     source,
		DestinationAsset:  Credit("USD", issuer),
		DestinationAmount: "10",
	})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	p := paths[0]
	assert.True(t, p.SourceAsset.IsNative())
	assert.Equal(t, "12.5000000", p.SourceAmount)
	assert.Equal(t, Credit("USD", issuer), p.DestinationAsset)
	assert.Equal(t, []Asset{Credit("BRIDGECOIN", issuer)}, p.Hops)
}

func TestHorizon_FindPaths_ZeroAmount(t *testing.T) {
	h := newTestHorizon(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	for _, amt := range []string{"0", "0.0000000"} {
		paths, err := h.FindPaths(context.Background(), PathQuery{
			SourceAccount:     keypair.MustRandom().Address(),
			DestinationAsset:  Native(),
			DestinationAmount: amt,
		})
		require.NoError(t, err)
		assert.NotNil(t, paths)
		assert.Empty(t, paths)
	}
}

func TestHorizon_StreamPayments_StopsOnCancel(t *testing.T) {
	h := newTestHorizon(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.StreamPayments(ctx, keypair.MustRandom().Address(), func(PaymentEvent) {
		t.Error("handler should not run")
	})
	assert.NoError(t, err)
}

func TestPaymentEvent(t *testing.T) {
	closed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	from := keypair.MustRandom().Address()
	to := keypair.MustRandom().Address()

	tests := []struct {
		name     string
		op       operations.Operation
		expected PaymentEvent
	}{
		{
			name: "native payment",
			op: operations.Payment{
				Base:   operations.Base{ID: "1", Type: "payment", TransactionHash: "aa", LedgerCloseTime: closed},
				Asset:  base.Asset{Type: "native"},
				From:   from,
				To:     to,
				Amount: "10.0000000",
			},
			expected: PaymentEvent{ID: "1", Type: "payment", TransactionHash: "aa", From: from, To: to, Amount: "10.0000000", Asset: Native(), CreatedAt: closed},
		},
		{
			name: "create account",
			op: operations.CreateAccount{
				Base:            operations.Base{ID: "2", Type: "create_account", TransactionHash: "bb", LedgerCloseTime: closed},
				Funder:          from,
				Account:         to,
				StartingBalance: "5.0000000",
			},
			expected: PaymentEvent{ID: "2", Type: "create_account", TransactionHash: "bb", From: from, To: to, Amount: "5.0000000", CreatedAt: closed},
		},
		{
			name: "account merge",
			op: operations.AccountMerge{
				Base:    operations.Base{ID: "3", Type: "account_merge", TransactionHash: "cc", LedgerCloseTime: closed},
				Account: from,
				Into:    to,
			},
			expected: PaymentEvent{ID: "3", Type: "account_merge", TransactionHash: "cc", From: from, To: to, CreatedAt: closed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, paymentEvent(tt.op))
		})
	}
}

func TestClassify_PlainError(t *testing.T) {
	err := classify("load account", errors.New("dial tcp: refused"))
	assert.ErrorIs(t, err, fault.ErrNetwork)
	assert.Equal(t, "load account: dial tcp: refused", err.Error())
}
