package txbuild

import (
	"testing"
	"time"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/wallet"
)

func testBuilder() Builder {
	return Builder{
		Passphrase:       network.TestNetworkPassphrase,
		BaseFee:          100,
		PaymentTimeout:   30 * time.Second,
		OperationTimeout: 180 * time.Second,
	}
}

func TestBuilder_Build_OneOperationPerKind(t *testing.T) {
	self := keypair.MustRandom().Address()
	issuer := keypair.MustRandom().Address()
	usd := ledger.Credit("USD", issuer)

	tests := []struct {
		name   string
		req    Request
		assert func(t *testing.T, op txnbuild.Operation)
	}{
		{
			name: "set trust",
			req:  SetTrust{Asset: usd},
			assert: func(t *testing.T, op txnbuild.Operation) {
				ct, ok := op.(*txnbuild.ChangeTrust)
				require.True(t, ok, "got %T", op)
				assert.Equal(t, "USD", ct.Line.GetCode())
				assert.Equal(t, issuer, ct.Line.GetIssuer())
			},
		},
		{
			name: "issue asset",
			req:  IssueAsset{Asset: usd, Destination: self, Amount: "50.0000000"},
			assert: func(t *testing.T, op txnbuild.Operation) {
				p, ok := op.(*txnbuild.Payment)
				require.True(t, ok, "got %T", op)
				assert.Equal(t, self, p.Destination)
				assert.Equal(t, "USD", p.Asset.GetCode())
			},
		},
		{
			name: "payment",
			req:  Payment{Destination: self, Amount: "10.0000000"},
			assert: func(t *testing.T, op txnbuild.Operation) {
				p, ok := op.(*txnbuild.Payment)
				require.True(t, ok, "got %T", op)
				assert.True(t, p.Asset.IsNative())
				assert.Equal(t, "10.0000000", p.Amount)
			},
		},
		{
			name: "manage buy offer",
			req:  ManageBuyOffer{Selling: ledger.Native(), Buying: usd, BuyAmount: "5.0000000", Price: xdr.Price{N: 3, D: 2}},
			assert: func(t *testing.T, op txnbuild.Operation) {
				o, ok := op.(*txnbuild.ManageBuyOffer)
				require.True(t, ok, "got %T", op)
				assert.True(t, o.Selling.IsNative())
				assert.Equal(t, "USD", o.Buying.GetCode())
				assert.Equal(t, xdr.Price{N: 3, D: 2}, o.Price)
				assert.Equal(t, int64(0), o.OfferID)
			},
		},
		{
			name: "manage sell offer",
			req:  ManageSellOffer{Selling: usd, Buying: ledger.Native(), Amount: "5.0000000", Price: xdr.Price{N: 1, D: 1}, OfferID: 7},
			assert: func(t *testing.T, op txnbuild.Operation) {
				o, ok := op.(*txnbuild.ManageSellOffer)
				require.True(t, ok, "got %T", op)
				assert.Equal(t, "USD", o.Selling.GetCode())
				assert.Equal(t, int64(7), o.OfferID)
			},
		},
		{
			name: "preconditioned payment",
			req:  PreconditionedPayment{Destination: self, Amount: "1.0000000", MinTime: 100, MaxTime: 200},
			assert: func(t *testing.T, op txnbuild.Operation) {
				_, ok := op.(*txnbuild.Payment)
				require.True(t, ok, "got %T", op)
			},
		},
		{
			name: "create account",
			req:  CreateAccount{Destination: issuer, StartingBalance: "100.0000000"},
			assert: func(t *testing.T, op txnbuild.Operation) {
				o, ok := op.(*txnbuild.CreateAccount)
				require.True(t, ok, "got %T", op)
				assert.Equal(t, "100.0000000", o.Amount)
			},
		},
		{
			name: "account merge",
			req:  AccountMerge{Destination: issuer},
			assert: func(t *testing.T, op txnbuild.Operation) {
				o, ok := op.(*txnbuild.AccountMerge)
				require.True(t, ok, "got %T", op)
				assert.Equal(t, issuer, o.Destination)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := txnbuild.NewSimpleAccount(self, 10)

			tx, err := testBuilder().Build(acct, tt.req)
			require.NoError(t, err)

			require.Len(t, tx.Operations(), 1)
			tt.assert(t, tx.Operations()[0])
			assert.Equal(t, int64(11), tx.SourceAccount().Sequence)
			assert.Equal(t, int64(100), tx.BaseFee())
			assert.Equal(t, int64(10), acct.Sequence, "caller's account must not change")
		})
	}
}

func TestBuilder_Build_ValidityWindows(t *testing.T) {
	self := keypair.MustRandom().Address()
	acct := txnbuild.NewSimpleAccount(self, 1)
	b := testBuilder()

	before := time.Now().Unix()

	pay, err := b.Build(acct, Payment{Destination: self, Amount: "1"})
	require.NoError(t, err)
	assert.InDelta(t, before+30, pay.Timebounds().MaxTime, 2)
	assert.Equal(t, int64(0), pay.Timebounds().MinTime)

	trust, err := b.Build(acct, SetTrust{Asset: ledger.Credit("USD", keypair.MustRandom().Address())})
	require.NoError(t, err)
	assert.InDelta(t, before+180, trust.Timebounds().MaxTime, 2)

	short := b
	short.OperationTimeout = 5 * time.Second
	merge, err := short.Build(acct, AccountMerge{Destination: self})
	require.NoError(t, err)
	assert.InDelta(t, before+5, merge.Timebounds().MaxTime, 2)
}

func TestBuilder_Build_ZeroTimeoutsUseDefaults(t *testing.T) {
	self := keypair.MustRandom().Address()
	b := Builder{Passphrase: network.TestNetworkPassphrase}

	before := time.Now().Unix()
	tx, err := b.Build(txnbuild.NewSimpleAccount(self, 1), Payment{Destination: self, Amount: "1"})
	require.NoError(t, err)
	assert.InDelta(t, before+30, tx.Timebounds().MaxTime, 2)
	assert.Equal(t, int64(txnbuild.MinBaseFee), tx.BaseFee())
}

func TestBuilder_Build_ExplicitTimeBounds(t *testing.T) {
	self := keypair.MustRandom().Address()

	tx, err := testBuilder().Build(txnbuild.NewSimpleAccount(self, 1), PreconditionedPayment{
		Destination: self,
		Amount:      "1",
		MinTime:     1700000000,
		MaxTime:     1800000000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), tx.Timebounds().MinTime)
	assert.Equal(t, int64(1800000000), tx.Timebounds().MaxTime)
}

func TestBuilder_Build_InvertedTimeBoundsKept(t *testing.T) {
	kp, err := wallet.NewKeypair()
	require.NoError(t, err)
	b := testBuilder()

	tx, err := b.BuildSigned(txnbuild.NewSimpleAccount(kp.PublicKey(), 41), PreconditionedPayment{
		Destination: kp.PublicKey(),
		Amount:      "1",
		MinTime:     1800000000,
		MaxTime:     1700000000,
	}, kp)
	require.NoError(t, err)
	assert.Equal(t, int64(1800000000), tx.Timebounds().MinTime)
	assert.Equal(t, int64(1700000000), tx.Timebounds().MaxTime)
	assert.Equal(t, int64(42), tx.SourceAccount().Sequence)
	assert.Equal(t, int64(100), tx.BaseFee())

	// the signature covers the rewritten envelope
	hash, err := tx.Hash(b.Passphrase)
	require.NoError(t, err)
	require.Len(t, tx.Signatures(), 1)
	assert.NoError(t, keypair.MustParse(kp.PublicKey()).Verify(hash[:], tx.Signatures()[0].Signature))

	raw, err := tx.Base64()
	require.NoError(t, err)
	var env xdr.TransactionEnvelope
	require.NoError(t, xdr.SafeUnmarshalBase64(raw, &env))
	require.NotNil(t, env.V1)
	require.NotNil(t, env.V1.Tx.Cond.TimeBounds)
	assert.Equal(t, xdr.TimePoint(1700000000), env.V1.Tx.Cond.TimeBounds.MaxTime)
}

func TestBuilder_Build_InvalidOperationRejected(t *testing.T) {
	self := keypair.MustRandom().Address()

	_, err := testBuilder().Build(txnbuild.NewSimpleAccount(self, 1), SetTrust{Asset: ledger.Native()})
	assert.ErrorIs(t, err, fault.ErrRejected)
}

func TestBuilder_Sign(t *testing.T) {
	kp, err := wallet.NewKeypair()
	require.NoError(t, err)
	b := testBuilder()

	tx, err := b.BuildSigned(txnbuild.NewSimpleAccount(kp.PublicKey(), 1), Payment{Destination: kp.PublicKey(), Amount: "10"}, kp)
	require.NoError(t, err)
	require.Len(t, tx.Signatures(), 1)

	hash, err := tx.Hash(b.Passphrase)
	require.NoError(t, err)
	assert.NoError(t, keypair.MustParse(kp.PublicKey()).Verify(hash[:], tx.Signatures()[0].Signature))
}

func TestBuilder_Sign_NoSigners(t *testing.T) {
	self := keypair.MustRandom().Address()
	b := testBuilder()

	tx, err := b.Build(txnbuild.NewSimpleAccount(self, 1), Payment{Destination: self, Amount: "1"})
	require.NoError(t, err)

	_, err = b.Sign(tx)
	assert.Error(t, err)
}

func TestBuilder_RepeatedBuildsDiffer(t *testing.T) {
	kp, err := wallet.NewKeypair()
	require.NoError(t, err)
	b := testBuilder()
	req := Payment{Destination: kp.PublicKey(), Amount: "10"}

	first, err := b.BuildSigned(txnbuild.NewSimpleAccount(kp.PublicKey(), 1), req, kp)
	require.NoError(t, err)
	second, err := b.BuildSigned(txnbuild.NewSimpleAccount(kp.PublicKey(), 2), req, kp)
	require.NoError(t, err)

	h1, err := first.HashHex(b.Passphrase)
	require.NoError(t, err)
	h2, err := second.HashHex(b.Passphrase)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "set trust", KindSetTrust.String())
	assert.Equal(t, "preconditioned payment", PreconditionedPayment{}.Kind().String())
	assert.Equal(t, "unknown", Kind(0).String())
}
