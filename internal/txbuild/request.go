package txbuild

import (
	"github.com/stellar/go/xdr"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
)

// Kind identifies the single operation a request produces.
type Kind int

const (
	KindSetTrust Kind = iota + 1
	KindIssueAsset
	KindPayment
	KindManageBuyOffer
	KindManageSellOffer
	KindPreconditionedPayment
	KindCreateAccount
	KindAccountMerge
)

var kindNames = map[Kind]string{
	KindSetTrust:              "set trust",
	KindIssueAsset:            "issue asset",
	KindPayment:               "payment",
	KindManageBuyOffer:        "manage buy offer",
	KindManageSellOffer:       "manage sell offer",
	KindPreconditionedPayment: "preconditioned payment",
	KindCreateAccount:         "create account",
	KindAccountMerge:          "account merge",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Request describes one transaction to build.
type Request interface {
	Kind() Kind
}

// SetTrust opens a trustline to Asset. An empty Limit trusts the maximum.
type SetTrust struct {
	Asset ledger.Asset
	Limit string
}

// IssueAsset pays Amount of a credit asset to Destination.
type IssueAsset struct {
	Asset       ledger.Asset
	Destination string
	Amount      string
}

// Payment pays Amount of Asset (native when zero) to Destination.
type Payment struct {
	Destination string
	Asset       ledger.Asset
	Amount      string
}

// ManageBuyOffer creates (OfferID 0), updates or deletes a buy offer.
type ManageBuyOffer struct {
	Selling   ledger.Asset
	Buying    ledger.Asset
	BuyAmount string
	Price     xdr.Price
	OfferID   int64
}

// ManageSellOffer creates (OfferID 0), updates or deletes a sell offer.
type ManageSellOffer struct {
	Selling ledger.Asset
	Buying  ledger.Asset
	Amount  string
	Price   xdr.Price
	OfferID int64
}

// PreconditionedPayment is a native payment valid only between MinTime and
// MaxTime (unix seconds; MaxTime 0 means no upper bound).
type PreconditionedPayment struct {
	Destination string
	Amount      string
	MinTime     int64
	MaxTime     int64
}

// boundsInverted reports a window whose end precedes its start.
func (p PreconditionedPayment) boundsInverted() bool {
	return p.MaxTime != 0 && p.MinTime > p.MaxTime
}

// CreateAccount funds a new account with StartingBalance native units.
type CreateAccount struct {
	Destination     string
	StartingBalance string
}

// AccountMerge merges the source account into Destination.
type AccountMerge struct {
	Destination string
}

func (SetTrust) Kind() Kind              { return KindSetTrust }
func (IssueAsset) Kind() Kind            { return KindIssueAsset }
func (Payment) Kind() Kind               { return KindPayment }
func (ManageBuyOffer) Kind() Kind        { return KindManageBuyOffer }
func (ManageSellOffer) Kind() Kind       { return KindManageSellOffer }
func (PreconditionedPayment) Kind() Kind { return KindPreconditionedPayment }
func (CreateAccount) Kind() Kind         { return KindCreateAccount }
func (AccountMerge) Kind() Kind          { return KindAccountMerge }
