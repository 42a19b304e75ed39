// Package input converts raw prompt answers into typed values.
//
// Every failure is a fault.KindInput error naming the offending field, so the
// dispatcher can report it without submitting anything.
package input

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stellar/go/amount"
	"github.com/stellar/go/price"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
)

var assetCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{1,12}$`)

// Amount parses a decimal amount with at most seven fractional digits and
// returns it in canonical form ("10" becomes "10.0000000").
func Amount(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	v, err := amount.Parse(s)
	if err != nil {
		return "", fault.Newf(fault.KindInput, field, "%q is not a valid amount", s)
	}
	if v < 0 {
		return "", fault.Newf(fault.KindInput, field, "%q is negative", s)
	}
	return amount.String(v), nil
}

// PositiveAmount is like Amount but rejects zero.
func PositiveAmount(field, s string) (string, error) {
	a, err := Amount(field, s)
	if err != nil {
		return "", err
	}
	if v, _ := amount.Parse(a); v == 0 {
		return "", fault.Newf(fault.KindInput, field, "amount must be greater than zero")
	}
	return a, nil
}

// Price parses a decimal price into the n/d form carried by offers.
func Price(field, s string) (xdr.Price, error) {
	s = strings.TrimSpace(s)
	p, err := price.Parse(s)
	if err != nil {
		return xdr.Price{}, fault.Newf(fault.KindInput, field, "%q is not a valid price", s)
	}
	if p.N <= 0 || p.D <= 0 {
		return xdr.Price{}, fault.Newf(fault.KindInput, field, "price must be greater than zero")
	}
	return p, nil
}

// OfferID parses an offer id; 0 creates a new offer.
func OfferID(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fault.Newf(fault.KindInput, field, "%q is not an integer", s)
	}
	if id < 0 {
		return 0, fault.Newf(fault.KindInput, field, "offer id must not be negative")
	}
	return id, nil
}

// UnixTime parses a non-negative unix timestamp in seconds. Ordering between
// two timestamps is left to the transaction builder.
func UnixTime(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fault.Newf(fault.KindInput, field, "%q is not a unix timestamp", s)
	}
	if ts < 0 {
		return 0, fault.Newf(fault.KindInput, field, "timestamp must not be negative")
	}
	return ts, nil
}

// PublicKey validates an account public key (G...).
func PublicKey(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strkey.IsValidEd25519PublicKey(s) {
		return "", fault.Newf(fault.KindInput, field, "%q is not a valid public key", s)
	}
	return s, nil
}

// Asset builds an asset from a code and issuer. An empty issuer paired with
// "native", the network's native code or an empty code selects the native
// asset.
func Asset(field, code, issuer, nativeCode string) (ledger.Asset, error) {
	code = strings.TrimSpace(code)
	issuer = strings.TrimSpace(issuer)

	if issuer == "" {
		if isNativeCode(code, nativeCode) {
			return ledger.Native(), nil
		}
		return ledger.Asset{}, fault.Newf(fault.KindInput, field, "asset %q needs an issuer", code)
	}

	if !assetCodePattern.MatchString(code) {
		return ledger.Asset{}, fault.Newf(fault.KindInput, field, "%q is not a valid asset code", code)
	}
	if _, err := PublicKey(field, issuer); err != nil {
		return ledger.Asset{}, err
	}
	return ledger.Credit(code, issuer), nil
}

func isNativeCode(code, nativeCode string) bool {
	switch {
	case code == "":
		return true
	case strings.EqualFold(code, "native"):
		return true
	case nativeCode != "" && strings.EqualFold(code, nativeCode):
		return true
	}
	return false
}

