package ledger

import (
	"strings"

	"github.com/stellar/go/txnbuild"
)

// Asset is either the native asset (zero value) or a credit asset
// identified by code and issuer.
type Asset struct {
	Code   string
	Issuer string
}

// Native returns the native asset.
func Native() Asset {
	return Asset{}
}

// Credit returns the credit asset code:issuer.
func Credit(code, issuer string) Asset {
	return Asset{Code: code, Issuer: issuer}
}

// IsNative reports whether a is the native asset.
func (a Asset) IsNative() bool {
	return a.Code == "" && a.Issuer == ""
}

// String returns "native" or "CODE:ISSUER".
func (a Asset) String() string {
	if a.IsNative() {
		return "native"
	}
	return a.Code + ":" + a.Issuer
}

// MarshalText encodes the asset as its String form.
func (a Asset) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// TxAsset converts a to the SDK representation.
func (a Asset) TxAsset() txnbuild.Asset {
	if a.IsNative() {
		return txnbuild.NativeAsset{}
	}
	return txnbuild.CreditAsset{Code: a.Code, Issuer: a.Issuer}
}

// assetFromParts converts Horizon's type/code/issuer triple.
func assetFromParts(assetType, code, issuer string) Asset {
	if strings.EqualFold(assetType, "native") {
		return Native()
	}
	return Credit(code, issuer)
}
