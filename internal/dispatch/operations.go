package dispatch

import (
	"context"
	"errors"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/input"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/stream"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/txbuild"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/workflow"
)

// operation is one menu entry: its prompts and the step that parses the
// answers and runs it.
type operation struct {
	name    string
	prompts []string
	run     func(ctx context.Context, d *Dispatcher, answers []string) error
}

var operations = map[string]operation{
	"1": {
		name:    "set trust",
		prompts: []string{promptAssetCode, promptIssuer},
		run:     runSetTrust,
	},
	"2": {
		name:    "issue asset",
		prompts: []string{promptAssetCode, promptIssuer, promptIssueAmount},
		run:     runIssueAsset,
	},
	"3": {
		name:    "payment",
		prompts: []string{promptPayAmount},
		run:     runPayment,
	},
	"4": {
		name: "manage buy offer",
		prompts: []string{
			promptBuySelling, promptSellingIssuer,
			promptBuyBuying, promptBuyingIssuer,
			promptBuyAmount, promptPrice, promptOfferID,
		},
		run: runBuyOffer,
	},
	"5": {
		name: "manage sell offer",
		prompts: []string{
			promptSellSelling, promptSellingIssuer,
			promptSellBuying, promptBuyingIssuer,
			promptSellAmount, promptPrice, promptOfferID,
		},
		run: runSellOffer,
	},
	"6": {
		name: "stream payments",
		run:  runStream,
	},
	"7": {
		name:    "preconditioned payment",
		prompts: []string{promptMinTime, promptMaxTime, promptSendAmount},
		run:     runPreconditions,
	},
	"8": {
		name:    "pathfinding",
		prompts: []string{promptPathAmount},
		run:     runPathfinding,
	},
	"9": {
		name:    "payment channel",
		prompts: []string{promptRecipient, promptBalanceA, promptBalanceB, promptSendAmount},
		run:     runPaymentChannel,
	},
}

func (d *Dispatcher) report(title string, res *ledger.SubmitResult) {
	d.out.SubmitResult(title, res, d.viewURL(res.Hash))
}

func runSetTrust(ctx context.Context, d *Dispatcher, a []string) error {
	asset, err := input.Asset("asset", a[0], a[1], d.nativeCode)
	if err != nil {
		return err
	}
	res, err := d.session.SetTrust(ctx, asset)
	if err != nil {
		return err
	}
	d.report("Trustline Set Successfully!", res)
	return nil
}

func runIssueAsset(ctx context.Context, d *Dispatcher, a []string) error {
	asset, err := input.Asset("asset", a[0], a[1], d.nativeCode)
	if err != nil {
		return err
	}
	amt, err := input.Amount("amount", a[2])
	if err != nil {
		return err
	}
	res, err := d.session.IssueAsset(ctx, asset, amt)
	if err != nil {
		return err
	}
	d.report("Asset Issued Successfully!", res)
	return nil
}

func runPayment(ctx context.Context, d *Dispatcher, a []string) error {
	amt, err := input.Amount("amount", a[0])
	if err != nil {
		return err
	}
	res, err := d.session.Pay(ctx, amt)
	if err != nil {
		return err
	}
	d.report("Payment Successful!", res)
	return nil
}

// parseOffer parses the seven offer answers; buy offers reuse the result
// with Amount as the buy amount.
func parseOffer(d *Dispatcher, a []string) (txbuild.ManageSellOffer, error) {
	selling, err := input.Asset("selling asset", a[0], a[1], d.nativeCode)
	if err != nil {
		return txbuild.ManageSellOffer{}, err
	}
	buying, err := input.Asset("buying asset", a[2], a[3], d.nativeCode)
	if err != nil {
		return txbuild.ManageSellOffer{}, err
	}
	amt, err := input.Amount("amount", a[4])
	if err != nil {
		return txbuild.ManageSellOffer{}, err
	}
	price, err := input.Price("price", a[5])
	if err != nil {
		return txbuild.ManageSellOffer{}, err
	}
	offerID, err := input.OfferID("offer id", a[6])
	if err != nil {
		return txbuild.ManageSellOffer{}, err
	}
	return txbuild.ManageSellOffer{
		Selling: selling,
		Buying:  buying,
		Amount:  amt,
		Price:   price,
		OfferID: offerID,
	}, nil
}

func runBuyOffer(ctx context.Context, d *Dispatcher, a []string) error {
	o, err := parseOffer(d, a)
	if err != nil {
		return err
	}
	res, err := d.session.ManageBuyOffer(ctx, txbuild.ManageBuyOffer{
		Selling:   o.Selling,
		Buying:    o.Buying,
		BuyAmount: o.Amount,
		Price:     o.Price,
		OfferID:   o.OfferID,
	})
	if err != nil {
		return err
	}
	d.report("Buy Offer Successful!", res)
	return nil
}

func runSellOffer(ctx context.Context, d *Dispatcher, a []string) error {
	o, err := parseOffer(d, a)
	if err != nil {
		return err
	}
	res, err := d.session.ManageSellOffer(ctx, o)
	if err != nil {
		return err
	}
	d.report("Sell Offer Successful!", res)
	return nil
}

func runStream(ctx context.Context, d *Dispatcher, _ []string) error {
	err := d.startStream(ctx)
	if errors.Is(err, stream.ErrRunning) {
		d.out.Warning("payment stream is already running")
		return nil
	}
	return err
}

func runPreconditions(ctx context.Context, d *Dispatcher, a []string) error {
	minTime, err := input.UnixTime("minimum time", a[0])
	if err != nil {
		return err
	}
	maxTime, err := input.UnixTime("maximum time", a[1])
	if err != nil {
		return err
	}
	amt, err := input.Amount("amount", a[2])
	if err != nil {
		return err
	}
	res, err := d.session.PreconditionedPayment(ctx, minTime, maxTime, amt)
	if err != nil {
		return err
	}
	d.report("Precondition Transaction Successful!", res)
	return nil
}

func runPathfinding(ctx context.Context, d *Dispatcher, a []string) error {
	amt, err := input.Amount("destination amount", a[0])
	if err != nil {
		return err
	}
	paths, err := d.session.FindPaths(ctx, amt)
	if err != nil {
		return err
	}
	d.out.Paths(paths)
	return nil
}

func runPaymentChannel(ctx context.Context, d *Dispatcher, a []string) error {
	recipient, err := input.PublicKey("recipient", a[0])
	if err != nil {
		return err
	}
	balanceA, err := input.PositiveAmount("starting balance A", a[1])
	if err != nil {
		return err
	}
	balanceB, err := input.Amount("starting balance B", a[2])
	if err != nil {
		return err
	}
	amt, err := input.Amount("amount", a[3])
	if err != nil {
		return err
	}
	summary, err := d.session.PaymentChannel(ctx, workflow.ChannelTrip{
		Counterparty: recipient,
		BalanceA:     balanceA,
		BalanceB:     balanceB,
		Amount:       amt,
	})
	if err != nil {
		return err
	}
	d.out.ChannelSummary(summary)
	return nil
}
