package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/channel"
)

// ChannelTrip describes one open, send, close round.
type ChannelTrip struct {
	Counterparty string
	BalanceA     string
	BalanceB     string
	Amount       string
}

// PaymentChannel opens a channel to trip.Counterparty, sends trip.Amount and
// closes it. When the send fails the channel is still closed so the escrow
// returns to the session account.
func (s *Session) PaymentChannel(ctx context.Context, trip ChannelTrip) (channel.Summary, error) {
	ch := channel.New(channel.Config{
		Ledger:       s.ledger,
		Builder:      s.builder,
		Owner:        s,
		Counterparty: trip.Counterparty,
		Logger:       s.log,
	})

	if err := ch.Open(ctx, trip.BalanceA, trip.BalanceB); err != nil {
		return channel.Summary{}, err
	}

	sendErr := ch.Send(ctx, trip.Amount)
	a, b := ch.Balances()
	s.log.Debug().Str("escrow", ch.Escrow()).Str("balance_a", a).Str("balance_b", b).Msg("channel balances before close")

	summary, closeErr := ch.Close(ctx)
	err := errors.Join(sendErr, closeErr)
	if ch.State() != channel.StateClosed {
		return summary, fmt.Errorf("escrow %s left open: %w", ch.Escrow(), err)
	}
	return summary, err
}
