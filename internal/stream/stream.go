// Package stream runs the background payment subscription for a session.
package stream

import (
	"context"
	"errors"
	"sync"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/logger"
)

// ErrRunning is returned by Start while a subscription is active.
var ErrRunning = errors.New("payment stream already running")

// Handlers receive stream output. Both run on the stream goroutine.
type Handlers struct {
	OnEvent func(ledger.PaymentEvent)
	// OnError is called once when the stream ends with an error.
	OnError func(error)
}

// Subscription is one running stream.
type Subscription struct {
	account string
	cancel  context.CancelFunc
	done    chan struct{}
}

// Account returns the streamed account.
func (s *Subscription) Account() string {
	return s.account
}

// Stop cancels the stream and waits for it to finish.
func (s *Subscription) Stop() {
	s.cancel()
	<-s.done
}

// Done is closed when the stream goroutine has returned.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Streamer owns at most one subscription at a time.
type Streamer struct {
	ledger ledger.Ledger
	log    *logger.Logger

	mu      sync.Mutex
	current *Subscription
}

// New returns a Streamer reading from l.
func New(l ledger.Ledger, log *logger.Logger) *Streamer {
	if log == nil {
		log = logger.Nop()
	}
	return &Streamer{ledger: l, log: log}
}

// Start begins streaming payments for account in the background. It fails
// with ErrRunning, classified fault.KindState, while a previous
// subscription is still active. A subscription that ended on its own does
// not block a new one.
func (s *Streamer) Start(ctx context.Context, account string, h Handlers) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		select {
		case <-s.current.done:
		default:
			return nil, fault.State("start stream", ErrRunning)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{account: account, cancel: cancel, done: make(chan struct{})}
	s.current = sub

	go func() {
		defer close(sub.done)
		defer cancel()

		log := s.log.WithField("stream", account)
		log.Debug().Msg("stream started")

		err := s.ledger.StreamPayments(ctx, account, func(ev ledger.PaymentEvent) {
			if h.OnEvent != nil {
				h.OnEvent(ev)
			}
		})
		if err != nil {
			log.Warn().Err(err).Msg("stream ended")
			if h.OnError != nil {
				h.OnError(err)
			}
			return
		}
		log.Debug().Msg("stream stopped")
	}()

	return sub, nil
}

// Running reports whether a subscription is active.
func (s *Streamer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	select {
	case <-s.current.done:
		return false
	default:
		return true
	}
}

// Stop stops the active subscription, if any, and waits for it.
func (s *Streamer) Stop() {
	s.mu.Lock()
	sub := s.current
	s.current = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Stop()
	}
}
