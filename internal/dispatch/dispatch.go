// Package dispatch runs the interactive menu: it reads one choice at a
// time, collects that choice's fields, parses them, runs the operation and
// reports the outcome, until the user exits or input ends.
package dispatch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/channel"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/logger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/output"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/stream"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/txbuild"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/workflow"
)

// State is the dispatcher's position in the menu loop.
type State int

const (
	StateAwaitingChoice State = iota
	StateCollecting
	StateSubmitting
	StateReporting
	StateExited
)

func (s State) String() string {
	switch s {
	case StateAwaitingChoice:
		return "awaiting choice"
	case StateCollecting:
		return "collecting parameters"
	case StateSubmitting:
		return "submitting"
	case StateReporting:
		return "reporting result"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Operations is the session surface the menu drives. *workflow.Session
// implements it.
type Operations interface {
	Address() string
	SetTrust(ctx context.Context, asset ledger.Asset) (*ledger.SubmitResult, error)
	IssueAsset(ctx context.Context, asset ledger.Asset, amount string) (*ledger.SubmitResult, error)
	Pay(ctx context.Context, amount string) (*ledger.SubmitResult, error)
	ManageBuyOffer(ctx context.Context, req txbuild.ManageBuyOffer) (*ledger.SubmitResult, error)
	ManageSellOffer(ctx context.Context, req txbuild.ManageSellOffer) (*ledger.SubmitResult, error)
	PreconditionedPayment(ctx context.Context, minTime, maxTime int64, amount string) (*ledger.SubmitResult, error)
	FindPaths(ctx context.Context, amount string) ([]ledger.Path, error)
	PaymentChannel(ctx context.Context, trip workflow.ChannelTrip) (channel.Summary, error)
}

// Config wires a Dispatcher.
type Config struct {
	In       io.Reader
	Printer  *output.Printer
	Session  Operations
	Streamer *stream.Streamer
	// NativeCode is accepted as an alias for the native asset in asset prompts.
	NativeCode string
	// ViewURL returns an explorer link for a transaction hash, or "".
	ViewURL func(hash string) string
	Logger  *logger.Logger
}

// Dispatcher is the menu state machine. It is not safe for concurrent use.
type Dispatcher struct {
	in         io.Reader
	out        *output.Printer
	session    Operations
	streamer   *stream.Streamer
	nativeCode string
	viewURL    func(string) string
	log        *logger.Logger

	state State
	lines chan string
	errc  chan error
}

// New returns a Dispatcher in StateAwaitingChoice.
func New(cfg Config) *Dispatcher {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	viewURL := cfg.ViewURL
	if viewURL == nil {
		viewURL = func(string) string { return "" }
	}
	return &Dispatcher{
		in:         cfg.In,
		out:        cfg.Printer,
		session:    cfg.Session,
		streamer:   cfg.Streamer,
		nativeCode: cfg.NativeCode,
		viewURL:    viewURL,
		log:        log,
	}
}

// State returns the current state.
func (d *Dispatcher) State() State {
	return d.state
}

// Run drives the menu until choice 0, end of input or ctx cancellation. It
// stops the payment stream before returning. Only a failure to read input
// is returned; operation failures are printed and the loop continues.
func (d *Dispatcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer d.stopStream()

	d.startReader(ctx)
	d.transition(StateAwaitingChoice)

	for d.state != StateExited {
		d.out.Prompt(Menu)
		choice, ok, err := d.readLine(ctx)
		if err != nil {
			d.transition(StateExited)
			return err
		}
		if !ok {
			d.transition(StateExited)
			break
		}

		choice = strings.TrimSpace(choice)
		if choice == "0" {
			d.transition(StateExited)
			break
		}

		op, known := operations[choice]
		if !known {
			d.out.Println(msgInvalidChoice)
			continue
		}

		if err := d.handle(ctx, op); err != nil {
			d.transition(StateExited)
			return err
		}
	}
	return nil
}

// handle runs one menu operation. A nil error with state Exited means input
// ended part-way.
func (d *Dispatcher) handle(ctx context.Context, op operation) error {
	d.transition(StateCollecting)
	d.log.Debug().Str("operation", op.name).Msg("collecting parameters")

	answers := make([]string, 0, len(op.prompts))
	for _, prompt := range op.prompts {
		d.out.Prompt(prompt)
		answer, ok, err := d.readLine(ctx)
		if err != nil {
			return err
		}
		if !ok {
			d.transition(StateExited)
			return nil
		}
		answers = append(answers, strings.TrimSpace(answer))
	}

	d.transition(StateSubmitting)
	err := op.run(ctx, d, answers)

	d.transition(StateReporting)
	if err != nil {
		d.log.Debug().Err(err).Str("operation", op.name).Msg("operation failed")
		d.out.Error(err)
	}

	d.transition(StateAwaitingChoice)
	return nil
}

func (d *Dispatcher) transition(to State) {
	if d.state == StateExited {
		return
	}
	if d.state != to {
		d.log.Debug().Str("from", d.state.String()).Str("to", to.String()).Msg("state transition")
	}
	d.state = to
}

// startReader feeds input lines to readLine from a goroutine so a blocked
// read does not hold up cancellation.
func (d *Dispatcher) startReader(ctx context.Context) {
	d.lines = make(chan string)
	d.errc = make(chan error, 1)

	go func() {
		defer close(d.lines)
		sc := bufio.NewScanner(d.in)
		for sc.Scan() {
			select {
			case d.lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		d.errc <- sc.Err()
	}()
}

// readLine returns the next line, or ok=false at end of input or when ctx
// is done.
func (d *Dispatcher) readLine(ctx context.Context) (string, bool, error) {
	if ctx.Err() != nil {
		return "", false, nil
	}
	select {
	case <-ctx.Done():
		return "", false, nil
	case line, ok := <-d.lines:
		if ok {
			return line, true, nil
		}
	}

	select {
	case err := <-d.errc:
		if err != nil {
			return "", false, fmt.Errorf("read input: %w", err)
		}
	default:
	}
	return "", false, nil
}

func (d *Dispatcher) startStream(ctx context.Context) error {
	if d.streamer == nil {
		return nil
	}
	account := d.session.Address()
	_, err := d.streamer.Start(ctx, account, stream.Handlers{
		OnEvent: d.out.PaymentEvent,
		OnError: func(err error) {
			d.log.Warn().Err(err).Msg("payment stream failed")
			d.out.Println(msgStreamError)
		},
	})
	if err != nil {
		return err
	}
	d.out.Println("Streaming payments for " + account + "...")
	return nil
}

func (d *Dispatcher) stopStream() {
	if d.streamer == nil || !d.streamer.Running() {
		return
	}
	d.streamer.Stop()
	d.log.Debug().Msg("payment stream stopped")
}
