package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/channel"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/ledger"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/network"
)

// KeypairDisplay is the printable form of the session identity.
type KeypairDisplay struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey,omitempty"`
	Network   string `json:"network,omitempty"`
	Explorer  string `json:"explorer,omitempty"`
}

// SubmitDisplay is the printable form of an accepted transaction.
type SubmitDisplay struct {
	Title  string               `json:"title"`
	Result *ledger.SubmitResult `json:"result"`
	View   string               `json:"view,omitempty"`
}

// Printer writes session output. Writes are serialised so background
// stream lines never split a prompt or result block.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	json   bool
	pretty bool
}

// NewPrinter returns a Printer writing to out. jsonOutput switches result
// blocks to JSON documents.
func NewPrinter(out io.Writer, jsonOutput bool) *Printer {
	return &Printer{out: out, json: jsonOutput, pretty: IsTerminal(out)}
}

// Prompt prints text without a trailing newline.
func (p *Printer) Prompt(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, text)
}

// Println prints one line.
func (p *Printer) Println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, line)
}

// Keypair prints the session keys. The secret is printed only when set.
func (p *Printer) Keypair(kp KeypairDisplay) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		p.writeJSON(kp)
		return
	}
	fmt.Fprintf(p.out, "Public Key: %s\n", kp.PublicKey)
	if kp.SecretKey != "" {
		fmt.Fprintf(p.out, "Secret Key: %s\n", kp.SecretKey)
	}
	if kp.Explorer != "" {
		fmt.Fprintf(p.out, "  View:     %s\n", kp.Explorer)
	}
}

// FundingResponse prints the faucet's response body verbatim.
func (p *Printer) FundingResponse(body []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		p.writeJSON(map[string]json.RawMessage{"friendbot": rawOrString(body)})
		return
	}
	fmt.Fprintf(p.out, "Friendbot Response: %s\n", p.formatBody(body))
}

// SubmitResult prints an accepted transaction under title, e.g.
// "Payment Successful!".
func (p *Printer) SubmitResult(title string, res *ledger.SubmitResult, view string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		p.writeJSON(SubmitDisplay{Title: title, Result: res, View: view})
		return
	}
	fmt.Fprintf(p.out, "✓ %s\n", title)
	fmt.Fprintf(p.out, "  TxHash:   %s\n", res.Hash)
	fmt.Fprintf(p.out, "  Ledger:   %d\n", res.Ledger)
	if view != "" {
		fmt.Fprintf(p.out, "  View:     %s\n", view)
	}
}

// Paths prints a path-finding result.
func (p *Printer) Paths(paths []ledger.Path) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		p.writeJSON(map[string][]ledger.Path{"paths": paths})
		return
	}
	if len(paths) == 0 {
		fmt.Fprintln(p.out, "Pathfinding Result: no paths")
		return
	}
	fmt.Fprintf(p.out, "Pathfinding Result: %d path(s)\n", len(paths))
	for i, path := range paths {
		fmt.Fprintf(p.out, "  [%d] %s %s -> %s %s\n", i+1,
			path.SourceAmount, formatAsset(path.SourceAsset),
			path.DestinationAmount, formatAsset(path.DestinationAsset))
		if len(path.Hops) > 0 {
			hops := make([]string, 0, len(path.Hops))
			for _, h := range path.Hops {
				hops = append(hops, formatAsset(h))
			}
			fmt.Fprintf(p.out, "      via %s\n", strings.Join(hops, " -> "))
		}
	}
}

// ChannelSummary prints the outcome of a payment channel round.
func (p *Printer) ChannelSummary(s channel.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		p.writeJSON(s)
		return
	}
	fmt.Fprintln(p.out, "Payment Channel Transaction Complete")
	fmt.Fprintf(p.out, "  Escrow:   %s\n", s.Escrow)
	fmt.Fprintf(p.out, "  Sent:     %s in %d update(s)\n", s.Sent, s.Iterations)
	fmt.Fprintf(p.out, "  Balances: A %s, B %s\n", s.BalanceA, s.BalanceB)
	fmt.Fprintf(p.out, "  Open:     %s\n", s.OpenHash)
	if s.PaymentHash != "" {
		fmt.Fprintf(p.out, "  Settle:   %s\n", s.PaymentHash)
	}
	fmt.Fprintf(p.out, "  Merge:    %s\n", s.MergeHash)
}

// PaymentEvent prints one streamed payment.
func (p *Printer) PaymentEvent(ev ledger.PaymentEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.json {
		fmt.Fprintln(p.out, "New payment:")
	}
	p.writeJSON(ev)
}

// Error prints err with its kind label, e.g. "Error [rejected]: ...".
func (p *Printer) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	kind := fault.KindOf(err)
	if p.json {
		p.writeJSON(map[string]any{"error": err.Error(), "kind": kind.String(), "codes": fault.CodesOf(err)})
		return
	}
	if kind == fault.KindUnknown {
		fmt.Fprintf(p.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(p.out, "Error [%s]: %v\n", kind, err)
}

// Warning prints a warning line.
func (p *Printer) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "Warning: %s\n", msg)
}

// writeJSON must be called with p.mu held.
func (p *Printer) writeJSON(v any) {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(p.out, "Error: %v\n", err)
	}
}

// maxPrettyPrintSize is the maximum response size (in bytes) to pretty-print.
const maxPrettyPrintSize = 50 * 1024 // 50KB

// formatBody pretty-prints JSON when writing to a terminal, otherwise
// returns the raw body for piping to other tools.
func (p *Printer) formatBody(body []byte) string {
	if !p.pretty || len(body) > maxPrettyPrintSize {
		return strings.TrimSpace(string(body))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return strings.TrimSpace(string(body))
	}
	return pretty.String()
}

func rawOrString(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}

func formatAsset(a ledger.Asset) string {
	if a.IsNative() {
		return "native"
	}
	return a.Code + ":" + network.FormatShortKey(a.Issuer)
}

// FprintError writes a top-level error message to w.
func FprintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
