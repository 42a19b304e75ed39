// Package faucet funds testnet accounts through a friendbot endpoint.
package faucet

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/client"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/logger"
)

// Receipt is the faucet's answer to a funding request.
type Receipt struct {
	Address   string          `json:"address"`
	Status    int             `json:"status"`
	LatencyMs int64           `json:"latencyMs"`
	Hash      string          `json:"hash,omitempty"`
	Body      json.RawMessage `json:"body"`
}

// Faucet calls a friendbot-style endpoint: GET <url>?addr=<publicKey>.
type Faucet struct {
	url    string
	http   *client.Client
	logger *logger.Logger
}

// New returns a Faucet for baseURL.
func New(baseURL string, httpClient *client.Client, log *logger.Logger) *Faucet {
	if log == nil {
		log = logger.Nop()
	}
	return &Faucet{url: baseURL, http: httpClient, logger: log}
}

// Fund asks the faucet to create and credit publicKey.
// Transport failures and non-2xx answers are classified fault.KindNetwork;
// the receipt is still returned for non-2xx answers so the body can be shown.
func (f *Faucet) Fund(ctx context.Context, publicKey string) (*Receipt, error) {
	result, err := f.http.TimedGet(ctx, f.url, map[string]string{"addr": publicKey})
	if err != nil {
		return nil, fault.Network("fund account", err)
	}

	resp := result.Response
	receipt := &Receipt{
		Address:   publicKey,
		Status:    resp.StatusCode(),
		LatencyMs: result.LatencyMs,
		Body:      rawBody(resp.Body()),
	}

	var ack struct {
		Hash string `json:"hash"`
	}
	if json.Unmarshal(resp.Body(), &ack) == nil {
		receipt.Hash = ack.Hash
	}

	f.logger.Debug().
		Str("address", publicKey).
		Int("status", receipt.Status).
		Int64("latency_ms", receipt.LatencyMs).
		Msg("faucet answered")

	if !resp.IsSuccess() {
		msg := fmt.Sprintf("faucet returned %s", resp.Status())
		if wait := client.ParseRetryAfter(resp); wait > 0 {
			msg += fmt.Sprintf(" (retry after %s)", wait.Round(time.Second))
		}
		return receipt, fault.Newf(fault.KindNetwork, "fund account", "%s", msg)
	}

	return receipt, nil
}

// rawBody keeps valid JSON verbatim and quotes anything else.
func rawBody(body []byte) json.RawMessage {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return json.RawMessage("null")
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(trimmed)
	return quoted
}
