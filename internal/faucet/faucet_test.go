package faucet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/client"
	"github.com/thisisdakshasoni/HACKER-HOUSE-GOA/internal/fault"
)

const testAddress = "GCEZWKCA5VLDNRLN3RPRJMRZOX3Z6G5CHCGSNFHEYVXM3XOJMDS674JZ"

func TestFund_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, testAddress, r.URL.Query().Get("addr"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hash":"f00d","successful":true}`))
	}))
	defer server.Close()

	f := New(server.URL, client.New(), nil)
	receipt, err := f.Fund(context.Background(), testAddress)
	require.NoError(t, err)

	assert.Equal(t, testAddress, receipt.Address)
	assert.Equal(t, http.StatusOK, receipt.Status)
	assert.Equal(t, "f00d", receipt.Hash)
	assert.JSONEq(t, `{"hash":"f00d","successful":true}`, string(receipt.Body))
}

func TestFund_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title":"Bad Request","detail":"account already funded to starting balance"}`))
	}))
	defer server.Close()

	f := New(server.URL, client.New(), nil)
	receipt, err := f.Fund(context.Background(), testAddress)
	require.Error(t, err)

	assert.ErrorIs(t, err, fault.ErrNetwork)
	assert.Contains(t, err.Error(), "400")
	require.NotNil(t, receipt, "receipt is returned so the body can be shown")
	assert.Contains(t, string(receipt.Body), "already funded")
}

func TestFund_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	f := New(server.URL, client.New(), nil)
	_, err := f.Fund(context.Background(), testAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry after 30s")
}

func TestFund_Unreachable(t *testing.T) {
	f := New("http://localhost:99999", client.New(client.WithTimeout(100*time.Millisecond)), nil)
	receipt, err := f.Fund(context.Background(), testAddress)
	require.Error(t, err)

	assert.Nil(t, receipt)
	assert.Equal(t, fault.KindNetwork, fault.KindOf(err))
}

func TestRawBody(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "json object", input: ` {"a":1} `, expected: `{"a":1}`},
		{name: "plain text", input: "hello", expected: `"hello"`},
		{name: "empty", input: "", expected: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rawBody([]byte(tt.input))
			assert.True(t, json.Valid(got))
			assert.Equal(t, tt.expected, string(got))
		})
	}
}
