// Package blockchain talks to an Ethereum JSON-RPC provider. The
// provider is consumed as an opaque receipt oracle: one lookup per
// payment, no retries, bounded by the caller's context.
package blockchain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"creatorhub/internal/metrics"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Receipt is the chain-provided record of a transaction's final
// outcome.
type Receipt struct {
	Success       bool   `json:"success"`
	BlockNumber   uint64 `json:"block_number"`
	Confirmations uint64 `json:"confirmations"`
}

// ReceiptClient looks up a transaction receipt by hash. A nil receipt
// with a nil error means the chain has no receipt yet: the transaction
// is pending or unknown.
type ReceiptClient interface {
	Receipt(ctx context.Context, txHash string) (*Receipt, error)
}

var txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// ValidTxHash reports whether h looks like an Ethereum transaction
// hash.
func ValidTxHash(h string) bool {
	return txHashPattern.MatchString(h)
}

// Client implements ReceiptClient over go-ethereum's RPC client.
type Client struct {
	eth *ethclient.Client
}

// Dial connects to the JSON-RPC endpoint at rpcURL.
func Dial(rpcURL string) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ethereum rpc: %w", err)
	}
	return &Client{eth: eth}, nil
}

// Receipt fetches the receipt for txHash. Returns (nil, nil) when the
// node has no receipt for the hash.
func (c *Client) Receipt(ctx context.Context, txHash string) (*Receipt, error) {
	start := time.Now()

	receipt, err := c.eth.TransactionReceipt(ctx, common.HexToHash(txHash))
	metrics.ChainRPCRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			metrics.ChainRPCRequestsTotal.WithLabelValues("not_found").Inc()
			return nil, nil
		}
		metrics.ChainRPCRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch receipt: %w", err)
	}

	head, err := c.eth.BlockNumber(ctx)
	if err != nil {
		metrics.ChainRPCRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch head block: %w", err)
	}

	block := receipt.BlockNumber.Uint64()
	var confirmations uint64
	if head >= block {
		confirmations = head - block + 1
	}

	metrics.ChainRPCRequestsTotal.WithLabelValues("ok").Inc()
	return &Receipt{
		Success:       receipt.Status == types.ReceiptStatusSuccessful,
		BlockNumber:   block,
		Confirmations: confirmations,
	}, nil
}
