// Package wait contains helpers to block until on-chain state is observable,
// bounded by the caller's context.
package wait

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ReceiptClient is the subset of an ethclient used to look up receipts.
type ReceiptClient interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// BalanceClient is the subset of an ethclient used to look up balances.
type BalanceClient interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

const pollInterval = 500 * time.Millisecond

// ForReceiptOK waits for the receipt of the given transaction and requires a
// successful receipt status.
func ForReceiptOK(ctx context.Context, client ReceiptClient, hash common.Hash) (*types.Receipt, error) {
	return ForReceipt(ctx, client, hash, types.ReceiptStatusSuccessful)
}

// ForReceipt polls for the receipt of the given transaction until it is
// included, then checks the receipt status against the expected one.
func ForReceipt(ctx context.Context, client ReceiptClient, hash common.Hash, status uint64) (*types.Receipt, error) {
	receipt, err := ForReceiptMaybe(ctx, client, hash)
	if err != nil {
		return receipt, err
	}
	if receipt.Status != status {
		return receipt, fmt.Errorf("expected status %d for tx %s, got %d", status, hash, receipt.Status)
	}
	return receipt, nil
}

// ForReceiptMaybe polls for the receipt of the given transaction without
// checking its status.
func ForReceiptMaybe(ctx context.Context, client ReceiptClient, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, hash)
		if errors.Is(err, ethereum.NotFound) {
			// Transaction not yet included, keep polling.
		} else if err != nil {
			return nil, fmt.Errorf("failed to get receipt for tx %s: %w", hash, err)
		} else {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for receipt of tx %s: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

// ForBalanceChange polls the balance of the given account until it diverges
// from the initial value, and returns the new balance.
func ForBalanceChange(ctx context.Context, client BalanceClient, account common.Address, initial *big.Int) (*big.Int, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		balance, err := client.BalanceAt(ctx, account, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get balance of %s: %w", account, err)
		}
		if balance.Cmp(initial) != 0 {
			return balance, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for balance change of %s: %w", account, ctx.Err())
		case <-ticker.C:
		}
	}
}
