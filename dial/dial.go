// Package dial establishes RPC connections with bounded retries.
package dial

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/mantlenetworkio/op-bridger/retry"
)

// DefaultDialTimeout is a default timeout for dialing a client.
const DefaultDialTimeout = 1 * time.Minute
const defaultRetryCount = 30

// DialEthClientWithTimeout attempts to dial the given URL. If the dial doesn't
// complete within the timeout, this method returns an error.
func DialEthClientWithTimeout(ctx context.Context, timeout time.Duration, log log.Logger, url string) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c, err := dialRPCClientWithBackoff(ctx, log, url)
	if err != nil {
		return nil, err
	}

	return ethclient.NewClient(c), nil
}

// Dials a JSON-RPC endpoint repeatedly, with a backoff, until a client connection is established.
func dialRPCClientWithBackoff(ctx context.Context, log log.Logger, addr string) (*rpc.Client, error) {
	bOff := retry.Exponential()
	return retry.Do(ctx, defaultRetryCount, bOff, func() (*rpc.Client, error) {
		client, err := rpc.DialContext(ctx, addr)
		if err != nil {
			log.Warn("failed to dial RPC endpoint", "addr", addr, "err", err)
			return nil, fmt.Errorf("failed to dial address (%s): %w", addr, err)
		}
		return client, nil
	})
}
