package bridge

import (
	"context"
	"fmt"
	"math/big"
	"sync"
)

// ChainIDClient reports the chain ID of its endpoint.
type ChainIDClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// chainIDResolver memoizes the chain ID of one endpoint and checks it against
// the configured value. Only a successful resolution is cached, so a flaky
// endpoint at startup does not pin an error for the lifetime of the facade.
type chainIDResolver struct {
	client ChainIDClient
	want   uint64

	mu sync.Mutex
	id *big.Int
}

func newChainIDResolver(client ChainIDClient, want uint64) *chainIDResolver {
	return &chainIDResolver{client: client, want: want}
}

// Resolve returns the verified chain ID, fetching it on first use.
func (r *chainIDResolver) Resolve(ctx context.Context) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.id != nil {
		return r.id, nil
	}
	id, err := r.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	if !id.IsUint64() || id.Uint64() != r.want {
		return nil, fmt.Errorf("%w: endpoint reports %s, configured %d", errWrongChainID, id, r.want)
	}
	r.id = id
	return r.id, nil
}
