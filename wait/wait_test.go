package wait

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

type stubReceiptClient struct {
	mu       sync.Mutex
	notFound int
	receipt  *types.Receipt
}

func (s *stubReceiptClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notFound > 0 {
		s.notFound--
		return nil, ethereum.NotFound
	}
	return s.receipt, nil
}

func TestForReceiptOK(t *testing.T) {
	hash := common.Hash{0xaa}
	client := &stubReceiptClient{
		notFound: 2,
		receipt:  &types.Receipt{TxHash: hash, Status: types.ReceiptStatusSuccessful},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	receipt, err := ForReceiptOK(ctx, client, hash)
	require.NoError(t, err)
	require.Equal(t, hash, receipt.TxHash)
}

func TestForReceiptStatusMismatch(t *testing.T) {
	hash := common.Hash{0xbb}
	client := &stubReceiptClient{
		receipt: &types.Receipt{TxHash: hash, Status: types.ReceiptStatusFailed},
	}
	_, err := ForReceiptOK(context.Background(), client, hash)
	require.ErrorContains(t, err, "expected status")
}

func TestForReceiptContextDone(t *testing.T) {
	client := &stubReceiptClient{notFound: 1 << 30}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ForReceiptOK(ctx, client, common.Hash{0xcc})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

type stubBalanceClient struct {
	mu       sync.Mutex
	balances []*big.Int
}

func (s *stubBalanceClient) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance := s.balances[0]
	if len(s.balances) > 1 {
		s.balances = s.balances[1:]
	}
	return balance, nil
}

func TestForBalanceChange(t *testing.T) {
	start := big.NewInt(100)
	client := &stubBalanceClient{
		balances: []*big.Int{big.NewInt(100), big.NewInt(100), big.NewInt(250)},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	balance, err := ForBalanceChange(ctx, client, common.Address{0x01}, start)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(250), balance)
}
