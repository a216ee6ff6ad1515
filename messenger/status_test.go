package messenger

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/op-bridger/crossdomain"
)

type stubSource struct {
	receipt *types.Receipt
	err     error
}

func (s *stubSource) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return s.receipt, s.err
}

// stubDest answers successfulMessages / failedMessages lookups and, when
// latestBlock is set, latestBlockNumber on the output oracle.
type stubDest struct {
	relayed     bool
	failed      bool
	latestBlock *big.Int
	calls       int
}

func (s *stubDest) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	s.calls++
	var flag bool
	switch common.Bytes2Hex(msg.Data[:4]) {
	case common.Bytes2Hex(successfulMessagesFn.Selector[:]):
		flag = s.relayed
	case common.Bytes2Hex(failedMessagesFn.Selector[:]):
		flag = s.failed
	case common.Bytes2Hex(latestBlockNumberFn.Selector[:]):
		return latestBlockNumberFn.Returns.Pack(s.latestBlock)
	}
	return successfulMessagesFn.Returns.Pack(flag)
}

func sentMessageReceipt(t *testing.T) *types.Receipt {
	t.Helper()

	addressType, err := abi.NewType("address", "", nil)
	require.NoError(t, err)
	bytesType, err := abi.NewType("bytes", "", nil)
	require.NoError(t, err)
	uint256Type, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)

	nonce := crossdomain.EncodeVersionedNonce(big.NewInt(1), common.Big1)
	sentData, err := abi.Arguments{
		{Type: addressType},
		{Type: bytesType},
		{Type: uint256Type},
		{Type: uint256Type},
	}.Pack(common.Address{0x02}, []byte{0x01}, nonce, big.NewInt(100_000))
	require.NoError(t, err)
	extData, err := abi.Arguments{{Type: uint256Type}}.Pack(big.NewInt(5))
	require.NoError(t, err)

	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(7),
		Logs: []*types.Log{
			{
				Topics: []common.Hash{crossdomain.SentMessageTopic, common.BytesToHash(common.Address{0x01}.Bytes())},
				Data:   sentData,
			},
			{
				Topics: []common.Hash{crossdomain.SentMessageExtension1Topic, common.BytesToHash(common.Address{0x02}.Bytes())},
				Data:   extData,
			},
		},
	}
}

func TestMessageStatusUnconfirmed(t *testing.T) {
	status := NewStatus(&stubSource{err: ethereum.NotFound}, &stubDest{}, common.Address{0x07}, common.Address{})
	got, err := status.MessageStatus(context.Background(), common.Hash{0xaa})
	require.NoError(t, err)
	require.Equal(t, StatusUnconfirmed, got)
}

func TestMessageStatusReadyForRelay(t *testing.T) {
	dest := &stubDest{}
	status := NewStatus(&stubSource{receipt: sentMessageReceipt(t)}, dest, common.Address{0x07}, common.Address{})
	got, err := status.MessageStatus(context.Background(), common.Hash{0xaa})
	require.NoError(t, err)
	require.Equal(t, StatusReadyForRelay, got)
	require.Equal(t, 2, dest.calls, "checks both relay outcome flags")
}

func TestMessageStatusRelayed(t *testing.T) {
	status := NewStatus(&stubSource{receipt: sentMessageReceipt(t)}, &stubDest{relayed: true}, common.Address{0x07}, common.Address{})
	got, err := status.MessageStatus(context.Background(), common.Hash{0xaa})
	require.NoError(t, err)
	require.Equal(t, StatusRelayed, got)
}

func TestMessageStatusFailed(t *testing.T) {
	status := NewStatus(&stubSource{receipt: sentMessageReceipt(t)}, &stubDest{failed: true}, common.Address{0x07}, common.Address{})
	got, err := status.MessageStatus(context.Background(), common.Hash{0xaa})
	require.NoError(t, err)
	require.Equal(t, StatusFailed, got)
}

func TestMessageStatusReverted(t *testing.T) {
	status := NewStatus(&stubSource{receipt: &types.Receipt{Status: types.ReceiptStatusFailed}}, &stubDest{}, common.Address{0x07}, common.Address{})
	_, err := status.MessageStatus(context.Background(), common.Hash{0xaa})
	require.ErrorIs(t, err, ErrMessageReverted)
}

func TestMessageStatusWaitsForPublishedOutput(t *testing.T) {
	source := &stubSource{receipt: sentMessageReceipt(t)}
	dest := &stubDest{latestBlock: big.NewInt(3)}
	status := NewStatus(source, dest, common.Address{0x07}, common.Address{0x09})

	got, err := status.MessageStatus(context.Background(), common.Hash{0xaa})
	require.NoError(t, err)
	require.Equal(t, StatusUnconfirmed, got, "no output covers the source block yet")

	dest.latestBlock = big.NewInt(7)
	got, err = status.MessageStatus(context.Background(), common.Hash{0xaa})
	require.NoError(t, err)
	require.Equal(t, StatusReadyForRelay, got)
}

func TestMessageStatusOracleIgnoredOnceRelayed(t *testing.T) {
	dest := &stubDest{relayed: true, latestBlock: big.NewInt(0)}
	status := NewStatus(&stubSource{receipt: sentMessageReceipt(t)}, dest, common.Address{0x07}, common.Address{0x09})

	got, err := status.MessageStatus(context.Background(), common.Hash{0xaa})
	require.NoError(t, err)
	require.Equal(t, StatusRelayed, got)
}

func TestMessageStatusString(t *testing.T) {
	require.Equal(t, "unconfirmed", StatusUnconfirmed.String())
	require.Equal(t, "ready-for-relay", StatusReadyForRelay.String())
	require.Equal(t, "relayed", StatusRelayed.String())
	require.Equal(t, "failed", StatusFailed.String())
}
