package crossdomain_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/op-bridger/crossdomain"
)

var (
	addressType, _ = abi.NewType("address", "", nil)
	bytesType, _   = abi.NewType("bytes", "", nil)
	uint256Type, _ = abi.NewType("uint256", "", nil)
)

// receiptWithSentMessage builds a receipt carrying the SentMessage and
// SentMessageExtension1 events the way the messenger contract emits them.
func receiptWithSentMessage(t *testing.T, target, sender common.Address, message []byte, nonce, gasLimit, value *big.Int) *types.Receipt {
	t.Helper()

	sentData, err := abi.Arguments{
		{Type: addressType},
		{Type: bytesType},
		{Type: uint256Type},
		{Type: uint256Type},
	}.Pack(sender, message, nonce, gasLimit)
	require.NoError(t, err)

	extData, err := abi.Arguments{{Type: uint256Type}}.Pack(value)
	require.NoError(t, err)

	return &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{
			{
				Topics: []common.Hash{crossdomain.SentMessageTopic, common.BytesToHash(target.Bytes())},
				Data:   sentData,
			},
			{
				Topics: []common.Hash{crossdomain.SentMessageExtension1Topic, common.BytesToHash(sender.Bytes())},
				Data:   extData,
			},
		},
	}
}
