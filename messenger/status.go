package messenger

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/lmittmann/w3"

	"github.com/mantlenetworkio/op-bridger/crossdomain"
)

var (
	successfulMessagesFn = w3.MustNewFunc("successfulMessages(bytes32)", "bool")
	failedMessagesFn     = w3.MustNewFunc("failedMessages(bytes32)", "bool")
	latestBlockNumberFn  = w3.MustNewFunc("latestBlockNumber()", "uint256")
)

// ErrMessageReverted indicates the submitting transaction reverted on the
// source chain, so no message was ever sent.
var ErrMessageReverted = errors.New("message submission reverted on source chain")

// SourceClient reads the submission side of a message.
type SourceClient interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// DestClient reads relay state on the destination chain.
type DestClient interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Status is the read-only messenger view for one message direction. It maps
// a submission transaction hash to the relay status recorded by the
// destination chain's messenger. It never submits anything.
type Status struct {
	source    SourceClient
	dest      DestClient
	messenger common.Address // destination cross domain messenger

	// outputOracle, when set, is the L2OutputOracle on the destination
	// chain. A message then stays unconfirmed until an output covering its
	// source block has been published.
	outputOracle common.Address
}

// NewStatus constructs the status view for one direction. The messenger
// address is the cross domain messenger on the destination chain. The output
// oracle only applies to withdrawals; pass the zero address for deposits.
func NewStatus(source SourceClient, dest DestClient, messenger, outputOracle common.Address) *Status {
	return &Status{
		source:       source,
		dest:         dest,
		messenger:    messenger,
		outputOracle: outputOracle,
	}
}

// MessageStatus reports where the message sent by the given source-chain
// transaction is in its relay lifecycle.
func (s *Status) MessageStatus(ctx context.Context, txHash common.Hash) (MessageStatus, error) {
	receipt, err := s.source.TransactionReceipt(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return StatusUnconfirmed, nil
	} else if err != nil {
		return StatusUnconfirmed, fmt.Errorf("failed to get receipt for tx %s: %w", txHash, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return StatusUnconfirmed, fmt.Errorf("tx %s: %w", txHash, ErrMessageReverted)
	}

	ev, err := crossdomain.ParseSentMessage(receipt)
	if err != nil {
		return StatusUnconfirmed, fmt.Errorf("tx %s carries no cross domain message: %w", txHash, err)
	}
	hash, err := ev.Hash()
	if err != nil {
		return StatusUnconfirmed, fmt.Errorf("failed to hash message of tx %s: %w", txHash, err)
	}

	relayed, err := s.readFlag(ctx, successfulMessagesFn, hash)
	if err != nil {
		return StatusUnconfirmed, err
	}
	if relayed {
		return StatusRelayed, nil
	}
	failed, err := s.readFlag(ctx, failedMessagesFn, hash)
	if err != nil {
		return StatusUnconfirmed, err
	}
	if failed {
		return StatusFailed, nil
	}
	if s.outputOracle != (common.Address{}) {
		published, err := s.outputPublished(ctx, receipt.BlockNumber)
		if err != nil {
			return StatusUnconfirmed, err
		}
		if !published {
			return StatusUnconfirmed, nil
		}
	}
	return StatusReadyForRelay, nil
}

// outputPublished reports whether the output oracle has seen an output at or
// past the given source block, which is what makes a withdrawal relayable.
func (s *Status) outputPublished(ctx context.Context, block *big.Int) (bool, error) {
	input, err := latestBlockNumberFn.EncodeArgs()
	if err != nil {
		return false, fmt.Errorf("failed to encode latestBlockNumber: %w", err)
	}
	output, err := s.dest.CallContract(ctx, ethereum.CallMsg{To: &s.outputOracle, Data: input}, nil)
	if err != nil {
		return false, fmt.Errorf("latestBlockNumber call on %s failed: %w", s.outputOracle, err)
	}
	var latest big.Int
	if err := latestBlockNumberFn.DecodeReturns(output, &latest); err != nil {
		return false, fmt.Errorf("failed to decode latestBlockNumber returns: %w", err)
	}
	return latest.Cmp(block) >= 0, nil
}

func (s *Status) readFlag(ctx context.Context, fn *w3.Func, hash common.Hash) (bool, error) {
	input, err := fn.EncodeArgs(hash)
	if err != nil {
		return false, fmt.Errorf("failed to encode message lookup: %w", err)
	}
	output, err := s.dest.CallContract(ctx, ethereum.CallMsg{To: &s.messenger, Data: input}, nil)
	if err != nil {
		return false, fmt.Errorf("message lookup on %s failed: %w", s.messenger, err)
	}
	var flag bool
	if err := fn.DecodeReturns(output, &flag); err != nil {
		return false, fmt.Errorf("failed to decode message lookup returns: %w", err)
	}
	return flag, nil
}
