package messenger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	"github.com/lmittmann/w3"

	"github.com/mantlenetworkio/op-bridger/errutil"
)

// DefaultMinGasLimit is the minimum gas forwarded with a bridge message on
// the destination chain.
const DefaultMinGasLimit uint32 = 200_000

var (
	bridgeETHToFn     = w3.MustNewFunc("bridgeETHTo(address,uint32,bytes)", "")
	bridgeERC20ToFn   = w3.MustNewFunc("bridgeERC20To(address,address,address,uint256,uint32,bytes)", "")
	bridgeERC721ToFn  = w3.MustNewFunc("bridgeERC721To(address,address,address,uint256,uint32,bytes)", "")
	bridgeERC1155ToFn = w3.MustNewFunc("bridgeERC1155To(address,address,address,uint256,uint256,uint32,bytes)", "")
)

// TxSubmitter is the subset of an ethclient needed to build and broadcast a
// transaction.
type TxSubmitter interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// BridgeAddresses are the bridge contracts the transfer view submits to on
// its own chain.
type BridgeAddresses struct {
	StandardBridge common.Address
	ERC721Bridge   common.Address
	ERC1155Bridge  common.Address
}

// Transfer is the signer-bound messenger view. One instance exists per chain;
// it initiates transfers towards the counterpart chain and never reads relay
// state.
type Transfer struct {
	log         log.Logger
	client      TxSubmitter
	key         *ecdsa.PrivateKey
	from        common.Address
	chainID     func(ctx context.Context) (*big.Int, error)
	bridges     BridgeAddresses
	minGasLimit uint32
}

// NewTransfer constructs the transfer view. The chainID resolver is shared
// with the owning facade so both views agree on the chain pair.
func NewTransfer(logger log.Logger, client TxSubmitter, key *ecdsa.PrivateKey, chainID func(ctx context.Context) (*big.Int, error), bridges BridgeAddresses) *Transfer {
	return &Transfer{
		log:         logger,
		client:      client,
		key:         key,
		from:        crypto.PubkeyToAddress(key.PublicKey),
		chainID:     chainID,
		bridges:     bridges,
		minGasLimit: DefaultMinGasLimit,
	}
}

// From returns the submitting account.
func (tr *Transfer) From() common.Address {
	return tr.from
}

// BridgeETH moves native coin to the given account on the counterpart chain.
func (tr *Transfer) BridgeETH(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	data, err := bridgeETHToFn.EncodeArgs(to, tr.minGasLimit, []byte{})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode bridgeETHTo: %w", err)
	}
	return tr.submit(ctx, tr.bridges.StandardBridge, data, amount)
}

// BridgeERC20 moves a fungible token. The bridge must already be approved to
// move the amount on behalf of the sender.
func (tr *Transfer) BridgeERC20(ctx context.Context, localToken, remoteToken, to common.Address, amount *big.Int) (common.Hash, error) {
	data, err := bridgeERC20ToFn.EncodeArgs(localToken, remoteToken, to, amount, tr.minGasLimit, []byte{})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode bridgeERC20To: %w", err)
	}
	return tr.submit(ctx, tr.bridges.StandardBridge, data, nil)
}

// BridgeERC721 moves a non-fungible token. Approval is the caller's concern.
func (tr *Transfer) BridgeERC721(ctx context.Context, localToken, remoteToken, to common.Address, tokenID *big.Int) (common.Hash, error) {
	data, err := bridgeERC721ToFn.EncodeArgs(localToken, remoteToken, to, tokenID, tr.minGasLimit, []byte{})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode bridgeERC721To: %w", err)
	}
	return tr.submit(ctx, tr.bridges.ERC721Bridge, data, nil)
}

// BridgeERC1155 moves an amount of a multi-token id. Approval is the
// caller's concern.
func (tr *Transfer) BridgeERC1155(ctx context.Context, localToken, remoteToken, to common.Address, tokenID, amount *big.Int) (common.Hash, error) {
	data, err := bridgeERC1155ToFn.EncodeArgs(localToken, remoteToken, to, tokenID, amount, tr.minGasLimit, []byte{})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode bridgeERC1155To: %w", err)
	}
	return tr.submit(ctx, tr.bridges.ERC1155Bridge, data, nil)
}

// SendCall submits an arbitrary call from the transfer identity. Used for
// the approve leg of ERC-20 deposits.
func (tr *Transfer) SendCall(ctx context.Context, to common.Address, data []byte, value *big.Int) (common.Hash, error) {
	return tr.submit(ctx, to, data, value)
}

func (tr *Transfer) submit(ctx context.Context, to common.Address, data []byte, value *big.Int) (common.Hash, error) {
	chainID, err := tr.chainID(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to resolve chain ID: %w", err)
	}
	nonce, err := tr.client.PendingNonceAt(ctx, tr.from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get next nonce: %w", err)
	}
	head, err := tr.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get latest block: %w", err)
	}
	if head.BaseFee == nil {
		return common.Hash{}, fmt.Errorf("chain %s has no basefee in its latest block, pre-London endpoints are not supported", chainID)
	}
	gasTipCap := big.NewInt(1 * params.GWei)
	gasFeeCap := new(big.Int).Mul(head.BaseFee, big.NewInt(3))
	if gasFeeCap.Cmp(gasTipCap) < 0 {
		// gasTipCap can't be higher than gasFeeCap. Extra is refunded anyway.
		gasFeeCap = gasTipCap
	}

	msg := ethereum.CallMsg{
		From:      tr.from,
		To:        &to,
		Value:     value,
		GasTipCap: gasTipCap,
		GasFeeCap: gasFeeCap,
		Data:      data,
	}
	gas, err := tr.client.EstimateGas(ctx, msg)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", errutil.TryAddRevertReason(err))
	}

	tx := types.MustSignNewTx(tr.key, types.LatestSignerForChainID(chainID), &types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		To:        &to,
		Value:     value,
		GasTipCap: gasTipCap,
		GasFeeCap: gasFeeCap,
		Data:      data,
		Gas:       gas,
	})
	if err := tr.client.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction (tx: %s): %w", tx.Hash(), errutil.TryAddRevertReason(err))
	}
	tr.log.Debug("Submitted bridge transaction", "tx", tx.Hash(), "to", to, "nonce", nonce)
	return tx.Hash(), nil
}
