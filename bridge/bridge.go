// Package bridge is the top-level facade over a pair of chain endpoints. It
// owns the clients, the two transfer views and the two status views, and
// exposes deposit and withdrawal operations that block until the message is
// relayed on the destination chain.
package bridge

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"

	"github.com/mantlenetworkio/op-bridger/dial"
	"github.com/mantlenetworkio/op-bridger/messenger"
	"github.com/mantlenetworkio/op-bridger/predeploys"
	"github.com/mantlenetworkio/op-bridger/retry"
	"github.com/mantlenetworkio/op-bridger/tokens"
	"github.com/mantlenetworkio/op-bridger/wait"
)

// prefetchAttempts bounds the chain ID warmup; failures surface again on
// first use, so a short retry budget is enough.
const prefetchAttempts = 5

// EthClient is the client surface the facade needs per chain. An
// *ethclient.Client satisfies it.
type EthClient interface {
	messenger.TxSubmitter
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// StatusReader reports the relay status of a message identified by its source
// chain transaction hash.
type StatusReader interface {
	MessageStatus(ctx context.Context, txHash common.Hash) (messenger.MessageStatus, error)
}

// Bridge is the facade. Construct it with New; the zero value is not usable.
type Bridge struct {
	log     log.Logger
	cfg     Config
	metrics Metricer

	l1 EthClient
	l2 EthClient

	l1Transfer *messenger.Transfer
	l2Transfer *messenger.Transfer

	l1ChainID *chainIDResolver
	l2ChainID *chainIDResolver

	// depositStatus reads the L2 messenger, withdrawalStatus the L1 one.
	depositStatus    StatusReader
	withdrawalStatus StatusReader
}

// New dials both endpoints and assembles the views. The keys are hex-encoded
// secp256k1 private keys, with or without a 0x prefix; the same key may be
// used on both chains. A nil Metricer disables instrumentation.
func New(ctx context.Context, logger log.Logger, l1Key, l2Key string, cfg Config, m Metricer) (*Bridge, error) {
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if m == nil {
		m = noopMetrics{}
	}
	l1Priv, err := crypto.HexToECDSA(strings.TrimPrefix(l1Key, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid L1 private key: %w", err)
	}
	l2Priv, err := crypto.HexToECDSA(strings.TrimPrefix(l2Key, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid L2 private key: %w", err)
	}

	l1Client, err := dial.DialEthClientWithTimeout(ctx, cfg.dialTimeout(), logger, cfg.L1RPC)
	if err != nil {
		return nil, fmt.Errorf("failed to dial L1: %w", err)
	}
	l2Client, err := dial.DialEthClientWithTimeout(ctx, cfg.dialTimeout(), logger, cfg.L2RPC)
	if err != nil {
		return nil, fmt.Errorf("failed to dial L2: %w", err)
	}

	// The transfer set falls back to the status set, so resolving the
	// status view also completes the transfer view.
	cfg.Addresses.Status, err = resolveAddresses(ctx, l1Client, cfg.Addresses.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve addresses: %w", err)
	}

	b := &Bridge{
		log:     logger,
		cfg:     cfg,
		metrics: m,
		l1:      l1Client,
		l2:      l2Client,
	}
	b.wire(l1Priv, l2Priv)

	// Warm the chain ID caches so the first transfer doesn't pay for the
	// round trips. Failures here surface again on first use.
	go b.prefetchChainIDs()
	return b, nil
}

func (b *Bridge) wire(l1Priv, l2Priv *ecdsa.PrivateKey) {
	if b.metrics == nil {
		b.metrics = noopMetrics{}
	}
	b.l1ChainID = newChainIDResolver(b.l1, b.cfg.L1ChainID)
	b.l2ChainID = newChainIDResolver(b.l2, b.cfg.L2ChainID)

	transfer := b.cfg.Addresses.TransferSet()
	b.l1Transfer = messenger.NewTransfer(b.log.New("chain", "l1"), b.l1, l1Priv, b.l1ChainID.Resolve, messenger.BridgeAddresses{
		StandardBridge: transfer.L1StandardBridge,
		ERC721Bridge:   transfer.L1ERC721Bridge,
		ERC1155Bridge:  transfer.L1ERC1155Bridge,
	})
	b.l2Transfer = messenger.NewTransfer(b.log.New("chain", "l2"), b.l2, l2Priv, b.l2ChainID.Resolve, messenger.BridgeAddresses{
		StandardBridge: predeploys.L2StandardBridgeAddr,
		ERC721Bridge:   predeploys.L2ERC721BridgeAddr,
		ERC1155Bridge:  transfer.L2ERC1155Bridge,
	})

	b.depositStatus = messenger.NewStatus(b.l1, b.l2, predeploys.L2CrossDomainMessengerAddr, common.Address{})
	b.withdrawalStatus = messenger.NewStatus(b.l2, b.l1, b.cfg.Addresses.Status.L1CrossDomainMessenger, b.cfg.Addresses.Status.L2OutputOracle)
}

func (b *Bridge) prefetchChainIDs() {
	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.dialTimeout())
	defer cancel()
	strategy := retry.Fixed(time.Second)
	if _, err := retry.Do(ctx, prefetchAttempts, strategy, func() (*big.Int, error) {
		return b.l1ChainID.Resolve(ctx)
	}); err != nil {
		b.log.Warn("L1 chain ID prefetch failed", "err", err)
	}
	if _, err := retry.Do(ctx, prefetchAttempts, strategy, func() (*big.Int, error) {
		return b.l2ChainID.Resolve(ctx)
	}); err != nil {
		b.log.Warn("L2 chain ID prefetch failed", "err", err)
	}
}

// L1Address returns the account that signs on L1.
func (b *Bridge) L1Address() common.Address { return b.l1Transfer.From() }

// L2Address returns the account that signs on L2.
func (b *Bridge) L2Address() common.Address { return b.l2Transfer.From() }

// DepositETH moves amount wei from the L1 account to the L2 account, waiting
// for the message to be relayed. The returned hash is the L1 transaction.
//
// The L1 balance is fetched fresh and checked before anything is submitted,
// so a short balance fails without spending gas.
func (b *Bridge) DepositETH(ctx context.Context, amount *big.Int) (common.Hash, error) {
	if err := b.checkBalance(ctx, b.l1, b.L1Address(), amount); err != nil {
		return common.Hash{}, err
	}
	hash, err := b.l1Transfer.BridgeETH(ctx, b.L2Address(), amount)
	if err != nil {
		return common.Hash{}, err
	}
	b.metrics.RecordSubmitted(DirectionDeposit, AssetETH)
	b.log.Info("ETH deposit submitted", "tx", hash, "amount", amount)
	return hash, b.awaitRelay(ctx, b.l1, b.depositStatus, hash, DirectionDeposit)
}

// WithdrawETH moves amount wei from the L2 account to the L1 account, waiting
// for the message to be relayed. The returned hash is the L2 transaction.
//
// No balance precheck is done here: withdrawals spend from the L2 account
// whose native balance is what is being moved, and the node's gas estimation
// already rejects an overdraft.
func (b *Bridge) WithdrawETH(ctx context.Context, amount *big.Int) (common.Hash, error) {
	hash, err := b.l2Transfer.BridgeETH(ctx, b.L1Address(), amount)
	if err != nil {
		return common.Hash{}, err
	}
	b.metrics.RecordSubmitted(DirectionWithdrawal, AssetETH)
	b.log.Info("ETH withdrawal submitted", "tx", hash, "amount", amount)
	return hash, b.awaitRelay(ctx, b.l2, b.withdrawalStatus, hash, DirectionWithdrawal)
}

// DepositERC20 approves the L1 standard bridge for amount and bridges the
// token to the L2 account. The approval receipt is awaited before the bridge
// call so the two transactions cannot land out of order.
func (b *Bridge) DepositERC20(ctx context.Context, l1Token, l2Token common.Address, amount *big.Int) (common.Hash, error) {
	if err := b.approve(ctx, b.l1Transfer, b.l1, l1Token, b.cfg.Addresses.TransferSet().L1StandardBridge, amount); err != nil {
		return common.Hash{}, err
	}
	hash, err := b.l1Transfer.BridgeERC20(ctx, l1Token, l2Token, b.L2Address(), amount)
	if err != nil {
		return common.Hash{}, err
	}
	b.metrics.RecordSubmitted(DirectionDeposit, AssetERC20)
	b.log.Info("ERC20 deposit submitted", "tx", hash, "token", l1Token, "amount", amount)
	return hash, b.awaitRelay(ctx, b.l1, b.depositStatus, hash, DirectionDeposit)
}

// WithdrawERC20 bridges the token back to the L1 account. The L2 standard
// bridge burns its own representations, so no approval is needed.
func (b *Bridge) WithdrawERC20(ctx context.Context, l1Token, l2Token common.Address, amount *big.Int) (common.Hash, error) {
	hash, err := b.l2Transfer.BridgeERC20(ctx, l2Token, l1Token, b.L1Address(), amount)
	if err != nil {
		return common.Hash{}, err
	}
	b.metrics.RecordSubmitted(DirectionWithdrawal, AssetERC20)
	b.log.Info("ERC20 withdrawal submitted", "tx", hash, "token", l2Token, "amount", amount)
	return hash, b.awaitRelay(ctx, b.l2, b.withdrawalStatus, hash, DirectionWithdrawal)
}

// DepositERC721 bridges one non-fungible token to the L2 account. The token
// must already be approved for the L1 ERC721 bridge.
func (b *Bridge) DepositERC721(ctx context.Context, l1Token, l2Token common.Address, tokenID *big.Int) (common.Hash, error) {
	hash, err := b.l1Transfer.BridgeERC721(ctx, l1Token, l2Token, b.L2Address(), tokenID)
	if err != nil {
		return common.Hash{}, err
	}
	b.metrics.RecordSubmitted(DirectionDeposit, AssetERC721)
	b.log.Info("ERC721 deposit submitted", "tx", hash, "token", l1Token, "id", tokenID)
	return hash, b.awaitRelay(ctx, b.l1, b.depositStatus, hash, DirectionDeposit)
}

// WithdrawERC721 bridges one non-fungible token back to the L1 account.
func (b *Bridge) WithdrawERC721(ctx context.Context, l1Token, l2Token common.Address, tokenID *big.Int) (common.Hash, error) {
	hash, err := b.l2Transfer.BridgeERC721(ctx, l2Token, l1Token, b.L1Address(), tokenID)
	if err != nil {
		return common.Hash{}, err
	}
	b.metrics.RecordSubmitted(DirectionWithdrawal, AssetERC721)
	b.log.Info("ERC721 withdrawal submitted", "tx", hash, "token", l2Token, "id", tokenID)
	return hash, b.awaitRelay(ctx, b.l2, b.withdrawalStatus, hash, DirectionWithdrawal)
}

// DepositERC1155 bridges amount units of a multi-token id to the L2 account.
// The token must already be approved for the L1 ERC1155 bridge.
func (b *Bridge) DepositERC1155(ctx context.Context, l1Token, l2Token common.Address, tokenID, amount *big.Int) (common.Hash, error) {
	hash, err := b.l1Transfer.BridgeERC1155(ctx, l1Token, l2Token, b.L2Address(), tokenID, amount)
	if err != nil {
		return common.Hash{}, err
	}
	b.metrics.RecordSubmitted(DirectionDeposit, AssetERC1155)
	b.log.Info("ERC1155 deposit submitted", "tx", hash, "token", l1Token, "id", tokenID, "amount", amount)
	return hash, b.awaitRelay(ctx, b.l1, b.depositStatus, hash, DirectionDeposit)
}

// WithdrawERC1155 bridges amount units of a multi-token id back to the L1
// account.
func (b *Bridge) WithdrawERC1155(ctx context.Context, l1Token, l2Token common.Address, tokenID, amount *big.Int) (common.Hash, error) {
	hash, err := b.l2Transfer.BridgeERC1155(ctx, l2Token, l1Token, b.L1Address(), tokenID, amount)
	if err != nil {
		return common.Hash{}, err
	}
	b.metrics.RecordSubmitted(DirectionWithdrawal, AssetERC1155)
	b.log.Info("ERC1155 withdrawal submitted", "tx", hash, "token", l2Token, "id", tokenID, "amount", amount)
	return hash, b.awaitRelay(ctx, b.l2, b.withdrawalStatus, hash, DirectionWithdrawal)
}

// checkBalance fetches the account's current native balance and compares the
// full-precision values.
func (b *Bridge) checkBalance(ctx context.Context, client EthClient, account common.Address, amount *big.Int) error {
	balance, err := client.BalanceAt(ctx, account, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch balance of %s: %w", account, err)
	}
	if balance.Cmp(amount) < 0 {
		return &InsufficientFundsError{Address: account, Balance: balance, Amount: amount}
	}
	return nil
}

// approve grants the spender an allowance of amount on the token and waits
// for the approval to be mined.
func (b *Bridge) approve(ctx context.Context, tr *messenger.Transfer, client EthClient, token, spender common.Address, amount *big.Int) error {
	allowance, err := tokens.ERC20Allowance(ctx, client, token, tr.From(), spender)
	if err != nil {
		return fmt.Errorf("failed to read allowance: %w", err)
	}
	if allowance.Cmp(amount) >= 0 {
		return nil
	}
	data, err := tokens.ApproveCalldata(spender, amount)
	if err != nil {
		return err
	}
	hash, err := tr.SendCall(ctx, token, data, nil)
	if err != nil {
		return fmt.Errorf("failed to approve bridge: %w", err)
	}
	if _, err := wait.ForReceiptOK(ctx, client, hash); err != nil {
		return fmt.Errorf("approval not mined (tx: %s): %w", hash, err)
	}
	return nil
}

// awaitRelay waits for the source transaction to be mined and then polls the
// destination messenger until the message is relayed. A configured
// RelayTimeout bounds the whole wait and maps to ErrRelayTimeout; everything
// else, including a reverted source transaction, keeps its own error.
func (b *Bridge) awaitRelay(ctx context.Context, source wait.ReceiptClient, status StatusReader, txHash common.Hash, direction string) error {
	done := b.metrics.RecordRelay(direction)
	err := b.waitRelayed(ctx, source, status, txHash)
	done(err)
	return err
}

func (b *Bridge) waitRelayed(parent context.Context, source wait.ReceiptClient, status StatusReader, txHash common.Hash) error {
	ctx := parent
	if b.cfg.RelayTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, b.cfg.RelayTimeout)
		defer cancel()
	}
	if _, err := wait.ForReceiptOK(ctx, source, txHash); err != nil {
		return b.relayErr(parent, ctx, fmt.Errorf("source transaction failed (tx: %s): %w", txHash, err))
	}

	ticker := time.NewTicker(b.cfg.relayPollInterval())
	defer ticker.Stop()
	for {
		st, err := status.MessageStatus(ctx, txHash)
		if err != nil {
			return b.relayErr(parent, ctx, err)
		}
		switch st {
		case messenger.StatusRelayed:
			b.log.Info("Message relayed", "tx", txHash)
			return nil
		case messenger.StatusFailed:
			return fmt.Errorf("relay of message failed on destination (tx: %s)", txHash)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return b.relayErr(parent, ctx, ctx.Err())
		}
	}
}

// relayErr substitutes ErrRelayTimeout only when the configured relay
// deadline is what ended the wait. A deadline or cancellation on the
// caller's own context keeps its original error.
func (b *Bridge) relayErr(parent, ctx context.Context, err error) error {
	if b.cfg.RelayTimeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) && parent.Err() == nil {
		return ErrRelayTimeout
	}
	return err
}
