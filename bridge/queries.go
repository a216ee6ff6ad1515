package bridge

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/op-bridger/messenger"
	"github.com/mantlenetworkio/op-bridger/tokens"
)

// L1Balance returns the current native balance of the L1 account.
func (b *Bridge) L1Balance(ctx context.Context) (*big.Int, error) {
	return b.balance(ctx, b.l1, b.L1Address())
}

// L2Balance returns the current native balance of the L2 account.
func (b *Bridge) L2Balance(ctx context.Context) (*big.Int, error) {
	return b.balance(ctx, b.l2, b.L2Address())
}

func (b *Bridge) balance(ctx context.Context, client EthClient, account common.Address) (*big.Int, error) {
	balance, err := client.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance of %s: %w", account, err)
	}
	return balance, nil
}

// ERC20BalanceL1 returns the L1 account's balance of the given token.
func (b *Bridge) ERC20BalanceL1(ctx context.Context, token common.Address) (*big.Int, error) {
	return tokens.ERC20BalanceOf(ctx, b.l1, token, b.L1Address())
}

// ERC20BalanceL2 returns the L2 account's balance of the given token.
func (b *Bridge) ERC20BalanceL2(ctx context.Context, token common.Address) (*big.Int, error) {
	return tokens.ERC20BalanceOf(ctx, b.l2, token, b.L2Address())
}

// ERC721OwnerL1 returns the current owner of the token id on L1.
func (b *Bridge) ERC721OwnerL1(ctx context.Context, token common.Address, tokenID *big.Int) (common.Address, error) {
	return tokens.ERC721OwnerOf(ctx, b.l1, token, tokenID)
}

// ERC721OwnerL2 returns the current owner of the token id on L2.
func (b *Bridge) ERC721OwnerL2(ctx context.Context, token common.Address, tokenID *big.Int) (common.Address, error) {
	return tokens.ERC721OwnerOf(ctx, b.l2, token, tokenID)
}

// ERC1155BalanceL1 returns the L1 account's balance of the multi-token id.
func (b *Bridge) ERC1155BalanceL1(ctx context.Context, token common.Address, tokenID *big.Int) (*big.Int, error) {
	return tokens.ERC1155BalanceOf(ctx, b.l1, token, b.L1Address(), tokenID)
}

// ERC1155BalanceL2 returns the L2 account's balance of the multi-token id.
func (b *Bridge) ERC1155BalanceL2(ctx context.Context, token common.Address, tokenID *big.Int) (*big.Int, error) {
	return tokens.ERC1155BalanceOf(ctx, b.l2, token, b.L2Address(), tokenID)
}

// DepositStatus returns the relay status of a deposit by its L1 transaction
// hash.
func (b *Bridge) DepositStatus(ctx context.Context, txHash common.Hash) (messenger.MessageStatus, error) {
	return b.depositStatus.MessageStatus(ctx, txHash)
}

// WithdrawalStatus returns the relay status of a withdrawal by its L2
// transaction hash.
func (b *Bridge) WithdrawalStatus(ctx context.Context, txHash common.Hash) (messenger.MessageStatus, error) {
	return b.withdrawalStatus.MessageStatus(ctx, txHash)
}
