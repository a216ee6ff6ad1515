// Package tokens issues single-function reads against token contracts. Each
// query encodes exactly the function it needs instead of binding a full ABI.
package tokens

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
)

var (
	balanceOfFn   = w3.MustNewFunc("balanceOf(address)", "uint256")
	ownerOfFn     = w3.MustNewFunc("ownerOf(uint256)", "address")
	balanceOfIDFn = w3.MustNewFunc("balanceOf(address,uint256)", "uint256")
	allowanceFn   = w3.MustNewFunc("allowance(address,address)", "uint256")
	approveFn     = w3.MustNewFunc("approve(address,uint256)", "bool")
)

// CallClient is the subset of an ethclient needed to perform read calls.
type CallClient interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ERC20BalanceOf returns the ERC-20 balance of the given account.
func ERC20BalanceOf(ctx context.Context, client CallClient, token, account common.Address) (*big.Int, error) {
	input, err := balanceOfFn.EncodeArgs(account)
	if err != nil {
		return nil, fmt.Errorf("failed to encode balanceOf: %w", err)
	}
	output, err := client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call to %s failed: %w", token, err)
	}
	var balance big.Int
	if err := balanceOfFn.DecodeReturns(output, &balance); err != nil {
		return nil, fmt.Errorf("failed to decode balanceOf returns: %w", err)
	}
	return &balance, nil
}

// ERC721OwnerOf returns the owner of the given ERC-721 token id, unmodified.
func ERC721OwnerOf(ctx context.Context, client CallClient, token common.Address, tokenID *big.Int) (common.Address, error) {
	input, err := ownerOfFn.EncodeArgs(tokenID)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to encode ownerOf: %w", err)
	}
	output, err := client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: input}, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("ownerOf call to %s failed: %w", token, err)
	}
	var owner common.Address
	if err := ownerOfFn.DecodeReturns(output, &owner); err != nil {
		return common.Address{}, fmt.Errorf("failed to decode ownerOf returns: %w", err)
	}
	return owner, nil
}

// ERC1155BalanceOf returns the balance of the given account for a single
// ERC-1155 token id.
func ERC1155BalanceOf(ctx context.Context, client CallClient, token, account common.Address, id *big.Int) (*big.Int, error) {
	input, err := balanceOfIDFn.EncodeArgs(account, id)
	if err != nil {
		return nil, fmt.Errorf("failed to encode balanceOf(address,uint256): %w", err)
	}
	output, err := client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call to %s failed: %w", token, err)
	}
	var balance big.Int
	if err := balanceOfIDFn.DecodeReturns(output, &balance); err != nil {
		return nil, fmt.Errorf("failed to decode balanceOf returns: %w", err)
	}
	return &balance, nil
}

// ERC20Allowance returns the amount the spender may move on behalf of owner.
func ERC20Allowance(ctx context.Context, client CallClient, token, owner, spender common.Address) (*big.Int, error) {
	input, err := allowanceFn.EncodeArgs(owner, spender)
	if err != nil {
		return nil, fmt.Errorf("failed to encode allowance: %w", err)
	}
	output, err := client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("allowance call to %s failed: %w", token, err)
	}
	var allowance big.Int
	if err := allowanceFn.DecodeReturns(output, &allowance); err != nil {
		return nil, fmt.Errorf("failed to decode allowance returns: %w", err)
	}
	return &allowance, nil
}

// ApproveCalldata encodes the approve call used before an ERC-20 deposit.
func ApproveCalldata(spender common.Address, amount *big.Int) ([]byte, error) {
	input, err := approveFn.EncodeArgs(spender, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode approve: %w", err)
	}
	return input, nil
}
