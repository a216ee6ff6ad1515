package bridge

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrRelayTimeout is raised when the relay wait expires before the
	// message reaches its terminal status. It is distinct from on-chain
	// reverts, which are propagated as-is.
	ErrRelayTimeout = errors.New("timed out waiting for message relay")

	// errWrongChainID is raised when a connection resolves to a chain ID
	// other than the configured one.
	errWrongChainID = errors.New("wrong chain id")
)

// InsufficientFundsError is returned when a native coin deposit exceeds the
// depositor's balance. The check happens before anything is submitted.
type InsufficientFundsError struct {
	Address common.Address
	Balance *big.Int
	Amount  *big.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: address %s has balance %s, need %s", e.Address, e.Balance, e.Amount)
}
