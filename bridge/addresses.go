package bridge

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
)

var getAddressFn = w3.MustNewFunc("getAddress(string)", "address")

// Registered names of the proxies in the Lib_AddressManager.
const (
	l1MessengerName      = "Proxy__OVM_L1CrossDomainMessenger"
	l1StandardBridgeName = "Proxy__OVM_L1StandardBridge"
)

// resolveAddresses fills the messenger and standard bridge addresses from the
// address manager when they are not configured explicitly. Explicit addresses
// always win; without an address manager the set is returned unchanged.
func resolveAddresses(ctx context.Context, client EthClient, set AddressSet) (AddressSet, error) {
	if set.AddressManager == (common.Address{}) {
		return set, nil
	}
	resolve := func(dst *common.Address, name string) error {
		if *dst != (common.Address{}) {
			return nil
		}
		addr, err := getAddress(ctx, client, set.AddressManager, name)
		if err != nil {
			return err
		}
		if addr == (common.Address{}) {
			return fmt.Errorf("address manager %s has no address registered for %s", set.AddressManager, name)
		}
		*dst = addr
		return nil
	}
	if err := resolve(&set.L1CrossDomainMessenger, l1MessengerName); err != nil {
		return set, err
	}
	if err := resolve(&set.L1StandardBridge, l1StandardBridgeName); err != nil {
		return set, err
	}
	return set, nil
}

func getAddress(ctx context.Context, client EthClient, manager common.Address, name string) (common.Address, error) {
	input, err := getAddressFn.EncodeArgs(name)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to encode getAddress: %w", err)
	}
	output, err := client.CallContract(ctx, ethereum.CallMsg{To: &manager, Data: input}, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("getAddress(%q) call to %s failed: %w", name, manager, err)
	}
	var addr common.Address
	if err := getAddressFn.DecodeReturns(output, &addr); err != nil {
		return common.Address{}, fmt.Errorf("failed to decode getAddress returns: %w", err)
	}
	return addr, nil
}
