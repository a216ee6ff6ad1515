package bridge

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/op-bridger/flags"
)

// NewConfigFromCLI builds a Config from parsed CLI flags.
func NewConfigFromCLI(ctx *cli.Context) (Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return Config{}, err
	}
	addr := func(name string) (common.Address, error) {
		raw := ctx.String(name)
		if raw == "" {
			return common.Address{}, nil
		}
		if !common.IsHexAddress(raw) {
			return common.Address{}, fmt.Errorf("flag %s: invalid address %q", name, raw)
		}
		return common.HexToAddress(raw), nil
	}
	addressManager, err := addr(flags.AddressManagerFlagName)
	if err != nil {
		return Config{}, err
	}
	messenger, err := addr(flags.L1CrossDomainMessengerFlagName)
	if err != nil {
		return Config{}, err
	}
	standardBridge, err := addr(flags.L1StandardBridgeFlagName)
	if err != nil {
		return Config{}, err
	}
	portal, err := addr(flags.OptimismPortalFlagName)
	if err != nil {
		return Config{}, err
	}
	outputOracle, err := addr(flags.L2OutputOracleFlagName)
	if err != nil {
		return Config{}, err
	}
	erc721Bridge, err := addr(flags.L1ERC721BridgeFlagName)
	if err != nil {
		return Config{}, err
	}
	l1ERC1155Bridge, err := addr(flags.L1ERC1155BridgeFlagName)
	if err != nil {
		return Config{}, err
	}
	l2ERC1155Bridge, err := addr(flags.L2ERC1155BridgeFlagName)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		L1RPC:     ctx.String(flags.L1EthRpcFlagName),
		L2RPC:     ctx.String(flags.L2EthRpcFlagName),
		L1ChainID: ctx.Uint64(flags.L1ChainIDFlagName),
		L2ChainID: ctx.Uint64(flags.L2ChainIDFlagName),
		Addresses: Addresses{
			Status: AddressSet{
				AddressManager:         addressManager,
				L1CrossDomainMessenger: messenger,
				L1StandardBridge:       standardBridge,
				OptimismPortal:         portal,
				L2OutputOracle:         outputOracle,
				L1ERC721Bridge:         erc721Bridge,
				L1ERC1155Bridge:        l1ERC1155Bridge,
				L2ERC1155Bridge:        l2ERC1155Bridge,
			},
		},
		RelayPollInterval: ctx.Duration(flags.RelayPollIntervalFlagName),
		RelayTimeout:      ctx.Duration(flags.RelayTimeoutFlagName),
	}
	return cfg, cfg.Check()
}

// KeysFromCLI returns the L1 and L2 signing keys, the L2 key defaulting to
// the L1 one.
func KeysFromCLI(ctx *cli.Context) (l1Key, l2Key string) {
	l1Key = ctx.String(flags.PrivateKeyFlagName)
	l2Key = ctx.String(flags.L2PrivateKeyFlagName)
	if l2Key == "" {
		l2Key = l1Key
	}
	return l1Key, l2Key
}
