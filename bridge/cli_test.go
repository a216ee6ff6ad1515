package bridge

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/op-bridger/flags"
)

func configFromArgs(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	var cfg Config
	var cfgErr error
	app := &cli.App{
		Flags: flags.TransferFlags,
		Action: func(ctx *cli.Context) error {
			cfg, cfgErr = NewConfigFromCLI(ctx)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"bridger"}, args...)))
	return cfg, cfgErr
}

func TestNewConfigFromCLI(t *testing.T) {
	manager := common.Address{0xa0}
	portal := common.Address{0xb0}
	oracle := common.Address{0xc0}

	cfg, err := configFromArgs(t,
		"--l1-chain-id", "900",
		"--l2-chain-id", "901",
		"--private-key", "aa",
		"--address-manager", manager.Hex(),
		"--optimism-portal", portal.Hex(),
		"--l2-output-oracle", oracle.Hex(),
	)
	require.NoError(t, err)
	require.Equal(t, manager, cfg.Addresses.Status.AddressManager)
	require.Equal(t, portal, cfg.Addresses.Status.OptimismPortal)
	require.Equal(t, oracle, cfg.Addresses.Status.L2OutputOracle)
}

func TestNewConfigFromCLIExplicitProxies(t *testing.T) {
	messenger := common.Address{0x07}
	bridge := common.Address{0x10}

	cfg, err := configFromArgs(t,
		"--l1-chain-id", "900",
		"--l2-chain-id", "901",
		"--private-key", "aa",
		"--l1-cross-domain-messenger", messenger.Hex(),
		"--l1-standard-bridge", bridge.Hex(),
	)
	require.NoError(t, err)
	require.Equal(t, messenger, cfg.Addresses.Status.L1CrossDomainMessenger)
	require.Equal(t, bridge, cfg.Addresses.Status.L1StandardBridge)
}

func TestNewConfigFromCLINoContractSource(t *testing.T) {
	_, err := configFromArgs(t,
		"--l1-chain-id", "900",
		"--l2-chain-id", "901",
		"--private-key", "aa",
	)
	require.ErrorContains(t, err, "address manager")
}

func TestNewConfigFromCLIBadAddress(t *testing.T) {
	_, err := configFromArgs(t,
		"--l1-chain-id", "900",
		"--l2-chain-id", "901",
		"--private-key", "aa",
		"--address-manager", "not-an-address",
	)
	require.ErrorContains(t, err, "invalid address")
}
