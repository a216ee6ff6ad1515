// Package flags declares the CLI surface of the bridger.
package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const envPrefix = "OP_BRIDGER"

func prefixEnvVars(name string) []string {
	return []string{envPrefix + "_" + name}
}

const (
	L1EthRpcFlagName  = "l1-eth-rpc"
	L2EthRpcFlagName  = "l2-eth-rpc"
	L1ChainIDFlagName = "l1-chain-id"
	L2ChainIDFlagName = "l2-chain-id"

	PrivateKeyFlagName   = "private-key"
	L2PrivateKeyFlagName = "l2-private-key"

	AddressManagerFlagName         = "address-manager"
	L1CrossDomainMessengerFlagName = "l1-cross-domain-messenger"
	L1StandardBridgeFlagName       = "l1-standard-bridge"
	OptimismPortalFlagName         = "optimism-portal"
	L2OutputOracleFlagName         = "l2-output-oracle"
	L1ERC721BridgeFlagName         = "l1-erc721-bridge"
	L1ERC1155BridgeFlagName        = "l1-erc1155-bridge"
	L2ERC1155BridgeFlagName        = "l2-erc1155-bridge"

	RelayTimeoutFlagName      = "relay-timeout"
	RelayPollIntervalFlagName = "relay-poll-interval"

	LogLevelFlagName = "log.level"

	MetricsEnabledFlagName = "metrics.enabled"
	MetricsAddrFlagName    = "metrics.addr"
	MetricsPortFlagName    = "metrics.port"
)

var (
	L1EthRpcFlag = &cli.StringFlag{
		Name:    L1EthRpcFlagName,
		Usage:   "HTTP provider URL for the L1 node",
		Value:   "http://127.0.0.1:8545",
		EnvVars: prefixEnvVars("L1_ETH_RPC"),
	}
	L2EthRpcFlag = &cli.StringFlag{
		Name:    L2EthRpcFlagName,
		Usage:   "HTTP provider URL for the L2 node",
		Value:   "http://127.0.0.1:9545",
		EnvVars: prefixEnvVars("L2_ETH_RPC"),
	}
	L1ChainIDFlag = &cli.Uint64Flag{
		Name:    L1ChainIDFlagName,
		Usage:   "Chain ID of the L1 network",
		EnvVars: prefixEnvVars("L1_CHAIN_ID"),
	}
	L2ChainIDFlag = &cli.Uint64Flag{
		Name:    L2ChainIDFlagName,
		Usage:   "Chain ID of the L2 network",
		EnvVars: prefixEnvVars("L2_CHAIN_ID"),
	}
	PrivateKeyFlag = &cli.StringFlag{
		Name:    PrivateKeyFlagName,
		Usage:   "Hex-encoded private key of the bridging account",
		EnvVars: prefixEnvVars("PRIVATE_KEY"),
	}
	L2PrivateKeyFlag = &cli.StringFlag{
		Name:    L2PrivateKeyFlagName,
		Usage:   "Hex-encoded private key for L2, defaults to --private-key",
		EnvVars: prefixEnvVars("L2_PRIVATE_KEY"),
	}
	AddressManagerFlag = &cli.StringFlag{
		Name:    AddressManagerFlagName,
		Usage:   "Address of the Lib_AddressManager, used to resolve the legacy contract addresses when the proxies are not given explicitly",
		EnvVars: prefixEnvVars("ADDRESS_MANAGER"),
	}
	L1CrossDomainMessengerFlag = &cli.StringFlag{
		Name:    L1CrossDomainMessengerFlagName,
		Usage:   "Address of the L1CrossDomainMessenger proxy, resolved through --address-manager when omitted",
		EnvVars: prefixEnvVars("L1_CROSS_DOMAIN_MESSENGER"),
	}
	L1StandardBridgeFlag = &cli.StringFlag{
		Name:    L1StandardBridgeFlagName,
		Usage:   "Address of the L1StandardBridge proxy, resolved through --address-manager when omitted",
		EnvVars: prefixEnvVars("L1_STANDARD_BRIDGE"),
	}
	OptimismPortalFlag = &cli.StringFlag{
		Name:    OptimismPortalFlagName,
		Usage:   "Address of the OptimismPortal proxy",
		EnvVars: prefixEnvVars("OPTIMISM_PORTAL"),
	}
	L2OutputOracleFlag = &cli.StringFlag{
		Name:    L2OutputOracleFlagName,
		Usage:   "Address of the L2OutputOracle proxy, gates withdrawal relay readiness on published outputs when set",
		EnvVars: prefixEnvVars("L2_OUTPUT_ORACLE"),
	}
	L1ERC721BridgeFlag = &cli.StringFlag{
		Name:    L1ERC721BridgeFlagName,
		Usage:   "Address of the L1ERC721Bridge proxy",
		EnvVars: prefixEnvVars("L1_ERC721_BRIDGE"),
	}
	L1ERC1155BridgeFlag = &cli.StringFlag{
		Name:    L1ERC1155BridgeFlagName,
		Usage:   "Address of the L1 ERC1155 bridge",
		EnvVars: prefixEnvVars("L1_ERC1155_BRIDGE"),
	}
	L2ERC1155BridgeFlag = &cli.StringFlag{
		Name:    L2ERC1155BridgeFlagName,
		Usage:   "Address of the L2 ERC1155 bridge",
		EnvVars: prefixEnvVars("L2_ERC1155_BRIDGE"),
	}
	RelayTimeoutFlag = &cli.DurationFlag{
		Name:    RelayTimeoutFlagName,
		Usage:   "Maximum time to wait for a message relay, 0 waits forever",
		EnvVars: prefixEnvVars("RELAY_TIMEOUT"),
	}
	RelayPollIntervalFlag = &cli.DurationFlag{
		Name:    RelayPollIntervalFlagName,
		Usage:   "Interval between relay status checks",
		EnvVars: prefixEnvVars("RELAY_POLL_INTERVAL"),
	}
	LogLevelFlag = &cli.StringFlag{
		Name:    LogLevelFlagName,
		Usage:   "The lowest log level that will be output",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
	}
	MetricsEnabledFlag = &cli.BoolFlag{
		Name:    MetricsEnabledFlagName,
		Usage:   "Enable the metrics server",
		EnvVars: prefixEnvVars("METRICS_ENABLED"),
	}
	MetricsAddrFlag = &cli.StringFlag{
		Name:    MetricsAddrFlagName,
		Usage:   "Metrics listening address",
		Value:   "0.0.0.0",
		EnvVars: prefixEnvVars("METRICS_ADDR"),
	}
	MetricsPortFlag = &cli.IntFlag{
		Name:    MetricsPortFlagName,
		Usage:   "Metrics listening port",
		Value:   7300,
		EnvVars: prefixEnvVars("METRICS_PORT"),
	}
)

var requiredFlags = []cli.Flag{
	L1ChainIDFlag,
	L2ChainIDFlag,
	PrivateKeyFlag,
}

// The messenger and standard bridge proxies are not in requiredFlags even
// though transfers cannot run without them: either the explicit flags or
// --address-manager may supply them, which config validation enforces.
var optionalFlags = []cli.Flag{
	L1EthRpcFlag,
	L2EthRpcFlag,
	L2PrivateKeyFlag,
	AddressManagerFlag,
	L1CrossDomainMessengerFlag,
	L1StandardBridgeFlag,
	OptimismPortalFlag,
	L2OutputOracleFlag,
	L1ERC721BridgeFlag,
	L1ERC1155BridgeFlag,
	L2ERC1155BridgeFlag,
	RelayTimeoutFlag,
	RelayPollIntervalFlag,
	LogLevelFlag,
	MetricsEnabledFlag,
	MetricsAddrFlag,
	MetricsPortFlag,
}

// Flags is the full bridging flag set shared by the transfer subcommands.
var Flags = append(append([]cli.Flag{}, requiredFlags...), optionalFlags...)

// CheckRequired errors if any required flag is missing from the context.
func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
