package flags

import "github.com/urfave/cli/v2"

// Flags of the bootstrap subcommands.
const (
	L2GenesisHashFlagName   = "l2-genesis-hash"
	BatchInboxFlagName      = "batch-inbox-address"
	SystemConfigFlagName    = "l1-system-config-address"
	BlockTimeFlagName       = "block-time"
	RollupConfigOutFlagName = "out"

	GenesisPathFlagName     = "genesis-path"
	DataDirFlagName         = "datadir"
	InitManifestOutFlagName = "manifest-out"
)

var (
	L2GenesisHashFlag = &cli.StringFlag{
		Name:    L2GenesisHashFlagName,
		Usage:   "Hash of the L2 genesis block",
		EnvVars: prefixEnvVars("L2_GENESIS_HASH"),
	}
	BatchInboxFlag = &cli.StringFlag{
		Name:    BatchInboxFlagName,
		Usage:   "Address of the batch inbox",
		EnvVars: prefixEnvVars("BATCH_INBOX_ADDRESS"),
	}
	SystemConfigFlag = &cli.StringFlag{
		Name:    SystemConfigFlagName,
		Usage:   "Address of the L1 SystemConfig proxy",
		EnvVars: prefixEnvVars("L1_SYSTEM_CONFIG_ADDRESS"),
	}
	BlockTimeFlag = &cli.Uint64Flag{
		Name:    BlockTimeFlagName,
		Usage:   "L2 block time in seconds",
		EnvVars: prefixEnvVars("BLOCK_TIME"),
	}
	RollupConfigOutFlag = &cli.StringFlag{
		Name:    RollupConfigOutFlagName,
		Usage:   "Path to write rollup.json to",
		Value:   "rollup.json",
		EnvVars: prefixEnvVars("ROLLUP_CONFIG_OUT"),
	}
	GenesisPathFlag = &cli.StringFlag{
		Name:    GenesisPathFlagName,
		Usage:   "Path of the L2 genesis file to import",
		EnvVars: prefixEnvVars("GENESIS_PATH"),
	}
	DataDirFlag = &cli.StringFlag{
		Name:    DataDirFlagName,
		Usage:   "Data directory of the execution-layer node",
		EnvVars: prefixEnvVars("DATADIR"),
	}
	InitManifestOutFlag = &cli.StringFlag{
		Name:    InitManifestOutFlagName,
		Usage:   "Path to write the genesis init manifest to",
		Value:   "genesis-init.json",
		EnvVars: prefixEnvVars("INIT_MANIFEST_OUT"),
	}
)

// RollupConfigFlags configure the rollup-config subcommand.
var RollupConfigFlags = []cli.Flag{
	L1EthRpcFlag,
	L1ChainIDFlag,
	L2ChainIDFlag,
	L2GenesisHashFlag,
	BatchInboxFlag,
	OptimismPortalFlag,
	SystemConfigFlag,
	BlockTimeFlag,
	RollupConfigOutFlag,
	LogLevelFlag,
}

// GenesisInitFlags configure the genesis-init subcommand.
var GenesisInitFlags = []cli.Flag{
	L2ChainIDFlag,
	GenesisPathFlag,
	DataDirFlag,
	InitManifestOutFlag,
	LogLevelFlag,
}
