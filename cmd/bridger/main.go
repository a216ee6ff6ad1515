package main

import (
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/mantlenetworkio/op-bridger/bootstrap"
	"github.com/mantlenetworkio/op-bridger/bridge"
	"github.com/mantlenetworkio/op-bridger/dial"
	"github.com/mantlenetworkio/op-bridger/flags"
	"github.com/mantlenetworkio/op-bridger/metrics"
)

var Version = "v0.1.0"

func main() {
	app := cli.NewApp()
	app.Name = "bridger"
	app.Version = Version
	app.Usage = "Moves assets between an L1 and its rollup and tracks message relays"
	app.Commands = []*cli.Command{
		{
			Name:   "deposit",
			Usage:  "Move an asset from L1 to L2",
			Flags:  flags.TransferFlags,
			Action: transferAction(bridge.DirectionDeposit),
		},
		{
			Name:   "withdraw",
			Usage:  "Move an asset from L2 to L1",
			Flags:  flags.TransferFlags,
			Action: transferAction(bridge.DirectionWithdrawal),
		},
		{
			Name:   "balance",
			Usage:  "Print the bridging account balances on both chains",
			Flags:  flags.BalanceFlags,
			Action: balanceAction,
		},
		{
			Name:   "status",
			Usage:  "Print the relay status of a transfer",
			Flags:  flags.StatusFlags,
			Action: statusAction,
		},
		{
			Name:   "rollup-config",
			Usage:  "Generate rollup.json anchored at the L1 finalized block",
			Flags:  flags.RollupConfigFlags,
			Action: rollupConfigAction,
		},
		{
			Name:   "genesis-init",
			Usage:  "Write the execution-layer genesis init manifest",
			Flags:  flags.GenesisInitFlags,
			Action: genesisInitAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Crit("Application failed", "err", err)
	}
}

func setupLogger(ctx *cli.Context) (log.Logger, error) {
	level, err := logLevel(ctx.String(flags.LogLevelFlagName))
	if err != nil {
		return nil, err
	}
	color := term.IsTerminal(int(os.Stderr.Fd()))
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, level, color)
	logger := log.NewLogger(handler)
	log.SetDefault(logger)
	return logger, nil
}

func logLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	case "crit":
		return log.LevelCrit, nil
	default:
		return log.LevelDebug, fmt.Errorf("unknown log level: %q", name)
	}
}

func newBridge(ctx *cli.Context, logger log.Logger) (*bridge.Bridge, error) {
	cfg, err := bridge.NewConfigFromCLI(ctx)
	if err != nil {
		return nil, err
	}
	var m bridge.Metricer
	if ctx.Bool(flags.MetricsEnabledFlagName) {
		promMetrics := metrics.NewMetrics()
		promMetrics.RecordInfo(Version)
		promMetrics.RecordUp()
		go func() {
			addr := ctx.String(flags.MetricsAddrFlagName)
			port := ctx.Int(flags.MetricsPortFlagName)
			if err := promMetrics.ListenAndServe(ctx.Context, logger, addr, port); err != nil {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
		m = promMetrics
	}
	l1Key, l2Key := bridge.KeysFromCLI(ctx)
	return bridge.New(ctx.Context, logger, l1Key, l2Key, cfg, m)
}

func transferAction(direction string) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		logger, err := setupLogger(ctx)
		if err != nil {
			return err
		}
		b, err := newBridge(ctx, logger)
		if err != nil {
			return err
		}
		hash, err := runTransfer(ctx, b, direction)
		if err != nil {
			return err
		}
		fmt.Println(hash.Hex())
		return nil
	}
}

func runTransfer(ctx *cli.Context, b *bridge.Bridge, direction string) (common.Hash, error) {
	asset := ctx.String(flags.AssetFlagName)
	deposit := direction == bridge.DirectionDeposit

	switch asset {
	case bridge.AssetETH:
		amount, err := parseAmount(ctx)
		if err != nil {
			return common.Hash{}, err
		}
		if deposit {
			return b.DepositETH(ctx.Context, amount)
		}
		return b.WithdrawETH(ctx.Context, amount)
	case bridge.AssetERC20:
		l1Token, l2Token, err := parseTokenPair(ctx)
		if err != nil {
			return common.Hash{}, err
		}
		amount, err := parseAmount(ctx)
		if err != nil {
			return common.Hash{}, err
		}
		if deposit {
			return b.DepositERC20(ctx.Context, l1Token, l2Token, amount)
		}
		return b.WithdrawERC20(ctx.Context, l1Token, l2Token, amount)
	case bridge.AssetERC721:
		l1Token, l2Token, err := parseTokenPair(ctx)
		if err != nil {
			return common.Hash{}, err
		}
		tokenID, err := parseBig(ctx, flags.TokenIDFlagName)
		if err != nil {
			return common.Hash{}, err
		}
		if deposit {
			return b.DepositERC721(ctx.Context, l1Token, l2Token, tokenID)
		}
		return b.WithdrawERC721(ctx.Context, l1Token, l2Token, tokenID)
	case bridge.AssetERC1155:
		l1Token, l2Token, err := parseTokenPair(ctx)
		if err != nil {
			return common.Hash{}, err
		}
		tokenID, err := parseBig(ctx, flags.TokenIDFlagName)
		if err != nil {
			return common.Hash{}, err
		}
		amount, err := parseAmount(ctx)
		if err != nil {
			return common.Hash{}, err
		}
		if deposit {
			return b.DepositERC1155(ctx.Context, l1Token, l2Token, tokenID, amount)
		}
		return b.WithdrawERC1155(ctx.Context, l1Token, l2Token, tokenID, amount)
	default:
		return common.Hash{}, fmt.Errorf("unknown asset %q", asset)
	}
}

func balanceAction(ctx *cli.Context) error {
	logger, err := setupLogger(ctx)
	if err != nil {
		return err
	}
	b, err := newBridge(ctx, logger)
	if err != nil {
		return err
	}

	l1Balance, err := b.L1Balance(ctx.Context)
	if err != nil {
		return err
	}
	l2Balance, err := b.L2Balance(ctx.Context)
	if err != nil {
		return err
	}
	fmt.Printf("L1 %s: %s wei\n", b.L1Address(), l1Balance)
	fmt.Printf("L2 %s: %s wei\n", b.L2Address(), l2Balance)

	if raw := ctx.String(flags.L1TokenFlagName); raw != "" {
		token, err := parseAddr(raw, flags.L1TokenFlagName)
		if err != nil {
			return err
		}
		balance, err := b.ERC20BalanceL1(ctx.Context, token)
		if err != nil {
			return err
		}
		fmt.Printf("L1 token %s: %s\n", token, balance)
	}
	if raw := ctx.String(flags.L2TokenFlagName); raw != "" {
		token, err := parseAddr(raw, flags.L2TokenFlagName)
		if err != nil {
			return err
		}
		balance, err := b.ERC20BalanceL2(ctx.Context, token)
		if err != nil {
			return err
		}
		fmt.Printf("L2 token %s: %s\n", token, balance)
	}
	return nil
}

func statusAction(ctx *cli.Context) error {
	logger, err := setupLogger(ctx)
	if err != nil {
		return err
	}
	raw := ctx.String(flags.TxHashFlagName)
	if raw == "" {
		return fmt.Errorf("flag %s is required", flags.TxHashFlagName)
	}
	txHash := common.HexToHash(raw)

	b, err := newBridge(ctx, logger)
	if err != nil {
		return err
	}

	direction := ctx.String(flags.DirectionFlagName)
	var status fmt.Stringer
	switch direction {
	case bridge.DirectionDeposit:
		status, err = b.DepositStatus(ctx.Context, txHash)
	case bridge.DirectionWithdrawal:
		status, err = b.WithdrawalStatus(ctx.Context, txHash)
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}
	if err != nil {
		return err
	}
	fmt.Println(status)
	return nil
}

func rollupConfigAction(ctx *cli.Context) error {
	logger, err := setupLogger(ctx)
	if err != nil {
		return err
	}
	genesisHash := common.HexToHash(ctx.String(flags.L2GenesisHashFlagName))
	batchInbox, err := parseAddr(ctx.String(flags.BatchInboxFlagName), flags.BatchInboxFlagName)
	if err != nil {
		return err
	}
	depositContract, err := parseAddr(ctx.String(flags.OptimismPortalFlagName), flags.OptimismPortalFlagName)
	if err != nil {
		return err
	}
	systemConfig, err := parseAddr(ctx.String(flags.SystemConfigFlagName), flags.SystemConfigFlagName)
	if err != nil {
		return err
	}

	client, err := dial.DialEthClientWithTimeout(ctx.Context, dial.DefaultDialTimeout, logger, ctx.String(flags.L1EthRpcFlagName))
	if err != nil {
		return err
	}
	cfg, err := bootstrap.BuildRollupConfig(ctx.Context, client, bootstrap.Config{
		L1ChainID:              ctx.Uint64(flags.L1ChainIDFlagName),
		L2ChainID:              ctx.Uint64(flags.L2ChainIDFlagName),
		L2GenesisHash:          genesisHash,
		BatchInboxAddress:      batchInbox,
		DepositContractAddress: depositContract,
		L1SystemConfigAddress:  systemConfig,
		BlockTime:              ctx.Uint64(flags.BlockTimeFlagName),
	})
	if err != nil {
		return err
	}
	out := ctx.String(flags.RollupConfigOutFlagName)
	if err := bootstrap.WriteRollupConfig(out, cfg); err != nil {
		return err
	}
	logger.Info("Wrote rollup config", "path", out, "l1_block", cfg.Genesis.L1.Number)
	return nil
}

func genesisInitAction(ctx *cli.Context) error {
	logger, err := setupLogger(ctx)
	if err != nil {
		return err
	}
	out := ctx.String(flags.InitManifestOutFlagName)
	manifest := bootstrap.InitManifest{
		GenesisPath: ctx.String(flags.GenesisPathFlagName),
		DataDir:     ctx.String(flags.DataDirFlagName),
		ChainID:     ctx.Uint64(flags.L2ChainIDFlagName),
	}
	if err := bootstrap.WriteInitManifest(out, manifest); err != nil {
		return err
	}
	logger.Info("Wrote genesis init manifest", "path", out, "datadir", manifest.DataDir)
	return nil
}

func parseAmount(ctx *cli.Context) (*big.Int, error) {
	return parseBig(ctx, flags.AmountFlagName)
}

func parseBig(ctx *cli.Context, name string) (*big.Int, error) {
	raw := ctx.String(name)
	if raw == "" {
		return nil, fmt.Errorf("flag %s is required", name)
	}
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("flag %s: invalid value %q", name, raw)
	}
	return value, nil
}

func parseTokenPair(ctx *cli.Context) (l1Token, l2Token common.Address, err error) {
	l1Token, err = parseAddr(ctx.String(flags.L1TokenFlagName), flags.L1TokenFlagName)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	l2Token, err = parseAddr(ctx.String(flags.L2TokenFlagName), flags.L2TokenFlagName)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	return l1Token, l2Token, nil
}

func parseAddr(raw, name string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("flag %s: invalid address %q", name, raw)
	}
	return common.HexToAddress(raw), nil
}
