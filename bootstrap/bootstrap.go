// Package bootstrap generates the configuration artifacts a fresh rollup
// node needs: a rollup config anchored at the current L1 finalized block,
// and the init manifest for the execution-layer genesis.
package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

// Defaults for the sequencing parameters when the config leaves them zero.
const (
	DefaultBlockTime         = 2
	DefaultMaxSequencerDrift = 600
	DefaultSeqWindowSize     = 3600
	DefaultChannelTimeout    = 300
)

// L1Client is the read surface needed to anchor a rollup config.
type L1Client interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// BlockID identifies a block by hash and number.
type BlockID struct {
	Hash   common.Hash `json:"hash"`
	Number uint64      `json:"number"`
}

// Genesis is the anchor pair of the rollup: the L1 block the chain starts
// deriving from and the L2 genesis block.
type Genesis struct {
	L1     BlockID `json:"l1"`
	L2     BlockID `json:"l2"`
	L2Time uint64  `json:"l2_time"`
}

// RollupConfig is the rollup.json consumed by the rollup node.
type RollupConfig struct {
	Genesis           Genesis `json:"genesis"`
	BlockTime         uint64  `json:"block_time"`
	MaxSequencerDrift uint64  `json:"max_sequencer_drift"`
	SeqWindowSize     uint64  `json:"seq_window_size"`
	ChannelTimeout    uint64  `json:"channel_timeout"`

	L1ChainID *big.Int `json:"l1_chain_id"`
	L2ChainID *big.Int `json:"l2_chain_id"`

	BatchInboxAddress      common.Address `json:"batch_inbox_address"`
	DepositContractAddress common.Address `json:"deposit_contract_address"`
	L1SystemConfigAddress  common.Address `json:"l1_system_config_address"`
}

// Config carries everything the generator cannot read from the chain.
type Config struct {
	L1ChainID uint64
	L2ChainID uint64

	// L2GenesisHash is the hash of the execution-layer genesis block,
	// known once the genesis file is built.
	L2GenesisHash common.Hash

	BatchInboxAddress      common.Address
	DepositContractAddress common.Address
	L1SystemConfigAddress  common.Address

	// Sequencing parameters; zero values take the defaults above.
	BlockTime         uint64
	MaxSequencerDrift uint64
	SeqWindowSize     uint64
	ChannelTimeout    uint64
}

func (c Config) Check() error {
	if c.L1ChainID == 0 {
		return errors.New("missing L1 chain ID")
	}
	if c.L2ChainID == 0 {
		return errors.New("missing L2 chain ID")
	}
	if c.L2GenesisHash == (common.Hash{}) {
		return errors.New("missing L2 genesis hash")
	}
	if c.DepositContractAddress == (common.Address{}) {
		return errors.New("missing deposit contract address")
	}
	return nil
}

func orDefault(v, def uint64) uint64 {
	if v == 0 {
		return def
	}
	return v
}

// BuildRollupConfig reads the current L1 finalized block and assembles the
// rollup config around it. Anchoring at the finalized block keeps the config
// valid across L1 reorgs.
func BuildRollupConfig(ctx context.Context, client L1Client, cfg Config) (*RollupConfig, error) {
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("invalid bootstrap config: %w", err)
	}
	header, err := client.HeaderByNumber(ctx, big.NewInt(rpc.FinalizedBlockNumber.Int64()))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch L1 finalized block: %w", err)
	}
	return &RollupConfig{
		Genesis: Genesis{
			L1: BlockID{
				Hash:   header.Hash(),
				Number: header.Number.Uint64(),
			},
			L2: BlockID{
				Hash:   cfg.L2GenesisHash,
				Number: 0,
			},
			L2Time: header.Time,
		},
		BlockTime:         orDefault(cfg.BlockTime, DefaultBlockTime),
		MaxSequencerDrift: orDefault(cfg.MaxSequencerDrift, DefaultMaxSequencerDrift),
		SeqWindowSize:     orDefault(cfg.SeqWindowSize, DefaultSeqWindowSize),
		ChannelTimeout:    orDefault(cfg.ChannelTimeout, DefaultChannelTimeout),

		L1ChainID: new(big.Int).SetUint64(cfg.L1ChainID),
		L2ChainID: new(big.Int).SetUint64(cfg.L2ChainID),

		BatchInboxAddress:      cfg.BatchInboxAddress,
		DepositContractAddress: cfg.DepositContractAddress,
		L1SystemConfigAddress:  cfg.L1SystemConfigAddress,
	}, nil
}

// WriteRollupConfig writes the config as indented JSON.
func WriteRollupConfig(path string, cfg *RollupConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rollup config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write rollup config: %w", err)
	}
	return nil
}
