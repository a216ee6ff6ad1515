package bootstrap

import (
	"context"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

type stubL1 struct {
	header    *types.Header
	requested *big.Int
}

func (s *stubL1) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	s.requested = number
	return s.header, nil
}

func testConfig() Config {
	return Config{
		L1ChainID:              900,
		L2ChainID:              901,
		L2GenesisHash:          common.Hash{0x02},
		BatchInboxAddress:      common.Address{0xba},
		DepositContractAddress: common.Address{0xde},
		L1SystemConfigAddress:  common.Address{0x5c},
	}
}

func TestBuildRollupConfigAnchorsAtFinalized(t *testing.T) {
	header := &types.Header{
		Number: big.NewInt(1234),
		Time:   1_700_000_000,
	}
	client := &stubL1{header: header}

	cfg, err := BuildRollupConfig(context.Background(), client, testConfig())
	require.NoError(t, err)

	require.Equal(t, rpc.FinalizedBlockNumber.Int64(), client.requested.Int64(), "must read the finalized block")
	require.Equal(t, header.Hash(), cfg.Genesis.L1.Hash)
	require.EqualValues(t, 1234, cfg.Genesis.L1.Number)
	require.EqualValues(t, header.Time, cfg.Genesis.L2Time)
	require.Equal(t, common.Hash{0x02}, cfg.Genesis.L2.Hash)
	require.Zero(t, cfg.Genesis.L2.Number)

	require.EqualValues(t, DefaultBlockTime, cfg.BlockTime)
	require.EqualValues(t, DefaultSeqWindowSize, cfg.SeqWindowSize)
	require.Zero(t, cfg.L1ChainID.Cmp(big.NewInt(900)))
	require.Zero(t, cfg.L2ChainID.Cmp(big.NewInt(901)))
	require.Equal(t, common.Address{0xde}, cfg.DepositContractAddress)
}

func TestBuildRollupConfigOverridesDefaults(t *testing.T) {
	client := &stubL1{header: &types.Header{Number: big.NewInt(1), Time: 1}}
	in := testConfig()
	in.BlockTime = 12
	in.ChannelTimeout = 100

	cfg, err := BuildRollupConfig(context.Background(), client, in)
	require.NoError(t, err)
	require.EqualValues(t, 12, cfg.BlockTime)
	require.EqualValues(t, 100, cfg.ChannelTimeout)
	require.EqualValues(t, DefaultMaxSequencerDrift, cfg.MaxSequencerDrift)
}

func TestBuildRollupConfigValidates(t *testing.T) {
	client := &stubL1{header: &types.Header{Number: big.NewInt(1), Time: 1}}

	in := testConfig()
	in.L2GenesisHash = common.Hash{}
	_, err := BuildRollupConfig(context.Background(), client, in)
	require.Error(t, err)

	in = testConfig()
	in.DepositContractAddress = common.Address{}
	_, err = BuildRollupConfig(context.Background(), client, in)
	require.Error(t, err)
}

func TestWriteRollupConfig(t *testing.T) {
	client := &stubL1{header: &types.Header{Number: big.NewInt(77), Time: 42}}
	cfg, err := BuildRollupConfig(context.Background(), client, testConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rollup.json")
	require.NoError(t, WriteRollupConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded RollupConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.EqualValues(t, 77, decoded.Genesis.L1.Number)
	require.Equal(t, cfg.Genesis.L1.Hash, decoded.Genesis.L1.Hash)
}

func TestWriteInitManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.json")
	manifest := InitManifest{
		GenesisPath: "/data/genesis.json",
		DataDir:     "/data/geth",
		ChainID:     901,
	}
	require.NoError(t, WriteInitManifest(path, manifest))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded InitManifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, manifest, decoded)

	require.Error(t, WriteInitManifest(path, InitManifest{DataDir: "x", ChainID: 1}))
}
