package crossdomain_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/op-bridger/crossdomain"
)

func TestEncodeVersionedNonce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		nonce   *big.Int
		version *big.Int
	}{
		{name: "version 0", nonce: big.NewInt(0), version: big.NewInt(0)},
		{name: "version 1", nonce: big.NewInt(1), version: big.NewInt(1)},
		{name: "large nonce", nonce: new(big.Int).SetUint64(1 << 40), version: big.NewInt(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			versioned := crossdomain.EncodeVersionedNonce(tt.nonce, tt.version)
			nonce, version := crossdomain.DecodeVersionedNonce(versioned)
			require.Equal(t, 0, tt.nonce.Cmp(nonce))
			require.Equal(t, 0, tt.version.Cmp(version))
		})
	}
}

// TestEncode pins the full relayMessage calldata for both encoding versions.
// The assertions were created using solidity.
func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("V0", func(t *testing.T) {
		msg := crossdomain.NewCrossDomainMessage(
			crossdomain.EncodeVersionedNonce(common.Big0, common.Big0),
			common.Address{},
			common.Address{19: 0x01},
			big.NewInt(0),
			big.NewInt(5),
			[]byte{},
		)
		require.Equal(t, uint64(0), msg.Version())

		encoded, err := msg.Encode()
		require.NoError(t, err)

		expect := hexutil.MustDecode("0xcbd4ece900000000000000000000000000000000000000000000000000000000000000010000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000008000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000")
		require.Equal(t, expect, encoded)
	})

	t.Run("V1", func(t *testing.T) {
		msg := crossdomain.NewCrossDomainMessage(
			crossdomain.EncodeVersionedNonce(common.Big1, common.Big1),
			common.Address{19: 0x01},
			common.Address{19: 0x02},
			big.NewInt(100),
			big.NewInt(555),
			[]byte{},
		)
		require.Equal(t, uint64(1), msg.Version())

		encoded, err := msg.Encode()
		require.NoError(t, err)

		expect := hexutil.MustDecode("0xd764ad0b0001000000000000000000000000000000000000000000000000000000000001000000000000000000000000000000000000000000000000000000000000000100000000000000000000000000000000000000000000000000000000000000020000000000000000000000000000000000000000000000000000000000000064000000000000000000000000000000000000000000000000000000000000022b00000000000000000000000000000000000000000000000000000000000000c00000000000000000000000000000000000000000000000000000000000000000")
		require.Equal(t, expect, encoded)
	})
}

// TestHash pins the message hash for both encoding versions. The assertions
// were created using solidity.
func TestHash(t *testing.T) {
	t.Parallel()

	t.Run("V0", func(t *testing.T) {
		msg := crossdomain.NewCrossDomainMessage(
			crossdomain.EncodeVersionedNonce(common.Big0, common.Big0),
			common.Address{},
			common.Address{19: 0x01},
			big.NewInt(0),
			big.NewInt(5),
			[]byte{},
		)
		require.Equal(t, uint64(0), msg.Version())

		hash, err := msg.Hash()
		require.NoError(t, err)
		require.Equal(t, common.HexToHash("0x5bb579a193681e7c4d43c8c2e4bc6c2c447d21ef9fa887ca23b2d3f9a0fac065"), hash)
	})

	t.Run("V1", func(t *testing.T) {
		msg := crossdomain.NewCrossDomainMessage(
			crossdomain.EncodeVersionedNonce(common.Big1, common.Big1),
			common.Address{19: 0x01},
			common.Address{19: 0x02},
			big.NewInt(100),
			big.NewInt(555),
			[]byte{},
		)
		require.Equal(t, uint64(1), msg.Version())

		hash, err := msg.Hash()
		require.NoError(t, err)
		require.Equal(t, common.HexToHash("0x4618d2c95b847279b37112dda405456ea92e9b868533680e3dfec300880701db"), hash)
	})
}

func TestEncodeSelectors(t *testing.T) {
	t.Parallel()

	t.Run("V0", func(t *testing.T) {
		msg := crossdomain.NewCrossDomainMessage(
			crossdomain.EncodeVersionedNonce(common.Big0, common.Big0),
			common.Address{},
			common.Address{19: 0x01},
			big.NewInt(0),
			big.NewInt(5),
			[]byte{},
		)
		require.Equal(t, uint64(0), msg.Version())

		encoded, err := msg.Encode()
		require.NoError(t, err)
		require.Equal(t, hexutil.MustDecode("0xcbd4ece9"), encoded[:4])
	})

	t.Run("V1", func(t *testing.T) {
		msg := crossdomain.NewCrossDomainMessage(
			crossdomain.EncodeVersionedNonce(common.Big1, common.Big1),
			common.Address{19: 0x01},
			common.Address{19: 0x02},
			big.NewInt(100),
			big.NewInt(555),
			[]byte{},
		)
		require.Equal(t, uint64(1), msg.Version())

		encoded, err := msg.Encode()
		require.NoError(t, err)
		require.Equal(t, hexutil.MustDecode("0xd764ad0b"), encoded[:4])
	})

	t.Run("unknown version", func(t *testing.T) {
		msg := crossdomain.NewCrossDomainMessage(
			crossdomain.EncodeVersionedNonce(common.Big0, big.NewInt(2)),
			common.Address{},
			common.Address{},
			big.NewInt(0),
			big.NewInt(0),
			nil,
		)
		_, err := msg.Encode()
		require.ErrorIs(t, err, crossdomain.ErrUnknownVersion)
	})
}

func TestHashMatchesEncoding(t *testing.T) {
	t.Parallel()

	msg := crossdomain.NewCrossDomainMessage(
		crossdomain.EncodeVersionedNonce(big.NewInt(42), common.Big1),
		common.Address{19: 0x01},
		common.Address{19: 0x02},
		big.NewInt(1_000_000),
		big.NewInt(200_000),
		[]byte{0xde, 0xad},
	)
	h1, err := msg.Hash()
	require.NoError(t, err)
	h2, err := crossdomain.HashCrossDomainMessageV1(msg.Nonce, msg.Sender, msg.Target, msg.Value, msg.GasLimit, msg.Data)
	require.NoError(t, err)
	require.Equal(t, h2, h1)
	require.NotEqual(t, common.Hash{}, h1)
}

func TestParseSentMessage(t *testing.T) {
	t.Parallel()

	target := common.Address{19: 0x42}
	sender := common.Address{19: 0x43}
	nonce := crossdomain.EncodeVersionedNonce(big.NewInt(7), common.Big1)
	message := []byte{0x01, 0x02, 0x03}
	gasLimit := big.NewInt(200_000)
	value := big.NewInt(12345)

	receipt := receiptWithSentMessage(t, target, sender, message, nonce, gasLimit, value)

	ev, err := crossdomain.ParseSentMessage(receipt)
	require.NoError(t, err)
	require.Equal(t, target, ev.Target)
	require.Equal(t, sender, ev.Sender)
	require.Equal(t, message, ev.Message)
	require.Equal(t, 0, nonce.Cmp(ev.Nonce))
	require.Equal(t, 0, gasLimit.Cmp(ev.GasLimit))
	require.Equal(t, 0, value.Cmp(ev.Value))

	msg := ev.ToCrossDomainMessage()
	require.Equal(t, uint64(1), msg.Version())
	h, err := ev.Hash()
	require.NoError(t, err)
	want, err := crossdomain.HashCrossDomainMessageV1(nonce, sender, target, value, gasLimit, message)
	require.NoError(t, err)
	require.Equal(t, want, h)
}

func TestParseSentMessageMissing(t *testing.T) {
	t.Parallel()

	_, err := crossdomain.ParseSentMessage(&types.Receipt{})
	require.ErrorContains(t, err, "unable to find SentMessage event")
}
