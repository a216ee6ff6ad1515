package crossdomain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Standard ABI types
var (
	Uint256Type, _ = abi.NewType("uint256", "", nil)
	BytesType, _   = abi.NewType("bytes", "", nil)
	AddressType, _ = abi.NewType("address", "", nil)
)

var (
	relayMessageV0Selector = selector("relayMessage(address,address,bytes,uint256)")
	relayMessageV1Selector = selector("relayMessage(uint256,address,address,uint256,uint256,bytes)")

	relayMessageV0Args = abi.Arguments{
		{Name: "target", Type: AddressType},
		{Name: "sender", Type: AddressType},
		{Name: "data", Type: BytesType},
		{Name: "nonce", Type: Uint256Type},
	}
	relayMessageV1Args = abi.Arguments{
		{Name: "nonce", Type: Uint256Type},
		{Name: "sender", Type: AddressType},
		{Name: "target", Type: AddressType},
		{Name: "value", Type: Uint256Type},
		{Name: "minGasLimit", Type: Uint256Type},
		{Name: "message", Type: BytesType},
	}
)

func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

// EncodeCrossDomainMessageV0 encodes the pre bedrock relayMessage calldata.
func EncodeCrossDomainMessageV0(
	target common.Address,
	sender common.Address,
	data []byte,
	nonce *big.Int,
) ([]byte, error) {
	encoded, err := relayMessageV0Args.Pack(target, sender, data, nonce)
	if err != nil {
		return nil, fmt.Errorf("cannot encode v0 cross domain message: %w", err)
	}
	return append(relayMessageV0Selector, encoded...), nil
}

// EncodeCrossDomainMessageV1 encodes the post bedrock relayMessage calldata.
func EncodeCrossDomainMessageV1(
	nonce *big.Int,
	sender common.Address,
	target common.Address,
	value *big.Int,
	gasLimit *big.Int,
	data []byte,
) ([]byte, error) {
	encoded, err := relayMessageV1Args.Pack(nonce, sender, target, value, gasLimit, data)
	if err != nil {
		return nil, fmt.Errorf("cannot encode v1 cross domain message: %w", err)
	}
	return append(relayMessageV1Selector, encoded...), nil
}

// EncodeVersionedNonce encodes the version into the upper 16 bits of the nonce.
func EncodeVersionedNonce(nonce, version *big.Int) *big.Int {
	versioned := new(big.Int).Lsh(version, 240)
	return versioned.Or(versioned, nonce)
}

// DecodeVersionedNonce splits a versioned nonce into the nonce and version.
func DecodeVersionedNonce(versioned *big.Int) (*big.Int, *big.Int) {
	version := new(big.Int).Rsh(versioned, 240)
	nonceMask := new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 240), common.Big1)
	nonce := new(big.Int).And(versioned, nonceMask)
	return nonce, version
}
