// Package crossdomain models the messages passed between the L1 and L2
// cross-domain messengers, along with their canonical encoding and hashing.
package crossdomain

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrUnknownVersion = errors.New("unknown cross domain message version")
)

// CrossDomainMessage represents a cross domain message used by the
// CrossDomainMessenger. The message nonce is versioned in its upper 16 bits.
type CrossDomainMessage struct {
	Nonce    *big.Int       `json:"nonce"`
	Sender   common.Address `json:"sender"`
	Target   common.Address `json:"target"`
	Value    *big.Int       `json:"value"`
	GasLimit *big.Int       `json:"gasLimit"`
	Data     []byte         `json:"data"`
}

// NewCrossDomainMessage creates a CrossDomainMessage.
func NewCrossDomainMessage(
	nonce *big.Int,
	sender common.Address,
	target common.Address,
	value *big.Int,
	gasLimit *big.Int,
	data []byte,
) *CrossDomainMessage {
	return &CrossDomainMessage{
		Nonce:    nonce,
		Sender:   sender,
		Target:   target,
		Value:    value,
		GasLimit: gasLimit,
		Data:     data,
	}
}

// Version will return the version of the CrossDomainMessage,
// encoded in the upper 16 bits of the nonce.
func (c *CrossDomainMessage) Version() uint64 {
	_, version := DecodeVersionedNonce(c.Nonce)
	return version.Uint64()
}

// Encode will encode a cross domain message based on the version.
func (c *CrossDomainMessage) Encode() ([]byte, error) {
	version := c.Version()
	switch version {
	case 0:
		return EncodeCrossDomainMessageV0(c.Target, c.Sender, c.Data, c.Nonce)
	case 1:
		return EncodeCrossDomainMessageV1(c.Nonce, c.Sender, c.Target, c.Value, c.GasLimit, c.Data)
	default:
		return nil, ErrUnknownVersion
	}
}

// Hash will compute the hash of the CrossDomainMessage.
func (c *CrossDomainMessage) Hash() (common.Hash, error) {
	encoded, err := c.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(encoded), nil
}
