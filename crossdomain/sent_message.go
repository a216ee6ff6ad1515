package crossdomain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	SentMessageTopic           = crypto.Keccak256Hash([]byte("SentMessage(address,address,bytes,uint256,uint256)"))
	SentMessageExtension1Topic = crypto.Keccak256Hash([]byte("SentMessageExtension1(address,uint256)"))

	sentMessageDataArgs = abi.Arguments{
		{Name: "sender", Type: AddressType},
		{Name: "message", Type: BytesType},
		{Name: "messageNonce", Type: Uint256Type},
		{Name: "gasLimit", Type: Uint256Type},
	}
	sentMessageExtensionDataArgs = abi.Arguments{
		{Name: "value", Type: Uint256Type},
	}
)

// SentMessage is the SentMessage event emitted by a CrossDomainMessenger when
// a message is submitted, merged with the value carried by the paired
// SentMessageExtension1 event.
type SentMessage struct {
	Target   common.Address
	Sender   common.Address
	Message  []byte
	Nonce    *big.Int
	GasLimit *big.Int
	Value    *big.Int
}

// ToCrossDomainMessage turns the event into the message it describes.
func (s *SentMessage) ToCrossDomainMessage() *CrossDomainMessage {
	return NewCrossDomainMessage(s.Nonce, s.Sender, s.Target, s.Value, s.GasLimit, s.Message)
}

// Hash computes the versioned hash of the message, the key under which the
// destination messenger records relay outcomes.
func (s *SentMessage) Hash() (common.Hash, error) {
	return s.ToCrossDomainMessage().Hash()
}

// ParseSentMessage extracts the SentMessage event from a submission receipt.
// It does not support multiple messages per receipt.
func ParseSentMessage(receipt *types.Receipt) (*SentMessage, error) {
	var msg *SentMessage
	for _, l := range receipt.Logs {
		if len(l.Topics) == 0 {
			continue
		}
		switch l.Topics[0] {
		case SentMessageTopic:
			if msg != nil {
				return nil, errors.New("multiple SentMessage events in receipt")
			}
			if len(l.Topics) < 2 {
				return nil, errors.New("SentMessage event missing indexed target")
			}
			values, err := sentMessageDataArgs.UnpackValues(l.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to unpack SentMessage event: %w", err)
			}
			msg = &SentMessage{
				Target:   common.BytesToAddress(l.Topics[1].Bytes()),
				Sender:   values[0].(common.Address),
				Message:  values[1].([]byte),
				Nonce:    values[2].(*big.Int),
				GasLimit: values[3].(*big.Int),
				Value:    new(big.Int),
			}
		case SentMessageExtension1Topic:
			if msg == nil {
				return nil, errors.New("SentMessageExtension1 event before SentMessage")
			}
			values, err := sentMessageExtensionDataArgs.UnpackValues(l.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to unpack SentMessageExtension1 event: %w", err)
			}
			msg.Value = values[0].(*big.Int)
		}
	}
	if msg == nil {
		return nil, errors.New("unable to find SentMessage event")
	}
	return msg, nil
}
