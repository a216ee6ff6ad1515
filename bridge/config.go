package bridge

import (
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/op-bridger/dial"
)

// DefaultRelayPollInterval is how often the relay status of an in-flight
// message is checked.
const DefaultRelayPollInterval = 2 * time.Second

// AddressSet names the L1 system contracts of one deployment. The legacy
// pre-Bedrock roles stay zero-valued in post-Bedrock deployments; keeping
// them explicit makes the retirement visible rather than implied.
type AddressSet struct {
	AddressManager         common.Address
	L1CrossDomainMessenger common.Address
	L1StandardBridge       common.Address
	OptimismPortal         common.Address
	L2OutputOracle         common.Address

	// Legacy roles, retired post-Bedrock.
	StateCommitmentChain      common.Address
	CanonicalTransactionChain common.Address
	BondManager               common.Address

	// Bridges for the non-standard asset classes. The ERC721 bridge has a
	// canonical deployment; the ERC1155 bridge is deployment-specific.
	L1ERC721Bridge  common.Address
	L1ERC1155Bridge common.Address
	L2ERC1155Bridge common.Address
}

// Addresses carries the contract sets of the two messenger views. The views
// are configured independently but always against the same chain pair, which
// keeps status lookups and transfers pointed at the same deployment.
type Addresses struct {
	// Status is used for relay-status lookups.
	Status AddressSet
	// Transfer is used for submitting transfers. Zero-valued fields fall
	// back to the Status set.
	Transfer AddressSet
}

// TransferSet returns the effective transfer-view address set.
func (a Addresses) TransferSet() AddressSet {
	set := a.Transfer
	fallback := func(dst *common.Address, src common.Address) {
		if *dst == (common.Address{}) {
			*dst = src
		}
	}
	fallback(&set.AddressManager, a.Status.AddressManager)
	fallback(&set.L1CrossDomainMessenger, a.Status.L1CrossDomainMessenger)
	fallback(&set.L1StandardBridge, a.Status.L1StandardBridge)
	fallback(&set.OptimismPortal, a.Status.OptimismPortal)
	fallback(&set.L2OutputOracle, a.Status.L2OutputOracle)
	fallback(&set.L1ERC721Bridge, a.Status.L1ERC721Bridge)
	fallback(&set.L1ERC1155Bridge, a.Status.L1ERC1155Bridge)
	fallback(&set.L2ERC1155Bridge, a.Status.L2ERC1155Bridge)
	return set
}

// Config is the construction-time configuration of the facade. It is passed
// explicitly; nothing is read from the environment here.
type Config struct {
	L1RPC string
	L2RPC string

	L1ChainID uint64
	L2ChainID uint64

	Addresses Addresses

	// RelayPollInterval is how often relay status is polled. Defaults to
	// DefaultRelayPollInterval when zero.
	RelayPollInterval time.Duration

	// RelayTimeout bounds the wait for a message to reach the relayed
	// status. Zero means the wait is bounded only by the caller's context.
	RelayTimeout time.Duration

	// DialTimeout bounds endpoint dialing at construction. Defaults to
	// dial.DefaultDialTimeout when zero.
	DialTimeout time.Duration
}

// Check validates the configuration.
func (c Config) Check() error {
	if c.L1RPC == "" {
		return errors.New("missing L1 RPC URL")
	}
	if c.L2RPC == "" {
		return errors.New("missing L2 RPC URL")
	}
	if c.L1ChainID == 0 {
		return errors.New("missing L1 chain ID")
	}
	if c.L2ChainID == 0 {
		return errors.New("missing L2 chain ID")
	}
	if c.L1ChainID == c.L2ChainID {
		return fmt.Errorf("L1 and L2 chain IDs must differ, both are %d", c.L1ChainID)
	}
	transfer := c.Addresses.TransferSet()
	if transfer.L1StandardBridge == (common.Address{}) && transfer.AddressManager == (common.Address{}) {
		return errors.New("missing L1 standard bridge address, set it explicitly or via the address manager")
	}
	status := c.Addresses.Status
	if status.L1CrossDomainMessenger == (common.Address{}) && status.AddressManager == (common.Address{}) {
		return errors.New("missing L1 cross domain messenger address, set it explicitly or via the address manager")
	}
	return nil
}

func (c Config) relayPollInterval() time.Duration {
	if c.RelayPollInterval == 0 {
		return DefaultRelayPollInterval
	}
	return c.RelayPollInterval
}

func (c Config) dialTimeout() time.Duration {
	if c.DialTimeout == 0 {
		return dial.DefaultDialTimeout
	}
	return c.DialTimeout
}
