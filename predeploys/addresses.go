// Package predeploys holds the addresses of the L2 system contracts that live
// at fixed addresses in every deployment.
package predeploys

import "github.com/ethereum/go-ethereum/common"

const (
	L2CrossDomainMessenger = "0x4200000000000000000000000000000000000007"
	L2StandardBridge       = "0x4200000000000000000000000000000000000010"
	L2ERC721Bridge         = "0x4200000000000000000000000000000000000014"
	L2ToL1MessagePasser    = "0x4200000000000000000000000000000000000016"

	// LegacyERC20ETH is the token address used to express the native coin when
	// calling the standard bridge on L2.
	LegacyERC20ETH = "0xDeadDeAddeAddEAddeadDEaDDEAdDeaDDeAD0000"
)

var (
	L2CrossDomainMessengerAddr = common.HexToAddress(L2CrossDomainMessenger)
	L2StandardBridgeAddr       = common.HexToAddress(L2StandardBridge)
	L2ERC721BridgeAddr         = common.HexToAddress(L2ERC721Bridge)
	L2ToL1MessagePasserAddr    = common.HexToAddress(L2ToL1MessagePasser)
	LegacyERC20ETHAddr         = common.HexToAddress(LegacyERC20ETH)
)
