package flags

import "github.com/urfave/cli/v2"

// Flags of the individual transfer and query subcommands.
const (
	AssetFlagName     = "asset"
	AmountFlagName    = "amount"
	TokenIDFlagName   = "token-id"
	L1TokenFlagName   = "l1-token"
	L2TokenFlagName   = "l2-token"
	TxHashFlagName    = "tx-hash"
	DirectionFlagName = "direction"
)

var (
	AssetFlag = &cli.StringFlag{
		Name:  AssetFlagName,
		Usage: "Asset class to move: eth, erc20, erc721 or erc1155",
		Value: "eth",
	}
	AmountFlag = &cli.StringFlag{
		Name:  AmountFlagName,
		Usage: "Amount in the asset's smallest unit, decimal",
	}
	TokenIDFlag = &cli.StringFlag{
		Name:  TokenIDFlagName,
		Usage: "Token id for erc721 and erc1155 transfers, decimal",
	}
	L1TokenFlag = &cli.StringFlag{
		Name:  L1TokenFlagName,
		Usage: "Address of the token contract on L1",
	}
	L2TokenFlag = &cli.StringFlag{
		Name:  L2TokenFlagName,
		Usage: "Address of the token contract on L2",
	}
	TxHashFlag = &cli.StringFlag{
		Name:  TxHashFlagName,
		Usage: "Transaction hash on the chain the transfer was submitted to",
	}
	DirectionFlag = &cli.StringFlag{
		Name:  DirectionFlagName,
		Usage: "Message direction: deposit or withdrawal",
		Value: "deposit",
	}
)

// TransferFlags configure the deposit and withdraw subcommands.
var TransferFlags = append([]cli.Flag{AssetFlag, AmountFlag, TokenIDFlag, L1TokenFlag, L2TokenFlag}, Flags...)

// StatusFlags configure the status subcommand.
var StatusFlags = append([]cli.Flag{TxHashFlag, DirectionFlag}, Flags...)

// BalanceFlags configure the balance subcommand.
var BalanceFlags = append([]cli.Flag{L1TokenFlag, L2TokenFlag}, Flags...)
