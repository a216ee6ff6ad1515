package bridge

// Transfer directions and asset classes as metric label values.
const (
	DirectionDeposit    = "deposit"
	DirectionWithdrawal = "withdrawal"

	AssetETH     = "eth"
	AssetERC20   = "erc20"
	AssetERC721  = "erc721"
	AssetERC1155 = "erc1155"
)

// Metricer records transfer activity. Implementations must be safe for
// concurrent use.
type Metricer interface {
	RecordSubmitted(direction, asset string)
	RecordRelay(direction string) func(err error)
}

type noopMetrics struct{}

func (noopMetrics) RecordSubmitted(string, string) {}

func (noopMetrics) RecordRelay(string) func(error) { return func(error) {} }
