package errutil

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// TryAddRevertReason attempts to extract the revert reason from the data
// attached to a JSON-RPC error. Errors without attached data are returned
// unchanged.
func TryAddRevertReason(err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return fmt.Errorf("%w, reverted with data: %v", err, dataErr.ErrorData())
	}
	return err
}
