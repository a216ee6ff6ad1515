// Package messenger provides the two views on a cross-domain messenger pair:
// a signer-bound transfer view that initiates bridge transfers, and a
// read-only status view that reports the relay status of a sent message on
// the counterpart chain.
package messenger

// MessageStatus is the relay lifecycle of a cross-domain message.
type MessageStatus int

const (
	// StatusUnconfirmed means the submitting transaction is not yet included.
	StatusUnconfirmed MessageStatus = iota
	// StatusReadyForRelay means the message is included on the source chain
	// but the destination messenger has not relayed it yet.
	StatusReadyForRelay
	// StatusRelayed is the terminal success state.
	StatusRelayed
	// StatusFailed means the destination messenger recorded a failed relay.
	StatusFailed
)

func (s MessageStatus) String() string {
	switch s {
	case StatusUnconfirmed:
		return "unconfirmed"
	case StatusReadyForRelay:
		return "ready-for-relay"
	case StatusRelayed:
		return "relayed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
