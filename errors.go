package localip

import "errors"

// Query errors. All of them are terminal: no call retries internally and no
// partial results are returned alongside an error. Underlying system errors
// are wrapped and can be unwrapped from the returned error chain.
var (
	// ErrNetlinkDial is returned when the netlink route socket cannot be opened.
	ErrNetlinkDial = errors.New("failed to open netlink route socket")

	// ErrNetlinkSend is returned when the address dump request cannot be sent.
	ErrNetlinkSend = errors.New("failed to send netlink address request")

	// ErrAddressNotFound is returned when the kernel response stream is
	// malformed or unreadable, or when it holds no globally routable address
	// of the requested kind.
	ErrAddressNotFound = errors.New("no matching address reported by the kernel")

	// ErrEnumerateInterfaces is returned when the interface address tables
	// cannot be fetched or walked.
	ErrEnumerateInterfaces = errors.New("failed to enumerate interface addresses")

	// ErrInterfaceName is returned when an interface name reported by the
	// kernel is not valid UTF-8. A single bad name fails the whole enumeration.
	ErrInterfaceName = errors.New("invalid interface name")
)
