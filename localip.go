// Package localip discovers the IP addresses assigned to the local system by
// talking to the kernel routing subsystem.
//
// Two independent query paths are provided. LocalIP and its siblings ask for
// a full address dump and pick the first globally routable address from it.
// InterfaceAddrs enumerates every IPv4 and IPv6 address together with the
// name of the owning interface. Both are one-shot transactions against the
// kernel with no state kept between calls and no internal timeouts, callers
// needing bounded latency have to impose their own.
//
// The queries speak rtnetlink and are only available on Linux.
package localip

import "net"

// InterfaceAddr pairs a network interface name with one of the addresses
// assigned to it. Interfaces holding several addresses produce one entry per
// address.
type InterfaceAddr struct {
	Name string
	IP   net.IP
}

func (ia InterfaceAddr) String() string {
	return ia.Name + " " + ia.IP.String()
}
