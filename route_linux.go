//go:build linux

package localip

import (
	"fmt"
	"net"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

// LocalIP returns the local IPv4 address of this system.
//
// The kernel address dump lists every configured address on every interface,
// so the result is filtered down to globally routable addresses and the first
// one wins. On multi-homed hosts that is whichever address the kernel lists
// first, not necessarily the one attached to the preferred route.
func LocalIP() (net.IP, error) {
	return queryLocalAddr(unix.AF_INET, unix.IFA_LOCAL)
}

// LocalIPv6 returns the local IPv6 address of this system, selected the same
// way as LocalIP.
func LocalIPv6() (net.IP, error) {
	return queryLocalAddr(unix.AF_INET6, unix.IFA_ADDRESS)
}

// BroadcastIP returns the broadcast address belonging to the local IPv4
// address of this system.
func BroadcastIP() (net.IP, error) {
	return queryLocalAddr(unix.AF_INET, unix.IFA_BROADCAST)
}

// queryLocalAddr runs one full address dump transaction: open a route socket,
// request all addresses of the family, then pick the first globally routable
// address carried in the wanted attribute.
func queryLocalAddr(family uint8, attrType uint16) (net.IP, error) {
	conn, err := netlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetlinkDial, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	req, err := conn.Send(newAddrDumpRequest(family))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetlinkSend, err)
	}

	msgs, err := conn.Receive()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAddressNotFound, err)
	}
	if err := netlink.Validate(req, msgs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAddressNotFound, err)
	}

	return firstRouteAddr(msgs, family, attrType)
}

// newAddrDumpRequest builds a get-address request for the whole routing
// table: header flags Request|Root over an ifaddrmsg that selects only the
// address family, with prefix length, flags, scope and interface index all
// zero.
func newAddrDumpRequest(family uint8) netlink.Message {
	payload := make([]byte, unix.SizeofIfAddrmsg)
	payload[0] = family
	return netlink.Message{
		Header: netlink.Header{
			Type:  unix.RTM_GETADDR,
			Flags: netlink.Request | netlink.Root,
		},
		Data: payload,
	}
}

// firstRouteAddr reduces a response stream to the first qualifying address,
// or ErrAddressNotFound if the stream holds none.
func firstRouteAddr(msgs []netlink.Message, family uint8, attrType uint16) (net.IP, error) {
	addrs, err := collectRouteAddrs(msgs, family, attrType)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, ErrAddressNotFound
	}
	return addrs[0], nil
}

// collectRouteAddrs walks a get-address response stream and collects all
// globally routable addresses carried in the given attribute, in kernel
// order. Addresses scoped to the link or the host never qualify. Any message
// that is not a well-formed new-address record aborts the walk.
func collectRouteAddrs(msgs []netlink.Message, family uint8, attrType uint16) ([]net.IP, error) {
	var addrs []net.IP
	for i := range msgs {
		msg := &msgs[i]

		if len(msg.Data) == 0 {
			continue
		}
		if msg.Header.Type != unix.RTM_NEWADDR {
			return nil, fmt.Errorf("%w: unexpected message type %#x in address dump", ErrAddressNotFound, uint16(msg.Header.Type))
		}

		ifa, err := parseIfAddrmsg(msg.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAddressNotFound, err)
		}
		if ifa.Scope != unix.RT_SCOPE_UNIVERSE {
			continue
		}

		ad, err := netlink.NewAttributeDecoder(msg.Data[unix.SizeofIfAddrmsg:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAddressNotFound, err)
		}
		for ad.Next() {
			if ad.Type() != attrType {
				continue
			}
			ip, err := routeAddr(family, ad.Bytes())
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrAddressNotFound, err)
			}
			addrs = append(addrs, ip)
		}
		if err := ad.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAddressNotFound, err)
		}
	}
	return addrs, nil
}

// routeAddr decodes one address attribute payload. IPv4 addresses travel as
// one address word in network byte order, IPv6 addresses as an opaque 16
// byte array that needs no byte order correction.
func routeAddr(family uint8, value []byte) (net.IP, error) {
	switch family {
	case unix.AF_INET:
		if len(value) != net.IPv4len {
			return nil, fmt.Errorf("IPv4 attribute has %d bytes", len(value))
		}
		return ipv4FromRaw(nlenc.Uint32(value)), nil
	case unix.AF_INET6:
		if len(value) != net.IPv6len {
			return nil, fmt.Errorf("IPv6 attribute has %d bytes", len(value))
		}
		addressBuf := make([]byte, net.IPv6len)
		copy(addressBuf, value)
		return net.IP(addressBuf), nil
	default:
		return nil, fmt.Errorf("unsupported address family %d", family)
	}
}
