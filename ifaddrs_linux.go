//go:build linux

package localip

import (
	"fmt"
	"log/slog"
	"net"
	"syscall"

	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

// InterfaceAddrs enumerates all IPv4 and IPv6 addresses currently assigned
// to the system's network interfaces, paired with the owning interface name.
//
// Entries keep the kernel enumeration order and an interface shows up once
// per address, addresses of other families are skipped. The enumeration
// either completes fully or fails; it never returns a truncated list.
func InterfaceAddrs() ([]InterfaceAddr, error) {
	linkTab, err := fetchRIB(unix.RTM_GETLINK)
	if err != nil {
		return nil, err
	}
	addrTab, err := fetchRIB(unix.RTM_GETADDR)
	if err != nil {
		return nil, err
	}
	return parseInterfaceAddrs(linkTab, addrTab)
}

// AssignedAddresses returns the enumerated addresses split into IPv4 and
// IPv6 sets, in enumeration order.
func AssignedAddresses() (ipv4, ipv6 []net.IP, err error) {
	addrs, err := InterfaceAddrs()
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range addrs {
		if ip4 := entry.IP.To4(); ip4 != nil {
			ipv4 = append(ipv4, ip4)
		} else {
			ipv6 = append(ipv6, entry.IP)
		}
	}
	return
}

// fetchRIB retrieves one routing information base table in a single blocking
// call. The socket used for the transfer is torn down before it returns, the
// table is a plain in-process copy.
func fetchRIB(table int) ([]byte, error) {
	tab, err := syscall.NetlinkRIB(table, unix.AF_UNSPEC)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumerateInterfaces, err)
	}
	return tab, nil
}

// parseInterfaceAddrs walks the address table record by record and builds
// the name/address pairs. Interface names come from the address record's own
// label when present, or from the link table, indexed by interface index.
// Names are only validated for records that produce an entry.
func parseInterfaceAddrs(linkTab, addrTab []byte) ([]InterfaceAddr, error) {
	names, err := linkNames(linkTab)
	if err != nil {
		return nil, err
	}

	msgs, err := syscall.ParseNetlinkMessage(addrTab)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumerateInterfaces, err)
	}

	var addrs []InterfaceAddr
walk:
	for i := range msgs {
		m := &msgs[i]
		switch m.Header.Type {
		case unix.NLMSG_DONE:
			// Terminal record, the list ends here.
			break walk
		case unix.RTM_NEWADDR:
		default:
			continue
		}

		ifa, err := parseIfAddrmsg(m.Data)
		if err != nil {
			slog.Warn("localip: skipping malformed address record", "err", err)
			continue
		}

		switch ifa.Family {
		case unix.AF_INET, unix.AF_INET6:
		default:
			// Other families are not ours to report.
			slog.Debug("localip: skipping interface address of unsupported family", "family", ifa.Family)
			continue
		}

		attrs, err := syscall.ParseNetlinkRouteAttr(m)
		if err != nil {
			slog.Warn("localip: skipping address record with unreadable attributes", "err", err)
			continue
		}

		entry, ok, err := addrFromRecord(ifa, attrs, names)
		if err != nil {
			return nil, err
		}
		if ok {
			addrs = append(addrs, entry)
		}
	}
	return addrs, nil
}

// linkNames indexes the raw interface names of a link table snapshot by
// interface index. Names stay raw bytes here and are validated once an
// address record actually uses them.
func linkNames(linkTab []byte) (map[uint32][]byte, error) {
	msgs, err := syscall.ParseNetlinkMessage(linkTab)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumerateInterfaces, err)
	}

	names := make(map[uint32][]byte)
walk:
	for i := range msgs {
		m := &msgs[i]
		switch m.Header.Type {
		case unix.NLMSG_DONE:
			break walk
		case unix.RTM_NEWLINK:
		default:
			continue
		}

		ifi, err := parseIfInfomsg(m.Data)
		if err != nil {
			slog.Warn("localip: skipping malformed link record", "err", err)
			continue
		}
		attrs, err := syscall.ParseNetlinkRouteAttr(m)
		if err != nil {
			slog.Warn("localip: skipping link record with unreadable attributes", "err", err)
			continue
		}

		for _, attr := range attrs {
			if attr.Attr.Type == unix.IFLA_IFNAME {
				names[uint32(ifi.Index)] = attr.Value
				break
			}
		}
	}
	return names, nil
}

// addrFromRecord extracts the address bytes and the interface name of one
// new-address record. The boolean result is false for records that carry no
// usable address payload, those are dropped without failing the walk.
func addrFromRecord(ifa *unix.IfAddrmsg, attrs []syscall.NetlinkRouteAttr, names map[uint32][]byte) (InterfaceAddr, bool, error) {
	var local, address, label []byte
	for _, attr := range attrs {
		switch attr.Attr.Type {
		case unix.IFA_LOCAL:
			local = attr.Value
		case unix.IFA_ADDRESS:
			address = attr.Value
		case unix.IFA_LABEL:
			// IPv4 alias interfaces carry their own name here.
			label = attr.Value
		}
	}

	// On point-to-point links IFA_ADDRESS holds the peer. The address
	// belonging to the interface itself always travels in IFA_LOCAL.
	value := address
	if local != nil {
		value = local
	}
	if value == nil {
		slog.Debug("localip: skipping address record without address payload", "family", ifa.Family)
		return InterfaceAddr{}, false, nil
	}

	var ip net.IP
	switch ifa.Family {
	case unix.AF_INET:
		if len(value) != net.IPv4len {
			slog.Warn("localip: skipping IPv4 record with odd payload size", "len", len(value))
			return InterfaceAddr{}, false, nil
		}
		ip = ipv4FromRaw(nlenc.Uint32(value))
	case unix.AF_INET6:
		if len(value) != net.IPv6len {
			slog.Warn("localip: skipping IPv6 record with odd payload size", "len", len(value))
			return InterfaceAddr{}, false, nil
		}
		ip = make(net.IP, net.IPv6len)
		copy(ip, value)
	}

	rawName := label
	if rawName == nil {
		rawName = names[ifa.Index]
	}
	if rawName == nil {
		return InterfaceAddr{}, false, fmt.Errorf("%w: no link with index %d for address record", ErrEnumerateInterfaces, ifa.Index)
	}
	name, err := ifaceName(rawName)
	if err != nil {
		return InterfaceAddr{}, false, err
	}
	return InterfaceAddr{Name: name, IP: ip}, true, nil
}
