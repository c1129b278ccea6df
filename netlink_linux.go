//go:build linux

package localip

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
	"net"
	"unicode/utf8"
	"unsafe"

	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

// parseIfAddrmsg overlays the fixed-size address message header onto a raw
// netlink payload. The returned struct points into data and must not be
// retained past the walk.
func parseIfAddrmsg(data []byte) (*unix.IfAddrmsg, error) {
	if len(data) < unix.SizeofIfAddrmsg {
		return nil, fmt.Errorf("ifaddrmsg has %d of %d bytes", len(data), unix.SizeofIfAddrmsg)
	}
	return (*unix.IfAddrmsg)(unsafe.Pointer(&data[0])), nil
}

// parseIfInfomsg overlays the fixed-size link message header onto a raw
// netlink payload, see parseIfAddrmsg.
func parseIfInfomsg(data []byte) (*unix.IfInfomsg, error) {
	if len(data) < unix.SizeofIfInfomsg {
		return nil, fmt.Errorf("ifinfomsg has %d of %d bytes", len(data), unix.SizeofIfInfomsg)
	}
	return (*unix.IfInfomsg)(unsafe.Pointer(&data[0])), nil
}

// ipv4FromRaw builds the 4-byte IPv4 form from an address word read out of
// kernel memory. The kernel stores the word in network byte order, so a
// native read twists it on little-endian hosts and it has to be swapped back
// there. Big-endian hosts read it correctly as is.
func ipv4FromRaw(raw uint32) net.IP {
	if nlenc.NativeEndian() == binary.LittleEndian {
		raw = bits.ReverseBytes32(raw)
	}
	addressBuf := make([]byte, net.IPv4len)
	binary.BigEndian.PutUint32(addressBuf, raw)
	return net.IP(addressBuf)
}

// ifaceName extracts an interface name from a null-terminated attribute
// buffer and validates it.
func ifaceName(value []byte) (string, error) {
	if i := bytes.IndexByte(value, 0); i >= 0 {
		value = value[:i]
	}
	if len(value) == 0 {
		return "", fmt.Errorf("%w: empty name", ErrInterfaceName)
	}
	if !utf8.Valid(value) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrInterfaceName, value)
	}
	return string(value), nil
}
