package types

import (
	"net"
	"slices"
	"strconv"

	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/util"
)

// Addr is a transport address found in a session description:
// a unicast-address host with an optional port.
//
// The host is kept as written. IP literals are parsed on construction,
// names get an IP only through [Addr.WithIP].
type Addr struct {
	host    string
	ip      net.IP
	port    uint16
	hasPort bool
}

// Host returns an [Addr] without a port.
func Host(host string) Addr { return Addr{host: host, ip: literalIP(host)} }

// HostPort returns an [Addr] with the port set.
func HostPort(host string, port uint16) Addr {
	addr := Host(host)
	addr.port, addr.hasPort = port, true
	return addr
}

// literalIP parses IP4-address and IP6-address hosts, other hosts yield nil.
// IPv4-mapped IPv6 literals come out in the 4-byte form.
func literalIP(host string) net.IP {
	switch grammar.UnicastAddressKind(host) {
	case grammar.AddrIP4, grammar.AddrIP6:
		return to4(net.ParseIP(host))
	default:
		return nil
	}
}

func to4(ip net.IP) net.IP {
	if v := ip.To4(); v != nil {
		return v
	}
	return ip
}

// Host returns the host as written in the session description.
func (addr Addr) Host() string { return addr.host }

// IP returns the literal or resolved IP, nil for an unresolved name.
func (addr Addr) IP() net.IP { return addr.ip }

// Port returns the port and whether it is set.
func (addr Addr) Port() (uint16, bool) { return addr.port, addr.hasPort }

// Kind returns the unicast-address class of the host.
func (addr Addr) Kind() grammar.AddrKind { return grammar.UnicastAddressKind(addr.host) }

// String returns "host" or "host:port", IPv6 hosts are bracketed when the port is set.
func (addr Addr) String() string {
	if !addr.hasPort {
		return addr.host
	}
	return net.JoinHostPort(addr.host, strconv.FormatUint(uint64(addr.port), 10))
}

func (addr Addr) Clone() Addr {
	addr.ip = slices.Clone(addr.ip)
	return addr
}

// Equal compares IPs when both addresses have one and hosts otherwise.
// Host names compare case-insensitively.
func (addr Addr) Equal(val any) bool {
	var other Addr
	switch v := val.(type) {
	case Addr:
		other = v
	case *Addr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if addr.port != other.port || addr.hasPort != other.hasPort {
		return false
	}
	switch {
	case addr.ip == nil && other.ip == nil:
		return util.EqFold(addr.host, other.host)
	case addr.ip != nil && other.ip != nil:
		return addr.ip.Equal(other.ip)
	default:
		return false
	}
}

// WithIP returns a copy of the address bound to the resolved ip, the host is kept.
func (addr Addr) WithIP(ip net.IP) Addr {
	addr.ip = slices.Clone(to4(ip))
	return addr
}

func (addr Addr) IsZero() bool { return addr.host == "" && addr.ip == nil && !addr.hasPort }

// MarshalText implements [encoding.TextMarshaler].
func (addr Addr) MarshalText() ([]byte, error) { return []byte(addr.String()), nil }
