package sdp

import (
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/ioutil"
	"github.com/ghettovoice/gosdp/internal/util"
)

// ConnectionAddress is the connection-address of a "c=" field.
//
// TTL is used only with IPv4 multicast addresses.
// Count is the number of contiguous multicast addresses, zero means the suffix is absent.
type ConnectionAddress struct {
	Host      string `json:"host"`
	Multicast bool   `json:"multicast,omitempty"`
	TTL       uint8  `json:"ttl,omitempty"`
	Count     uint64 `json:"count,omitempty"`
}

// ParseConnectionAddress parses and classifies a connection-address.
// IPv4 and IPv6 literals are checked strictly, a malformed literal is never
// taken for a domain name.
func ParseConnectionAddress(s string) (ConnectionAddress, error) {
	if s == "" {
		return ConnectionAddress{}, errtrace.Wrap(ErrEmptyInput)
	}

	switch grammar.MulticastAddressKind(s) {
	case grammar.AddrIP4:
		parts := strings.Split(s, "/")
		ttl, err := grammar.ParseUint(parts[1], 8)
		if err != nil {
			return ConnectionAddress{}, errtrace.Wrap(err)
		}
		addr := ConnectionAddress{Host: parts[0], Multicast: true, TTL: uint8(ttl)}
		if len(parts) > 2 {
			if addr.Count, err = grammar.ParseUint(parts[2], 64); err != nil {
				return ConnectionAddress{}, errtrace.Wrap(err)
			}
		}
		return addr, nil
	case grammar.AddrIP6:
		host, count, ok := strings.Cut(s, "/")
		addr := ConnectionAddress{Host: host, Multicast: true}
		if ok {
			var err error
			if addr.Count, err = grammar.ParseUint(count, 64); err != nil {
				return ConnectionAddress{}, errtrace.Wrap(err)
			}
		}
		return addr, nil
	}

	if grammar.IsUnicastAddress(s) {
		return ConnectionAddress{Host: s}, nil
	}
	return ConnectionAddress{}, errtrace.Wrap(
		errorutil.NewWrapperError(ErrMalformedInput, "invalid connection address %q", s),
	)
}

// RenderTo writes "host[/ttl][/count]" to the provided writer.
func (addr ConnectionAddress) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	lw := ioutil.GetLineWriter(w, false)
	defer ioutil.FreeLineWriter(lw)
	lw.Print(addr.Host)
	if addr.Multicast && grammar.IsIP4Address(addr.Host) {
		lw.Print("/", strconv.FormatUint(uint64(addr.TTL), 10))
	}
	if addr.Count > 0 {
		lw.Print("/", strconv.FormatUint(addr.Count, 10))
	}
	return errtrace.Wrap2(lw.Result())
}

func (addr ConnectionAddress) Render(opts *RenderOptions) string { return render(addr, opts) }

func (addr ConnectionAddress) String() string { return addr.Render(nil) }

// Equal compares addresses, hosts compare case-insensitively.
func (addr ConnectionAddress) Equal(val any) bool {
	var other ConnectionAddress
	switch v := val.(type) {
	case ConnectionAddress:
		other = v
	case *ConnectionAddress:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(addr.Host, other.Host) &&
		addr.Multicast == other.Multicast &&
		addr.TTL == other.TTL &&
		addr.Count == other.Count
}

// IsValid checks that the rendered address parses back to the same address.
func (addr ConnectionAddress) IsValid() bool {
	addr2, err := ParseConnectionAddress(addr.String())
	return err == nil && addr2.Equal(addr)
}

// Connection is a "c=" field.
type Connection struct {
	NetType  string            `json:"net_type"`
	AddrType string            `json:"addr_type"`
	Address  ConnectionAddress `json:"address"`
}

// RenderTo writes "nettype addrtype connection-address" to the provided writer.
func (c *Connection) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if c == nil {
		return 0, nil
	}
	lw := ioutil.GetLineWriter(w, false)
	defer ioutil.FreeLineWriter(lw)
	lw.Print(c.NetType, " ", c.AddrType, " ").
		Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(c.Address.RenderTo(w, opts)) })
	return errtrace.Wrap2(lw.Result())
}

// Render returns the string representation of the connection value.
func (c *Connection) Render(opts *RenderOptions) string {
	if c == nil {
		return ""
	}
	return render(c, opts)
}

func (c *Connection) String() string { return c.Render(nil) }

// Clone returns a copy of the connection.
func (c *Connection) Clone() *Connection {
	if c == nil {
		return nil
	}
	c2 := *c
	return &c2
}

// Equal compares this connection with another for equality.
func (c *Connection) Equal(val any) bool {
	var other *Connection
	switch v := val.(type) {
	case Connection:
		other = &v
	case *Connection:
		other = v
	default:
		return false
	}

	if c == other {
		return true
	} else if c == nil || other == nil {
		return false
	}

	return util.EqFold(c.NetType, other.NetType) &&
		util.EqFold(c.AddrType, other.AddrType) &&
		c.Address.Equal(other.Address)
}

// IsValid checks the connection sub-fields against the grammar.
func (c *Connection) IsValid() bool {
	return c != nil &&
		grammar.IsToken(c.NetType) &&
		grammar.IsToken(c.AddrType) &&
		c.Address.IsValid()
}

func cloneConnections(cs []Connection) []Connection {
	if cs == nil {
		return nil
	}
	return append([]Connection(nil), cs...)
}
