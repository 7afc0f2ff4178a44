// Package grammar glues the RFC operator sets together.
// It provides full-match predicates, node parsers and address classification.
package grammar

//go:generate go tool errtrace -w .

import (
	"fmt"

	"github.com/ghettovoice/abnf"
	"github.com/miekg/dns"

	"github.com/ghettovoice/gosdp/internal/grammar/rfc2822"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc3986"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc4566"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc5245"
)

func init() {
	abnf.EnableNodeCache(10 * 1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrNodeNotFound    Error = "node not found"
	ErrUnexpectNode    Error = "unexpected node"
	ErrEmptyInput      Error = "empty input"
	ErrMalformedInput  Error = "malformed input"
	ErrValueOutOfRange Error = "value out of range"
)

// MustGetNode returns a pointer to the ABNF node with the given key.
func MustGetNode(n *abnf.Node, k string) *abnf.Node {
	sn, ok := n.GetNode(k)
	if !ok {
		panic(fmt.Errorf("get node %q from node %q: %w", k, n.Key, ErrNodeNotFound))
	}
	return sn
}

// Match reports whether op matches the whole s.
func Match[T ~string | ~[]byte](op abnf.Operator, s T) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

func IsToken[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().Token, s)
}

func IsNonWSString[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().NonWSString, s)
}

func IsByteString[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().ByteString, s)
}

func IsText[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().Text, s)
}

func IsProto[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().Proto, s)
}

func IsInteger[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().Integer, s)
}

func IsDecimalUchar[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().DecimalUchar, s)
}

func IsAddrSpec[T ~string | ~[]byte](s T) bool {
	return Match(rfc2822.Operators().AddrSpec, s)
}

func IsURIReference[T ~string | ~[]byte](s T) bool {
	return Match(rfc3986.Operators().URIReference, s)
}

func IsPhone[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().Phone, s)
}

func IsBase64[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().Base64, s)
}

func IsIP4Address[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().IP4Address, s)
}

func IsIP6Address[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().IP6Address, s)
}

func IsIP4Multicast[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().IP4Multicast, s)
}

func IsIP6Multicast[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().IP6Multicast, s)
}

// IsFQDN reports whether s matches the FQDN rule and is a valid domain name
// with respect to label and total lengths.
func IsFQDN[T ~string | ~[]byte](s T) bool {
	if !Match(rfc4566.Operators().FQDN, s) {
		return false
	}
	_, ok := dns.IsDomainName(string(s))
	return ok
}

func IsExtnAddr[T ~string | ~[]byte](s T) bool {
	return Match(rfc4566.Operators().ExtnAddr, s)
}

func IsUfrag[T ~string | ~[]byte](s T) bool {
	return Match(rfc5245.Operators().Ufrag, s)
}

func IsPassword[T ~string | ~[]byte](s T) bool {
	return Match(rfc5245.Operators().Password, s)
}
