package grammar

// AddrKind is the syntactic class of an SDP address.
type AddrKind uint8

const (
	AddrUnknown AddrKind = iota
	AddrIP4
	AddrIP6
	AddrFQDN
	AddrExtn
)

func (k AddrKind) String() string {
	switch k {
	case AddrIP4:
		return "IP4"
	case AddrIP6:
		return "IP6"
	case AddrFQDN:
		return "FQDN"
	case AddrExtn:
		return "extn-addr"
	default:
		return "unknown"
	}
}

// UnicastAddressKind classifies s as a unicast-address.
//
// Literal forms take precedence: input shaped like an IPv4 or IPv6 literal
// must match the literal rule and never falls back to FQDN or extn-addr.
func UnicastAddressKind[T ~string | ~[]byte](s T) AddrKind {
	switch {
	case len(s) == 0:
		return AddrUnknown
	case isIP4Shaped(s):
		if IsIP4Address(s) {
			return AddrIP4
		}
		return AddrUnknown
	case isIP6Shaped(s):
		if IsIP6Address(s) {
			return AddrIP6
		}
		return AddrUnknown
	}
	return nameKind(s)
}

// MulticastAddressKind classifies s as a multicast-address.
// The literal precedence of [UnicastAddressKind] applies here too.
func MulticastAddressKind[T ~string | ~[]byte](s T) AddrKind {
	switch {
	case len(s) == 0:
		return AddrUnknown
	case isIP4Shaped(s):
		if IsIP4Multicast(s) {
			return AddrIP4
		}
		return AddrUnknown
	case isIP6Shaped(s):
		if IsIP6Multicast(s) {
			return AddrIP6
		}
		return AddrUnknown
	}
	return nameKind(s)
}

func IsUnicastAddress[T ~string | ~[]byte](s T) bool {
	return UnicastAddressKind(s) != AddrUnknown
}

func IsMulticastAddress[T ~string | ~[]byte](s T) bool {
	return MulticastAddressKind(s) != AddrUnknown
}

// IsMulticastLiteral reports whether s is an IP4-multicast or IP6-multicast literal.
func IsMulticastLiteral[T ~string | ~[]byte](s T) bool {
	k := MulticastAddressKind(s)
	return k == AddrIP4 || k == AddrIP6
}

func nameKind[T ~string | ~[]byte](s T) AddrKind {
	switch {
	case IsFQDN(s):
		return AddrFQDN
	case IsExtnAddr(s):
		return AddrExtn
	default:
		return AddrUnknown
	}
}

// literalPart returns s up to the first slash.
func literalPart[T ~string | ~[]byte](s T) T {
	for i := range len(s) {
		if s[i] == '/' {
			return s[:i]
		}
	}
	return s
}

func isIP4Shaped[T ~string | ~[]byte](s T) bool {
	s = literalPart(s)
	var dots int
	for i := range len(s) {
		switch c := s[i]; {
		case c == '.':
			dots++
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return dots > 0
}

func isIP6Shaped[T ~string | ~[]byte](s T) bool {
	s = literalPart(s)
	var colons int
	for i := range len(s) {
		switch c := s[i]; {
		case c == ':':
			colons++
		case c == '.',
			c >= '0' && c <= '9',
			c >= 'a' && c <= 'f',
			c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return colons > 0
}
