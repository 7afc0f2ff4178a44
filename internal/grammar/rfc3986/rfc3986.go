// Package rfc3986 implements the URI generic syntax (RFC 3986 Appendix A).
package rfc3986

import (
	"fmt"
	"sync"

	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gosdp/internal/grammar/rfc4234"
)

// OperatorSet holds the RFC 3986 operators.
type OperatorSet struct {
	URIReference abnf.Operator
	URI          abnf.Operator
	AbsoluteURI  abnf.Operator
	RelativeRef  abnf.Operator
	HierPart     abnf.Operator
	RelativePart abnf.Operator
	Scheme       abnf.Operator
	Authority    abnf.Operator
	Userinfo     abnf.Operator
	Host         abnf.Operator
	Port         abnf.Operator
	IPLiteral    abnf.Operator
	IPvFuture    abnf.Operator
	IPv6address  abnf.Operator
	H16          abnf.Operator
	Ls32         abnf.Operator
	IPv4address  abnf.Operator
	DecOctet     abnf.Operator
	RegName      abnf.Operator
	PathAbempty  abnf.Operator
	PathAbsolute abnf.Operator
	PathNoscheme abnf.Operator
	PathRootless abnf.Operator
	Segment      abnf.Operator
	SegmentNz    abnf.Operator
	SegmentNzNc  abnf.Operator
	Pchar        abnf.Operator
	Query        abnf.Operator
	Fragment     abnf.Operator
	PctEncoded   abnf.Operator
	Unreserved   abnf.Operator
	Reserved     abnf.Operator
	GenDelims    abnf.Operator
	SubDelims    abnf.Operator
}

var operators = sync.OnceValue(newOperatorSet)

// Operators returns the shared, immutable set of RFC 3986 operators.
func Operators() *OperatorSet { return operators() }

func oneOf(key, chars string) abnf.Operator {
	ops := make([]abnf.Operator, len(chars))
	for i := range len(chars) {
		ops[i] = rfc4234.Byte(chars[i:i+1], chars[i])
	}
	return abnf.Alt(key, ops[0], ops[1:]...)
}

func newOperatorSet() *OperatorSet {
	core := rfc4234.Operators()
	ch := rfc4234.Byte
	rng := rfc4234.ByteRange

	ops := new(OperatorSet)

	ops.GenDelims = oneOf("gen-delims", ":/?#[]@")
	ops.SubDelims = oneOf("sub-delims", "!$&'()*+,;=")
	ops.Reserved = abnf.Alt("reserved", ops.GenDelims, ops.SubDelims)
	ops.Unreserved = abnf.Alt("unreserved", core.ALPHA, core.DIGIT, oneOf("-._~", "-._~"))
	ops.PctEncoded = abnf.Concat("pct-encoded", ch("%", '%'), core.HEXDIG, core.HEXDIG)

	colon := ch(":", ':')
	slash := ch("/", '/')
	at := ch("@", '@')

	ops.Pchar = abnf.Alt("pchar", ops.Unreserved, ops.PctEncoded, ops.SubDelims, colon, at)
	ops.Query = abnf.Repeat0Inf("query", abnf.Alt("pchar / \"/\" / \"?\"", ops.Pchar, slash, ch("?", '?')))
	ops.Fragment = abnf.Repeat0Inf("fragment", abnf.Alt("pchar / \"/\" / \"?\"", ops.Pchar, slash, ch("?", '?')))

	ops.Segment = abnf.Repeat0Inf("segment", ops.Pchar)
	ops.SegmentNz = abnf.Repeat1Inf("segment-nz", ops.Pchar)
	ops.SegmentNzNc = abnf.Repeat1Inf(
		"segment-nz-nc",
		abnf.Alt("unreserved / pct-encoded / sub-delims / \"@\"", ops.Unreserved, ops.PctEncoded, ops.SubDelims, at),
	)
	slashSegments := abnf.Repeat0Inf("*(\"/\" segment)", abnf.Concat("\"/\" segment", slash, ops.Segment))
	ops.PathAbempty = abnf.Repeat0Inf("path-abempty", abnf.Concat("\"/\" segment", slash, ops.Segment))
	ops.PathAbsolute = abnf.Concat(
		"path-absolute",
		slash,
		abnf.Optional("[segment-nz *(\"/\" segment)]", abnf.Concat("segment-nz *(\"/\" segment)", ops.SegmentNz, slashSegments)),
	)
	ops.PathNoscheme = abnf.Concat("path-noscheme", ops.SegmentNzNc, slashSegments)
	ops.PathRootless = abnf.Concat("path-rootless", ops.SegmentNz, slashSegments)

	// dec-octet = DIGIT / %x31-39 DIGIT / "1" 2DIGIT / "2" %x30-34 DIGIT / "25" %x30-35
	ops.DecOctet = abnf.Alt(
		"dec-octet",
		core.DIGIT,
		abnf.Concat("%x31-39 DIGIT", rng("%x31-39", 0x31, 0x39), core.DIGIT),
		abnf.Concat("\"1\" 2DIGIT", ch("1", '1'), core.DIGIT, core.DIGIT),
		abnf.Concat("\"2\" %x30-34 DIGIT", ch("2", '2'), rng("%x30-34", 0x30, 0x34), core.DIGIT),
		abnf.Concat("\"25\" %x30-35", ch("2", '2'), ch("5", '5'), rng("%x30-35", 0x30, 0x35)),
	)
	dot := ch(".", '.')
	ops.IPv4address = abnf.Concat(
		"IPv4address",
		ops.DecOctet, dot, ops.DecOctet, dot, ops.DecOctet, dot, ops.DecOctet,
	)

	ops.H16 = abnf.Repeat("h16", 1, 4, core.HEXDIG)
	ops.Ls32 = abnf.Alt("ls32", abnf.Concat("h16 \":\" h16", ops.H16, colon, ops.H16), ops.IPv4address)
	h16c := abnf.Concat("h16 \":\"", ops.H16, colon)
	dcolon := abnf.Concat("\"::\"", colon, colon)
	// [ *n( h16 ":" ) h16 ]
	head := func(n uint) abnf.Operator {
		return abnf.Optional(
			fmt.Sprintf("[*%d(h16 \":\") h16]", n),
			abnf.Concat(
				fmt.Sprintf("*%d(h16 \":\") h16", n),
				abnf.Repeat(fmt.Sprintf("*%d(h16 \":\")", n), 0, n, h16c),
				ops.H16,
			),
		)
	}
	tail := func(n uint) abnf.Operator {
		return abnf.RepeatN(fmt.Sprintf("%d(h16 \":\")", n), n, h16c)
	}
	ops.IPv6address = abnf.Alt(
		"IPv6address",
		abnf.Concat("6(h16 \":\") ls32", tail(6), ops.Ls32),
		abnf.Concat("\"::\" 5(h16 \":\") ls32", dcolon, tail(5), ops.Ls32),
		abnf.Concat("[h16] \"::\" 4(h16 \":\") ls32", abnf.Optional("[h16]", ops.H16), dcolon, tail(4), ops.Ls32),
		abnf.Concat("[*1(h16 \":\") h16] \"::\" 3(h16 \":\") ls32", head(1), dcolon, tail(3), ops.Ls32),
		abnf.Concat("[*2(h16 \":\") h16] \"::\" 2(h16 \":\") ls32", head(2), dcolon, tail(2), ops.Ls32),
		abnf.Concat("[*3(h16 \":\") h16] \"::\" h16 \":\" ls32", head(3), dcolon, h16c, ops.Ls32),
		abnf.Concat("[*4(h16 \":\") h16] \"::\" ls32", head(4), dcolon, ops.Ls32),
		abnf.Concat("[*5(h16 \":\") h16] \"::\" h16", head(5), dcolon, ops.H16),
		abnf.Concat("[*6(h16 \":\") h16] \"::\"", head(6), dcolon),
	)
	// IPvFuture = "v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" )
	ops.IPvFuture = abnf.Concat(
		"IPvFuture",
		abnf.Alt("v", ch("v", 'v'), ch("V", 'V')),
		abnf.Repeat1Inf("1*HEXDIG", core.HEXDIG),
		dot,
		abnf.Repeat1Inf(
			"1*(unreserved / sub-delims / \":\")",
			abnf.Alt("unreserved / sub-delims / \":\"", ops.Unreserved, ops.SubDelims, colon),
		),
	)
	ops.IPLiteral = abnf.Concat(
		"IP-literal",
		ch("[", '['),
		abnf.Alt("IPv6address / IPvFuture", ops.IPv6address, ops.IPvFuture),
		ch("]", ']'),
	)
	ops.RegName = abnf.Repeat0Inf(
		"reg-name",
		abnf.Alt("unreserved / pct-encoded / sub-delims", ops.Unreserved, ops.PctEncoded, ops.SubDelims),
	)
	ops.Host = abnf.Alt("host", ops.IPLiteral, ops.IPv4address, ops.RegName)
	ops.Port = abnf.Repeat0Inf("port", core.DIGIT)
	ops.Userinfo = abnf.Repeat0Inf(
		"userinfo",
		abnf.Alt("unreserved / pct-encoded / sub-delims / \":\"", ops.Unreserved, ops.PctEncoded, ops.SubDelims, colon),
	)
	ops.Authority = abnf.Concat(
		"authority",
		abnf.Optional("[userinfo \"@\"]", abnf.Concat("userinfo \"@\"", ops.Userinfo, at)),
		ops.Host,
		abnf.Optional("[\":\" port]", abnf.Concat("\":\" port", colon, ops.Port)),
	)

	// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
	ops.Scheme = abnf.Concat(
		"scheme",
		core.ALPHA,
		abnf.Repeat0Inf("*(ALPHA / DIGIT / \"+\" / \"-\" / \".\")", abnf.Alt("ALPHA / DIGIT / \"+\" / \"-\" / \".\"", core.ALPHA, core.DIGIT, oneOf("+-.", "+-."))),
	)

	dslash := abnf.Concat("\"//\"", slash, slash)
	netPath := abnf.Concat("\"//\" authority path-abempty", dslash, ops.Authority, ops.PathAbempty)
	// path-empty is expressed by the optional wrappers below
	ops.HierPart = abnf.Alt("hier-part", netPath, ops.PathAbsolute, ops.PathRootless)
	ops.RelativePart = abnf.Alt("relative-part", netPath, ops.PathAbsolute, ops.PathNoscheme)

	optQuery := abnf.Optional("[\"?\" query]", abnf.Concat("\"?\" query", ch("?", '?'), ops.Query))
	optFragment := abnf.Optional("[\"#\" fragment]", abnf.Concat("\"#\" fragment", ch("#", '#'), ops.Fragment))

	ops.URI = abnf.Concat(
		"URI",
		ops.Scheme,
		colon,
		abnf.Optional("[hier-part]", ops.HierPart),
		optQuery,
		optFragment,
	)
	ops.AbsoluteURI = abnf.Concat(
		"absolute-URI",
		ops.Scheme,
		colon,
		abnf.Optional("[hier-part]", ops.HierPart),
		optQuery,
	)
	ops.RelativeRef = abnf.Concat(
		"relative-ref",
		abnf.Optional("[relative-part]", ops.RelativePart),
		optQuery,
		optFragment,
	)
	ops.URIReference = abnf.Alt("URI-reference", ops.URI, ops.RelativeRef)
	return ops
}
