// Package rfc4566 implements the SDP grammar (RFC 4566 section 9).
//
// Generic rules follow the RFC closely. Every field operator matches exactly one
// line, including its "x=" prefix and the line terminator (CRLF or a bare LF).
package rfc4566

import (
	"sync"

	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gosdp/internal/grammar/rfc2822"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc3986"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc4234"
)

// OperatorSet holds the SDP operators.
type OperatorSet struct {
	// field lines
	ProtoVersion       abnf.Operator
	OriginField        abnf.Operator
	SessionNameField   abnf.Operator
	InformationField   abnf.Operator
	URIField           abnf.Operator
	EmailField         abnf.Operator
	PhoneField         abnf.Operator
	ConnectionField    abnf.Operator
	BandwidthField     abnf.Operator
	TimeField          abnf.Operator
	RepeatField        abnf.Operator
	ZoneAdjustments    abnf.Operator
	KeyField           abnf.Operator
	AttributeField     abnf.Operator
	MediaField         abnf.Operator
	EOL                abnf.Operator
	EmailAddress       abnf.Operator
	AddressAndComment  abnf.Operator
	DispnameAndAddress abnf.Operator
	PhoneNumber        abnf.Operator
	PhoneAndComment    abnf.Operator
	DispnameAndPhone   abnf.Operator
	Phone              abnf.Operator
	ConnectionAddress  abnf.Operator
	KeyType            abnf.Operator
	Base64             abnf.Operator
	Attribute          abnf.Operator
	Proto              abnf.Operator
	TypedTime          abnf.Operator
	RepeatInterval     abnf.Operator
	StartTime          abnf.Operator
	Time               abnf.Operator

	// generic rules
	UnicastAddress   abnf.Operator
	MulticastAddress abnf.Operator
	IP4Multicast     abnf.Operator
	IP4Address       abnf.Operator
	IP6Multicast     abnf.Operator
	IP6Address       abnf.Operator
	Hexpart          abnf.Operator
	Hexseq           abnf.Operator
	Hex4             abnf.Operator
	FQDN             abnf.Operator
	ExtnAddr         abnf.Operator
	TTL              abnf.Operator
	DecimalUchar     abnf.Operator
	Token            abnf.Operator
	TokenChar        abnf.Operator
	ByteString       abnf.Operator
	NonWSString      abnf.Operator
	Text             abnf.Operator
	Integer          abnf.Operator
	EmailSafe        abnf.Operator
	AlphaNumeric     abnf.Operator
	POSDIGIT         abnf.Operator
	FixedLenTimeUnit abnf.Operator
}

var operators = sync.OnceValue(newOperatorSet)

// Operators returns the shared, immutable set of SDP operators.
func Operators() *OperatorSet { return operators() }

// literal returns a case-sensitive operator matching s.
func literal(key, s string) abnf.Operator {
	return abnf.LiteralCS(key, []byte(s))
}

func newOperatorSet() *OperatorSet {
	core := rfc4234.Operators()
	uri := rfc3986.Operators()
	addr := rfc2822.Operators()
	ch := rfc4234.Byte
	rng := rfc4234.ByteRange

	ops := new(OperatorSet)

	sp := core.SP
	slash := ch("/", '/')
	colon := ch(":", ':')
	dot := ch(".", '.')

	ops.POSDIGIT = rng("POS-DIGIT", 0x31, 0x39)
	ops.AlphaNumeric = abnf.Alt("alpha-numeric", core.ALPHA, core.DIGIT)
	ops.Integer = abnf.Concat("integer", ops.POSDIGIT, abnf.Repeat0Inf("*DIGIT", core.DIGIT))
	ops.EmailSafe = abnf.Alt(
		"email-safe",
		rng("%x01-09", 0x01, 0x09),
		rng("%x0B-0C", 0x0B, 0x0C),
		rng("%x0E-27", 0x0E, 0x27),
		rng("%x2A-3B", 0x2A, 0x3B),
		ch("%x3D", 0x3D),
		rng("%x3F-FF", 0x3F, 0xFF),
	)
	ops.TokenChar = abnf.Alt(
		"token-char",
		ch("%x21", 0x21),
		rng("%x23-27", 0x23, 0x27),
		rng("%x2A-2B", 0x2A, 0x2B),
		rng("%x2D-2E", 0x2D, 0x2E),
		rng("%x30-39", 0x30, 0x39),
		rng("%x41-5A", 0x41, 0x5A),
		rng("%x5E-7E", 0x5E, 0x7E),
	)
	ops.Token = abnf.Repeat1Inf("token", ops.TokenChar)
	byteChar := abnf.Alt(
		"%x01-09 / %x0B-0C / %x0E-FF",
		rng("%x01-09", 0x01, 0x09),
		rng("%x0B-0C", 0x0B, 0x0C),
		rng("%x0E-FF", 0x0E, 0xFF),
	)
	ops.ByteString = abnf.Repeat1Inf("byte-string", byteChar)
	ops.Text = abnf.Repeat1Inf("text", byteChar)
	nonWSChar := abnf.Alt("VCHAR / %x80-FF", core.VCHAR, rng("%x80-FF", 0x80, 0xFF))
	ops.NonWSString = abnf.Repeat1Inf("non-ws-string", nonWSChar)

	// decimal-uchar = DIGIT / POS-DIGIT DIGIT / ("1" 2*(DIGIT)) /
	//                 ("2" ("0"/"1"/"2"/"3"/"4") DIGIT) / ("2" "5" ("0"/"1"/"2"/"3"/"4"/"5"))
	ops.DecimalUchar = abnf.Alt(
		"decimal-uchar",
		core.DIGIT,
		abnf.Concat("POS-DIGIT DIGIT", ops.POSDIGIT, core.DIGIT),
		abnf.Concat("\"1\" 2DIGIT", ch("1", '1'), core.DIGIT, core.DIGIT),
		abnf.Concat("\"2\" %x30-34 DIGIT", ch("2", '2'), rng("%x30-34", 0x30, 0x34), core.DIGIT),
		abnf.Concat("\"25\" %x30-35", ch("2", '2'), ch("5", '5'), rng("%x30-35", 0x30, 0x35)),
	)
	dotUchar3 := abnf.RepeatN("3(\".\" decimal-uchar)", 3, abnf.Concat("\".\" decimal-uchar", dot, ops.DecimalUchar))

	// ttl = (POS-DIGIT *2DIGIT) / "0"
	ops.TTL = abnf.Alt(
		"ttl",
		abnf.Concat("POS-DIGIT *2DIGIT", ops.POSDIGIT, abnf.Repeat("*2DIGIT", 0, 2, core.DIGIT)),
		ch("0", '0'),
	)
	addrCount := abnf.Optional("[\"/\" integer]", abnf.Concat("\"/\" integer", slash, ops.Integer))

	ops.IP4Address = abnf.Concat("IP4-address", ops.DecimalUchar, dotUchar3)
	// m1 = ("22" ("4"/"5"/"6"/"7"/"8"/"9")) / ("23" DIGIT)
	m1 := abnf.Alt(
		"m1",
		abnf.Concat("\"22\" %x34-39", ch("2", '2'), ch("2", '2'), rng("%x34-39", 0x34, 0x39)),
		abnf.Concat("\"23\" DIGIT", ch("2", '2'), ch("3", '3'), core.DIGIT),
	)
	ops.IP4Multicast = abnf.Concat(
		"IP4-multicast",
		m1,
		dotUchar3,
		slash,
		ops.TTL,
		addrCount,
	)

	ops.Hex4 = abnf.Repeat("hex4", 1, 4, core.HEXDIG)
	colonHex4 := abnf.Repeat0Inf("*(\":\" hex4)", abnf.Concat("\":\" hex4", colon, ops.Hex4))
	ops.Hexseq = abnf.ConcatAll("hexseq", ops.Hex4, colonHex4)
	dcolon := abnf.Concat("\"::\"", colon, colon)
	// hexpart = hexseq / hexseq "::" [ hexseq ] / "::" [ hexseq ]
	ops.Hexpart = abnf.Alt(
		"hexpart",
		ops.Hexseq,
		abnf.ConcatAll("hexseq \"::\" [hexseq]", ops.Hexseq, dcolon, abnf.Optional("[hexseq]", ops.Hexseq)),
		abnf.ConcatAll("\"::\" [hexseq]", dcolon, abnf.Optional("[hexseq]", ops.Hexseq)),
	)
	ops.IP6Address = abnf.Concat(
		"IP6-address",
		ops.Hexpart,
		abnf.Optional("[\":\" IP4-address]", abnf.Concat("\":\" IP4-address", colon, ops.IP4Address)),
	)
	// The multicast prefix is checked structurally: the first group must start with "FF".
	ffHex4 := abnf.Concat(
		"ff-hex4",
		abnf.Alt("F", ch("F", 'F'), ch("f", 'f')),
		abnf.Alt("F", ch("F", 'F'), ch("f", 'f')),
		abnf.Repeat("*2HEXDIG", 0, 2, core.HEXDIG),
	)
	ffHexseq := abnf.ConcatAll("ff-hexseq", ffHex4, colonHex4)
	ops.IP6Multicast = abnf.Concat(
		"IP6-multicast",
		abnf.Alt(
			"ff-hexpart",
			ffHexseq,
			abnf.ConcatAll("ff-hexseq \"::\" [hexseq]", ffHexseq, dcolon, abnf.Optional("[hexseq]", ops.Hexseq)),
		),
		addrCount,
	)

	fqdnChar := abnf.Alt("alpha-numeric / \"-\" / \".\"", ops.AlphaNumeric, ch("-", '-'), dot)
	ops.FQDN = abnf.Concat(
		"FQDN",
		abnf.RepeatN("4(alpha-numeric / \"-\" / \".\")", 4, fqdnChar),
		abnf.Repeat0Inf("*(alpha-numeric / \"-\" / \".\")", fqdnChar),
	)
	ops.ExtnAddr = abnf.Repeat1Inf("extn-addr", nonWSChar)

	ops.UnicastAddress = abnf.Alt("unicast-address", ops.IP4Address, ops.IP6Address, ops.FQDN, ops.ExtnAddr)
	ops.MulticastAddress = abnf.Alt("multicast-address", ops.IP4Multicast, ops.IP6Multicast, ops.FQDN, ops.ExtnAddr)
	ops.ConnectionAddress = abnf.Alt("connection-address", ops.MulticastAddress, ops.UnicastAddress)

	ops.EOL = abnf.Alt("EOL", core.CRLF, core.LF)
	prefix := func(c byte) abnf.Operator {
		return abnf.Concat(string(c)+"=", ch(string(c), c), ch("=", '='))
	}

	// v=
	ops.ProtoVersion = abnf.Concat(
		"proto-version",
		prefix('v'),
		abnf.Repeat1Inf("version", core.DIGIT),
		ops.EOL,
	)

	// o=
	ops.OriginField = abnf.Concat(
		"origin-field",
		prefix('o'),
		abnf.Repeat1Inf("username", nonWSChar),
		sp,
		abnf.Repeat1Inf("sess-id", core.DIGIT),
		sp,
		abnf.Repeat1Inf("sess-version", core.DIGIT),
		sp,
		abnf.Repeat1Inf("nettype", ops.TokenChar),
		sp,
		abnf.Repeat1Inf("addrtype", ops.TokenChar),
		sp,
		ops.UnicastAddress,
		ops.EOL,
	)

	// s=, i=
	ops.SessionNameField = abnf.Concat("session-name-field", prefix('s'), ops.Text, ops.EOL)
	ops.InformationField = abnf.Concat("information-field", prefix('i'), ops.Text, ops.EOL)

	// u=
	ops.URIField = abnf.Concat("uri-field", prefix('u'), uri.URIReference, ops.EOL)

	// e=
	ops.AddressAndComment = abnf.Concat(
		"address-and-comment",
		addr.AddrSpec,
		abnf.Repeat1Inf("1*SP", sp),
		ch("(", '('),
		abnf.Repeat1Inf("comment-text", ops.EmailSafe),
		ch(")", ')'),
	)
	ops.DispnameAndAddress = abnf.Concat(
		"dispname-and-address",
		abnf.Repeat1Inf("display-name", ops.EmailSafe),
		abnf.Repeat1Inf("1*SP", sp),
		ch("<", '<'),
		addr.AddrSpec,
		ch(">", '>'),
	)
	// A bare addr-spec may carry the same trailing comment as CFWS, so the
	// comment forms are tried first and win.
	ops.EmailAddress = abnf.AltFirst("email-address", ops.AddressAndComment, ops.DispnameAndAddress, addr.AddrSpec)
	ops.EmailField = abnf.Concat("email-field", prefix('e'), ops.EmailAddress, ops.EOL)

	// p=
	// phone = ["+"] DIGIT 1*(SP / "-" / DIGIT)
	ops.Phone = abnf.Concat(
		"phone",
		abnf.Optional("[\"+\"]", ch("+", '+')),
		core.DIGIT,
		abnf.Repeat1Inf("1*(SP / \"-\" / DIGIT)", abnf.Alt("SP / \"-\" / DIGIT", sp, ch("-", '-'), core.DIGIT)),
	)
	ops.PhoneAndComment = abnf.Concat(
		"phone-and-comment",
		ops.Phone,
		abnf.Repeat0Inf("*SP", sp),
		ch("(", '('),
		abnf.Repeat1Inf("comment-text", ops.EmailSafe),
		ch(")", ')'),
	)
	ops.DispnameAndPhone = abnf.Concat(
		"dispname-and-phone",
		abnf.Repeat1Inf("display-name", ops.EmailSafe),
		ch("<", '<'),
		ops.Phone,
		ch(">", '>'),
	)
	ops.PhoneNumber = abnf.Alt("phone-number", ops.PhoneAndComment, ops.DispnameAndPhone, ops.Phone)
	ops.PhoneField = abnf.Concat("phone-field", prefix('p'), ops.PhoneNumber, ops.EOL)

	// c=
	ops.ConnectionField = abnf.Concat(
		"connection-field",
		prefix('c'),
		abnf.Repeat1Inf("nettype", ops.TokenChar),
		sp,
		abnf.Repeat1Inf("addrtype", ops.TokenChar),
		sp,
		ops.ConnectionAddress,
		ops.EOL,
	)

	// b=
	ops.BandwidthField = abnf.Concat(
		"bandwidth-field",
		prefix('b'),
		abnf.Repeat1Inf("bwtype", ops.TokenChar),
		colon,
		abnf.Repeat1Inf("bandwidth", core.DIGIT),
		ops.EOL,
	)

	// t=
	// time = POS-DIGIT 9*DIGIT
	ops.Time = abnf.Concat(
		"time",
		ops.POSDIGIT,
		abnf.RepeatN("9DIGIT", 9, core.DIGIT),
		abnf.Repeat0Inf("*DIGIT", core.DIGIT),
	)
	ops.StartTime = abnf.Alt("start-time", ops.Time, ch("0", '0'))
	ops.TimeField = abnf.Concat(
		"time-field",
		prefix('t'),
		ops.StartTime,
		sp,
		abnf.Alt("stop-time", ops.Time, ch("0", '0')),
		ops.EOL,
	)

	// r=
	ops.FixedLenTimeUnit = abnf.Alt("fixed-len-time-unit", ch("d", 'd'), ch("h", 'h'), ch("m", 'm'), ch("s", 's'))
	optUnit := abnf.Optional("[fixed-len-time-unit]", ops.FixedLenTimeUnit)
	ops.RepeatInterval = abnf.Concat(
		"repeat-interval",
		ops.POSDIGIT,
		abnf.Repeat0Inf("*DIGIT", core.DIGIT),
		optUnit,
	)
	ops.TypedTime = abnf.Concat("typed-time", abnf.Repeat1Inf("1*DIGIT", core.DIGIT), optUnit)
	ops.RepeatField = abnf.Concat(
		"repeat-field",
		prefix('r'),
		ops.RepeatInterval,
		sp,
		ops.TypedTime,
		abnf.Repeat1Inf("1*(SP typed-time)", abnf.Concat("SP typed-time", sp, ops.TypedTime)),
		ops.EOL,
	)

	// z=
	zoneAdjustment := abnf.Concat(
		"zone-adjustment",
		ops.Time,
		sp,
		abnf.Optional("[\"-\"]", ch("-", '-')),
		ops.TypedTime,
	)
	ops.ZoneAdjustments = abnf.Concat(
		"zone-adjustments",
		prefix('z'),
		zoneAdjustment,
		abnf.Repeat0Inf("*(SP zone-adjustment)", abnf.Concat("SP zone-adjustment", sp, zoneAdjustment)),
		ops.EOL,
	)

	// k=
	base64Char := abnf.Alt("base64-char", core.ALPHA, core.DIGIT, ch("+", '+'), slash)
	ops.Base64 = abnf.Concat(
		"base64",
		abnf.Repeat0Inf("*base64-unit", abnf.RepeatN("base64-unit", 4, base64Char)),
		abnf.Optional(
			"[base64-pad]",
			abnf.Alt(
				"base64-pad",
				abnf.Concat("2base64-char \"==\"", base64Char, base64Char, ch("=", '='), ch("=", '=')),
				abnf.Concat("3base64-char \"=\"", base64Char, base64Char, base64Char, ch("=", '=')),
			),
		),
	)
	ops.KeyType = abnf.Alt(
		"key-type",
		literal("prompt", "prompt"),
		abnf.Concat("\"clear:\" text", literal("clear:", "clear:"), ops.Text),
		abnf.Concat("\"base64:\" base64", literal("base64:", "base64:"), ops.Base64),
		abnf.Concat("\"uri:\" uri", literal("uri:", "uri:"), uri.URIReference),
	)
	ops.KeyField = abnf.Concat("key-field", prefix('k'), ops.KeyType, ops.EOL)

	// a=
	attField := abnf.Repeat1Inf("att-field", ops.TokenChar)
	ops.Attribute = abnf.Alt(
		"attribute",
		abnf.Concat("att-field \":\" att-value", attField, colon, abnf.Repeat1Inf("att-value", byteChar)),
		attField,
	)
	ops.AttributeField = abnf.Concat("attribute-field", prefix('a'), ops.Attribute, ops.EOL)

	// m=
	ops.Proto = abnf.Concat(
		"proto",
		ops.Token,
		abnf.Repeat0Inf("*(\"/\" token)", abnf.Concat("\"/\" token", slash, ops.Token)),
	)
	ops.MediaField = abnf.Concat(
		"media-field",
		prefix('m'),
		abnf.Repeat1Inf("media", ops.TokenChar),
		sp,
		abnf.Repeat1Inf("port", core.DIGIT),
		abnf.Optional("[\"/\" integer]", abnf.Concat("\"/\" integer", slash, ops.Integer)),
		sp,
		ops.Proto,
		abnf.Repeat1Inf("1*(SP fmt)", abnf.Concat("SP fmt", sp, abnf.Repeat1Inf("fmt", ops.TokenChar))),
		ops.EOL,
	)
	return ops
}
