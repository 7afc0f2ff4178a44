// Package rfc5245 implements the SDP attribute grammar of ICE (RFC 5245 section 15).
package rfc5245

import (
	"sync"

	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gosdp/internal/grammar/rfc4234"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc4566"
)

// OperatorSet holds the ICE attribute operators.
type OperatorSet struct {
	Candidate abnf.Operator // candidate-attribute without the "candidate:" prefix
	ICEChar   abnf.Operator
	Ufrag     abnf.Operator
	Password  abnf.Operator
}

var operators = sync.OnceValue(newOperatorSet)

// Operators returns the shared, immutable set of ICE operators.
func Operators() *OperatorSet { return operators() }

func newOperatorSet() *OperatorSet {
	core := rfc4234.Operators()
	sdp := rfc4566.Operators()
	sp := core.SP

	ops := new(OperatorSet)
	ops.ICEChar = abnf.Alt("ice-char", core.ALPHA, core.DIGIT, rfc4234.Byte("+", '+'), rfc4234.Byte("/", '/'))
	// ufrag = 4*256ice-char, password = 22*256ice-char
	ops.Ufrag = abnf.Repeat("ufrag", 4, 256, ops.ICEChar)
	ops.Password = abnf.Repeat("password", 22, 256, ops.ICEChar)

	nonWS := abnf.Alt("VCHAR / %x80-FF", core.VCHAR, rfc4234.ByteRange("%x80-FF", 0x80, 0xFF))
	ops.Candidate = abnf.Concat(
		"candidate-value",
		abnf.Repeat("foundation", 1, 32, ops.ICEChar),
		sp,
		abnf.Repeat("component-id", 1, 5, core.DIGIT),
		sp,
		abnf.Repeat1Inf("transport", sdp.TokenChar),
		sp,
		abnf.Repeat("priority", 1, 10, core.DIGIT),
		sp,
		abnf.Concat("connection-address", sdp.UnicastAddress),
		sp,
		abnf.Repeat1Inf("port", core.DIGIT),
		sp,
		abnf.Concat(
			"cand-type",
			abnf.Literal("typ", []byte("typ")),
			sp,
			abnf.Repeat1Inf("candidate-types", sdp.TokenChar),
		),
		abnf.Optional(
			"[SP rel-addr]",
			abnf.Concat(
				"SP rel-addr",
				sp,
				abnf.Concat("rel-addr", abnf.Literal("raddr", []byte("raddr")), sp, abnf.Concat("rel-address", sdp.UnicastAddress)),
			),
		),
		abnf.Optional(
			"[SP rel-port]",
			abnf.Concat(
				"SP rel-port",
				sp,
				abnf.Concat("rel-port", abnf.Literal("rport", []byte("rport")), sp, abnf.Repeat1Inf("rel-port-value", core.DIGIT)),
			),
		),
		abnf.Repeat0Inf(
			"*(SP extension-att-name SP extension-att-value)",
			abnf.Concat(
				"extension",
				sp,
				abnf.Repeat1Inf("extension-att-name", nonWS),
				sp,
				abnf.Repeat1Inf("extension-att-value", nonWS),
			),
		),
	)
	return ops
}
