// Package rfc4234 implements the ABNF core rules (RFC 4234 Appendix B.1).
//
// Every operator either matches a well defined byte range and reports it as a node,
// or fails without reporting anything. Higher grammars rely on this to backtrack freely.
package rfc4234

import (
	"sync"

	"github.com/ghettovoice/abnf"
)

// OperatorSet holds the core rule operators.
type OperatorSet struct {
	ALPHA  abnf.Operator
	BIT    abnf.Operator
	CHAR   abnf.Operator
	CR     abnf.Operator
	CRLF   abnf.Operator
	CTL    abnf.Operator
	DIGIT  abnf.Operator
	DQUOTE abnf.Operator
	HEXDIG abnf.Operator
	HTAB   abnf.Operator
	LF     abnf.Operator
	LWSP   abnf.Operator
	OCTET  abnf.Operator
	SP     abnf.Operator
	VCHAR  abnf.Operator
	WSP    abnf.Operator
}

var operators = sync.OnceValue(newOperatorSet)

// Operators returns the shared, immutable set of core operators.
func Operators() *OperatorSet { return operators() }

// Byte returns an operator matching exactly the byte c (case-sensitive).
func Byte(key string, c byte) abnf.Operator {
	return abnf.Range(key, []byte{c}, []byte{c})
}

// ByteRange returns an operator matching a single byte in the range lo-hi inclusive.
func ByteRange(key string, lo, hi byte) abnf.Operator {
	return abnf.Range(key, []byte{lo}, []byte{hi})
}

func newOperatorSet() *OperatorSet {
	ops := &OperatorSet{
		SP:     Byte("SP", 0x20),
		CR:     Byte("CR", 0x0D),
		LF:     Byte("LF", 0x0A),
		HTAB:   Byte("HTAB", 0x09),
		DQUOTE: Byte("DQUOTE", 0x22),
		CHAR:   ByteRange("CHAR", 0x01, 0x7F),
		VCHAR:  ByteRange("VCHAR", 0x21, 0x7E),
		DIGIT:  ByteRange("DIGIT", 0x30, 0x39),
		BIT:    ByteRange("BIT", 0x30, 0x31),
		OCTET:  ByteRange("OCTET", 0x00, 0xFF),
	}
	ops.CTL = abnf.Alt(
		"CTL",
		ByteRange("%x00-1F", 0x00, 0x1F),
		Byte("%x7F", 0x7F),
	)
	ops.ALPHA = abnf.Alt(
		"ALPHA",
		ByteRange("%x41-5A", 0x41, 0x5A),
		ByteRange("%x61-7A", 0x61, 0x7A),
	)
	// ABNF quoted strings are case-insensitive, so "A"-"F" covers lower case too.
	ops.HEXDIG = abnf.Alt(
		"HEXDIG",
		ops.DIGIT,
		ByteRange("%x41-46", 0x41, 0x46),
		ByteRange("%x61-66", 0x61, 0x66),
	)
	ops.WSP = abnf.Alt("WSP", ops.SP, ops.HTAB)
	ops.CRLF = abnf.Concat("CRLF", ops.CR, ops.LF)
	ops.LWSP = abnf.Repeat0Inf(
		"LWSP",
		abnf.Alt(
			"WSP / CRLF WSP",
			ops.WSP,
			abnf.Concat("CRLF WSP", ops.CRLF, ops.WSP),
		),
	)
	return ops
}
