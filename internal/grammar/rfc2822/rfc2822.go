// Package rfc2822 implements the addr-spec part of the Internet Message Format grammar (RFC 2822 section 3).
//
// The obs-* rules are defined and exported, but none of them takes part in the active alternations.
package rfc2822

import (
	"sync"

	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gosdp/internal/grammar/rfc4234"
)

// OperatorSet holds the RFC 2822 operators.
type OperatorSet struct {
	NOWSCTL      abnf.Operator
	Text         abnf.Operator
	QuotedPair   abnf.Operator
	FWS          abnf.Operator
	Ctext        abnf.Operator
	Ccontent     abnf.Operator
	Comment      abnf.Operator
	CFWS         abnf.Operator
	Atext        abnf.Operator
	Atom         abnf.Operator
	DotAtom      abnf.Operator
	DotAtomText  abnf.Operator
	Qtext        abnf.Operator
	Qcontent     abnf.Operator
	QuotedString abnf.Operator
	Word         abnf.Operator
	AddrSpec     abnf.Operator
	LocalPart    abnf.Operator
	Domain       abnf.Operator
	DomainLit    abnf.Operator
	Dcontent     abnf.Operator
	Dtext        abnf.Operator

	ObsQP        abnf.Operator
	ObsText      abnf.Operator
	ObsChar      abnf.Operator
	ObsFWS       abnf.Operator
	ObsLocalPart abnf.Operator
	ObsDomain    abnf.Operator
}

var operators = sync.OnceValue(newOperatorSet)

// Operators returns the shared, immutable set of RFC 2822 operators.
func Operators() *OperatorSet { return operators() }

func newOperatorSet() *OperatorSet {
	core := rfc4234.Operators()
	ch := rfc4234.Byte
	rng := rfc4234.ByteRange

	ops := new(OperatorSet)

	// NO-WS-CTL = %d1-8 / %d11 / %d12 / %d14-31 / %d127
	ops.NOWSCTL = abnf.Alt(
		"NO-WS-CTL",
		rng("%d1-8", 1, 8),
		rng("%d11-12", 11, 12),
		rng("%d14-31", 14, 31),
		ch("%d127", 127),
	)
	// text = %d1-9 / %d11 / %d12 / %d14-127
	ops.Text = abnf.Alt(
		"text",
		rng("%d1-9", 1, 9),
		rng("%d11-12", 11, 12),
		rng("%d14-127", 14, 127),
	)
	ops.QuotedPair = abnf.Concat("quoted-pair", ch("\\", '\\'), ops.Text)

	// FWS = ([*WSP CRLF] 1*WSP)
	ops.FWS = abnf.Concat(
		"FWS",
		abnf.Optional(
			"[*WSP CRLF]",
			abnf.Concat("*WSP CRLF", abnf.Repeat0Inf("*WSP", core.WSP), core.CRLF),
		),
		abnf.Repeat1Inf("1*WSP", core.WSP),
	)

	ops.Ctext = abnf.Alt(
		"ctext",
		ops.NOWSCTL,
		rng("%d33-39", 33, 39),
		rng("%d42-91", 42, 91),
		rng("%d93-126", 93, 126),
	)

	var comment abnf.Operator
	commentRef := func(in []byte, pos uint, ns *abnf.Nodes) error {
		return comment(in, pos, ns) //errtrace:skip
	}
	ops.Ccontent = abnf.Alt("ccontent", ops.Ctext, ops.QuotedPair, commentRef)
	// comment = "(" *([FWS] ccontent) [FWS] ")"
	comment = abnf.Concat(
		"comment",
		ch("(", '('),
		abnf.Repeat0Inf(
			"*([FWS] ccontent)",
			abnf.Concat("[FWS] ccontent", abnf.Optional("[FWS]", ops.FWS), ops.Ccontent),
		),
		abnf.Optional("[FWS]", ops.FWS),
		ch(")", ')'),
	)
	ops.Comment = comment

	// CFWS = *([FWS] comment) (([FWS] comment) / FWS)
	fwsComment := abnf.Concat("[FWS] comment", abnf.Optional("[FWS]", ops.FWS), ops.Comment)
	ops.CFWS = abnf.Concat(
		"CFWS",
		abnf.Repeat0Inf("*([FWS] comment)", fwsComment),
		abnf.Alt("([FWS] comment) / FWS", fwsComment, ops.FWS),
	)
	optCFWS := abnf.Optional("[CFWS]", ops.CFWS)

	ops.Atext = abnf.Alt(
		"atext",
		core.ALPHA,
		core.DIGIT,
		ch("!", '!'),
		rng("#-'", '#', '\''),
		rng("*-+", '*', '+'),
		ch("-", '-'),
		ch("/", '/'),
		ch("=", '='),
		ch("?", '?'),
		rng("^-`", '^', '`'),
		rng("{-~", '{', '~'),
	)
	ops.Atom = abnf.Concat("atom", optCFWS, abnf.Repeat1Inf("1*atext", ops.Atext), optCFWS)
	ops.DotAtomText = abnf.Concat(
		"dot-atom-text",
		abnf.Repeat1Inf("1*atext", ops.Atext),
		abnf.Repeat0Inf(
			"*(\".\" 1*atext)",
			abnf.Concat("\".\" 1*atext", ch(".", '.'), abnf.Repeat1Inf("1*atext", ops.Atext)),
		),
	)
	ops.DotAtom = abnf.ConcatAll("dot-atom", optCFWS, ops.DotAtomText, optCFWS)

	ops.Qtext = abnf.Alt(
		"qtext",
		ops.NOWSCTL,
		ch("%d33", 33),
		rng("%d35-91", 35, 91),
		rng("%d93-126", 93, 126),
	)
	ops.Qcontent = abnf.Alt("qcontent", ops.Qtext, ops.QuotedPair)
	// quoted-string = [CFWS] DQUOTE *([FWS] qcontent) [FWS] DQUOTE [CFWS]
	ops.QuotedString = abnf.ConcatAll(
		"quoted-string",
		optCFWS,
		core.DQUOTE,
		abnf.Repeat0Inf(
			"*([FWS] qcontent)",
			abnf.Concat("[FWS] qcontent", abnf.Optional("[FWS]", ops.FWS), ops.Qcontent),
		),
		abnf.Optional("[FWS]", ops.FWS),
		core.DQUOTE,
		optCFWS,
	)
	ops.Word = abnf.Alt("word", ops.Atom, ops.QuotedString)

	ops.Dtext = abnf.Alt(
		"dtext",
		ops.NOWSCTL,
		rng("%d33-90", 33, 90),
		rng("%d94-126", 94, 126),
	)
	ops.Dcontent = abnf.Alt("dcontent", ops.Dtext, ops.QuotedPair)
	// domain-literal = [CFWS] "[" *([FWS] dcontent) [FWS] "]" [CFWS]
	ops.DomainLit = abnf.ConcatAll(
		"domain-literal",
		optCFWS,
		ch("[", '['),
		abnf.Repeat0Inf(
			"*([FWS] dcontent)",
			abnf.Concat("[FWS] dcontent", abnf.Optional("[FWS]", ops.FWS), ops.Dcontent),
		),
		abnf.Optional("[FWS]", ops.FWS),
		ch("]", ']'),
		optCFWS,
	)

	// The trailing [CFWS] alternatives are all kept, so an enclosing rule can
	// still match a comment that follows the address.
	ops.LocalPart = abnf.Alt("local-part", ops.DotAtom, ops.QuotedString)
	ops.Domain = abnf.Alt("domain", ops.DotAtom, ops.DomainLit)
	ops.AddrSpec = abnf.ConcatAll("addr-spec", ops.LocalPart, ch("@", '@'), ops.Domain)

	// obsolete syntax, kept out of the alternations above
	ops.ObsQP = abnf.Concat("obs-qp", ch("\\", '\\'), rng("%d0-127", 0, 127))
	ops.ObsChar = abnf.Alt(
		"obs-char",
		rng("%d0-9", 0, 9),
		rng("%d11-12", 11, 12),
		rng("%d14-127", 14, 127),
	)
	// obs-text = *LF *CR *(obs-char *LF *CR)
	ops.ObsText = abnf.Concat(
		"obs-text",
		abnf.Repeat0Inf("*LF", core.LF),
		abnf.Repeat0Inf("*CR", core.CR),
		abnf.Repeat0Inf(
			"*(obs-char *LF *CR)",
			abnf.Concat(
				"obs-char *LF *CR",
				ops.ObsChar,
				abnf.Repeat0Inf("*LF", core.LF),
				abnf.Repeat0Inf("*CR", core.CR),
			),
		),
	)
	// obs-FWS = 1*WSP *(CRLF 1*WSP)
	ops.ObsFWS = abnf.Concat(
		"obs-FWS",
		abnf.Repeat1Inf("1*WSP", core.WSP),
		abnf.Repeat0Inf(
			"*(CRLF 1*WSP)",
			abnf.Concat("CRLF 1*WSP", core.CRLF, abnf.Repeat1Inf("1*WSP", core.WSP)),
		),
	)
	ops.ObsLocalPart = abnf.Concat(
		"obs-local-part",
		ops.Word,
		abnf.Repeat0Inf("*(\".\" word)", abnf.Concat("\".\" word", ch(".", '.'), ops.Word)),
	)
	ops.ObsDomain = abnf.Concat(
		"obs-domain",
		ops.Atom,
		abnf.Repeat0Inf("*(\".\" atom)", abnf.Concat("\".\" atom", ch(".", '.'), ops.Atom)),
	)
	return ops
}
