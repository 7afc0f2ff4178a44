package rfc4234_test

import (
	"testing"

	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gosdp/internal/grammar/rfc4234"
)

func fullMatch(op abnf.Operator, s string) bool {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

func TestOperators(t *testing.T) {
	t.Parallel()

	ops := rfc4234.Operators()
	cases := []struct {
		name string
		op   abnf.Operator
		in   string
		want bool
	}{
		{"SP", ops.SP, " ", true},
		{"SP", ops.SP, "\t", false},
		{"HTAB", ops.HTAB, "\t", true},
		{"CRLF", ops.CRLF, "\r\n", true},
		{"CRLF", ops.CRLF, "\n", false},
		{"CRLF", ops.CRLF, "\r", false},
		{"DIGIT", ops.DIGIT, "7", true},
		{"DIGIT", ops.DIGIT, "a", false},
		{"BIT", ops.BIT, "1", true},
		{"BIT", ops.BIT, "2", false},
		{"HEXDIG", ops.HEXDIG, "F", true},
		{"HEXDIG", ops.HEXDIG, "f", true},
		{"HEXDIG", ops.HEXDIG, "g", false},
		{"ALPHA", ops.ALPHA, "z", true},
		{"ALPHA", ops.ALPHA, "[", false},
		{"VCHAR", ops.VCHAR, "~", true},
		{"VCHAR", ops.VCHAR, " ", false},
		{"CHAR", ops.CHAR, "\x00", false},
		{"CHAR", ops.CHAR, "\x7f", true},
		{"CTL", ops.CTL, "\x7f", true},
		{"CTL", ops.CTL, "\x1f", true},
		{"CTL", ops.CTL, " ", false},
		{"OCTET", ops.OCTET, "\xff", true},
		{"WSP", ops.WSP, "\t", true},
		{"LWSP", ops.LWSP, " \t\r\n ", true},
		{"LWSP", ops.LWSP, " \r\n", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := fullMatch(c.op, c.in); got != c.want {
				t.Errorf("%s match %q = %v, want %v", c.name, c.in, got, c.want)
			}
		})
	}
}

func TestOperators_NoConsumeOnFailure(t *testing.T) {
	t.Parallel()

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := rfc4234.Operators().CRLF([]byte("\rX"), 0, ns); err == nil {
		t.Fatal("CRLF matched \"\\rX\", want error")
	}
	// the failed attempt leaves the input untouched for the next alternative
	if err := rfc4234.Operators().CR([]byte("\rX"), 0, ns); err != nil {
		t.Fatalf("CR error = %v, want nil", err)
	}
	if got := ns.Best().Len(); got != 1 {
		t.Errorf("CR matched %d bytes, want 1", got)
	}
}
