package sdp

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/ioutil"
	"github.com/ghettovoice/gosdp/internal/util"
)

// AddrSpec is an RFC 2822 addr-spec with comments and folding whitespace removed.
//
// LocalPart holds either a dot-atom-text or a quoted string including its quotes.
// Domain holds either a dot-atom-text or a domain literal including its brackets.
type AddrSpec struct {
	LocalPart string `json:"local_part"`
	Domain    string `json:"domain"`
}

// ParseAddrSpec parses an addr-spec.
func ParseAddrSpec(s string) (AddrSpec, error) {
	node, err := grammar.ParseAddrSpec(s)
	if err != nil {
		return AddrSpec{}, errtrace.Wrap(err)
	}
	return addrSpecFromNode(node), nil
}

func addrSpecFromNode(node *abnf.Node) AddrSpec {
	var addr AddrSpec
	if lp, ok := node.GetNode("local-part"); ok {
		if n, ok := lp.GetNode("dot-atom-text"); ok {
			addr.LocalPart = n.String()
		} else {
			addr.LocalPart = enclosed(lp.String(), '"', '"')
		}
	}
	if dn, ok := node.GetNode("domain"); ok {
		if n, ok := dn.GetNode("dot-atom-text"); ok {
			addr.Domain = n.String()
		} else {
			addr.Domain = enclosed(dn.String(), '[', ']')
		}
	}
	return addr
}

// enclosed cuts the CFWS around a quoted string or a domain literal.
func enclosed(s string, open, closing byte) string {
	i := strings.IndexByte(s, open)
	j := strings.LastIndexByte(s, closing)
	if i < 0 || j <= i {
		return s
	}
	return s[i : j+1]
}

// RenderTo writes "local-part@domain" to the provided writer.
func (addr AddrSpec) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	return errtrace.Wrap2(fmt.Fprint(w, addr.LocalPart, "@", addr.Domain))
}

func (addr AddrSpec) Render(opts *RenderOptions) string { return render(addr, opts) }

func (addr AddrSpec) String() string { return addr.Render(nil) }

// Equal compares addresses, the local part is case-sensitive and the domain is not.
func (addr AddrSpec) Equal(val any) bool {
	var other AddrSpec
	switch v := val.(type) {
	case AddrSpec:
		other = v
	case *AddrSpec:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return addr.LocalPart == other.LocalPart && util.EqFold(addr.Domain, other.Domain)
}

func (addr AddrSpec) IsValid() bool {
	return addr.LocalPart != "" && addr.Domain != "" && grammar.IsAddrSpec(addr.String())
}

// Email is an "e=" field.
// At most one of DisplayName and Comment is rendered, DisplayName takes precedence.
type Email struct {
	Addr        AddrSpec `json:"addr"`
	DisplayName string   `json:"display_name,omitempty"`
	Comment     string   `json:"comment,omitempty"`
}

// ParseEmail parses an email-address value
// in one of the forms "addr-spec", "addr-spec (comment)" or "Display Name <addr-spec>".
func ParseEmail(s string) (Email, error) {
	node, err := grammar.ParseEmailAddress(s)
	if err != nil {
		return Email{}, errtrace.Wrap(err)
	}
	return emailFromNode(node), nil
}

func emailFromNode(node *abnf.Node) Email {
	var e Email
	if n, ok := node.GetNode("dispname-and-address"); ok {
		e.DisplayName = strings.TrimRight(grammar.MustGetNode(n, "display-name").String(), " ")
	} else if n, ok := node.GetNode("address-and-comment"); ok {
		e.Comment = grammar.MustGetNode(n, "comment-text").String()
	}
	if n, ok := node.GetNode("addr-spec"); ok {
		e.Addr = addrSpecFromNode(n)
	}
	return e
}

// RenderTo writes the email address to the provided writer.
func (e Email) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	lw := ioutil.GetLineWriter(w, false)
	defer ioutil.FreeLineWriter(lw)
	renderAddr := func(w io.Writer) (int, error) { return errtrace.Wrap2(e.Addr.RenderTo(w, opts)) }
	switch {
	case e.DisplayName != "":
		lw.Print(e.DisplayName, " <").Call(renderAddr).Print(">")
	case e.Comment != "":
		lw.Call(renderAddr).Print(" (", e.Comment, ")")
	default:
		lw.Call(renderAddr)
	}
	return errtrace.Wrap2(lw.Result())
}

func (e Email) Render(opts *RenderOptions) string { return render(e, opts) }

func (e Email) String() string { return e.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the email.
func (e Email) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, e.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(e.String()))
		return
	default:
		type hideMethods Email
		type Email hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Email(e))
		return
	}
}

func (e Email) Clone() Email { return e }

func (e Email) Equal(val any) bool {
	var other Email
	switch v := val.(type) {
	case Email:
		other = v
	case *Email:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return e.Addr.Equal(other.Addr) && e.DisplayName == other.DisplayName && e.Comment == other.Comment
}

// IsValid checks that the rendered email parses back to the same value.
func (e Email) IsValid() bool {
	if !e.Addr.IsValid() {
		return false
	}
	e2, err := ParseEmail(e.String())
	return err == nil && e2.Equal(e)
}

// Phone is a "p=" field.
// At most one of DisplayName and Comment is rendered, DisplayName takes precedence.
type Phone struct {
	Number      string `json:"number"`
	DisplayName string `json:"display_name,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

// ParsePhone parses a phone-number value
// in one of the forms "+1 617 555 6011", "+1 617 555 6011 (comment)" or "Display Name <+1 617 555 6011>".
func ParsePhone(s string) (Phone, error) {
	node, err := grammar.ParsePhoneNumber(s)
	if err != nil {
		return Phone{}, errtrace.Wrap(err)
	}
	return phoneFromNode(node), nil
}

func phoneFromNode(node *abnf.Node) Phone {
	var p Phone
	if n, ok := node.GetNode("dispname-and-phone"); ok {
		p.DisplayName = strings.TrimRight(grammar.MustGetNode(n, "display-name").String(), " ")
	} else if n, ok := node.GetNode("phone-and-comment"); ok {
		p.Comment = grammar.MustGetNode(n, "comment-text").String()
	}
	if n, ok := node.GetNode("phone"); ok {
		p.Number = strings.TrimRight(n.String(), " ")
	}
	return p
}

// RenderTo writes the phone number to the provided writer.
func (p Phone) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	switch {
	case p.DisplayName != "":
		return errtrace.Wrap2(fmt.Fprint(w, p.DisplayName, " <", p.Number, ">"))
	case p.Comment != "":
		return errtrace.Wrap2(fmt.Fprint(w, p.Number, " (", p.Comment, ")"))
	default:
		return errtrace.Wrap2(fmt.Fprint(w, p.Number))
	}
}

func (p Phone) Render(opts *RenderOptions) string { return render(p, opts) }

func (p Phone) String() string { return p.Render(nil) }

func (p Phone) Clone() Phone { return p }

func (p Phone) Equal(val any) bool {
	var other Phone
	switch v := val.(type) {
	case Phone:
		other = v
	case *Phone:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return p == other
}

// IsValid checks that the rendered phone parses back to the same value.
func (p Phone) IsValid() bool {
	if !grammar.IsPhone(p.Number) {
		return false
	}
	p2, err := ParsePhone(p.String())
	return err == nil && p2 == p
}
