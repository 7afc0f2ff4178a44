package ice

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/ioutil"
	"github.com/ghettovoice/gosdp/internal/types"
	"github.com/ghettovoice/gosdp/internal/util"
)

// Candidate types.
const (
	TypeHost  = "host"
	TypeSrflx = "srflx"
	TypePrflx = "prflx"
	TypeRelay = "relay"
)

// Extension is an extension attribute of a candidate.
type Extension struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Candidate is the value of a "candidate" attribute (RFC 5245 section 15.1).
//
// Related holds the "raddr" and "rport" sub-fields, it is zero if they are absent.
type Candidate struct {
	Foundation string      `json:"foundation"`
	Component  uint16      `json:"component"`
	Transport  string      `json:"transport"`
	Priority   uint32      `json:"priority"`
	Address    string      `json:"address"`
	Port       uint16      `json:"port"`
	Type       string      `json:"type"`
	Related    Addr        `json:"related,omitzero"`
	Extensions []Extension `json:"extensions,omitempty"`
}

// ParseCandidate parses a candidate attribute value.
// The value may be given with or without the leading "candidate:".
func ParseCandidate(s string) (*Candidate, error) {
	if len(s) >= 10 && util.EqFold(s[:10], "candidate:") {
		s = s[10:]
	}
	node, err := grammar.ParseCandidate(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(candidateFromNode(node))
}

func candidateFromNode(node *abnf.Node) (*Candidate, error) {
	c := &Candidate{
		Foundation: grammar.MustGetNode(node, "foundation").String(),
		Transport:  grammar.MustGetNode(node, "transport").String(),
		Address:    grammar.MustGetNode(node, "connection-address").String(),
		Type:       grammar.MustGetNode(node, "candidate-types").String(),
	}

	comp, err := grammar.ParseUint(grammar.MustGetNode(node, "component-id").Value, 16)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c.Component = uint16(comp)
	prio, err := grammar.ParseUint(grammar.MustGetNode(node, "priority").Value, 32)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c.Priority = uint32(prio)
	if c.Port, err = parsePort(grammar.MustGetNode(node, "port").String()); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if !grammar.IsUnicastAddress(c.Address) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrMalformedInput, "invalid candidate address %q", c.Address))
	}

	var (
		raddr, rport       string
		hasRaddr, hasRport bool
	)
	if n, ok := node.GetNode("rel-address"); ok {
		raddr, hasRaddr = n.String(), true
	}
	if n, ok := node.GetNode("rel-port-value"); ok {
		rport, hasRport = n.String(), true
	}
	for _, n := range node.GetNodes("extension") {
		ext := Extension{
			Name:  grammar.MustGetNode(n, "extension-att-name").String(),
			Value: grammar.MustGetNode(n, "extension-att-value").String(),
		}
		// raddr and rport also match the extension rule
		switch {
		case !hasRaddr && !hasRport && len(c.Extensions) == 0 && util.EqFold(ext.Name, "raddr"):
			raddr, hasRaddr = ext.Value, true
			continue
		case !hasRport && len(c.Extensions) == 0 && util.EqFold(ext.Name, "rport"):
			rport, hasRport = ext.Value, true
			continue
		}
		c.Extensions = append(c.Extensions, ext)
	}

	switch {
	case hasRaddr && hasRport:
		p, err := parsePort(rport)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		c.Related = types.HostPort(raddr, p)
	case hasRaddr:
		c.Related = types.Host(raddr)
	case hasRport:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrMalformedInput, "rport without raddr"))
	}
	if hasRaddr && !grammar.IsUnicastAddress(raddr) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrMalformedInput, "invalid related address %q", raddr))
	}
	return c, nil
}

func parsePort(s string) (uint16, error) {
	p, err := grammar.ParseUint(s, 16)
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	return uint16(p), nil
}

// Addr returns the transport address of the candidate.
func (c *Candidate) Addr() Addr {
	if c == nil {
		return Addr{}
	}
	return types.HostPort(c.Address, c.Port)
}

// RenderTo writes the candidate attribute value without the "candidate:" prefix.
func (c *Candidate) RenderTo(w io.Writer, _ *types.RenderOptions) (int, error) {
	if c == nil {
		return 0, nil
	}
	lw := ioutil.GetLineWriter(w, false)
	defer ioutil.FreeLineWriter(lw)
	lw.Print(
		c.Foundation, " ",
		strconv.FormatUint(uint64(c.Component), 10), " ",
		c.Transport, " ",
		strconv.FormatUint(uint64(c.Priority), 10), " ",
		c.Address, " ",
		strconv.FormatUint(uint64(c.Port), 10), " ",
		"typ ", c.Type,
	)
	if !c.Related.IsZero() {
		lw.Print(" raddr ", c.Related.Host())
		if p, ok := c.Related.Port(); ok {
			lw.Print(" rport ", strconv.FormatUint(uint64(p), 10))
		}
	}
	for _, ext := range c.Extensions {
		lw.Print(" ", ext.Name, " ", ext.Value)
	}
	return errtrace.Wrap2(lw.Result())
}

func (c *Candidate) Render(opts *types.RenderOptions) string {
	if c == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	c.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (c *Candidate) String() string { return c.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the candidate.
func (c *Candidate) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, c.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(c.String()))
		return
	default:
		type hideMethods Candidate
		type Candidate hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Candidate)(c))
		return
	}
}

// Clone returns a deep copy of the candidate.
func (c *Candidate) Clone() *Candidate {
	if c == nil {
		return nil
	}
	c2 := *c
	c2.Related = c.Related.Clone()
	c2.Extensions = slices.Clone(c.Extensions)
	return &c2
}

// Equal compares candidates. Transport and type compare case-insensitively.
func (c *Candidate) Equal(val any) bool {
	var other *Candidate
	switch v := val.(type) {
	case Candidate:
		other = &v
	case *Candidate:
		other = v
	default:
		return false
	}

	if c == other {
		return true
	} else if c == nil || other == nil {
		return false
	}

	return c.Foundation == other.Foundation &&
		c.Component == other.Component &&
		util.EqFold(c.Transport, other.Transport) &&
		c.Priority == other.Priority &&
		util.EqFold(c.Address, other.Address) &&
		c.Port == other.Port &&
		util.EqFold(c.Type, other.Type) &&
		c.Related.Equal(other.Related) &&
		slices.Equal(c.Extensions, other.Extensions)
}

// IsValid checks that the rendered candidate parses back to the same value.
func (c *Candidate) IsValid() bool {
	if c == nil {
		return false
	}
	c2, err := ParseCandidate(c.String())
	return err == nil && c2.Equal(c)
}

// IsRelayed reports whether the candidate is allocated on a TURN server.
func (c *Candidate) IsRelayed() bool { return c != nil && strings.EqualFold(c.Type, TypeRelay) }
