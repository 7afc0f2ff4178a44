package sdp

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/util"
)

// Common network and address types.
const (
	NetTypeIN   = "IN"
	AddrTypeIP4 = "IP4"
	AddrTypeIP6 = "IP6"
)

// Origin is an "o=" field.
type Origin struct {
	Username       string `json:"username"`
	SessionID      uint64 `json:"session_id"`
	SessionVersion uint64 `json:"session_version"`
	NetType        string `json:"net_type"`
	AddrType       string `json:"addr_type"`
	Address        string `json:"address"`
}

// RenderTo writes the six space separated origin sub-fields to the provided writer.
// An empty username is written as "-".
func (o *Origin) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	if o == nil {
		return 0, nil
	}
	user := o.Username
	if user == "" {
		user = "-"
	}
	return errtrace.Wrap2(fmt.Fprint(w,
		user, " ",
		strconv.FormatUint(o.SessionID, 10), " ",
		strconv.FormatUint(o.SessionVersion, 10), " ",
		o.NetType, " ",
		o.AddrType, " ",
		o.Address,
	))
}

// Render returns the string representation of the origin value.
func (o *Origin) Render(opts *RenderOptions) string {
	if o == nil {
		return ""
	}
	return render(o, opts)
}

func (o *Origin) String() string { return o.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the origin.
func (o *Origin) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, o.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(o.String()))
		return
	default:
		type hideMethods Origin
		type Origin hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Origin)(o))
		return
	}
}

// Clone returns a copy of the origin.
func (o *Origin) Clone() *Origin {
	if o == nil {
		return nil
	}
	o2 := *o
	return &o2
}

// Equal compares this origin with another for equality.
// Network type, address type and address compare case-insensitively.
func (o *Origin) Equal(val any) bool {
	var other *Origin
	switch v := val.(type) {
	case Origin:
		other = &v
	case *Origin:
		other = v
	default:
		return false
	}

	if o == other {
		return true
	} else if o == nil || other == nil {
		return false
	}

	return o.Username == other.Username &&
		o.SessionID == other.SessionID &&
		o.SessionVersion == other.SessionVersion &&
		util.EqFold(o.NetType, other.NetType) &&
		util.EqFold(o.AddrType, other.AddrType) &&
		util.EqFold(o.Address, other.Address)
}

// IsValid checks the origin sub-fields against the grammar.
func (o *Origin) IsValid() bool {
	return o != nil &&
		(o.Username == "" || grammar.IsNonWSString(o.Username)) &&
		grammar.IsToken(o.NetType) &&
		grammar.IsToken(o.AddrType) &&
		grammar.IsUnicastAddress(o.Address)
}
