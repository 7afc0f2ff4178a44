package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/ioutil"
	"github.com/ghettovoice/gosdp/internal/types"
	"github.com/ghettovoice/gosdp/internal/util"
)

// RenderOptions contains options for rendering.
type RenderOptions = types.RenderOptions

// Reference is a URI or a relative reference.
// The Has* flags record which delimiters were present, so empty components
// render back as written.
type Reference struct {
	Scheme   string
	UserInfo string
	Host     string
	Port     string
	Path     string
	Query    string
	Fragment string

	HasAuthority bool
	HasUserInfo  bool
	HasPort      bool
	HasQuery     bool
	HasFragment  bool
}

// Parse parses a URI-reference from the given input s (string or []byte).
func Parse[T ~string | ~[]byte](s T) (*Reference, error) {
	node, err := grammar.ParseURIReference(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return FromABNF(node), nil
}

// FromABNF creates a [Reference] from the "URI-reference", "URI" or "relative-ref" node.
//
// End users usually don't need to use this function directly and should use [Parse] instead.
func FromABNF(node *abnf.Node) *Reference {
	ref := new(Reference)
	if n, ok := node.GetNode("scheme"); ok {
		ref.Scheme = n.String()
	}
	if auth, ok := node.GetNode("authority"); ok {
		ref.HasAuthority = true
		if n, ok := auth.GetNode("userinfo"); ok {
			ref.UserInfo, ref.HasUserInfo = n.String(), true
		}
		ref.Host = grammar.MustGetNode(auth, "host").String()
		if n, ok := auth.GetNode("port"); ok {
			ref.Port, ref.HasPort = n.String(), true
		}
	}
	for _, k := range []string{"path-abempty", "path-absolute", "path-rootless", "path-noscheme"} {
		if n, ok := node.GetNode(k); ok {
			ref.Path = n.String()
			break
		}
	}
	if n, ok := node.GetNode("query"); ok {
		ref.Query, ref.HasQuery = n.String(), true
	}
	if n, ok := node.GetNode("fragment"); ok {
		ref.Fragment, ref.HasFragment = n.String(), true
	}
	return ref
}

// IsAbsolute reports whether the reference has a scheme.
func (ref *Reference) IsAbsolute() bool { return ref != nil && ref.Scheme != "" }

// URL converts the reference to [net/url.URL].
func (ref *Reference) URL() (*url.URL, error) {
	if ref == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil reference"))
	}
	u, err := url.Parse(ref.String())
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrMalformedInput, err))
	}
	return u, nil
}

// RenderTo writes the reference to the provided writer.
func (ref *Reference) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if ref == nil {
		return 0, nil
	}

	lw := ioutil.GetLineWriter(w, false)
	defer ioutil.FreeLineWriter(lw)

	if ref.Scheme != "" {
		lw.Print(ref.Scheme, ":")
	}
	if ref.HasAuthority {
		lw.Print("//")
		if ref.HasUserInfo {
			lw.Print(ref.UserInfo, "@")
		}
		lw.Print(ref.Host)
		if ref.HasPort {
			lw.Print(":", ref.Port)
		}
	}
	lw.Print(ref.Path)
	if ref.HasQuery {
		lw.Print("?", ref.Query)
	}
	if ref.HasFragment {
		lw.Print("#", ref.Fragment)
	}
	return errtrace.Wrap2(lw.Result())
}

// Render returns the string representation of the reference.
func (ref *Reference) Render(opts *RenderOptions) string {
	if ref == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ref.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the reference.
func (ref *Reference) String() string {
	if ref == nil {
		return ""
	}
	return ref.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the reference.
func (ref *Reference) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, ref.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(ref.String()))
		return
	default:
		type hideMethods Reference
		type Reference hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Reference)(ref))
		return
	}
}

// Clone returns a copy of the reference.
func (ref *Reference) Clone() *Reference {
	if ref == nil {
		return nil
	}
	ref2 := *ref
	return &ref2
}

// Equal compares this reference with another for equality.
// Scheme and host compare case-insensitively (RFC 3986 section 6.2.2.1).
func (ref *Reference) Equal(val any) bool {
	var other *Reference
	switch v := val.(type) {
	case Reference:
		other = &v
	case *Reference:
		other = v
	default:
		return false
	}

	if ref == other {
		return true
	} else if ref == nil || other == nil {
		return false
	}

	return util.EqFold(ref.Scheme, other.Scheme) &&
		util.EqFold(ref.Host, other.Host) &&
		ref.UserInfo == other.UserInfo &&
		ref.Port == other.Port &&
		ref.Path == other.Path &&
		ref.Query == other.Query &&
		ref.Fragment == other.Fragment &&
		ref.HasAuthority == other.HasAuthority &&
		ref.HasUserInfo == other.HasUserInfo &&
		ref.HasPort == other.HasPort &&
		ref.HasQuery == other.HasQuery &&
		ref.HasFragment == other.HasFragment
}

// IsValid checks whether the reference renders to a syntactically valid URI-reference.
func (ref *Reference) IsValid() bool {
	return ref != nil && grammar.IsURIReference(ref.String())
}

// MarshalText implements [encoding.TextMarshaler].
func (ref *Reference) MarshalText() ([]byte, error) {
	return []byte(ref.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (ref *Reference) UnmarshalText(text []byte) error {
	ref1, err := Parse(text)
	if err != nil {
		*ref = Reference{}
		return errtrace.Wrap(err)
	}
	*ref = *ref1
	return nil
}
