package sdp

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/grammar"
)

// Attribute is an "a=" field.
// An empty Value makes it a property attribute ("a=recvonly"),
// otherwise it is a value attribute ("a=rtpmap:0 PCMU/8000").
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// IsProperty reports whether the attribute carries no value.
func (a Attribute) IsProperty() bool { return a.Value == "" }

// RenderTo writes the attribute value "name[:value]" to the provided writer.
func (a Attribute) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	if a.Value == "" {
		return errtrace.Wrap2(fmt.Fprint(w, a.Name))
	}
	return errtrace.Wrap2(fmt.Fprint(w, a.Name, ":", a.Value))
}

// Render returns the string representation of the attribute.
func (a Attribute) Render(opts *RenderOptions) string { return render(a, opts) }

// String returns the string representation of the attribute.
func (a Attribute) String() string { return a.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the attribute.
func (a Attribute) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, a.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.String()))
		return
	default:
		type hideMethods Attribute
		type Attribute hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Attribute(a))
		return
	}
}

// Clone returns a copy of the attribute.
func (a Attribute) Clone() Attribute { return a }

// Equal compares this attribute with another for equality.
// Attribute names and values are compared case-sensitively.
func (a Attribute) Equal(val any) bool {
	var other Attribute
	switch v := val.(type) {
	case Attribute:
		other = v
	case *Attribute:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return a == other
}

// IsValid checks whether the attribute name is a token and the value is a byte-string.
func (a Attribute) IsValid() bool {
	return grammar.IsToken(a.Name) && (a.Value == "" || grammar.IsByteString(a.Value))
}

// Attributes is an ordered list of attributes. Names may repeat.
type Attributes []Attribute

// Get returns the value of the first attribute with the given name.
func (attrs Attributes) Get(name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// GetAll returns the values of all attributes with the given name in their original order.
func (attrs Attributes) GetAll(name string) []string {
	var vals []string
	for _, a := range attrs {
		if a.Name == name {
			vals = append(vals, a.Value)
		}
	}
	return vals
}

// Has reports whether an attribute with the given name is present.
func (attrs Attributes) Has(name string) bool {
	_, ok := attrs.Get(name)
	return ok
}

// Clone returns a copy of the attribute list.
func (attrs Attributes) Clone() Attributes { return slices.Clone(attrs) }

// Equal compares the attribute lists element by element.
func (attrs Attributes) Equal(val any) bool {
	var other Attributes
	switch v := val.(type) {
	case Attributes:
		other = v
	case []Attribute:
		other = v
	case *Attributes:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.Equal(attrs, other)
}

// IsValid checks whether every attribute is valid.
func (attrs Attributes) IsValid() bool {
	for _, a := range attrs {
		if !a.IsValid() {
			return false
		}
	}
	return true
}
