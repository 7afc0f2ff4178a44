package sdp

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/ioutil"
	"github.com/ghettovoice/gosdp/internal/util"
)

// Common media types.
const (
	MediaAudio       = "audio"
	MediaVideo       = "video"
	MediaText        = "text"
	MediaApplication = "application"
	MediaMessage     = "message"
)

// Media is an "m=" field.
// PortCount is the number of ports, zero means the "/count" suffix is absent.
type Media struct {
	Name      string   `json:"name"`
	Port      uint16   `json:"port"`
	PortCount uint64   `json:"port_count,omitempty"`
	Proto     string   `json:"proto"`
	Formats   []string `json:"formats"`
}

// RenderTo writes "media port[/count] proto fmt..." to the provided writer.
func (m *Media) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	if m == nil {
		return 0, nil
	}
	lw := ioutil.GetLineWriter(w, false)
	defer ioutil.FreeLineWriter(lw)
	lw.Print(m.Name, " ", strconv.FormatUint(uint64(m.Port), 10))
	if m.PortCount > 0 {
		lw.Print("/", strconv.FormatUint(m.PortCount, 10))
	}
	lw.Print(" ", m.Proto)
	for _, f := range m.Formats {
		lw.Print(" ", f)
	}
	return errtrace.Wrap2(lw.Result())
}

// Render returns the string representation of the media field value.
func (m *Media) Render(opts *RenderOptions) string {
	if m == nil {
		return ""
	}
	return render(m, opts)
}

func (m *Media) String() string { return m.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the media.
func (m *Media) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, m.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(m.String()))
		return
	default:
		type hideMethods Media
		type Media hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Media)(m))
		return
	}
}

// Clone returns a deep copy of the media.
func (m *Media) Clone() *Media {
	if m == nil {
		return nil
	}
	m2 := *m
	m2.Formats = slices.Clone(m.Formats)
	return &m2
}

// Equal compares this media with another for equality.
// Media name and protocol compare case-insensitively, formats are compared case-sensitively.
func (m *Media) Equal(val any) bool {
	var other *Media
	switch v := val.(type) {
	case Media:
		other = &v
	case *Media:
		other = v
	default:
		return false
	}

	if m == other {
		return true
	} else if m == nil || other == nil {
		return false
	}

	return util.EqFold(m.Name, other.Name) &&
		m.Port == other.Port &&
		m.PortCount == other.PortCount &&
		util.EqFold(m.Proto, other.Proto) &&
		slices.Equal(m.Formats, other.Formats)
}

// IsValid checks the media sub-fields against the grammar.
func (m *Media) IsValid() bool {
	if m == nil || !grammar.IsToken(m.Name) || !grammar.IsProto(m.Proto) || len(m.Formats) == 0 {
		return false
	}
	for _, f := range m.Formats {
		if !grammar.IsToken(f) {
			return false
		}
	}
	return true
}

// Transports returns the protocol stack split on "/", e.g. ["RTP", "AVP"].
func (m *Media) Transports() []string {
	if m == nil || m.Proto == "" {
		return nil
	}
	return strings.Split(m.Proto, "/")
}

// MediaDescription is a media section, the "m=" line with the fields following it.
type MediaDescription struct {
	Media       Media        `json:"media"`
	Information string       `json:"information,omitempty"`
	Connections []Connection `json:"connections,omitempty"`
	Bandwidths  []Bandwidth  `json:"bandwidths,omitempty"`
	Key         *Key         `json:"key,omitempty"`
	Attributes  Attributes   `json:"attributes,omitempty"`
}

// RenderTo writes the media section lines to the provided writer.
// Without [RenderOptions.Full] only "m=", "c=" and "a=" lines are written.
func (md *MediaDescription) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if md == nil {
		return 0, nil
	}
	lw := ioutil.GetLineWriter(w, opts != nil && opts.LF)
	defer ioutil.FreeLineWriter(lw)
	md.renderLines(lw, opts)
	return errtrace.Wrap2(lw.Result())
}

func (md *MediaDescription) renderLines(lw *ioutil.LineWriter, opts *RenderOptions) {
	full := opts.IsFull()
	lw.Begin('m').Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(md.Media.RenderTo(w, opts)) }).End()
	if full && md.Information != "" {
		lw.Line('i', md.Information)
	}
	for i := range md.Connections {
		lw.Begin('c').Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(md.Connections[i].RenderTo(w, opts)) }).End()
	}
	if full {
		for _, bw := range md.Bandwidths {
			lw.Line('b', bw.String())
		}
		if md.Key != nil {
			lw.Line('k', md.Key.String())
		}
	}
	for _, a := range md.Attributes {
		lw.Line('a', a.String())
	}
}

// Render returns the media section lines.
func (md *MediaDescription) Render(opts *RenderOptions) string {
	if md == nil {
		return ""
	}
	return render(md, opts)
}

func (md *MediaDescription) String() string { return md.Render(nil) }

// Clone returns a deep copy of the media description.
func (md *MediaDescription) Clone() *MediaDescription {
	if md == nil {
		return nil
	}
	md2 := *md
	md2.Media = *md.Media.Clone()
	md2.Connections = cloneConnections(md.Connections)
	md2.Bandwidths = slices.Clone(md.Bandwidths)
	md2.Key = md.Key.Clone()
	md2.Attributes = md.Attributes.Clone()
	return &md2
}

// Equal compares this media description with another for equality.
func (md *MediaDescription) Equal(val any) bool {
	var other *MediaDescription
	switch v := val.(type) {
	case MediaDescription:
		other = &v
	case *MediaDescription:
		other = v
	default:
		return false
	}

	if md == other {
		return true
	} else if md == nil || other == nil {
		return false
	}

	return md.Media.Equal(&other.Media) &&
		md.Information == other.Information &&
		slices.EqualFunc(md.Connections, other.Connections, func(a, b Connection) bool { return a.Equal(&b) }) &&
		slices.EqualFunc(md.Bandwidths, other.Bandwidths, func(a, b Bandwidth) bool { return a.Equal(b) }) &&
		md.Key.Equal(other.Key) &&
		md.Attributes.Equal(other.Attributes)
}

// IsValid checks the media section fields.
func (md *MediaDescription) IsValid() bool {
	if md == nil || !md.Media.IsValid() {
		return false
	}
	if md.Information != "" && !grammar.IsText(md.Information) {
		return false
	}
	for i := range md.Connections {
		if !md.Connections[i].IsValid() {
			return false
		}
	}
	for _, bw := range md.Bandwidths {
		if !bw.IsValid() {
			return false
		}
	}
	if md.Key != nil && !md.Key.IsValid() {
		return false
	}
	return md.Attributes.IsValid()
}

// HasConnection reports whether the media section has at least one "c=" field.
func (md *MediaDescription) HasConnection() bool { return md != nil && len(md.Connections) > 0 }
