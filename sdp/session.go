package sdp

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/ioutil"
	"github.com/ghettovoice/gosdp/uri"
)

// Session is a session description.
//
// Optional single-valued fields are absent when they hold their zero value:
// an empty Information, a nil URI, Connection or Key.
type Session struct {
	Version     uint64              `json:"version"`
	Origin      Origin              `json:"origin"`
	Name        string              `json:"name"`
	Information string              `json:"information,omitempty"`
	URI         *uri.Reference      `json:"uri,omitempty"`
	Emails      []Email             `json:"emails,omitempty"`
	Phones      []Phone             `json:"phones,omitempty"`
	Connection  *Connection         `json:"connection,omitempty"`
	Bandwidths  []Bandwidth         `json:"bandwidths,omitempty"`
	Timings     []Timing            `json:"timings"`
	TimeZones   []TimeZone          `json:"time_zones,omitempty"`
	Key         *Key                `json:"key,omitempty"`
	Attributes  Attributes          `json:"attributes,omitempty"`
	Media       []*MediaDescription `json:"media,omitempty"`
}

// RenderTo writes the session description to the provided writer.
//
// Without [RenderOptions.Full] only the core fields are written:
// "v=", "o=", "s=", "c=", "t=", "a=" and the media sections with their "m=", "c=" and "a=" lines.
// Every line is terminated with CRLF unless [RenderOptions.LF] is set.
func (s *Session) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if s == nil {
		return 0, nil
	}

	lw := ioutil.GetLineWriter(w, opts != nil && opts.LF)
	defer ioutil.FreeLineWriter(lw)

	full := opts.IsFull()
	lw.Line('v', strconv.FormatUint(s.Version, 10))
	lw.Begin('o').Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(s.Origin.RenderTo(w, opts)) }).End()
	if s.Name == "" {
		lw.Line('s', " ")
	} else {
		lw.Line('s', s.Name)
	}
	if full {
		if s.Information != "" {
			lw.Line('i', s.Information)
		}
		if s.URI != nil {
			lw.Line('u', s.URI.String())
		}
		for _, e := range s.Emails {
			lw.Line('e', e.String())
		}
		for _, p := range s.Phones {
			lw.Line('p', p.String())
		}
	}
	if s.Connection != nil {
		lw.Begin('c').Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(s.Connection.RenderTo(w, opts)) }).End()
	}
	if full {
		for _, bw := range s.Bandwidths {
			lw.Line('b', bw.String())
		}
	}
	for i := range s.Timings {
		lw.Line('t', s.Timings[i].String())
		if full {
			for j := range s.Timings[i].Repeats {
				lw.Line('r', s.Timings[i].Repeats[j].String())
			}
		}
	}
	if full {
		if len(s.TimeZones) > 0 {
			lw.Begin('z')
			for i, tz := range s.TimeZones {
				if i > 0 {
					lw.Print(" ")
				}
				lw.Print(tz.String())
			}
			lw.End()
		}
		if s.Key != nil {
			lw.Line('k', s.Key.String())
		}
	}
	for _, a := range s.Attributes {
		lw.Line('a', a.String())
	}
	for _, md := range s.Media {
		if md != nil {
			md.renderLines(lw, opts)
		}
	}
	return errtrace.Wrap2(lw.Result())
}

// Render returns the session description text.
func (s *Session) Render(opts *RenderOptions) string {
	if s == nil {
		return ""
	}
	return render(s, opts)
}

// String returns the core session description text, see [Session.RenderTo].
func (s *Session) String() string { return s.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the session.
// The "+" flag with the "s" and "q" verbs renders every field.
func (s *Session) Format(f fmt.State, verb rune) {
	var opts *RenderOptions
	if f.Flag('+') {
		opts = &RenderOptions{Full: true}
	}
	switch verb {
	case 's':
		fmt.Fprint(f, s.Render(opts))
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(s.Render(opts)))
		return
	default:
		type hideMethods Session
		type Session hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Session)(s))
		return
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	s2 := *s
	s2.URI = s.URI.Clone()
	s2.Emails = slices.Clone(s.Emails)
	s2.Phones = slices.Clone(s.Phones)
	s2.Connection = s.Connection.Clone()
	s2.Bandwidths = slices.Clone(s.Bandwidths)
	if s.Timings != nil {
		s2.Timings = make([]Timing, len(s.Timings))
		for i := range s.Timings {
			s2.Timings[i] = *s.Timings[i].Clone()
		}
	}
	s2.TimeZones = slices.Clone(s.TimeZones)
	s2.Key = s.Key.Clone()
	s2.Attributes = s.Attributes.Clone()
	if s.Media != nil {
		s2.Media = make([]*MediaDescription, len(s.Media))
		for i, md := range s.Media {
			s2.Media[i] = md.Clone()
		}
	}
	return &s2
}

// Equal compares this session with another for equality.
func (s *Session) Equal(val any) bool {
	var other *Session
	switch v := val.(type) {
	case Session:
		other = &v
	case *Session:
		other = v
	default:
		return false
	}

	if s == other {
		return true
	} else if s == nil || other == nil {
		return false
	}

	return s.Version == other.Version &&
		s.Origin.Equal(&other.Origin) &&
		s.Name == other.Name &&
		s.Information == other.Information &&
		s.URI.Equal(other.URI) &&
		slices.EqualFunc(s.Emails, other.Emails, func(a, b Email) bool { return a.Equal(b) }) &&
		slices.EqualFunc(s.Phones, other.Phones, func(a, b Phone) bool { return a.Equal(b) }) &&
		s.Connection.Equal(other.Connection) &&
		slices.EqualFunc(s.Bandwidths, other.Bandwidths, func(a, b Bandwidth) bool { return a.Equal(b) }) &&
		slices.EqualFunc(s.Timings, other.Timings, func(a, b Timing) bool { return a.Equal(&b) }) &&
		slices.EqualFunc(s.TimeZones, other.TimeZones, func(a, b TimeZone) bool {
			return a.AdjustmentTime == b.AdjustmentTime && a.Negative == b.Negative && a.Offset.Equal(b.Offset)
		}) &&
		s.Key.Equal(other.Key) &&
		s.Attributes.Equal(other.Attributes) &&
		slices.EqualFunc(s.Media, other.Media, func(a, b *MediaDescription) bool { return a.Equal(b) })
}

// IsValid checks whether the session is valid, see [Session.Validate].
func (s *Session) IsValid() bool { return s.Validate() == nil }

// Validate checks the session fields and the cross-field constraints.
// All problems found are reported together.
func (s *Session) Validate() error {
	if s == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid session: nil"))
	}

	var errs []error
	if s.Version != 0 {
		errs = append(errs, errorutil.NewWrapperError(ErrUnsupportedVersion, "version %d", s.Version))
	}
	if !s.Origin.IsValid() {
		errs = append(errs, errorutil.NewInvalidArgumentError("invalid origin %q", s.Origin.String()))
	}
	if s.Name != "" && !grammar.IsText(s.Name) {
		errs = append(errs, errorutil.NewInvalidArgumentError("invalid session name %q", s.Name))
	}
	if s.Information != "" && !grammar.IsText(s.Information) {
		errs = append(errs, errorutil.NewInvalidArgumentError("invalid information %q", s.Information))
	}
	if s.URI != nil && !s.URI.IsValid() {
		errs = append(errs, errorutil.NewInvalidArgumentError("invalid uri %q", s.URI.String()))
	}
	for _, e := range s.Emails {
		if !e.IsValid() {
			errs = append(errs, errorutil.NewInvalidArgumentError("invalid email %q", e.String()))
		}
	}
	for _, p := range s.Phones {
		if !p.IsValid() {
			errs = append(errs, errorutil.NewInvalidArgumentError("invalid phone %q", p.String()))
		}
	}
	if s.Connection != nil && !s.Connection.IsValid() {
		errs = append(errs, errorutil.NewInvalidArgumentError("invalid connection %q", s.Connection.String()))
	}
	for _, bw := range s.Bandwidths {
		if !bw.IsValid() {
			errs = append(errs, errorutil.NewInvalidArgumentError("invalid bandwidth %q", bw.String()))
		}
	}
	if len(s.Timings) == 0 {
		errs = append(errs, ErrMissingTiming)
	}
	for i := range s.Timings {
		if !s.Timings[i].IsValid() {
			errs = append(errs, errorutil.NewInvalidArgumentError("invalid timing %q", s.Timings[i].String()))
		}
	}
	for _, tz := range s.TimeZones {
		if !tz.Offset.Unit.IsValid() {
			errs = append(errs, errorutil.NewInvalidArgumentError("invalid time zone %q", tz.String()))
		}
	}
	if s.Key != nil && !s.Key.IsValid() {
		errs = append(errs, errorutil.NewInvalidArgumentError("invalid key %q", s.Key.String()))
	}
	if !s.Attributes.IsValid() {
		errs = append(errs, errorutil.NewInvalidArgumentError("invalid session attributes"))
	}
	for i, md := range s.Media {
		if !md.IsValid() {
			errs = append(errs, errorutil.NewInvalidArgumentError("invalid media #%d", i))
			continue
		}
		if s.Connection == nil && !md.HasConnection() {
			errs = append(errs, errorutil.NewWrapperError(ErrMissingConnection, "media #%d %q", i, md.Media.String()))
		}
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid session", errs...))
}

// MarshalText implements [encoding.TextMarshaler].
// Every field is rendered.
func (s *Session) MarshalText() ([]byte, error) {
	return []byte(s.Render(&RenderOptions{Full: true})), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Session) UnmarshalText(text []byte) error {
	s1, err := Parse(text, nil)
	if err != nil {
		*s = Session{}
		return errtrace.Wrap(err)
	}
	*s = *s1
	return nil
}

// HasConnection reports whether the session level "c=" or every media section "c=" is present.
func (s *Session) HasConnection() bool {
	if s == nil {
		return false
	}
	if s.Connection != nil {
		return true
	}
	for _, md := range s.Media {
		if !md.HasConnection() {
			return false
		}
	}
	return true
}
