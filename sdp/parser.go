package sdp

import (
	"log/slog"
	"strings"
	"sync"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc4566"
	"github.com/ghettovoice/gosdp/internal/log"
	"github.com/ghettovoice/gosdp/internal/util"
	"github.com/ghettovoice/gosdp/uri"
)

// ParseOptions contains options for [Parse] and [Match].
// A nil *ParseOptions is the same as the zero value.
type ParseOptions struct {
	// SnippetLen is the number of unconsumed bytes quoted by [ParseError].
	// Zero means [DefaultSnippetLen].
	SnippetLen int `json:"snippet_len,omitempty"`
	// Logger receives debug records about rejected lines and partial matches.
	// Nil means no logging.
	Logger *slog.Logger `json:"-"`
}

func (opts *ParseOptions) snippetLen() int {
	if opts == nil || opts.SnippetLen <= 0 {
		return DefaultSnippetLen
	}
	return opts.SnippetLen
}

func (opts *ParseOptions) logger() *slog.Logger {
	if opts == nil || opts.Logger == nil {
		return log.Noop
	}
	return opts.Logger
}

// Result is the outcome of a successful [Match].
type Result struct {
	// Session is the description built from the matched prefix.
	Session *Session
	// Rest is the unconsumed input.
	Rest string
	// Offset is the byte offset of Rest in the input.
	Offset int

	mediaOffsets []int
}

// Matched reports whether a session description prefix was matched.
func (r *Result) Matched() bool { return r != nil && r.Session != nil }

// Full reports whether the whole input was consumed.
func (r *Result) Full() bool { return r.Matched() && r.Rest == "" }

// Match matches a session description at the start of s.
//
// Lines are accepted while they follow the field order and match their field grammar.
// Matching stops at the first line that is not accepted. If a mandatory field
// ("v=", "o=", "s=" or the first "t=") is still owed at that point, a [*ParseError]
// naming the owed rule is returned. Otherwise the result is a partial match with
// the rest of the input in [Result.Rest].
// A value that matches its grammar but cannot be represented, like a numeric overflow or
// a malformed address literal, always fails with a [*ParseError].
func Match[T ~string | ~[]byte](s T, opts *ParseOptions) (*Result, error) {
	in := string(s)
	if len(in) == 0 {
		return nil, errtrace.Wrap(&ParseError{Rule: "session-description", Err: ErrEmptyInput})
	}

	var (
		logger = opts.logger()
		specs  = fieldSpecs()
		fsm    = newFieldFSM()
		b      = &sessionBuilder{sess: new(Session)}
		res    = new(Result)
		offset int
	)
	newErr := func(rule string, off int, err error) error {
		perr := &ParseError{
			Rule:    rule,
			Offset:  off,
			Snippet: util.Snippet(in[off:], opts.snippetLen()),
			Err:     err,
		}
		logger.Debug("sdp match failed", slog.Any("error", perr))
		return perr
	}

	for offset < len(in) {
		line := in[offset:]
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i+1]
		}

		state := fsm.MustState().(fieldState) //nolint:forcetypeassert
		spec, node := acceptLine(fsm, specs, line)
		if spec == nil {
			if rule, owed := state.owedRule(); owed {
				return nil, errtrace.Wrap(newErr(rule, offset,
					errorutil.NewWrapperError(ErrMalformedInput, "unexpected line after %s", state)))
			}
			logger.Debug("sdp partial match",
				slog.String("state", state.String()),
				slog.Int("offset", offset),
				slog.Any("line", log.StringValue(util.Snippet(line, opts.snippetLen()))),
			)
			break
		}

		typ := line[0]
		if err := fsm.Fire(typ); err != nil {
			return nil, errtrace.Wrap(newErr(spec.rule, offset, errorutil.NewWrapperError(ErrMalformedInput, err)))
		}
		state = fsm.MustState().(fieldState) //nolint:forcetypeassert
		if typ == 'm' {
			res.mediaOffsets = append(res.mediaOffsets, offset)
		}
		if err := spec.apply(b, state, node); err != nil {
			return nil, errtrace.Wrap(newErr(spec.rule, offset, err))
		}
		offset += len(line)
	}

	state := fsm.MustState().(fieldState) //nolint:forcetypeassert
	if rule, owed := state.owedRule(); owed {
		return nil, errtrace.Wrap(newErr(rule, offset,
			errorutil.NewWrapperError(ErrMalformedInput, "unexpected end of input after %s", state)))
	}

	res.Session = b.sess
	res.Offset = offset
	res.Rest = in[offset:]
	return res, nil
}

// Parse parses a complete session description.
//
// In addition to [Match] it requires the whole input to be consumed,
// the protocol version to be 0 and a "c=" field at the session level
// or in every media section.
func Parse[T ~string | ~[]byte](s T, opts *ParseOptions) (*Session, error) {
	in := string(s)
	res, err := Match(in, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	newErr := func(rule string, off int, err error) error {
		perr := &ParseError{
			Rule:    rule,
			Offset:  off,
			Snippet: util.Snippet(in[off:], opts.snippetLen()),
			Err:     err,
		}
		opts.logger().Debug("sdp parse failed", slog.Any("error", perr))
		return perr
	}

	if !res.Full() {
		return nil, errtrace.Wrap(newErr(lineRule(res.Rest), res.Offset, ErrIncompleteInput))
	}
	if v := res.Session.Version; v != 0 {
		return nil, errtrace.Wrap(newErr("proto-version", 0,
			errorutil.NewWrapperError(ErrUnsupportedVersion, "version %d", v)))
	}
	if res.Session.Connection == nil {
		for i, md := range res.Session.Media {
			if !md.HasConnection() {
				return nil, errtrace.Wrap(newErr("connection-field", res.mediaOffsets[i],
					errorutil.NewWrapperError(ErrMissingConnection, "media #%d has no connection data", i)))
			}
		}
	}
	return res.Session, nil
}

// lineRule names the field rule of an unconsumed line.
func lineRule(line string) string {
	if len(line) >= 2 && line[1] == '=' {
		if spec, ok := fieldSpecs()[line[0]]; ok {
			return spec.rule
		}
	}
	return "session-description"
}

// acceptLine returns the field spec and the parsed line if the line is accepted in the current state.
func acceptLine(fsm *stateless.StateMachine, specs map[byte]*fieldSpec, line string) (*fieldSpec, *abnf.Node) {
	if len(line) < 2 || line[1] != '=' {
		return nil, nil
	}
	spec, ok := specs[line[0]]
	if !ok {
		return nil, nil
	}
	if ok, _ := fsm.CanFire(line[0]); !ok {
		return nil, nil
	}
	node, err := grammar.Parse(spec.op, line)
	if err != nil {
		return nil, nil
	}
	return spec, node
}

type sessionBuilder struct {
	sess *Session
	md   *MediaDescription
}

type fieldSpec struct {
	rule  string
	op    abnf.Operator
	apply func(b *sessionBuilder, state fieldState, node *abnf.Node) error
}

var fieldSpecs = sync.OnceValue(func() map[byte]*fieldSpec {
	ops := rfc4566.Operators()
	return map[byte]*fieldSpec{
		'v': {"proto-version", ops.ProtoVersion, applyVersion},
		'o': {"origin-field", ops.OriginField, applyOrigin},
		's': {"session-name-field", ops.SessionNameField, applyName},
		'i': {"information-field", ops.InformationField, applyInformation},
		'u': {"uri-field", ops.URIField, applyURI},
		'e': {"email-field", ops.EmailField, applyEmail},
		'p': {"phone-field", ops.PhoneField, applyPhone},
		'c': {"connection-field", ops.ConnectionField, applyConnection},
		'b': {"bandwidth-field", ops.BandwidthField, applyBandwidth},
		't': {"time-field", ops.TimeField, applyTiming},
		'r': {"repeat-field", ops.RepeatField, applyRepeat},
		'z': {"zone-adjustments", ops.ZoneAdjustments, applyZones},
		'k': {"key-field", ops.KeyField, applyKey},
		'a': {"attribute-field", ops.AttributeField, applyAttribute},
		'm': {"media-field", ops.MediaField, applyMedia},
	}
})

// nodeText returns the text of the node with the given key.
func nodeText(n *abnf.Node, key string) string {
	return grammar.MustGetNode(n, key).String()
}

// optNode returns the node with the given key if it matched a non-empty value.
func optNode(n *abnf.Node, key string) (*abnf.Node, bool) {
	sn, ok := n.GetNode(key)
	if !ok || sn.IsEmpty() {
		return nil, false
	}
	return sn, true
}

func applyVersion(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	v, err := grammar.ParseUint(nodeText(node, "version"), 64)
	if err != nil {
		return errtrace.Wrap(err)
	}
	b.sess.Version = v
	return nil
}

func applyOrigin(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	o, err := originFromNode(node)
	if err != nil {
		return errtrace.Wrap(err)
	}
	b.sess.Origin = o
	return nil
}

func originFromNode(node *abnf.Node) (Origin, error) {
	sid, err := grammar.ParseUint(nodeText(node, "sess-id"), 64)
	if err != nil {
		return Origin{}, errtrace.Wrap(err)
	}
	sver, err := grammar.ParseUint(nodeText(node, "sess-version"), 64)
	if err != nil {
		return Origin{}, errtrace.Wrap(err)
	}
	addr := nodeText(node, "unicast-address")
	if !grammar.IsUnicastAddress(addr) {
		return Origin{}, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedInput, "invalid unicast address %q", addr))
	}
	return Origin{
		Username:       nodeText(node, "username"),
		SessionID:      sid,
		SessionVersion: sver,
		NetType:        nodeText(node, "nettype"),
		AddrType:       nodeText(node, "addrtype"),
		Address:        addr,
	}, nil
}

func applyName(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	name := nodeText(node, "text")
	if name == " " {
		name = ""
	}
	b.sess.Name = name
	return nil
}

func applyInformation(b *sessionBuilder, state fieldState, node *abnf.Node) error {
	info := nodeText(node, "text")
	if state.inMedia() {
		b.md.Information = info
	} else {
		b.sess.Information = info
	}
	return nil
}

func applyURI(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	n, ok := optNode(node, "URI-reference")
	if !ok {
		b.sess.URI = new(uri.Reference)
		return nil
	}
	ref, err := uri.Parse(n.String())
	if err != nil {
		return errtrace.Wrap(err)
	}
	b.sess.URI = ref
	return nil
}

func applyEmail(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	b.sess.Emails = append(b.sess.Emails, emailFromNode(node))
	return nil
}

func applyPhone(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	b.sess.Phones = append(b.sess.Phones, phoneFromNode(node))
	return nil
}

func applyConnection(b *sessionBuilder, state fieldState, node *abnf.Node) error {
	c, err := connectionFromNode(node)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if state.inMedia() {
		b.md.Connections = append(b.md.Connections, c)
	} else {
		b.sess.Connection = &c
	}
	return nil
}

// connectionFromNode builds the connection data of a "c=" line.
// The address grammar is ambiguous (a multicast literal is also an extn-addr),
// so the matched text is classified by [ParseConnectionAddress].
func connectionFromNode(node *abnf.Node) (Connection, error) {
	addr, err := ParseConnectionAddress(nodeText(node, "connection-address"))
	if err != nil {
		return Connection{}, errtrace.Wrap(err)
	}
	return Connection{
		NetType:  nodeText(node, "nettype"),
		AddrType: nodeText(node, "addrtype"),
		Address:  addr,
	}, nil
}

func applyBandwidth(b *sessionBuilder, state fieldState, node *abnf.Node) error {
	v, err := grammar.ParseUint(nodeText(node, "bandwidth"), 64)
	if err != nil {
		return errtrace.Wrap(err)
	}
	bw := Bandwidth{Type: nodeText(node, "bwtype"), Value: v}
	if state.inMedia() {
		b.md.Bandwidths = append(b.md.Bandwidths, bw)
	} else {
		b.sess.Bandwidths = append(b.sess.Bandwidths, bw)
	}
	return nil
}

func applyTiming(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	var (
		t   Timing
		err error
	)
	if t.Start, err = grammar.ParseUint(nodeText(node, "start-time"), 64); err != nil {
		return errtrace.Wrap(err)
	}
	if t.Stop, err = grammar.ParseUint(nodeText(node, "stop-time"), 64); err != nil {
		return errtrace.Wrap(err)
	}
	b.sess.Timings = append(b.sess.Timings, t)
	return nil
}

func applyRepeat(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	interval, err := parseTypedTime(nodeText(node, "repeat-interval"))
	if err != nil {
		return errtrace.Wrap(err)
	}
	tns := node.GetNodes("typed-time")
	times := make([]TypedTime, len(tns))
	for i, n := range tns {
		if times[i], err = parseTypedTime(n.String()); err != nil {
			return errtrace.Wrap(err)
		}
	}
	t := &b.sess.Timings[len(b.sess.Timings)-1]
	t.Repeats = append(t.Repeats, Repeat{Interval: interval, Duration: times[0], Offsets: times[1:]})
	return nil
}

func applyZones(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	zns := node.GetNodes("zone-adjustment")
	zones := make([]TimeZone, len(zns))
	for i, zn := range zns {
		adj, err := grammar.ParseUint(nodeText(zn, "time"), 64)
		if err != nil {
			return errtrace.Wrap(err)
		}
		zones[i].AdjustmentTime = adj
		_, zones[i].Negative = optNode(zn, `["-"]`)
		if zones[i].Offset, err = parseTypedTime(nodeText(zn, "typed-time")); err != nil {
			return errtrace.Wrap(err)
		}
	}
	b.sess.TimeZones = zones
	return nil
}

func applyKey(b *sessionBuilder, state fieldState, node *abnf.Node) error {
	k := &Key{Method: KeyPrompt}
	if kt := nodeText(node, "key-type"); kt != string(KeyPrompt) {
		m, v, _ := strings.Cut(kt, ":")
		k.Method, k.Value = KeyMethod(m), v
	}
	if state.inMedia() {
		b.md.Key = k
	} else {
		b.sess.Key = k
	}
	return nil
}

func applyAttribute(b *sessionBuilder, state fieldState, node *abnf.Node) error {
	a := Attribute{Name: nodeText(node, "att-field")}
	if n, ok := optNode(node, "att-value"); ok {
		a.Value = n.String()
	}
	if state.inMedia() {
		b.md.Attributes = append(b.md.Attributes, a)
	} else {
		b.sess.Attributes = append(b.sess.Attributes, a)
	}
	return nil
}

func applyMedia(b *sessionBuilder, _ fieldState, node *abnf.Node) error {
	m, err := mediaFromNode(node)
	if err != nil {
		return errtrace.Wrap(err)
	}
	b.md = &MediaDescription{Media: m}
	b.sess.Media = append(b.sess.Media, b.md)
	return nil
}

func mediaFromNode(node *abnf.Node) (Media, error) {
	port, err := grammar.ParseUint(nodeText(node, "port"), 16)
	if err != nil {
		return Media{}, errtrace.Wrap(err)
	}
	m := Media{
		Name:  nodeText(node, "media"),
		Port:  uint16(port),
		Proto: nodeText(node, "proto"),
	}
	if n, ok := optNode(node, "integer"); ok {
		if m.PortCount, err = grammar.ParseUint(n.String(), 64); err != nil {
			return Media{}, errtrace.Wrap(err)
		}
	}
	fns := node.GetNodes("fmt")
	m.Formats = make([]string, len(fns))
	for i, n := range fns {
		m.Formats[i] = n.String()
	}
	return m, nil
}

// fieldLine makes sure the field line is terminated.
func fieldLine(line string) string {
	if strings.HasSuffix(line, "\n") {
		return line
	}
	return line + "\r\n"
}

// ParseMedia parses a single "m=" line, the line terminator is optional.
func ParseMedia(line string) (*Media, error) {
	node, err := grammar.Parse(rfc4566.Operators().MediaField, fieldLine(line))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	m, err := mediaFromNode(node)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &m, nil
}

// ParseConnection parses a single "c=" line, the line terminator is optional.
func ParseConnection(line string) (*Connection, error) {
	node, err := grammar.Parse(rfc4566.Operators().ConnectionField, fieldLine(line))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c, err := connectionFromNode(node)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &c, nil
}

// ParseOrigin parses a single "o=" line, the line terminator is optional.
func ParseOrigin(line string) (*Origin, error) {
	node, err := grammar.Parse(rfc4566.Operators().OriginField, fieldLine(line))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	o, err := originFromNode(node)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &o, nil
}
