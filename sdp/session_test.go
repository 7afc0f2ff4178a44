package sdp_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/gosdp/sdp"
)

func TestSession_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		sess *sdp.Session
		opts *sdp.RenderOptions
		want string
	}{
		{"nil", nil, nil, ""},
		{"core", fullSession(), nil, coreSDP},
		{"full", fullSession(), &sdp.RenderOptions{Full: true}, fullSDP},
		{"full LF", fullSession(), &sdp.RenderOptions{Full: true, LF: true}, strings.ReplaceAll(fullSDP, "\r\n", "\n")},
		{
			"empty name",
			&sdp.Session{
				Origin:  sdp.Origin{SessionID: 1, SessionVersion: 2, NetType: "IN", AddrType: "IP4", Address: "127.0.0.1"},
				Timings: []sdp.Timing{{}},
			},
			nil,
			"v=0\r\no=- 1 2 IN IP4 127.0.0.1\r\ns= \r\nt=0 0\r\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.sess.Render(c.opts); got != c.want {
				t.Errorf("sess.Render(%+v) = %q, want %q", c.opts, got, c.want)
			}
		})
	}
}

func TestSession_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		opts *sdp.RenderOptions
	}{
		{"core of full", fullSDP, nil},
		{"core", coreSDP, nil},
		{"full", fullSDP, &sdp.RenderOptions{Full: true}},
		{
			"webrtc offer",
			"v=0\r\n" +
				"o=- 4611731400430051336 2 IN IP4 127.0.0.1\r\n" +
				"s=-\r\n" +
				"t=0 0\r\n" +
				"a=group:BUNDLE 0\r\n" +
				"a=msid-semantic: WMS\r\n" +
				"m=audio 9 UDP/TLS/RTP/SAVPF 111 0\r\n" +
				"c=IN IP4 0.0.0.0\r\n" +
				"a=rtcp:9 IN IP4 0.0.0.0\r\n" +
				"a=ice-ufrag:4ZcD\r\n" +
				"a=ice-pwd:2/1muCWoOi3uLifh0NuRHlFT\r\n" +
				"a=fingerprint:sha-256 7B:8B:F0:65:5F:78:E2:51:3B:AC:6F:F3:3F:46:1B:35:DC:B8:5F:64:1A:24:C2:43:F0:A1:58:D0:A1:2C:19:08\r\n" +
				"a=setup:actpass\r\n" +
				"a=mid:0\r\n" +
				"a=sendrecv\r\n" +
				"a=rtcp-mux\r\n" +
				"a=rtpmap:111 opus/48000/2\r\n" +
				"a=fmtp:111 minptime=10;useinbandfec=1\r\n" +
				"a=rtpmap:0 PCMU/8000\r\n" +
				"a=candidate:1 1 UDP 2122260223 192.168.1.2 54321 typ host\r\n",
			nil,
		},
		{
			"IPv6 multicast",
			"v=0\r\n" +
				"o=alice 1 1 IN IP6 FE80::D69A:20FF:FE71:B84C\r\n" +
				"s=Multicast\r\n" +
				"c=IN IP6 FF15::101/3\r\n" +
				"t=3034423619 3042462419\r\n" +
				"m=video 49170/2 RTP/AVP 31\r\n",
			&sdp.RenderOptions{Full: true},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			sess, err := sdp.Parse(c.in, nil)
			if err != nil {
				t.Fatalf("sdp.Parse(%q) error = %v, want nil", c.in, err)
			}
			out := sess.Render(c.opts)
			if c.opts.IsFull() && out != c.in {
				t.Errorf("sess.Render(%+v) = %q, want %q", c.opts, out, c.in)
			}

			sess2, err := sdp.Parse(out, nil)
			if err != nil {
				t.Fatalf("sdp.Parse(%q) error = %v, want nil", out, err)
			}
			if got := sess2.Render(c.opts); got != out {
				t.Errorf("render is not idempotent: got %q, want %q", got, out)
			}
			if c.opts.IsFull() && !sess2.Equal(sess) {
				t.Errorf("sdp.Parse(sess.Render()) = %+v, want %+v", sess2, sess)
			}
		})
	}
}

func TestSession_RenderLossy(t *testing.T) {
	t.Parallel()

	sess, err := sdp.Parse(fullSDP, nil)
	if err != nil {
		t.Fatalf("sdp.Parse(fullSDP) error = %v, want nil", err)
	}
	core, err := sdp.Parse(sess.String(), nil)
	if err != nil {
		t.Fatalf("sdp.Parse(sess.String()) error = %v, want nil", err)
	}

	if core.Information != "" || core.URI != nil || core.Emails != nil || core.Phones != nil ||
		core.Bandwidths != nil || core.TimeZones != nil || core.Key != nil {
		t.Errorf("core session has optional fields: %+v", core)
	}
	if got := len(core.Timings[0].Repeats); got != 0 {
		t.Errorf("len(core.Timings[0].Repeats) = %d, want 0", got)
	}
	if got, want := core.Media[0].Information, ""; got != want {
		t.Errorf("core.Media[0].Information = %q, want %q", got, want)
	}
	if got, want := len(core.Media[1].Connections), 1; got != want {
		t.Errorf("len(core.Media[1].Connections) = %d, want %d", got, want)
	}
	if got, want := core.Attributes, sess.Attributes; !got.Equal(want) {
		t.Errorf("core.Attributes = %v, want %v", got, want)
	}
}

func TestSession_Validate(t *testing.T) {
	t.Parallel()

	noConn := fullSession()
	noConn.Connection = nil
	badVer := fullSession()
	badVer.Version = 1
	noTime := fullSession()
	noTime.Timings = nil
	badAttr := fullSession()
	badAttr.Attributes = append(badAttr.Attributes, sdp.Attribute{Name: "bad name"})

	cases := []struct {
		name    string
		sess    *sdp.Session
		wantErr error
	}{
		{"nil", nil, sdp.ErrInvalidArgument},
		{"valid", fullSession(), nil},
		{"missing connection", noConn, sdp.ErrMissingConnection},
		{"unsupported version", badVer, sdp.ErrUnsupportedVersion},
		{"missing timing", noTime, sdp.ErrMissingTiming},
		{"invalid attribute", badAttr, sdp.ErrInvalidArgument},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := c.sess.Validate()
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("sess.Validate() = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if got, want := c.sess.IsValid(), c.wantErr == nil; got != want {
				t.Errorf("sess.IsValid() = %v, want %v", got, want)
			}
		})
	}
}

func TestSession_Clone(t *testing.T) {
	t.Parallel()

	sess := fullSession()
	clone := sess.Clone()
	if !clone.Equal(sess) {
		t.Fatalf("sess.Clone() = %+v, want %+v", clone, sess)
	}

	clone.Attributes[0].Name = "sendonly"
	clone.Media[1].Attributes[0].Value = "98 VP8/90000"
	clone.Media[0].Media.Formats[0] = "8"
	clone.Timings[0].Repeats[0].Offsets[1].Value = 1
	clone.Connection.Address.TTL = 1
	clone.URI.Path = "/"

	if !sess.Equal(fullSession()) {
		t.Errorf("modifying the clone changed the original: %+v", sess)
	}
	if sess.Equal(clone) {
		t.Errorf("sess.Equal(modified clone) = true, want false")
	}
	if got := (*sdp.Session)(nil).Clone(); got != nil {
		t.Errorf("(*sdp.Session)(nil).Clone() = %+v, want nil", got)
	}
}

func TestSession_Equal(t *testing.T) {
	t.Parallel()

	caseFolded := fullSession()
	caseFolded.Origin.NetType = "in"
	caseFolded.Connection.AddrType = "ip4"
	caseFolded.Media[0].Media.Proto = "rtp/avp"
	caseFolded.Timings[0].Repeats[0].Interval = sdp.TypedTime{Value: 604800}

	otherAttrCase := fullSession()
	otherAttrCase.Attributes[0].Name = "RecvOnly"

	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"same", fullSession(), fullSession(), true},
		{"value", fullSession(), *fullSession(), true},
		{"case folded tokens", fullSession(), caseFolded, true},
		{"attribute names are case-sensitive", fullSession(), otherAttrCase, false},
		{"nil", fullSession(), (*sdp.Session)(nil), false},
		{"other type", fullSession(), fullSDP, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			sess := c.a.(*sdp.Session) //nolint:forcetypeassert
			if got := sess.Equal(c.b); got != c.want {
				t.Errorf("sess.Equal(%v) = %v, want %v", c.b, got, c.want)
			}
		})
	}
}

func TestSession_MarshalText(t *testing.T) {
	t.Parallel()

	b, err := fullSession().MarshalText()
	if err != nil {
		t.Fatalf("sess.MarshalText() error = %v, want nil", err)
	}
	if got, want := string(b), fullSDP; got != want {
		t.Errorf("sess.MarshalText() = %q, want %q", got, want)
	}

	var sess sdp.Session
	if err := sess.UnmarshalText(b); err != nil {
		t.Fatalf("sess.UnmarshalText() error = %v, want nil", err)
	}
	if want := fullSession(); !sess.Equal(want) {
		t.Errorf("sess.UnmarshalText() = %+v, want %+v", sess, want)
	}

	if err := sess.UnmarshalText([]byte("v=0\r\n")); err == nil {
		t.Errorf("sess.UnmarshalText(truncated) error = nil, want error")
	}
	if !sess.Equal(sdp.Session{}) {
		t.Errorf("sess.UnmarshalText(truncated) left %+v, want zero session", sess)
	}
}

func TestSession_Format(t *testing.T) {
	t.Parallel()

	sess := fullSession()
	if got, want := fmt.Sprintf("%s", sess), coreSDP; got != want {
		t.Errorf("fmt.Sprintf(%%s) = %q, want %q", got, want)
	}
	if got, want := fmt.Sprintf("%+s", sess), fullSDP; got != want {
		t.Errorf("fmt.Sprintf(%%+s) = %q, want %q", got, want)
	}
	if got, want := fmt.Sprintf("%q", sess), fmt.Sprintf("%q", coreSDP); got != want {
		t.Errorf("fmt.Sprintf(%%q) = %s, want %s", got, want)
	}
}
