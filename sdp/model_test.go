package sdp_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/gosdp/sdp"
)

func TestParseConnectionAddress(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    sdp.ConnectionAddress
		wantErr error
	}{
		{"", sdp.ConnectionAddress{}, sdp.ErrEmptyInput},
		{"218.186.8.238", sdp.ConnectionAddress{Host: "218.186.8.238"}, nil},
		{"224.2.1.1", sdp.ConnectionAddress{Host: "224.2.1.1"}, nil},
		{"224.2.1.1/0", sdp.ConnectionAddress{Host: "224.2.1.1", Multicast: true}, nil},
		{"239.255.255.255/255/2", sdp.ConnectionAddress{Host: "239.255.255.255", Multicast: true, TTL: 255, Count: 2}, nil},
		{"224.2.1.1/256", sdp.ConnectionAddress{}, sdp.ErrValueOutOfRange},
		{"FF15::1", sdp.ConnectionAddress{Host: "FF15::1", Multicast: true}, nil},
		{"ff02::1:2/4", sdp.ConnectionAddress{Host: "ff02::1:2", Multicast: true, Count: 4}, nil},
		{"::1", sdp.ConnectionAddress{Host: "::1"}, nil},
		{"media.example.net", sdp.ConnectionAddress{Host: "media.example.net"}, nil},
		{"1.2.3", sdp.ConnectionAddress{}, sdp.ErrMalformedInput},
		{"FE80::D69A::1", sdp.ConnectionAddress{}, sdp.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got, err := sdp.ParseConnectionAddress(c.in)
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("sdp.ParseConnectionAddress(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("sdp.ParseConnectionAddress(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if c.wantErr == nil {
				if got, want := got.String(), c.in; got != want {
					t.Errorf("addr.String() = %q, want %q", got, want)
				}
				if !got.IsValid() {
					t.Errorf("addr.IsValid() = false, want true")
				}
			}
		})
	}
}

func TestParseEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    sdp.Email
		wantStr string
		wantErr error
	}{
		{
			"addr-spec",
			"dries@pandion.im",
			sdp.Email{Addr: sdp.AddrSpec{LocalPart: "dries", Domain: "pandion.im"}},
			"dries@pandion.im",
			nil,
		},
		{
			"display name",
			"Jane Doe <j.doe@example.com>",
			sdp.Email{Addr: sdp.AddrSpec{LocalPart: "j.doe", Domain: "example.com"}, DisplayName: "Jane Doe"},
			"Jane Doe <j.doe@example.com>",
			nil,
		},
		{
			"comment",
			"j.doe@example.com (Jane Doe)",
			sdp.Email{Addr: sdp.AddrSpec{LocalPart: "j.doe", Domain: "example.com"}, Comment: "Jane Doe"},
			"j.doe@example.com (Jane Doe)",
			nil,
		},
		{
			"quoted local part",
			`"john doe"@example.com`,
			sdp.Email{Addr: sdp.AddrSpec{LocalPart: `"john doe"`, Domain: "example.com"}},
			`"john doe"@example.com`,
			nil,
		},
		{
			"domain literal",
			"root@[192.168.0.1]",
			sdp.Email{Addr: sdp.AddrSpec{LocalPart: "root", Domain: "[192.168.0.1]"}},
			"root@[192.168.0.1]",
			nil,
		},
		{"missing at sign", "missingatSign.net", sdp.Email{}, "", sdp.ErrMalformedInput},
		{"two at signs", "two@@signs.com", sdp.Email{}, "", sdp.ErrMalformedInput},
		{"empty", "", sdp.Email{}, "", sdp.ErrEmptyInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := sdp.ParseEmail(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("sdp.ParseEmail(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if c.wantErr != nil {
				return
			}
			if !got.Equal(c.want) {
				t.Errorf("sdp.ParseEmail(%q) = %+v, want %+v", c.in, got, c.want)
			}
			if got, want := got.String(), c.wantStr; got != want {
				t.Errorf("email.String() = %q, want %q", got, want)
			}
			if !got.IsValid() {
				t.Errorf("email.IsValid() = false, want true")
			}
		})
	}
}

func TestParsePhone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    sdp.Phone
		wantErr error
	}{
		{"number", "+1 617 555-6011", sdp.Phone{Number: "+1 617 555-6011"}, nil},
		{"comment", "+1 617 555-6011 (Jane Doe)", sdp.Phone{Number: "+1 617 555-6011", Comment: "Jane Doe"}, nil},
		{"display name", "Jane Doe <+1 617 555-6011>", sdp.Phone{Number: "+1 617 555-6011", DisplayName: "Jane Doe"}, nil},
		{"letters", "call me", sdp.Phone{}, sdp.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := sdp.ParsePhone(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("sdp.ParsePhone(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if c.wantErr != nil {
				return
			}
			if got != c.want {
				t.Errorf("sdp.ParsePhone(%q) = %+v, want %+v", c.in, got, c.want)
			}
			if got, want := got.String(), c.in; got != want {
				t.Errorf("phone.String() = %q, want %q", got, want)
			}
		})
	}
}

func TestKey_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		key  *sdp.Key
		want bool
	}{
		{"nil", nil, false},
		{"prompt", &sdp.Key{Method: sdp.KeyPrompt}, true},
		{"prompt with value", &sdp.Key{Method: sdp.KeyPrompt, Value: "x"}, false},
		{"clear", &sdp.Key{Method: sdp.KeyClear, Value: "secret key"}, true},
		{"base64", &sdp.Key{Method: sdp.KeyBase64, Value: "c2VjcmV0"}, true},
		{"base64 padded", &sdp.Key{Method: sdp.KeyBase64, Value: "c2VjcmV0MQ=="}, true},
		{"bad base64", &sdp.Key{Method: sdp.KeyBase64, Value: "c2VjcmV0M"}, false},
		{"uri", &sdp.Key{Method: sdp.KeyURI, Value: "https://keys.example.com/k1"}, true},
		{"unknown method", &sdp.Key{Method: "rot13", Value: "x"}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.key.IsValid(); got != c.want {
				t.Errorf("key.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestAttributes(t *testing.T) {
	t.Parallel()

	attrs := sdp.Attributes{
		{Name: "rtpmap", Value: "0 PCMU/8000"},
		{Name: "sendrecv"},
		{Name: "rtpmap", Value: "8 PCMA/8000"},
	}

	if v, ok := attrs.Get("rtpmap"); !ok || v != "0 PCMU/8000" {
		t.Errorf("attrs.Get(\"rtpmap\") = (%q, %v), want (%q, true)", v, ok, "0 PCMU/8000")
	}
	if diff := cmp.Diff(attrs.GetAll("rtpmap"), []string{"0 PCMU/8000", "8 PCMA/8000"}); diff != "" {
		t.Errorf("attrs.GetAll(\"rtpmap\") diff (-got +want):\n%v", diff)
	}
	if !attrs.Has("sendrecv") || attrs.Has("SendRecv") {
		t.Errorf("attrs.Has() must match names case-sensitively")
	}
	if !attrs[1].IsProperty() || attrs[0].IsProperty() {
		t.Errorf("attr.IsProperty() mismatch")
	}
	if got, want := attrs[0].String(), "rtpmap:0 PCMU/8000"; got != want {
		t.Errorf("attr.String() = %q, want %q", got, want)
	}
	if !attrs.IsValid() {
		t.Errorf("attrs.IsValid() = false, want true")
	}
	if clone := attrs.Clone(); !clone.Equal(attrs) {
		t.Errorf("attrs.Clone() = %v, want %v", clone, attrs)
	}
}

func TestTiming(t *testing.T) {
	t.Parallel()

	tm := &sdp.Timing{Start: 3034423619, Stop: 3042462419}
	if got, want := tm.StartTime(), time.Date(1996, time.February, 27, 15, 26, 59, 0, time.UTC); !got.Equal(want) {
		t.Errorf("tm.StartTime() = %v, want %v", got, want)
	}
	if tm.IsPermanent() {
		t.Errorf("tm.IsPermanent() = true, want false")
	}
	if !(&sdp.Timing{}).IsPermanent() {
		t.Errorf("(&sdp.Timing{}).IsPermanent() = false, want true")
	}
	if !(&sdp.Timing{}).StopTime().IsZero() {
		t.Errorf("(&sdp.Timing{}).StopTime() is not zero")
	}
	if (&sdp.Timing{Start: 10, Stop: 5}).IsValid() {
		t.Errorf("timing with stop before start is valid")
	}

	r := &sdp.Repeat{
		Interval: sdp.TypedTime{Value: 7, Unit: sdp.UnitDays},
		Duration: sdp.TypedTime{Value: 3600},
		Offsets:  []sdp.TypedTime{{Value: 0}, {Value: 90000}},
	}
	if got, want := r.String(), "7d 3600 0 90000"; got != want {
		t.Errorf("r.String() = %q, want %q", got, want)
	}
	if got, want := r.Interval.Duration(), 7*24*time.Hour; got != want {
		t.Errorf("r.Interval.Duration() = %v, want %v", got, want)
	}

	tz := sdp.TimeZone{AdjustmentTime: 2882844526, Offset: sdp.TypedTime{Value: 1, Unit: sdp.UnitHours}, Negative: true}
	if got, want := tz.String(), "2882844526 -1h"; got != want {
		t.Errorf("tz.String() = %q, want %q", got, want)
	}
	if got, want := tz.OffsetDuration(), -time.Hour; got != want {
		t.Errorf("tz.OffsetDuration() = %v, want %v", got, want)
	}
}

func TestMedia(t *testing.T) {
	t.Parallel()

	m := &sdp.Media{Name: "audio", Port: 9, Proto: "UDP/TLS/RTP/SAVPF", Formats: []string{"111", "0"}}
	if got, want := m.String(), "audio 9 UDP/TLS/RTP/SAVPF 111 0"; got != want {
		t.Errorf("m.String() = %q, want %q", got, want)
	}
	if diff := cmp.Diff(m.Transports(), []string{"UDP", "TLS", "RTP", "SAVPF"}); diff != "" {
		t.Errorf("m.Transports() diff (-got +want):\n%v", diff)
	}
	if !m.IsValid() {
		t.Errorf("m.IsValid() = false, want true")
	}
	if (&sdp.Media{Name: "audio", Proto: "RTP/AVP"}).IsValid() {
		t.Errorf("media without formats is valid")
	}
}
