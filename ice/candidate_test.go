package ice_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/gosdp/ice"
	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/types"
)

func TestParseCandidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want *ice.Candidate
		str  string
	}{
		{
			name: "host",
			in:   "candidate:1 1 UDP 2130706431 10.0.1.1 8998 typ host",
			want: &ice.Candidate{
				Foundation: "1",
				Component:  1,
				Transport:  "UDP",
				Priority:   2130706431,
				Address:    "10.0.1.1",
				Port:       8998,
				Type:       ice.TypeHost,
			},
			str: "1 1 UDP 2130706431 10.0.1.1 8998 typ host",
		},
		{
			name: "server reflexive",
			in:   "2 1 UDP 1694498815 192.0.2.3 45664 typ srflx raddr 10.0.1.1 rport 8998",
			want: &ice.Candidate{
				Foundation: "2",
				Component:  1,
				Transport:  "UDP",
				Priority:   1694498815,
				Address:    "192.0.2.3",
				Port:       45664,
				Type:       ice.TypeSrflx,
				Related:    types.HostPort("10.0.1.1", 8998),
			},
			str: "2 1 UDP 1694498815 192.0.2.3 45664 typ srflx raddr 10.0.1.1 rport 8998",
		},
		{
			name: "extensions",
			in:   "842163049 1 udp 1677729535 203.0.113.7 61665 typ srflx raddr 0.0.0.0 rport 0 generation 0 network-cost 999",
			want: &ice.Candidate{
				Foundation: "842163049",
				Component:  1,
				Transport:  "udp",
				Priority:   1677729535,
				Address:    "203.0.113.7",
				Port:       61665,
				Type:       ice.TypeSrflx,
				Related:    types.HostPort("0.0.0.0", 0),
				Extensions: []ice.Extension{
					{Name: "generation", Value: "0"},
					{Name: "network-cost", Value: "999"},
				},
			},
			str: "842163049 1 udp 1677729535 203.0.113.7 61665 typ srflx raddr 0.0.0.0 rport 0 generation 0 network-cost 999",
		},
		{
			name: "ipv6 host",
			in:   "3 2 tcp 2105458943 2001:db8::1 9 typ host tcptype active",
			want: &ice.Candidate{
				Foundation: "3",
				Component:  2,
				Transport:  "tcp",
				Priority:   2105458943,
				Address:    "2001:db8::1",
				Port:       9,
				Type:       ice.TypeHost,
				Extensions: []ice.Extension{{Name: "tcptype", Value: "active"}},
			},
			str: "3 2 tcp 2105458943 2001:db8::1 9 typ host tcptype active",
		},
		{
			name: "relay with fqdn",
			in:   "4 1 UDP 16777215 turn.example.com 3478 typ relay raddr 192.0.2.3 rport 45664",
			want: &ice.Candidate{
				Foundation: "4",
				Component:  1,
				Transport:  "UDP",
				Priority:   16777215,
				Address:    "turn.example.com",
				Port:       3478,
				Type:       ice.TypeRelay,
				Related:    types.HostPort("192.0.2.3", 45664),
			},
			str: "4 1 UDP 16777215 turn.example.com 3478 typ relay raddr 192.0.2.3 rport 45664",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := ice.ParseCandidate(c.in)
			if err != nil {
				t.Fatalf("ice.ParseCandidate(%q) error = %v, want nil", c.in, err)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("ice.ParseCandidate(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if got := got.String(); got != c.str {
				t.Errorf("cand.String() = %q, want %q", got, c.str)
			}
			if !got.IsValid() {
				t.Errorf("cand.IsValid() = false, want true")
			}
		})
	}
}

func TestParseCandidate_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"empty", "", grammar.ErrEmptyInput},
		{"missing type", "1 1 UDP 2130706431 10.0.1.1 8998", grammar.ErrMalformedInput},
		{"port out of range", "1 1 UDP 2130706431 10.0.1.1 70000 typ host", grammar.ErrValueOutOfRange},
		{"component out of range", "1 99999 UDP 2130706431 10.0.1.1 8998 typ host", grammar.ErrValueOutOfRange},
		{"priority out of range", "1 1 UDP 4294967296 10.0.1.1 8998 typ host", grammar.ErrValueOutOfRange},
		{"bad address", "1 1 UDP 2130706431 10.0.1.300 8998 typ host", grammar.ErrMalformedInput},
		{"rport without raddr", "1 1 UDP 2130706431 10.0.1.1 8998 typ srflx rport 9", grammar.ErrMalformedInput},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := ice.ParseCandidate(c.in)
			if got != nil {
				t.Errorf("ice.ParseCandidate(%q) = %v, want nil", c.in, got)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("ice.ParseCandidate(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
		})
	}
}

func TestCandidate_Methods(t *testing.T) {
	t.Parallel()

	c, err := ice.ParseCandidate("4 1 UDP 16777215 198.51.100.9 3478 typ relay raddr 192.0.2.3 rport 45664")
	if err != nil {
		t.Fatalf("ice.ParseCandidate() error = %v, want nil", err)
	}

	if !c.IsRelayed() {
		t.Errorf("cand.IsRelayed() = false, want true")
	}
	if got, want := c.Addr(), types.HostPort("198.51.100.9", 3478); !got.Equal(want) {
		t.Errorf("cand.Addr() = %v, want %v", got, want)
	}

	clone := c.Clone()
	if !clone.Equal(c) {
		t.Errorf("cand.Clone().Equal(cand) = false, want true")
	}
	clone.Port = 3479
	if clone.Equal(c) {
		t.Errorf("modified clone equals the original")
	}
	if c.Port != 3478 {
		t.Errorf("cand.Port = %d after clone modification, want 3478", c.Port)
	}

	var nilCand *ice.Candidate
	if got := nilCand.String(); got != "" {
		t.Errorf("(*Candidate)(nil).String() = %q, want \"\"", got)
	}
	if nilCand.IsRelayed() {
		t.Errorf("(*Candidate)(nil).IsRelayed() = true, want false")
	}
}
