package util_test

import (
	"testing"

	"github.com/ghettovoice/gosdp/internal/util"
)

func TestSnippet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"empty", "", 10, ""},
		{"zero len", "abc", 0, ""},
		{"short", "abc", 10, "abc"},
		{"exact", "abc", 3, "abc"},
		{"cut", "v=0\r\no=- 1 1 IN IP4 host\r\n", 5, "v=0\r\n"},
		{"latin-1", "s=caf\xe9\r\n", 6, "s=caf\xe9"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := util.Snippet(c.in, c.n); got != c.want {
				t.Errorf("util.Snippet(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
			}
			if got := util.Snippet([]byte(c.in), c.n); got != c.want {
				t.Errorf("util.Snippet([]byte(%q), %d) = %q, want %q", c.in, c.n, got, c.want)
			}
		})
	}
}

func TestEqFold(t *testing.T) {
	t.Parallel()

	if !util.EqFold("IP4", "ip4") {
		t.Errorf("util.EqFold(%q, %q) = false, want true", "IP4", "ip4")
	}
	if util.EqFold("IP4", "IP6") {
		t.Errorf("util.EqFold(%q, %q) = true, want false", "IP4", "IP6")
	}
}
