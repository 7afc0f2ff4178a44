package log_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/ghettovoice/gosdp/internal/log"
)

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(context.Background(), slog.LevelError) {
		t.Error("log.Noop.Enabled(LevelError) = true, want false")
	}
}

func TestFmtValue(t *testing.T) {
	t.Parallel()

	type point struct{ X, Y int }

	cases := []struct {
		name     string
		goSyntax bool
		want     string
	}{
		{"plus", false, "{X:1 Y:2}"},
		{"go", true, "log_test.point{X:1, Y:2}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := log.FmtValue(point{1, 2}, c.goSyntax).LogValue().String(); got != c.want {
				t.Errorf("log.FmtValue().LogValue() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	if got, want := log.StringValue([]byte("v=0")).LogValue().String(), "v=0"; got != want {
		t.Errorf("log.StringValue().LogValue() = %q, want %q", got, want)
	}
}

func TestCalcValue(t *testing.T) {
	t.Parallel()

	var calls int
	v := log.CalcValue(func() any {
		calls++
		return slog.IntValue(42)
	})
	if calls != 0 {
		t.Fatalf("value computed eagerly, calls = %d", calls)
	}
	if got := v.LogValue().Int64(); got != 42 {
		t.Errorf("v.LogValue() = %d, want 42", got)
	}
}
