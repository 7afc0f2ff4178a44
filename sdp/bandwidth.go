package sdp

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/util"
)

// Common bandwidth types (RFC 4566 section 5.8, RFC 3556).
const (
	BandwidthConferenceTotal     = "CT"
	BandwidthApplicationSpecific = "AS"
	BandwidthRTCPSenders         = "RS"
	BandwidthRTCPReceivers       = "RR"
)

// Bandwidth is a "b=" field. Value is in kilobits per second.
type Bandwidth struct {
	Type  string `json:"type"`
	Value uint64 `json:"value"`
}

// RenderTo writes "type:value" to the provided writer.
func (bw Bandwidth) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	return errtrace.Wrap2(fmt.Fprint(w, bw.Type, ":", strconv.FormatUint(bw.Value, 10)))
}

// Render returns the string representation of the bandwidth.
func (bw Bandwidth) Render(opts *RenderOptions) string { return render(bw, opts) }

// String returns the string representation of the bandwidth.
func (bw Bandwidth) String() string { return bw.Render(nil) }

// Clone returns a copy of the bandwidth.
func (bw Bandwidth) Clone() Bandwidth { return bw }

// Equal compares this bandwidth with another for equality.
// Bandwidth types compare case-insensitively.
func (bw Bandwidth) Equal(val any) bool {
	var other Bandwidth
	switch v := val.(type) {
	case Bandwidth:
		other = v
	case *Bandwidth:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(bw.Type, other.Type) && bw.Value == other.Value
}

// IsValid checks whether the bandwidth type is a token.
func (bw Bandwidth) IsValid() bool { return grammar.IsToken(bw.Type) }
