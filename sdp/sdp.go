package sdp

//go:generate go tool errtrace -w .

import (
	"io"

	"github.com/ghettovoice/gosdp/internal/types"
	"github.com/ghettovoice/gosdp/internal/util"
)

// RenderOptions contains options for rendering session descriptions.
// See [types.RenderOptions].
type RenderOptions = types.RenderOptions

var (
	_ types.Renderer = (*Session)(nil)
	_ types.Renderer = (*MediaDescription)(nil)
	_ types.Renderer = (*Origin)(nil)
	_ types.Renderer = (*Connection)(nil)
	_ types.Renderer = ConnectionAddress{}
	_ types.Renderer = Email{}
	_ types.Renderer = Phone{}
	_ types.Renderer = Attribute{}
)

type renderer interface {
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

func render(r renderer, opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	r.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}
