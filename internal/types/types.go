// Package types contains the rendering and value contracts shared by the sdp packages.
package types

//go:generate go tool errtrace -w .

import "io"

// Renderer is an interface that is used to render a type to a string or a writer.
type Renderer interface {
	// Render renders the type to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the type to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions is a struct that is used to pass options to rendering methods.
// A nil *RenderOptions is the same as the zero value.
type RenderOptions struct {
	// Full renders every field of the model.
	// Without it only the core fields are written: v, o, s, c, t, a and the media sections
	// with their c and a lines.
	Full bool `json:"full,omitempty"`
	// LF terminates lines with a bare LF instead of CRLF.
	LF bool `json:"lf,omitempty"`
}

// IsFull reports whether opts requests full rendering.
func (opts *RenderOptions) IsFull() bool { return opts != nil && opts.Full }

// EOL returns the line terminator selected by opts.
func (opts *RenderOptions) EOL() string {
	if opts != nil && opts.LF {
		return "\n"
	}
	return "\r\n"
}
