// Package ioutil provides the writer used by the SDP renderers.
package ioutil

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"sync"

	"braces.dev/errtrace"
)

// LineWriter writes SDP field lines ("<type>=<value><eol>") to an underlying writer
// and keeps the running byte count. After the first write error every further call
// is a no-op and the error is reported by [LineWriter.Result].
type LineWriter struct {
	w   io.Writer
	eol string
	num int
	err error
}

// NewLineWriter returns a LineWriter terminating lines with CRLF, or with bare LF if lf is set.
func NewLineWriter(w io.Writer, lf bool) *LineWriter {
	lw := &LineWriter{w: w}
	lw.setEOL(lf)
	return lw
}

func (lw *LineWriter) setEOL(lf bool) {
	if lf {
		lw.eol = "\n"
	} else {
		lw.eol = "\r\n"
	}
}

// Print writes operands formatted as by [fmt.Fprint].
func (lw *LineWriter) Print(args ...any) *LineWriter {
	if lw.err != nil {
		return lw
	}
	n, err := fmt.Fprint(lw.w, args...)
	lw.num += n
	if err != nil {
		lw.err = errtrace.Wrap(err)
	}
	return lw
}

// Begin starts a field line of the given type.
func (lw *LineWriter) Begin(typ byte) *LineWriter {
	return lw.Print(string([]byte{typ, '='}))
}

// End terminates the current line.
func (lw *LineWriter) End() *LineWriter {
	return lw.Print(lw.eol)
}

// Line writes a whole field line, joining values with single spaces.
func (lw *LineWriter) Line(typ byte, vals ...any) *LineWriter {
	lw.Begin(typ)
	for i, v := range vals {
		if i > 0 {
			lw.Print(" ")
		}
		lw.Print(v)
	}
	return lw.End()
}

// Call executes a RenderTo-style function and counts the bytes it wrote.
func (lw *LineWriter) Call(fn func(io.Writer) (int, error)) *LineWriter {
	if lw.err != nil {
		return lw
	}
	n, err := fn(lw.w)
	lw.num += n
	if err != nil {
		lw.err = errtrace.Wrap(err)
	}
	return lw
}

// Result returns the total number of bytes written and the first error encountered.
func (lw *LineWriter) Result() (num int, err error) {
	return lw.num, errtrace.Wrap(lw.err)
}

var lineWrtPool = &sync.Pool{
	New: func() any { return &LineWriter{} },
}

// GetLineWriter returns a pooled LineWriter, see [NewLineWriter].
func GetLineWriter(w io.Writer, lf bool) *LineWriter {
	lw := lineWrtPool.Get().(*LineWriter) //nolint:forcetypeassert
	lw.w = w
	lw.setEOL(lf)
	return lw
}

func FreeLineWriter(lw *LineWriter) {
	lw.w = nil
	lw.num = 0
	lw.err = nil
	lineWrtPool.Put(lw)
}
