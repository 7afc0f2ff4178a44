package sdp

import (
	"fmt"
	"log/slog"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/internal/grammar"
)

// Error represents an SDP error.
// See [errorutil.Error].
type Error = errorutil.Error

// Parse errors.
const (
	// ErrEmptyInput is returned when there is nothing to parse.
	ErrEmptyInput = grammar.ErrEmptyInput
	// ErrMalformedInput is returned when an expected field or token is not found at its position.
	ErrMalformedInput = grammar.ErrMalformedInput
	// ErrValueOutOfRange is returned when a numeric field does not fit its type.
	ErrValueOutOfRange = grammar.ErrValueOutOfRange
	// ErrIncompleteInput is returned by [Parse] when a valid prefix was matched,
	// but the input was not consumed entirely.
	ErrIncompleteInput Error = "incomplete input"
)

// Validation errors.
const (
	ErrInvalidArgument          = errorutil.ErrInvalidArgument
	ErrUnsupportedVersion Error = "unsupported protocol version"
	ErrMissingConnection  Error = "missing connection data"
	ErrMissingTiming      Error = "missing timing"
)

// DefaultSnippetLen is the number of unconsumed bytes quoted by [ParseError].
const DefaultSnippetLen = 32

// ParseError describes where and why parsing stopped.
type ParseError struct {
	// Rule is the name of the grammar rule that was expected.
	Rule string
	// Offset is the byte offset of the failed line in the input.
	Offset int
	// Snippet holds the first unconsumed bytes starting at Offset.
	Snippet string
	// Err is the error kind, one of [ErrEmptyInput], [ErrMalformedInput],
	// [ErrValueOutOfRange], [ErrIncompleteInput] or [ErrUnsupportedVersion],
	// possibly wrapping the cause.
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("sdp: %s at offset %d near %q: %v", e.Rule, e.Offset, e.Snippet, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Grammar reports whether parsing stopped on a grammar mismatch
// rather than on a semantic check like the protocol version.
func (e *ParseError) Grammar() bool { return e != nil && errorutil.IsGrammarErr(e.Err) }

// LogValue implements [slog.LogValuer].
func (e *ParseError) LogValue() slog.Value {
	if e == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.String("rule", e.Rule),
		slog.Int("offset", e.Offset),
		slog.String("snippet", e.Snippet),
		slog.Any("error", e.Err),
	)
}
