package sdp

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/grammar"
)

// KeyMethod is the method of a "k=" field.
type KeyMethod string

const (
	KeyClear  KeyMethod = "clear"
	KeyBase64 KeyMethod = "base64"
	KeyURI    KeyMethod = "uri"
	KeyPrompt KeyMethod = "prompt"
)

// IsValid reports whether m is one of the methods defined by RFC 4566.
func (m KeyMethod) IsValid() bool {
	switch m {
	case KeyClear, KeyBase64, KeyURI, KeyPrompt:
		return true
	default:
		return false
	}
}

// Key is a "k=" field.
type Key struct {
	Method KeyMethod `json:"method"`
	Value  string    `json:"value,omitempty"`
}

// RenderTo writes "method[:value]" to the provided writer.
func (k *Key) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	if k == nil {
		return 0, nil
	}
	if k.Method == KeyPrompt {
		return errtrace.Wrap2(fmt.Fprint(w, string(k.Method)))
	}
	return errtrace.Wrap2(fmt.Fprint(w, string(k.Method), ":", k.Value))
}

// Render returns the string representation of the key value.
func (k *Key) Render(opts *RenderOptions) string {
	if k == nil {
		return ""
	}
	return render(k, opts)
}

func (k *Key) String() string { return k.Render(nil) }

// Clone returns a copy of the key.
func (k *Key) Clone() *Key {
	if k == nil {
		return nil
	}
	k2 := *k
	return &k2
}

// Equal compares this key with another for equality.
func (k *Key) Equal(val any) bool {
	var other *Key
	switch v := val.(type) {
	case Key:
		other = &v
	case *Key:
		other = v
	default:
		return false
	}

	if k == other {
		return true
	} else if k == nil || other == nil {
		return false
	}
	return *k == *other
}

// IsValid checks the value against the grammar of the method.
func (k *Key) IsValid() bool {
	if k == nil || !k.Method.IsValid() {
		return false
	}
	switch k.Method {
	case KeyPrompt:
		return k.Value == ""
	case KeyURI:
		return grammar.IsURIReference(k.Value)
	case KeyBase64:
		return k.Value == "" || grammar.IsBase64(k.Value)
	default:
		return grammar.IsByteString(k.Value)
	}
}
