// Package pion converts session descriptions to and from [github.com/pion/sdp/v3].
//
// Conversion goes through the full text form: the session is rendered with all fields and
// decoded by pion, or marshaled by pion and parsed back. Each side therefore validates
// what the other produced.
package pion

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"
	psdp "github.com/pion/sdp/v3"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/sdp"
)

// ErrConversion is returned when one of the models rejects the other's output.
const ErrConversion errorutil.Error = "pion conversion failed"

var fullRender = &sdp.RenderOptions{Full: true}

// ToPion converts the session into a pion session description.
//
// pion does not split connection addresses: a multicast "c=" address keeps its
// "/ttl" and "/count" suffixes in [psdp.Address.Address] and TTL and Range stay nil.
func ToPion(sess *sdp.Session) (*psdp.SessionDescription, error) {
	if err := sess.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}

	var sd psdp.SessionDescription
	if err := sd.Unmarshal([]byte(sess.Render(fullRender))); err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrConversion, err))
	}
	return &sd, nil
}

// FromPion converts a pion session description into a session.
func FromPion(sd *psdp.SessionDescription) (*sdp.Session, error) {
	if sd == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil session description"))
	}

	b, err := sd.Marshal()
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrConversion, err))
	}
	sess, err := sdp.Parse(b, nil)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrConversion, err))
	}
	return sess, nil
}
