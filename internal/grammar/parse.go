package grammar

import (
	"errors"
	"strconv"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc2822"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc3986"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc4566"
	"github.com/ghettovoice/gosdp/internal/grammar/rfc5245"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// Parse runs op over s and returns the longest match.
// It fails unless the match covers the whole input.
func Parse[T ~string | ~[]byte](op abnf.Operator, s T) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return n, nil
}

func ParseAddrSpec[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(Parse(rfc2822.Operators().AddrSpec, s))
}

func ParseURIReference[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(Parse(rfc3986.Operators().URIReference, s))
}

func ParseEmailAddress[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(Parse(rfc4566.Operators().EmailAddress, s))
}

func ParsePhoneNumber[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(Parse(rfc4566.Operators().PhoneNumber, s))
}

func ParseIP4Multicast[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(Parse(rfc4566.Operators().IP4Multicast, s))
}

func ParseIP6Multicast[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(Parse(rfc4566.Operators().IP6Multicast, s))
}

func ParseCandidate[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(Parse(rfc5245.Operators().Candidate, s))
}

// ParseUint parses a run of decimal digits into an unsigned integer of the given bit size.
// Values that do not fit fail with [ErrValueOutOfRange].
func ParseUint[T ~string | ~[]byte](s T, bitSize int) (uint64, error) {
	if len(s) == 0 {
		return 0, errtrace.Wrap(ErrEmptyInput)
	}
	v, err := strconv.ParseUint(string(s), 10, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrValueOutOfRange, err))
		}
		return 0, errtrace.Wrap(newMalformedInputErr(err))
	}
	return v, nil
}
