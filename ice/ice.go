package ice

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination ../internal/testutil/icemock/resolver.go -package icemock . Resolver

import (
	"context"
	"fmt"
	"net"
	"sync"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/types"
	"github.com/ghettovoice/gosdp/sdp"
)

// Attribute names.
const (
	AttrCandidate = "candidate"
	AttrUfrag     = "ice-ufrag"
	AttrPwd       = "ice-pwd"
	AttrLite      = "ice-lite"
	AttrOptions   = "ice-options"
)

// Errors.
const (
	ErrInvalidCredentials errorutil.Error = "invalid ICE credentials"
	ErrInvalidArgument                    = errorutil.ErrInvalidArgument
)

// Addr is a transport address, a host with an optional port.
// See [types.Addr].
type Addr = types.Addr

// Credentials returns the "ice-ufrag" and "ice-pwd" values for the media section.
// Media level attributes take precedence over session level ones, md may be nil.
func Credentials(sess *sdp.Session, md *sdp.MediaDescription) (ufrag, pwd string) {
	lookup := func(name string) string {
		if md != nil {
			if v, ok := md.Attributes.Get(name); ok {
				return v
			}
		}
		if sess != nil {
			if v, ok := sess.Attributes.Get(name); ok {
				return v
			}
		}
		return ""
	}
	return lookup(AttrUfrag), lookup(AttrPwd)
}

// CheckCredentials checks ufrag and pwd against their grammar.
func CheckCredentials(ufrag, pwd string) error {
	if !grammar.IsUfrag(ufrag) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidCredentials, "ufrag %q", ufrag))
	}
	if !grammar.IsPassword(pwd) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidCredentials, "password of length %d", len(pwd)))
	}
	return nil
}

// IsLite reports whether the session declares an ICE lite implementation.
func IsLite(sess *sdp.Session) bool { return sess != nil && sess.Attributes.Has(AttrLite) }

// Candidates parses all candidate attributes of the media section in their original order.
func Candidates(md *sdp.MediaDescription) ([]*Candidate, error) {
	if md == nil {
		return nil, nil
	}
	var (
		cands []*Candidate
		errs  []error
	)
	for i, v := range md.Attributes.GetAll(AttrCandidate) {
		c, err := ParseCandidate(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("candidate #%d %q: %w", i, v, err))
			continue
		}
		cands = append(cands, c)
	}
	if err := errorutil.JoinPrefix("invalid candidates", errs...); err != nil {
		return cands, errtrace.Wrap(err)
	}
	return cands, nil
}

// TransportAddrs returns the addresses announced by the session:
// the origin address, the connection addresses and the candidate addresses of every media section.
// Duplicates are removed, the order of first appearance is kept.
// Malformed candidates are skipped.
func TransportAddrs(sess *sdp.Session) []Addr {
	if sess == nil {
		return nil
	}

	var addrs []Addr
	add := func(addr Addr) {
		for _, a := range addrs {
			if a.Equal(addr) {
				return
			}
		}
		addrs = append(addrs, addr)
	}

	if sess.Origin.Address != "" {
		add(types.Host(sess.Origin.Address))
	}
	if sess.Connection != nil && !sess.Connection.Address.Multicast {
		add(types.Host(sess.Connection.Address.Host))
	}
	for _, md := range sess.Media {
		if md == nil {
			continue
		}
		conns := md.Connections
		if len(conns) == 0 && sess.Connection != nil {
			conns = []sdp.Connection{*sess.Connection}
		}
		for _, c := range conns {
			if !c.Address.Multicast {
				add(types.HostPort(c.Address.Host, md.Media.Port))
			}
		}
		cands, _ := Candidates(md)
		for _, c := range cands {
			add(c.Addr())
		}
	}
	return addrs
}

// Resolver looks up IP addresses of a host name.
type Resolver interface {
	LookupIP(ctx context.Context, host string) ([]net.IP, error)
}

// Resolve binds FQDN addresses to their first resolved IP.
//
// Lookups run concurrently, one per FQDN address. The result keeps the order of addrs,
// addresses that are already IP literals or fail to resolve are returned unchanged.
// Lookup failures are joined into the returned error.
func Resolve(ctx context.Context, r Resolver, addrs []Addr) ([]Addr, error) {
	if r == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil resolver"))
	}

	res := make([]Addr, len(addrs))
	errs := make([]error, len(addrs))
	var wg sync.WaitGroup
	for i, addr := range addrs {
		res[i] = addr
		if addr.IP() != nil || addr.Kind() != grammar.AddrFQDN {
			continue
		}
		wg.Go(func() {
			ips, err := r.LookupIP(ctx, addr.Host())
			switch {
			case err != nil:
				errs[i] = fmt.Errorf("lookup %s: %w", addr.Host(), err)
			case len(ips) == 0:
				errs[i] = errorutil.Errorf("lookup %s: no addresses", addr.Host())
			default:
				res[i] = addr.WithIP(ips[0])
			}
		})
	}
	wg.Wait()

	if err := errorutil.JoinPrefix("resolve addresses", errs...); err != nil {
		return res, errtrace.Wrap(err)
	}
	return res, nil
}
