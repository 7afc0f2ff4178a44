// Package dns resolves host names announced in session descriptions.
//
// [Resolver] satisfies the ice.Resolver interface, so FQDN connection and candidate
// addresses can be bound to IP addresses before connectivity checks start.
package dns

//go:generate go tool errtrace -w .

import (
	"context"
	"errors"
	"net"
	"time"

	"braces.dev/errtrace"
	"github.com/miekg/dns"
)

// Resolver looks up host addresses.
//
// The zero value uses the system resolver. When NameServer is set, A and AAAA queries are sent
// directly to that server.
type Resolver struct {
	net.Resolver

	// NameServer specifies the DNS server address (e.g., "8.8.8.8:53").
	// Port 53 is assumed when the address has no port.
	NameServer string
	// Timeout specifies the timeout for DNS queries.
	// If zero, defaults to 5 seconds.
	Timeout time.Duration
}

// LookupIP returns the IPv4 and IPv6 addresses of the host, IPv4 addresses first.
// IPv4 addresses are returned in their 4-byte form.
func (r *Resolver) LookupIP(ctx context.Context, host string) ([]net.IP, error) {
	if r.NameServer == "" {
		ips, err := r.Resolver.LookupIP(ctx, "ip", host)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		for i, ip := range ips {
			if ip4 := ip.To4(); ip4 != nil {
				ips[i] = ip4
			}
		}
		return ips, nil
	}

	var (
		ips  []net.IP
		errs []error
	)
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		res, err := r.exchange(ctx, host, qtype)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ips = append(ips, res...)
	}
	if len(ips) == 0 {
		if len(errs) > 0 {
			return nil, errtrace.Wrap(errors.Join(errs...))
		}
		return nil, errtrace.Wrap(&net.DNSError{
			Err:        "no such host",
			Name:       host,
			Server:     r.NameServer,
			IsNotFound: true,
		})
	}
	return ips, nil
}

func (r *Resolver) exchange(ctx context.Context, host string, qtype uint16) ([]net.IP, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true

	client := &dns.Client{Timeout: r.timeout()}
	resp, _, err := client.ExchangeContext(ctx, m, r.nameserver())
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	if resp.Rcode != dns.RcodeSuccess {
		return nil, errtrace.Wrap(&net.DNSError{
			Err:        dns.RcodeToString[resp.Rcode],
			Name:       host,
			Server:     r.NameServer,
			IsNotFound: resp.Rcode == dns.RcodeNameError,
		})
	}

	ips := make([]net.IP, 0, len(resp.Answer))
	for _, ans := range resp.Answer {
		switch rr := ans.(type) {
		case *dns.A:
			ips = append(ips, rr.A.To4())
		case *dns.AAAA:
			ips = append(ips, rr.AAAA)
		}
	}
	return ips, nil
}

func (r *Resolver) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return 5 * time.Second
}

func (r *Resolver) nameserver() string {
	if _, _, err := net.SplitHostPort(r.NameServer); err != nil {
		return net.JoinHostPort(r.NameServer, "53")
	}
	return r.NameServer
}

var defResolver = &Resolver{}

// DefaultResolver returns the shared system resolver.
func DefaultResolver() *Resolver { return defResolver }

func LookupIP(ctx context.Context, host string) ([]net.IP, error) {
	return errtrace.Wrap2(defResolver.LookupIP(ctx, host))
}
