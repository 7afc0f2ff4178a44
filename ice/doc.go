// Package ice reads the ICE attributes (RFC 5245 section 15) of a parsed session description.
//
// [ParseCandidate] decodes a single "candidate" attribute value, [Candidates] collects the candidates
// of a media section and [Credentials] looks up "ice-ufrag"/"ice-pwd" with media level precedence.
// [TransportAddrs] gathers every address the session announces, [Resolve] binds FQDN ones to IP
// addresses through a [Resolver], e.g. a *dns.Resolver.
package ice
