// Package uri implements URI references as defined by RFC 3986.
//
// A [Reference] is built from the RFC 3986 grammar and keeps every component
// as it was written, so rendering a parsed reference reproduces the input.
// It is used for the "u=" and "k=uri:" fields of session descriptions.
//
//	ref, err := uri.Parse("http://www.example.com/seminars/sdp.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ref.Scheme, ref.Host, ref.Path)
//
// Parsed references are plain values. They are not safe for concurrent modification,
// use [Reference.Clone] to share them across goroutines.
package uri
