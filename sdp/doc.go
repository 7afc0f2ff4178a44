// Package sdp parses and renders session descriptions as defined in RFC 4566.
//
// [Parse] reads a complete description into a [Session]. [Match] reads the longest
// valid prefix and reports the unconsumed rest, which is useful when a description
// is followed by other content. Both enforce the field order
//
//	v o s [i] [u] e* p* [c] b* (t r*)+ [z] [k] a* (m [i] c* b* [k] a*)*
//
// and check every line against its field grammar. Failures are reported as
// [*ParseError] values naming the rule that was expected, the byte offset and
// a snippet of the unconsumed input.
//
// By default [Session.Render] writes only the core fields: "v=", "o=", "s=", "c=", "t=",
// "a=" and the media sections with their "m=", "c=" and "a=" lines. Information, URI,
// email, phone, bandwidth, repeat, zone and key fields are dropped, so rendering a parsed
// description is lossy. Pass [RenderOptions] with Full set to write every field.
//
//	sess, err := sdp.Parse(text, nil)
//	if err != nil {
//	    var perr *sdp.ParseError
//	    if errors.As(err, &perr) {
//	        log.Printf("expected %s at offset %d near %q", perr.Rule, perr.Offset, perr.Snippet)
//	    }
//	    return err
//	}
//	fmt.Print(sess.Render(&sdp.RenderOptions{Full: true}))
//
// Parsing and rendering keep no shared mutable state and are safe for concurrent use.
// The model values themselves are not, use Clone to share them across goroutines.
package sdp
