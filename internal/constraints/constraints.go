// Package constraints provides type constraints shared by generic helpers.
package constraints

// Byteseq is satisfied by raw SDP input in either string or byte slice form.
type Byteseq interface {
	~string | ~[]byte
}
