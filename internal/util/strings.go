// Package util provides small string helpers shared by the grammar and model packages.
package util

import (
	"strings"
	"sync"
)

func EqFold[T1, T2 ~string](s1 T1, s2 T2) bool {
	return strings.EqualFold(string(s1), string(s2))
}

// Snippet returns at most n leading bytes of b as a string.
// SDP text is Latin-1, so the cut is made on byte boundaries, not runes.
func Snippet[T ~string | ~[]byte](b T, n int) string {
	if n <= 0 {
		return ""
	}
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(512)
		return sb
	},
}

func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

func FreeStringBuilder(sb *strings.Builder) {
	sb.Reset()
	strBldrPool.Put(sb)
}
