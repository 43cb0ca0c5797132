// core/align/trace.go
package align

import (
	"laview-core/las"
)

// TracePoints is the number of interior trace-point boundaries the
// aligned a interval [abPos,aePos) crosses at the given spacing.
func TracePoints(abPos, aePos, spacing int32) int32 {
	return (aePos-1)/spacing - abPos/spacing
}

// DecompressTrace widens a narrow (8-bit) trace to the 16-bit
// representation, reusing dst's capacity. Wide traces pass through
// untouched. The path is left holding the wide form either way.
func DecompressTrace(p *las.Path, dst []uint16) []uint16 {
	if p.Trace8 == nil {
		return p.Trace
	}
	dst = dst[:0]
	for _, v := range p.Trace8 {
		dst = append(dst, uint16(v))
	}
	p.Trace = dst
	p.Trace8 = nil
	return dst
}
