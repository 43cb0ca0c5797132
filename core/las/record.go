// core/las/record.go
package las

// Overlap flag bits.
const (
	// ComplementFlag marks the b read as reverse-complemented relative to a.
	ComplementFlag uint32 = 0x1
)

// Path is the aligned region of an overlap: half-open base intervals on
// each read in as-stored orientation, the edit count, and the trace.
//
// Exactly one of Trace and Trace8 is non-nil on a record produced by a
// Reader: Trace8 for narrow (8-bit) streams, Trace for wide (16-bit)
// streams. Both alias reader scratch; see Reader.Next.
type Path struct {
	ABPos, AEPos int32
	BBPos, BEPos int32
	Diffs        int32
	Trace        []uint16
	Trace8       []uint8
}

// TraceLen is the number of trace samples carried by the path.
func (p *Path) TraceLen() int {
	if p.Trace8 != nil {
		return len(p.Trace8)
	}
	return len(p.Trace)
}

// Overlap is one pairwise alignment between read a and read b.
// Read indices are 0-based; lengths are in bases.
type Overlap struct {
	AIndex, BIndex int32
	ALen, BLen     int32
	Flags          uint32
	Path           Path
}

// Complemented reports whether b is reverse-complemented relative to a.
func (o *Overlap) Complemented() bool { return o.Flags&ComplementFlag != 0 }

// BSpan returns the b interval of the alignment in b's own 5'->3'
// orientation. For a complemented overlap the as-stored interval counts
// from the 3' end, so it is reflected through BLen.
func (o *Overlap) BSpan() (bStart, bEnd int32) {
	if o.Complemented() {
		return o.BLen - o.Path.BEPos, o.BLen - o.Path.BBPos
	}
	return o.Path.BBPos, o.Path.BEPos
}
