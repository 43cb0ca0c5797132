// core/align/align.go
package align

import (
	"github.com/pkg/errors"

	"laview-core/las"
)

// Alignment is a reconstructed base-level alignment: equal-length rows
// over the two reads with '-' in gap positions.
type Alignment struct {
	A, B []byte
}

// Workspace owns the scratch memory alignment reconstruction needs:
// the widened trace, the output rows, and the edit-distance matrix.
// Acquire one before the record loop and reuse it for every record.
type Workspace struct {
	trace []uint16
	rowA  []byte
	rowB  []byte
	dp    []int32
}

// NewWorkspace returns an empty workspace; buffers grow on demand and
// are retained across records.
func NewWorkspace() *Workspace { return &Workspace{} }

// ComputeTraceAlignment re-derives the base-level alignment of an
// overlap from its trace points. a and b are the full read sequences,
// with b already complemented for a complemented overlap. The trace
// holds (diffs, bBases) pairs, one per spacing-aligned panel of a.
func (ws *Workspace) ComputeTraceAlignment(a, b []byte, o *las.Overlap, spacing int32) (*Alignment, error) {
	trace := DecompressTrace(&o.Path, ws.trace)
	ws.trace = trace
	if len(trace)%2 != 0 {
		return nil, errors.Errorf("align: odd trace length %d", len(trace))
	}
	panels := len(trace) / 2
	want := int(TracePoints(o.Path.ABPos, o.Path.AEPos, spacing)) + 1
	if panels != want {
		return nil, errors.Errorf("align: trace has %d panels, coordinates imply %d", panels, want)
	}

	ws.rowA = ws.rowA[:0]
	ws.rowB = ws.rowB[:0]
	apos := o.Path.ABPos
	bpos := o.Path.BBPos
	for i := 0; i < panels; i++ {
		aend := (apos/spacing + 1) * spacing
		if aend > o.Path.AEPos {
			aend = o.Path.AEPos
		}
		bend := bpos + int32(trace[2*i+1])
		if aend > int32(len(a)) || bend > int32(len(b)) {
			return nil, errors.Errorf("align: trace panel %d runs past read end", i)
		}
		ws.alignPanel(a[apos:aend], b[bpos:bend])
		apos, bpos = aend, bend
	}
	if bpos != o.Path.BEPos {
		return nil, errors.Errorf("align: trace b-extent ends at %d, path says %d", bpos, o.Path.BEPos)
	}
	return &Alignment{A: ws.rowA, B: ws.rowB}, nil
}

// alignPanel appends the minimum-edit alignment of one trace panel to
// the output rows. Panels are at most one spacing unit of a, so the
// full matrix stays small.
func (ws *Workspace) alignPanel(pa, pb []byte) {
	n, m := len(pa), len(pb)
	stride := m + 1
	need := (n + 1) * stride
	if cap(ws.dp) < need {
		ws.dp = make([]int32, need)
	}
	dp := ws.dp[:need]

	for j := 0; j <= m; j++ {
		dp[j] = int32(j)
	}
	for i := 1; i <= n; i++ {
		dp[i*stride] = int32(i)
		for j := 1; j <= m; j++ {
			d := dp[(i-1)*stride+j-1]
			if pa[i-1] != pb[j-1] {
				d++
			}
			if up := dp[(i-1)*stride+j] + 1; up < d {
				d = up
			}
			if left := dp[i*stride+j-1] + 1; left < d {
				d = left
			}
			dp[i*stride+j] = d
		}
	}

	// Traceback from the corner, diagonal moves first, emitted in
	// reverse and flipped into the rows.
	var ra, rb []byte
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && dp[i*stride+j] == dp[(i-1)*stride+j-1]+sub(pa[i-1], pb[j-1]):
			ra = append(ra, pa[i-1])
			rb = append(rb, pb[j-1])
			i--
			j--
		case i > 0 && dp[i*stride+j] == dp[(i-1)*stride+j]+1:
			ra = append(ra, pa[i-1])
			rb = append(rb, '-')
			i--
		default:
			ra = append(ra, '-')
			rb = append(rb, pb[j-1])
			j--
		}
	}
	for k := len(ra) - 1; k >= 0; k-- {
		ws.rowA = append(ws.rowA, ra[k])
		ws.rowB = append(ws.rowB, rb[k])
	}
}

func sub(x, y byte) int32 {
	if x == y {
		return 0
	}
	return 1
}
