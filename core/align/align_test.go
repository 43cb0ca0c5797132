// core/align/align_test.go
package align

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laview-core/las"
)

func TestTracePoints(t *testing.T) {
	assert.Equal(t, int32(3), TracePoints(50, 340, 100))
	assert.Equal(t, int32(0), TracePoints(0, 100, 100))
	assert.Equal(t, int32(1), TracePoints(0, 101, 100))
	assert.Equal(t, int32(0), TracePoints(120, 180, 100))
}

func TestDecompressRoundTrip(t *testing.T) {
	// A narrow trace holds (diffs, bBases) pairs, one per panel; the
	// widened form must imply the same trace-point count as the
	// coordinates do directly.
	p := &las.Path{
		ABPos: 50, AEPos: 340,
		Trace8: []uint8{0, 50, 2, 100, 1, 100, 0, 40},
	}
	wide := DecompressTrace(p, nil)
	require.Nil(t, p.Trace8)
	require.Equal(t, []uint16{0, 50, 2, 100, 1, 100, 0, 40}, wide)

	panels := int32(len(wide) / 2)
	assert.Equal(t, TracePoints(50, 340, 100), panels-1)

	// Already-wide traces pass through untouched.
	again := DecompressTrace(p, nil)
	assert.Equal(t, wide, again)
}

func makeOverlap(a, b []byte, abPos, aePos, bbPos, bePos int32, spacing int32, perPanelB []uint16) *las.Overlap {
	trace := make([]uint16, 0, 2*len(perPanelB))
	for _, n := range perPanelB {
		trace = append(trace, 0, n)
	}
	return &las.Overlap{
		ALen: int32(len(a)), BLen: int32(len(b)),
		Path: las.Path{
			ABPos: abPos, AEPos: aePos,
			BBPos: bbPos, BEPos: bePos,
			Trace: trace,
		},
	}
}

func TestComputeTraceAlignmentIdentical(t *testing.T) {
	a := []byte(strings.Repeat("acgtacgtag", 40)) // 400 bases
	b := make([]byte, 310)
	copy(b[10:300], a[50:340])

	o := makeOverlap(a, b, 50, 340, 10, 300, 100, []uint16{50, 100, 100, 40})
	ws := NewWorkspace()
	aln, err := ws.ComputeTraceAlignment(a, b, o, 100)
	require.NoError(t, err)

	assert.Equal(t, 290, len(aln.A))
	assert.Equal(t, aln.A, aln.B)
	assert.NotContains(t, string(aln.A), "-")
}

func TestComputeTraceAlignmentSubstitution(t *testing.T) {
	a := []byte(strings.Repeat("ac", 100)) // 200 bases
	b := append([]byte(nil), a...)
	b[30] = 'g'

	o := makeOverlap(a, b, 0, 200, 0, 200, 100, []uint16{100, 100})
	aln, err := NewWorkspace().ComputeTraceAlignment(a, b, o, 100)
	require.NoError(t, err)

	require.Equal(t, len(aln.A), len(aln.B))
	mismatches := 0
	for i := range aln.A {
		if aln.A[i] != aln.B[i] {
			mismatches++
		}
	}
	assert.Equal(t, 1, mismatches)
}

func TestComputeTraceAlignmentIndel(t *testing.T) {
	a := []byte(strings.Repeat("acgtt", 20)) // 100 bases
	b := append([]byte(nil), a[:40]...)
	b = append(b, a[41:]...) // drop one base from the middle

	o := makeOverlap(a, b, 0, 100, 0, 99, 100, []uint16{99})
	aln, err := NewWorkspace().ComputeTraceAlignment(a, b, o, 100)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(aln.B), "-"))
	assert.NotContains(t, string(aln.A), "-")
}

func TestComputeTraceAlignmentBadTrace(t *testing.T) {
	a := []byte(strings.Repeat("a", 100))
	b := []byte(strings.Repeat("a", 100))

	// Panel count disagrees with the coordinates.
	o := makeOverlap(a, b, 0, 100, 0, 100, 100, []uint16{50, 50})
	_, err := NewWorkspace().ComputeTraceAlignment(a, b, o, 100)
	require.Error(t, err)

	// Trace b-extent disagrees with the path.
	o = makeOverlap(a, b, 0, 100, 0, 100, 100, []uint16{90})
	_, err = NewWorkspace().ComputeTraceAlignment(a, b, o, 100)
	require.Error(t, err)
}

func TestPrintAlignmentLayout(t *testing.T) {
	a := []byte(strings.Repeat("acgt", 30)) // 120 bases
	b := append([]byte(nil), a...)

	o := makeOverlap(a, b, 20, 100, 20, 100, 100, []uint16{80})
	aln, err := NewWorkspace().ComputeTraceAlignment(a, b, o, 100)
	require.NoError(t, err)

	var buf bytes.Buffer
	opt := RenderOptions{Indent: 2, Width: 50, Border: 5}
	require.NoError(t, PrintAlignment(&buf, aln, o, a, b, opt))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// 80 aligned columns at width 50 -> two blocks of three lines.
	require.Len(t, lines, 6)
	assert.Contains(t, lines[1], "|")
	assert.True(t, strings.HasPrefix(lines[0], "  "))

	// Reference style dots out the agreeing b row.
	buf.Reset()
	require.NoError(t, PrintReference(&buf, aln, o, a, b, opt))
	assert.Contains(t, buf.String(), "....")
}

func TestPrintAlignmentUppercase(t *testing.T) {
	a := []byte(strings.Repeat("ac", 30)) // 60 bases
	b := append([]byte(nil), a...)

	o := makeOverlap(a, b, 0, 60, 0, 60, 100, []uint16{60})
	aln, err := NewWorkspace().ComputeTraceAlignment(a, b, o, 100)
	require.NoError(t, err)

	var buf bytes.Buffer
	opt := RenderOptions{Width: 100, Uppercase: true}
	require.NoError(t, PrintAlignment(&buf, aln, o, a, b, opt))
	assert.Contains(t, buf.String(), "AC")
	assert.NotContains(t, buf.String(), "ac")
}

func TestPrintCartoon(t *testing.T) {
	o := &las.Overlap{
		ALen: 1000, BLen: 800,
		Path: las.Path{ABPos: 200, AEPos: 1000, BBPos: 0, BEPos: 780},
	}
	var buf bytes.Buffer
	require.NoError(t, PrintCartoon(&buf, o, 4))

	s := buf.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "A ")
	assert.Contains(t, lines[1], "B ")
	assert.Contains(t, s, "=")
	assert.Contains(t, s, ">")

	o.Flags = las.ComplementFlag
	buf.Reset()
	require.NoError(t, PrintCartoon(&buf, o, 4))
	assert.Contains(t, buf.String(), "(comp)")
}
