// internal/output/m4.go
package output

import (
	"fmt"
	"io"

	"laview-core/las"
)

// Containment classes for the final M4 column.
const (
	ClassContains  = "contains"
	ClassContained = "contained"
	ClassOverlap   = "overlap"
)

// Classify labels an overlap by containment. The margins are judged on
// the as-stored b interval, matching the upstream convention, even
// though the printed b coordinates are strand-corrected.
func Classify(o *las.Overlap) string {
	switch {
	case o.BLen < o.ALen && o.Path.BBPos < 1 && o.BLen-o.Path.BEPos < 1:
		return ClassContains
	case o.ALen < o.BLen && o.Path.ABPos < 1 && o.ALen-o.Path.AEPos < 1:
		return ClassContained
	default:
		return ClassOverlap
	}
}

// Identity is the percent identity of the aligned region. A degenerate
// record with a zero-length alignment reports 0 rather than dividing
// by zero.
func Identity(o *las.Overlap) float64 {
	denom := int64(o.Path.AEPos-o.Path.ABPos) + int64(o.Path.BEPos-o.Path.BBPos)
	if denom == 0 {
		return 0
	}
	return 100 - (200*float64(o.Path.Diffs))/float64(denom)
}

// WriteM4 prints one M4-style line: 0-based read indices, the negated
// strand-corrected b span, identity, the a then b intervals with read
// lengths and strand, and the containment class.
func WriteM4(w io.Writer, o *las.Overlap) error {
	bStart, bEnd := o.BSpan()
	strand := 0
	if o.Complemented() {
		strand = 1
	}
	_, err := fmt.Fprintf(w, "%09d %09d %d %5.2f 0 %d %d %d %d %d %d %d %s\n",
		o.AIndex, o.BIndex, int64(bStart)-int64(bEnd), Identity(o),
		o.Path.ABPos, o.Path.AEPos, o.ALen,
		strand, bStart, bEnd, o.BLen,
		Classify(o))
	return err
}
