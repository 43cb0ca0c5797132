// core/align/cartoon.go
package align

import (
	"fmt"
	"io"
	"strings"

	"laview-core/las"
)

// cartoonSpan is the printed width of the aligned block; read tails are
// scaled against it so long overhangs stay on one line.
const cartoonSpan = 25

// PrintCartoon writes a two-line block diagram of the overlap: the
// aligned region as a '=' block bracketed by '|' marks, read tails as
// scaled '.' runs, and an arrowhead giving each read's direction.
func PrintCartoon(w io.Writer, o *las.Overlap, indent int) error {
	pad := strings.Repeat(" ", indent)

	aLeft := int(o.Path.ABPos)
	aRight := int(o.ALen - o.Path.AEPos)
	bStart, bEnd := o.BSpan()
	bLeft := int(bStart)
	bRight := int(o.BLen - bEnd)

	scale := 1
	for _, v := range []int{aLeft, aRight, bLeft, bRight} {
		if (v+cartoonSpan-1)/cartoonSpan > scale {
			scale = (v + cartoonSpan - 1) / cartoonSpan
		}
	}

	aPre, bPre := tail(aLeft, scale), tail(bLeft, scale)
	lead := len(aPre)
	if len(bPre) > lead {
		lead = len(bPre)
	}
	block := strings.Repeat("=", cartoonSpan)

	_, err := fmt.Fprintf(w, "%sA %s%s|%s|%s>  %d\n",
		pad, strings.Repeat(" ", lead-len(aPre)), aPre, block, tail(aRight, scale), o.ALen)
	if err != nil {
		return err
	}
	arrow := ">"
	strand := ""
	if o.Complemented() {
		arrow = "<"
		strand = "  (comp)"
	}
	_, err = fmt.Fprintf(w, "%sB %s%s|%s|%s%s  %d%s\n",
		pad, strings.Repeat(" ", lead-len(bPre)), bPre, block, tail(bRight, scale), arrow, o.BLen, strand)
	return err
}

// tail renders an unaligned overhang of n bases as a scaled dot run.
func tail(n, scale int) string {
	return strings.Repeat(".", (n+scale-1)/scale)
}
