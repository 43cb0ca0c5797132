// core/align/render.go
package align

import (
	"fmt"
	"io"
	"strings"

	"laview-core/las"
)

// RenderOptions control the textual alignment layout.
type RenderOptions struct {
	Indent    int  // leading spaces on every line
	Width     int  // aligned columns per row block
	Border    int  // unaligned context bases shown at each end
	Uppercase bool // fold sequence rows to uppercase
}

// PrintAlignment writes the alignment in plain style: per row block an
// a line, a gutter line ('|' match, '*' mismatch, blank at gaps), and
// a b line, each prefixed with its read coordinate.
func PrintAlignment(w io.Writer, aln *Alignment, o *las.Overlap, a, b []byte, opt RenderOptions) error {
	return render(w, aln, o, a, b, opt, false)
}

// PrintReference writes the alignment in reference style: the b row
// shows '.' wherever it agrees with the a row, so only differences
// stand out.
func PrintReference(w io.Writer, aln *Alignment, o *las.Overlap, a, b []byte, opt RenderOptions) error {
	return render(w, aln, o, a, b, opt, true)
}

func render(w io.Writer, aln *Alignment, o *las.Overlap, a, b []byte, opt RenderOptions, reference bool) error {
	if opt.Width <= 0 {
		opt.Width = 100
	}
	rowA, rowB := aln.A, aln.B
	if opt.Uppercase {
		rowA = []byte(strings.ToUpper(string(rowA)))
		rowB = []byte(strings.ToUpper(string(rowB)))
	}

	indent := strings.Repeat(" ", opt.Indent)
	leftA, leftB := flankLeft(a, int(o.Path.ABPos), opt), flankLeft(b, int(o.Path.BBPos), opt)
	rightA, rightB := flankRight(a, int(o.Path.AEPos), opt), flankRight(b, int(o.Path.BEPos), opt)

	apos, bpos := int(o.Path.ABPos), int(o.Path.BBPos)
	for off := 0; off < len(rowA); off += opt.Width {
		end := off + opt.Width
		if end > len(rowA) {
			end = len(rowA)
		}
		segA, segB := rowA[off:end], rowB[off:end]

		preA, preB := "", ""
		if off == 0 {
			preA, preB = leftA, leftB
		}
		postA, postB := "", ""
		if end == len(rowA) {
			postA, postB = rightA, rightB
		}

		gutter := make([]byte, len(segA))
		shown := make([]byte, len(segB))
		copy(shown, segB)
		for i := range segA {
			switch {
			case segA[i] == '-' || segB[i] == '-':
				gutter[i] = ' '
			case segA[i] == segB[i]:
				gutter[i] = '|'
				if reference {
					shown[i] = '.'
				}
			default:
				gutter[i] = '*'
			}
		}

		if _, err := fmt.Fprintf(w, "%s%9d %s%s%s\n", indent, apos, preA, segA, postA); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%9s %s%s\n", indent, "", strings.Repeat(" ", len(preA)), gutter); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%9d %s%s%s\n", indent, bpos, preB, shown, postB); err != nil {
			return err
		}
		apos += bases(segA)
		bpos += bases(segB)
	}
	return nil
}

// flankLeft returns up to Border bases of unaligned context before pos,
// space-padded on the left to a constant border width.
func flankLeft(seq []byte, pos int, opt RenderOptions) string {
	if opt.Border <= 0 {
		return ""
	}
	n := opt.Border
	if n > pos {
		n = pos
	}
	s := string(seq[pos-n : pos])
	if opt.Uppercase {
		s = strings.ToUpper(s)
	}
	return strings.Repeat(" ", opt.Border-n) + s
}

func flankRight(seq []byte, pos int, opt RenderOptions) string {
	if opt.Border <= 0 {
		return ""
	}
	n := opt.Border
	if pos+n > len(seq) {
		n = len(seq) - pos
	}
	s := string(seq[pos : pos+n])
	if opt.Uppercase {
		s = strings.ToUpper(s)
	}
	return s
}

func bases(row []byte) int {
	n := 0
	for _, c := range row {
		if c != '-' {
			n++
		}
	}
	return n
}
