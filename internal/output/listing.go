// internal/output/listing.go
package output

import (
	"fmt"
	"io"

	"laview-core/las"
)

// WriteHeader prints the stream banner shown before any listing-style
// output: the file's root name and its declared record count.
func WriteHeader(w io.Writer, root string, count int64) error {
	_, err := fmt.Fprintf(w, "\n%s: %s records\n", root, Number(count, 0))
	return err
}

// WriteCoords prints the coordinate columns shared by the listing,
// cartoon, and align modes: 1-based read indices, strand flag, and the
// raw (as-stored) alignment intervals.
func WriteCoords(w io.Writer, o *las.Overlap) error {
	strand := "n"
	if o.Complemented() {
		strand = "c"
	}
	_, err := fmt.Fprintf(w, "%s  %s %s   [%s..%s] x [%s..%s]",
		Number(int64(o.AIndex)+1, 10),
		Number(int64(o.BIndex)+1, 9),
		strand,
		Number(int64(o.Path.ABPos), 6), Number(int64(o.Path.AEPos), 6),
		Number(int64(o.Path.BBPos), 6), Number(int64(o.Path.BEPos), 6))
	return err
}

// WriteTrailer prints the diff and trace-point counts that close a
// listing or alignment block. The marker distinguishes the two ('<'
// for a listed record, '=' for a recomputed alignment).
func WriteTrailer(w io.Writer, o *las.Overlap, tps int32, marker byte) error {
	_, err := fmt.Fprintf(w, " :   %c %s diffs  (%s trace pts)\n",
		marker, Number(int64(o.Path.Diffs), 6), Number(int64(tps), 3))
	return err
}
