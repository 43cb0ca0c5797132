// internal/pipeline/pipeline.go
package pipeline

import (
	"io"

	"laview-core/filter"
	"laview-core/las"
	"laview-core/ranges"
)

// ForEachOverlap pulls records from r one at a time, keeps those whose
// 1-based a-read index the range cursor includes and every predicate
// accepts, and hands them to visit. Each record is fully rendered
// before the next is read, so visit may use the record's borrowed
// trace buffers freely but must not retain them.
//
// It returns the number of visited records and the first error.
// Deliberately single-threaded: the stream is sequential and the
// sweep cursor is stateful.
func ForEachOverlap(
	r *las.Reader,
	cur *ranges.Cursor,
	preds []filter.Predicate,
	visit func(*las.Overlap) error,
) (int, error) {
	total := 0
	for {
		o, err := r.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if !cur.Includes(o.AIndex + 1) {
			continue
		}
		if !filter.Accept(o, preds) {
			continue
		}
		if err := visit(o); err != nil {
			return total, err
		}
		total++
	}
}
