// core/filter/filter.go
package filter

import (
	"laview-core/las"
)

// Acceptance thresholds. Seed limits mirror the overlapper's seeding
// margins; the full-length bounds define "starts near 0, ends near the
// physical end" for both reads.
const (
	DefaultSeedMin = 8000

	seedMargin   = 1000
	fullStartMax = 200
	fullEndSlack = 50
)

// Predicate is one acceptance test over a decoded overlap. Predicates
// read the record only; they never mutate it.
type Predicate func(*las.Overlap) bool

// Accept reports whether every predicate accepts o.
func Accept(o *las.Overlap, preds []Predicate) bool {
	for _, p := range preds {
		if !p(o) {
			return false
		}
	}
	return true
}

// TrueOverlap accepts alignments that reach a physical read end on both
// sides: a start boundary on a or b, and an end boundary on a or b.
func TrueOverlap() Predicate {
	return func(o *las.Overlap) bool {
		if o.Path.ABPos != 0 && o.Path.BBPos != 0 {
			return false
		}
		if o.Path.AEPos != o.ALen && o.Path.BEPos != o.BLen {
			return false
		}
		return true
	}
}

// SeedLimits accepts alignments whose ends fall within the seeding
// margin of a read boundary and whose a read is at least minSeed long.
func SeedLimits(minSeed int32) Predicate {
	if minSeed <= 0 {
		minSeed = DefaultSeedMin
	}
	return func(o *las.Overlap) bool {
		if o.Path.ABPos > seedMargin && o.Path.BBPos > seedMargin {
			return false
		}
		if o.ALen-o.Path.AEPos > seedMargin && o.BLen-o.Path.BEPos > seedMargin {
			return false
		}
		return o.ALen >= minSeed
	}
}

// FullLength accepts only alignments spanning essentially the whole of
// both reads, judging the b side in its strand-corrected orientation.
func FullLength() Predicate {
	return func(o *las.Overlap) bool {
		bStart, bEnd := o.BSpan()
		if o.Path.ABPos > fullStartMax || bStart > fullStartMax {
			return false
		}
		if o.Path.AEPos+fullEndSlack < o.ALen {
			return false
		}
		return bEnd+fullEndSlack >= o.BLen
	}
}
