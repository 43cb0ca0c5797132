// core/ranges/ranges.go
package ranges

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Last is the unbounded upper limit, spelled '#' in range tokens. It
// doubles as the sentinel terminator of a compiled set.
const Last = int32(math.MaxInt32)

// ErrMalformedRange is the class of every token-parse failure.
var ErrMalformedRange = errors.New("malformed read range")

// Set is a compiled selection of 1-based read indices: flattened
// lo,hi pairs sorted by lo, pairwise non-overlapping with a gap of at
// least 2 between a hi and the next lo, terminated by a single Last
// sentinel so the sweep needs no bounds checks. Immutable once built.
type Set []int32

// All selects every read.
func All() Set { return Set{1, Last} }

// Compile parses tokens of the form "N", "N-M" (N <= M) or "N-#",
// sorts the pairs, coalesces overlapping and adjacent ones, and
// appends the sentinel. No tokens compiles to All().
func Compile(tokens []string) (Set, error) {
	if len(tokens) == 0 {
		return All(), nil
	}
	pts := make([]int32, 0, 2*len(tokens))
	for _, tok := range tokens {
		lo, hi, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		pts = append(pts, lo, hi)
	}

	n := len(pts) / 2
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return pts[2*idx[i]] < pts[2*idx[j]] })

	set := make(Set, 0, len(pts)+1)
	for _, i := range idx {
		lo, hi := pts[2*i], pts[2*i+1]
		if len(set) > 0 && set[len(set)-1] >= lo-1 {
			if hi > set[len(set)-1] {
				set[len(set)-1] = hi
			}
			continue
		}
		set = append(set, lo, hi)
	}
	return append(set, Last), nil
}

func parseToken(tok string) (lo, hi int32, err error) {
	if strings.HasPrefix(tok, "#") {
		return 0, 0, errors.Wrapf(ErrMalformedRange, "'#' is not allowed as range start in %q", tok)
	}
	head, tail, dashed := strings.Cut(tok, "-")
	lo, err = parseIndex(tok, head)
	if err != nil {
		return 0, 0, err
	}
	if !dashed {
		return lo, lo, nil
	}
	if tail == "#" {
		return lo, Last, nil
	}
	hi, err = parseIndex(tok, tail)
	if err != nil {
		return 0, 0, err
	}
	if hi < lo {
		return 0, 0, errors.Wrapf(ErrMalformedRange, "empty range %q", tok)
	}
	return lo, hi, nil
}

func parseIndex(tok, field string) (int32, error) {
	v, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedRange, "%q is not an integer range", tok)
	}
	if v < 1 {
		return 0, errors.Wrapf(ErrMalformedRange, "non-positive index in %q", tok)
	}
	return int32(v), nil
}

// Pairs returns the compiled lo,hi pairs without the sentinel.
func (s Set) Pairs() [][2]int32 {
	n := len(s) / 2
	out := make([][2]int32, 0, n)
	for i := 0; i+1 < len(s); i += 2 {
		out = append(out, [2]int32{s[i], s[i+1]})
	}
	return out
}

// Cursor sweeps a Set against a stream of non-decreasing 1-based read
// indices. It keeps an excluded/included state and a forward-only
// position in the set; it never rewinds, so feeding it a decreasing
// index gives undefined answers.
type Cursor struct {
	set Set
	in  bool
	npt int32
	idx int
}

// NewCursor starts a sweep at the first boundary of s.
func NewCursor(s Set) *Cursor {
	return &Cursor{set: s, npt: s[0], idx: 1}
}

// Includes reports whether index (1-based) lies in the set, advancing
// the sweep. The excluded branch crosses boundaries on >=/<= while the
// included branch uses >/<; the asymmetry is load-bearing for which
// side of a pair boundary a read lands on.
func (c *Cursor) Includes(index int32) bool {
	if c.in {
		for index > c.npt {
			c.npt = c.set[c.idx]
			c.idx++
			if index < c.npt {
				c.in = false
				break
			}
			c.npt = c.set[c.idx]
			c.idx++
		}
	} else {
		for index >= c.npt {
			c.npt = c.set[c.idx]
			c.idx++
			if index <= c.npt {
				c.in = true
				break
			}
			c.npt = c.set[c.idx]
			c.idx++
		}
	}
	return c.in
}
