// internal/output/number.go
package output

import (
	"fmt"
	"strconv"
)

// Number renders n with comma grouping, right-aligned in width columns
// (0 for no padding).
func Number(n int64, width int) string {
	s := group(n)
	if width > len(s) {
		return fmt.Sprintf("%*s", width, s)
	}
	return s
}

func group(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
