// Package pipeline is the strict pull loop at the center of laview:
// decode one record, decide inclusion, visit, repeat. It owns nothing
// but the loop; the reader owns the buffers and the cursor owns the
// sweep state.
package pipeline
