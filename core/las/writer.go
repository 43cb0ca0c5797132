// core/las/writer.go
package las

import (
	"encoding/binary"
	"io"
)

// Writer encodes an overlap stream in the layout Reader expects:
// header first, then one 44-byte prefix plus trace vector per record.
// The record count is fixed at creation, matching the sequential
// single-pass file format (no backpatching).
type Writer struct {
	w     io.Writer
	small bool
}

// NewWriter writes the stream header and returns a Writer. The caller
// must append exactly count records.
func NewWriter(w io.Writer, count int64, spacing int32) (*Writer, error) {
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(count))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(spacing))
	if _, err := w.Write(hdr[:]); err != nil {
		return nil, err
	}
	return &Writer{w: w, small: spacing <= TraceXover}, nil
}

// WriteRecord appends one record. The trace is taken from whichever of
// Trace8/Trace is populated and re-encoded at the stream's width.
func (wr *Writer) WriteRecord(o *Overlap) error {
	var prefix [prefixSize]byte
	binary.LittleEndian.PutUint32(prefix[0:], uint32(o.AIndex))
	binary.LittleEndian.PutUint32(prefix[4:], uint32(o.BIndex))
	binary.LittleEndian.PutUint32(prefix[8:], uint32(o.ALen))
	binary.LittleEndian.PutUint32(prefix[12:], uint32(o.BLen))
	binary.LittleEndian.PutUint32(prefix[16:], o.Flags)
	binary.LittleEndian.PutUint32(prefix[20:], uint32(o.Path.ABPos))
	binary.LittleEndian.PutUint32(prefix[24:], uint32(o.Path.AEPos))
	binary.LittleEndian.PutUint32(prefix[28:], uint32(o.Path.BBPos))
	binary.LittleEndian.PutUint32(prefix[32:], uint32(o.Path.BEPos))
	binary.LittleEndian.PutUint32(prefix[36:], uint32(o.Path.Diffs))
	binary.LittleEndian.PutUint32(prefix[40:], uint32(o.Path.TraceLen()))
	if _, err := wr.w.Write(prefix[:]); err != nil {
		return err
	}
	return wr.writeTrace(&o.Path)
}

func (wr *Writer) writeTrace(p *Path) error {
	n := p.TraceLen()
	if wr.small {
		buf := make([]byte, n)
		if p.Trace8 != nil {
			copy(buf, p.Trace8)
		} else {
			for i, v := range p.Trace {
				buf[i] = byte(v)
			}
		}
		_, err := wr.w.Write(buf)
		return err
	}
	buf := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		var v uint16
		if p.Trace8 != nil {
			v = uint16(p.Trace8[i])
		} else {
			v = p.Trace[i]
		}
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	_, err := wr.w.Write(buf)
	return err
}
