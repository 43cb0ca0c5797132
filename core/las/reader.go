// core/las/reader.go
package las

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// TraceXover is the trace-spacing crossover: at or below it, trace
// samples are stored as single bytes; above it, as 16-bit values.
const TraceXover = 125

const (
	headerSize = 12 // int64 record count + int32 trace spacing
	prefixSize = 44 // fixed-size record prefix, 11 little-endian 32-bit words
)

// Decode errors. A truncated stream is fatal to the run; io.EOF from
// Next is the one normal terminal signal.
var (
	ErrTruncatedHeader = errors.New("las: truncated header")
	ErrTruncatedRecord = errors.New("las: truncated record")
	ErrTruncatedTrace  = errors.New("las: truncated trace")
)

// Reader decodes a .las overlap stream: a 12-byte header followed by
// Count() records, each a 44-byte prefix plus its trace vector.
//
// Records returned by Next alias reader-owned scratch buffers and are
// valid only until the next call to Next. A consumer that needs to keep
// values across iterations must copy them out. The stream is
// forward-only and not restartable.
type Reader struct {
	rc      io.ReadCloser
	br      *bufio.Reader
	count   int64
	spacing int32
	small   bool
	seen    int64

	prefix [prefixSize]byte
	t8     []uint8
	t16    []uint16
	ovl    Overlap
}

// Open opens path and reads the stream header.
func Open(path string) (*Reader, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "las: open")
	}
	r, err := NewReader(fh)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	return r, nil
}

// NewReader reads the stream header from rc and returns a Reader
// positioned at the first record.
func NewReader(rc io.ReadCloser) (*Reader, error) {
	r := &Reader{rc: rc, br: bufio.NewReaderSize(rc, 1<<16)}
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r.br, hdr[:]); err != nil {
		return nil, errors.Wrap(ErrTruncatedHeader, err.Error())
	}
	r.count = int64(binary.LittleEndian.Uint64(hdr[0:8]))
	r.spacing = int32(binary.LittleEndian.Uint32(hdr[8:12]))
	r.small = r.spacing <= TraceXover
	return r, nil
}

// Count is the number of records the header declares.
func (r *Reader) Count() int64 { return r.count }

// TraceSpacing is the trace-point spacing declared by the header.
func (r *Reader) TraceSpacing() int32 { return r.spacing }

// Small reports whether trace samples are stored 8-bit on disk.
func (r *Reader) Small() bool { return r.small }

// Next decodes the next record. It returns io.EOF once Count records
// have been produced. The returned record is a borrowed view into the
// reader and is overwritten by the following call.
func (r *Reader) Next() (*Overlap, error) {
	if r.seen >= r.count {
		return nil, io.EOF
	}
	if _, err := io.ReadFull(r.br, r.prefix[:]); err != nil {
		return nil, errors.Wrapf(ErrTruncatedRecord, "record %d: %v", r.seen, err)
	}
	o := &r.ovl
	o.AIndex = int32(binary.LittleEndian.Uint32(r.prefix[0:]))
	o.BIndex = int32(binary.LittleEndian.Uint32(r.prefix[4:]))
	o.ALen = int32(binary.LittleEndian.Uint32(r.prefix[8:]))
	o.BLen = int32(binary.LittleEndian.Uint32(r.prefix[12:]))
	o.Flags = binary.LittleEndian.Uint32(r.prefix[16:])
	o.Path.ABPos = int32(binary.LittleEndian.Uint32(r.prefix[20:]))
	o.Path.AEPos = int32(binary.LittleEndian.Uint32(r.prefix[24:]))
	o.Path.BBPos = int32(binary.LittleEndian.Uint32(r.prefix[28:]))
	o.Path.BEPos = int32(binary.LittleEndian.Uint32(r.prefix[32:]))
	o.Path.Diffs = int32(binary.LittleEndian.Uint32(r.prefix[36:]))
	tlen := int(int32(binary.LittleEndian.Uint32(r.prefix[40:])))
	if tlen < 0 {
		return nil, errors.Wrapf(ErrTruncatedRecord, "record %d: negative trace length %d", r.seen, tlen)
	}

	if err := r.readTrace(o, tlen); err != nil {
		return nil, err
	}
	r.seen++
	return o, nil
}

func (r *Reader) readTrace(o *Overlap, tlen int) error {
	if r.small {
		r.t8 = grow(r.t8, tlen)
		buf := r.t8[:tlen]
		if _, err := io.ReadFull(r.br, buf); err != nil {
			return errors.Wrapf(ErrTruncatedTrace, "record %d: %v", r.seen, err)
		}
		o.Path.Trace8, o.Path.Trace = buf, nil
		return nil
	}
	r.t16 = grow(r.t16, tlen)
	var word [2]byte
	for i := 0; i < tlen; i++ {
		if _, err := io.ReadFull(r.br, word[:]); err != nil {
			return errors.Wrapf(ErrTruncatedTrace, "record %d: %v", r.seen, err)
		}
		r.t16[i] = binary.LittleEndian.Uint16(word[:])
	}
	o.Path.Trace, o.Path.Trace8 = r.t16[:tlen], nil
	return nil
}

// grow ensures cap(buf) >= n, reallocating with 1.2x headroom plus
// fixed slack so repeated large traces settle quickly.
func grow[T uint8 | uint16](buf []T, n int) []T {
	if cap(buf) >= n {
		return buf[:cap(buf)]
	}
	return make([]T, n+n/5+100)
}

// Close releases the underlying file.
func (r *Reader) Close() error { return r.rc.Close() }
