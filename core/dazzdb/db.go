// core/dazzdb/db.go
package dazzdb

import (
	"bufio"
	"bytes"

	"github.com/pkg/errors"
)

// DB is an in-memory read database loaded from FASTA. Reads are kept in
// input order and addressed by 0-based index, matching the indices an
// overlap stream carries.
type DB struct {
	names  []string
	reads  [][]byte
	maxLen int
}

// Open loads every record of the FASTA file at path (gzip and "-" for
// stdin are accepted).
func Open(path string) (*DB, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dazzdb: open %s", path)
	}
	defer func() { _ = rc.Close() }()

	db := &DB{}
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	var seq []byte
	flush := func() {
		if len(db.names) > len(db.reads) {
			db.reads = append(db.reads, seq)
			seq = nil
		}
	}
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			db.names = append(db.names, headerID(line[1:]))
			continue
		}
		if len(db.names) == 0 {
			return nil, errors.Errorf("dazzdb: %s: sequence before first header", path)
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "dazzdb: scan %s", path)
	}
	flush()
	for _, r := range db.reads {
		if len(r) > db.maxLen {
			db.maxLen = len(r)
		}
	}
	return db, nil
}

// Trim normalizes the database in place: bases are folded to lowercase,
// anything outside acgt becomes 'n', and empty reads are dropped.
func (db *DB) Trim() {
	names := db.names[:0]
	reads := db.reads[:0]
	db.maxLen = 0
	for i, r := range db.reads {
		if len(r) == 0 {
			continue
		}
		for j, b := range r {
			switch b {
			case 'a', 'c', 'g', 't':
			case 'A', 'C', 'G', 'T':
				r[j] = b + 32
			default:
				r[j] = 'n'
			}
		}
		names = append(names, db.names[i])
		reads = append(reads, r)
		if len(r) > db.maxLen {
			db.maxLen = len(r)
		}
	}
	db.names = names
	db.reads = reads
}

// NumReads is the number of reads in the database.
func (db *DB) NumReads() int { return len(db.reads) }

// Name returns the FASTA header ID of read i.
func (db *DB) Name(i int) string { return db.names[i] }

// ReadLen is the length of read i in bases.
func (db *DB) ReadLen(i int) int { return len(db.reads[i]) }

// MaxReadLen is the length of the longest read; callers size reusable
// sequence buffers from it once, before the record loop.
func (db *DB) MaxReadLen() int { return db.maxLen }

// Load copies read i into buf (reallocating if too small), uppercased
// when upper is set, and returns the filled slice.
func (db *DB) Load(i int, buf []byte, upper bool) ([]byte, error) {
	if i < 0 || i >= len(db.reads) {
		return nil, errors.Errorf("dazzdb: read index %d out of range [0,%d)", i, len(db.reads))
	}
	src := db.reads[i]
	if cap(buf) < len(src) {
		buf = make([]byte, len(src))
	}
	buf = buf[:len(src)]
	copy(buf, src)
	if upper {
		for j, b := range buf {
			if b >= 'a' && b <= 'z' {
				buf[j] = b - 32
			}
		}
	}
	return buf, nil
}

func headerID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
