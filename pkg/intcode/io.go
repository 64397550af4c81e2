package intcode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// RecordSize is the number of bytes one value occupies on a channel.
const RecordSize = 8

// EncodeInts serializes values as consecutive little-endian records.
func EncodeInts(vals ...int64) []byte {
	buf := make([]byte, 0, len(vals)*RecordSize)
	for _, v := range vals {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	return buf
}

// DecodeInts parses consecutive little-endian records.
func DecodeInts(b []byte) ([]int64, error) {
	if len(b)%RecordSize != 0 {
		return nil, fmt.Errorf("%d trailing bytes after %d records", len(b)%RecordSize, len(b)/RecordSize)
	}
	vals := make([]int64, 0, len(b)/RecordSize)
	for i := 0; i < len(b); i += RecordSize {
		vals = append(vals, int64(binary.LittleEndian.Uint64(b[i:])))
	}
	return vals, nil
}

func readRecord(r io.Reader) (int64, error) {
	var rec [RecordSize]byte
	if _, err := io.ReadFull(r, rec[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(rec[:])), nil
}

func writeRecord(w io.Writer, v int64) error {
	var rec [RecordSize]byte
	binary.LittleEndian.PutUint64(rec[:], uint64(v))
	n, err := w.Write(rec[:])
	if err == nil && n < RecordSize {
		err = io.ErrShortWrite
	}
	return err
}

// appendRecords writes records at the end of a seekable stream and restores
// the previous offset.
func appendRecords(rws io.ReadWriteSeeker, vals []int64) error {
	pos, err := rws.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := rws.Seek(0, io.SeekEnd); err != nil {
		return err
	}
	if _, err := rws.Write(EncodeInts(vals...)); err != nil {
		return err
	}
	_, err = rws.Seek(pos, io.SeekStart)
	return err
}

// empty is the default input: it never has data.
type empty struct{}

func (empty) Read([]byte) (int, error) { return 0, io.EOF }

var errNegativeOffset = errors.New("intcode: negative buffer offset")

// Buffer is a growable, seekable in-memory channel. Reads and writes share
// one offset; Append adds records at the tail without moving it.
//
// A Buffer used as input can be extended while a machine is consuming it,
// which is what feedback pipelines need. Used as output, Ints returns every
// record written so far.
type Buffer struct {
	buf []byte
	off int64
}

// NewBuffer returns a buffer holding vals, positioned at the start.
func NewBuffer(vals ...int64) *Buffer {
	return &Buffer{buf: EncodeInts(vals...)}
}

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += int64(n)
	return n, nil
}

// Write implements io.Writer, overwriting or extending from the offset.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.off + int64(len(p))
	if end > int64(len(b.buf)) {
		if end > int64(cap(b.buf)) {
			grown := make([]byte, len(b.buf), 2*end)
			copy(grown, b.buf)
			b.buf = grown
		}
		b.buf = b.buf[:end]
	}
	copy(b.buf[b.off:], p)
	b.off = end
	return len(p), nil
}

// Seek implements io.Seeker. Seeking past the end is allowed; a later Write
// zero-fills the gap.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.off + offset
	case io.SeekEnd:
		abs = int64(len(b.buf)) + offset
	default:
		return 0, fmt.Errorf("intcode: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, errNegativeOffset
	}
	b.off = abs
	return abs, nil
}

// Append adds records at the tail without disturbing the offset.
func (b *Buffer) Append(vals ...int64) {
	b.buf = append(b.buf, EncodeInts(vals...)...)
}

// Ints decodes the whole buffer, ignoring the offset. A trailing partial
// record is dropped.
func (b *Buffer) Ints() []int64 {
	vals, _ := DecodeInts(b.buf[:len(b.buf)-len(b.buf)%RecordSize])
	return vals
}

// Pending decodes the records not yet read.
func (b *Buffer) Pending() []int64 {
	if b.off >= int64(len(b.buf)) {
		return nil
	}
	rest := b.buf[b.off:]
	vals, _ := DecodeInts(rest[:len(rest)-len(rest)%RecordSize])
	return vals
}

// Len returns the number of complete records in the buffer.
func (b *Buffer) Len() int {
	return len(b.buf) / RecordSize
}
