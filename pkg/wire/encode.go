// Package wire implements the canonical little-endian, length-prefixed
// byte encoding spec.md §6 specifies for anything that crosses a process
// boundary in this SDK: messages between the sequencer and its proving
// pipeline, and the CompressedDiffs snapshots persisted alongside a block.
// There is no ecosystem codec that fits this SDK's node/witness shapes
// (RLP is tied to go-ethereum's own node topology; a Borsh-equivalent is
// treated as an external primitive per the project's scope), so this is a
// small stdlib encoding/binary-based writer/reader, in the spirit of the
// teacher's own low-level binary helpers.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrTruncated is returned when a Reader runs out of input mid-field.
var ErrTruncated = errors.New("wire: truncated input")

// Writer appends canonically-encoded fields to an in-memory buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the Writer's accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// PutUint64 appends v as 8 little-endian bytes.
func (w *Writer) PutUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// PutBytes appends a uvarint length prefix followed by b.
func (w *Writer) PutBytes(b []byte) {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(b)))
	w.buf = append(w.buf, lenBuf[:n]...)
	w.buf = append(w.buf, b...)
}

// PutHash appends h's 32 raw bytes, unprefixed (its length is fixed).
func (w *Writer) PutHash(h [32]byte) {
	w.buf = append(w.buf, h[:]...)
}

// Reader consumes canonically-encoded fields from a byte slice in order.
type Reader struct {
	buf []byte
}

// NewReader wraps buf for sequential reads.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Uint64 reads 8 little-endian bytes.
func (r *Reader) Uint64() (uint64, error) {
	if len(r.buf) < 8 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(r.buf[:8])
	r.buf = r.buf[8:]
	return v, nil
}

// Bytes reads a uvarint length prefix followed by that many bytes.
func (r *Reader) Bytes() ([]byte, error) {
	l, n := binary.Uvarint(r.buf)
	if n <= 0 {
		return nil, ErrTruncated
	}
	r.buf = r.buf[n:]
	if uint64(len(r.buf)) < l {
		return nil, ErrTruncated
	}
	out := append([]byte(nil), r.buf[:l]...)
	r.buf = r.buf[l:]
	return out, nil
}

// Hash reads exactly 32 raw bytes.
func (r *Reader) Hash() ([32]byte, error) {
	var h [32]byte
	if len(r.buf) < 32 {
		return h, ErrTruncated
	}
	copy(h[:], r.buf[:32])
	r.buf = r.buf[32:]
	return h, nil
}

// Remaining reports how many unconsumed bytes remain.
func (r *Reader) Remaining() int { return len(r.buf) }

// WriteTo copies w's buffer to dst, satisfying io.WriterTo for callers that
// stream the encoded form rather than collecting it in memory.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf)
	return int64(n), err
}
