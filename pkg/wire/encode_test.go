package wire

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.PutUint64(42)
	w.PutBytes([]byte("hello"))
	var h [32]byte
	h[0] = 0xab
	w.PutHash(h)

	r := NewReader(w.Bytes())
	v, err := r.Uint64()
	if err != nil || v != 42 {
		t.Fatalf("Uint64 = (%d, %v), want (42, nil)", v, err)
	}
	b, err := r.Bytes()
	if err != nil || string(b) != "hello" {
		t.Fatalf("Bytes = (%q, %v), want (hello, nil)", b, err)
	}
	gotHash, err := r.Hash()
	if err != nil || gotHash != h {
		t.Fatalf("Hash = (%v, %v), want (%v, nil)", gotHash, err, h)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, err := r.Uint64(); err != ErrTruncated {
		t.Errorf("Uint64 on short input = %v, want ErrTruncated", err)
	}
}
