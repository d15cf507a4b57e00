package kv

import (
	"bytes"
	"testing"
)

func collect(it Iterator) [][2][]byte {
	defer it.Release()
	var out [][2][]byte
	for it.Next() {
		out = append(out, [2][]byte{
			append([]byte(nil), it.Key()...),
			append([]byte(nil), it.Value()...),
		})
	}
	return out
}

func TestMemoryGetSetDel(t *testing.T) {
	m := NewMemory()

	if v, err := m.Get([]byte("a")); err != nil || v != nil {
		t.Fatalf("Get on empty store = (%v, %v), want (nil, nil)", v, err)
	}

	if err := m.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatal(err)
	}
	v, err := m.Get([]byte("a"))
	if err != nil || !bytes.Equal(v, []byte("1")) {
		t.Fatalf("Get = (%v, %v), want (1, nil)", v, err)
	}

	if err := m.Del([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if v, err := m.Get([]byte("a")); err != nil || v != nil {
		t.Fatalf("Get after Del = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestMemoryDelAbsentIsNoop(t *testing.T) {
	m := NewMemory()
	if err := m.Del([]byte("missing")); err != nil {
		t.Fatalf("Del of absent key returned error: %v", err)
	}
}

func TestMemoryIterRangeOrder(t *testing.T) {
	m := NewMemory()
	for _, k := range []string{"b", "d", "a", "c"} {
		_ = m.Set([]byte(k), []byte(k))
	}

	got := collect(m.Iter(Full()))
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if string(got[i][0]) != w {
			t.Errorf("entry %d = %q, want %q", i, got[i][0], w)
		}
	}
}

func TestMemoryIterPrefix(t *testing.T) {
	m := NewMemory()
	for _, k := range []string{"ns/a", "ns/b", "other"} {
		_ = m.Set([]byte(k), []byte("v"))
	}

	got := collect(m.Iter(Prefix([]byte("ns/"))))
	if len(got) != 2 {
		t.Fatalf("got %d entries under prefix, want 2", len(got))
	}
}

func TestRangeExcludedBounds(t *testing.T) {
	r := Range{
		Start: Bound{Kind: Excluded, Key: []byte("b")},
		End:   Bound{Kind: Included, Key: []byte("d")},
	}
	cases := map[string]bool{"a": false, "b": false, "c": true, "d": true, "e": false}
	for k, want := range cases {
		if got := r.Contains([]byte(k)); got != want {
			t.Errorf("Contains(%q) = %v, want %v", k, got, want)
		}
	}
}

func TestNamespacedIsolation(t *testing.T) {
	backing := NewMemory()
	a := NewNamespaced(backing, "a/")
	b := NewNamespaced(backing, "b/")

	_ = a.Set([]byte("x"), []byte("1"))
	_ = b.Set([]byte("x"), []byte("2"))

	va, _ := a.Get([]byte("x"))
	vb, _ := b.Get([]byte("x"))
	if !bytes.Equal(va, []byte("1")) || !bytes.Equal(vb, []byte("2")) {
		t.Fatalf("namespaces leaked: a=%v b=%v", va, vb)
	}

	got := collect(a.Iter(Full()))
	if len(got) != 1 || string(got[0][0]) != "x" {
		t.Fatalf("namespaced iter saw %v, want just [x]", got)
	}
}

func TestPrefixUpperBound(t *testing.T) {
	upper, ok := prefixUpperBound([]byte("ab"))
	if !ok || string(upper) != "ac" {
		t.Fatalf("prefixUpperBound(ab) = (%q, %v), want (ac, true)", upper, ok)
	}

	_, ok = prefixUpperBound([]byte{0xff, 0xff})
	if ok {
		t.Fatal("prefixUpperBound of all-0xff prefix should have no finite bound")
	}
}
