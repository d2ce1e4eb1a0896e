package bitio

import "testing"

func TestRoundTripFixedWidth(t *testing.T) {
	w := NewWriter()
	values := []uint64{0, 1, 511, 256, 4095, 3}
	for _, v := range values {
		w.Write(v, 12)
	}

	r := NewReader(w.Bytes())
	for i, want := range values {
		got, err := r.Read(12)
		if err != nil {
			t.Fatalf("value %d: unexpected error: %v", i, err)
		}
		if got != want {
			t.Fatalf("value %d: got %d want %d", i, got, want)
		}
	}
}

func TestRoundTripVariableWidth(t *testing.T) {
	type pair struct {
		value uint64
		width int
	}
	pairs := []pair{
		{0x1, 1},
		{0x3FF, 12},
		{0xFFFFFFFFFFFFFFFF, 63},
		{0x0, 7},
		{0x2A, 6},
		{0x1FFFF, 17},
	}

	w := NewWriter()
	for _, p := range pairs {
		w.Write(p.value, p.width)
	}

	r := NewReader(w.Bytes())
	for i, p := range pairs {
		got, err := r.Read(p.width)
		if err != nil {
			t.Fatalf("pair %d: unexpected error: %v", i, err)
		}
		want := p.value & mask(p.width)
		if got != want {
			t.Fatalf("pair %d: got %#x want %#x", i, got, want)
		}
	}
}

func TestReadPastEndReturnsErrEndOfStream(t *testing.T) {
	w := NewWriter()
	w.Write(0xFF, 8)
	r := NewReader(w.Bytes())

	if _, err := r.Read(8); err != nil {
		t.Fatalf("unexpected error on first read: %v", err)
	}
	if _, err := r.Read(1); err != ErrEndOfStream {
		t.Fatalf("got err %v, want ErrEndOfStream", err)
	}
}

func TestLSBFirstPacking(t *testing.T) {
	w := NewWriter()
	w.Write(0b101, 3)
	w.Write(0b11, 2)
	got := w.Bytes()
	want := byte(0b11101)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("got %08b want %08b", got, want)
	}
}

func TestBitsRemaining(t *testing.T) {
	w := NewWriter()
	w.Write(1, 1)
	w.Write(1, 1)
	r := NewReader(w.Bytes())
	if got := r.BitsRemaining(); got != 8 {
		t.Fatalf("got %d want 8", got)
	}
	r.Read(2)
	if got := r.BitsRemaining(); got != 6 {
		t.Fatalf("got %d want 6", got)
	}
}
