package huffcodec

import (
	"bytes"
	"strings"
	"testing"
)

func roundTrip(t *testing.T, src []byte) []byte {
	t.Helper()
	encoded := Encode(src)
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, src) {
		t.Fatalf("round trip mismatch: got %q want %q", decoded, src)
	}
	return encoded
}

func TestRoundTripEmpty(t *testing.T) {
	encoded := Encode(nil)
	if len(encoded) != 0 {
		t.Fatalf("Encode(nil) = %v, want empty", encoded)
	}
	decoded, err := Decode(encoded)
	if err != nil || len(decoded) != 0 {
		t.Fatalf("Decode(empty) = %v, %v", decoded, err)
	}
}

func TestDegenerateSingleSymbolBlock(t *testing.T) {
	src := bytes.Repeat([]byte("A"), 10)
	encoded := roundTrip(t, src)

	want := []byte{0x00, 'A', 0x0A, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(encoded, want) {
		t.Fatalf("degenerate encoding = %v, want %v", encoded, want)
	}
}

func TestDegenerateSingleByteInput(t *testing.T) {
	roundTrip(t, []byte("z"))
}

func TestRoundTripKnownString(t *testing.T) {
	roundTrip(t, []byte("TOBEORNOTTOBEORTOBEORNOT"))
}

func TestRoundTripAllByteValues(t *testing.T) {
	src := make([]byte, 256*4)
	for i := range src {
		src[i] = byte(i % 256)
	}
	roundTrip(t, src)
}

func TestRoundTripSkewedFrequencies(t *testing.T) {
	// Steeply decreasing run lengths keep the tree within the 58-bit
	// invariant while still exercising deep, unbalanced paths.
	var buf bytes.Buffer
	buf.WriteString(strings.Repeat("a", 2000))
	buf.WriteString(strings.Repeat("b", 600))
	buf.WriteString(strings.Repeat("c", 200))
	buf.WriteString(strings.Repeat("d", 60))
	buf.WriteString("efghijklmnop")
	roundTrip(t, buf.Bytes())
}

func TestEncodeIsDeterministic(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox")
	a := Encode(src)
	b := Encode(src)
	if !bytes.Equal(a, b) {
		t.Fatal("Encode is not deterministic")
	}
}

func TestTableRoundTrip(t *testing.T) {
	var freq [256]uint64
	for _, b := range []byte("mississippi river") {
		freq[b]++
	}
	arena, root := buildTree(&freq)
	codes, present := assignCodes(arena, root)

	raw := serializeTable(codes, present)
	table, err := parseTable(raw)
	if err != nil {
		t.Fatalf("parseTable: %v", err)
	}

	for b := 0; b < 256; b++ {
		if !present[b] {
			continue
		}
		key := codes[b].code | uint64(codes[b].len)<<58
		sym, ok := table[key]
		if !ok || sym != byte(b) {
			t.Fatalf("symbol %d: table lookup = %v, %v", b, sym, ok)
		}
	}
}

func TestDecodeRejectsUnknownMarker(t *testing.T) {
	_, err := Decode([]byte{0x42, 0x01})
	if err == nil {
		t.Fatal("expected error for unknown marker")
	}
}

func TestCodesArePrefixFree(t *testing.T) {
	var freq [256]uint64
	for _, b := range []byte("abracadabra") {
		freq[b]++
	}
	arena, root := buildTree(&freq)
	codes, present := assignCodes(arena, root)

	type entry struct {
		code uint64
		len  int
	}
	var entries []entry
	for b := 0; b < 256; b++ {
		if present[b] {
			entries = append(entries, entry{codes[b].code, codes[b].len})
		}
	}
	for i := range entries {
		for j := range entries {
			if i == j {
				continue
			}
			a, b := entries[i], entries[j]
			if a.len > b.len {
				continue
			}
			if a.code == b.code&((1<<uint(a.len))-1) {
				t.Fatalf("code %v is a prefix of %v", a, b)
			}
		}
	}
}
