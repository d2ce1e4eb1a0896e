package lzwcodec

import "github.com/cespare/xxhash/v2"

// encodeDict is an open-addressing hash table mapping (prefix code,
// next byte) pairs to the dictionary code they were assigned, used by
// Encode. Single-byte strings are not stored here: their code equals
// the byte value itself.
type encodeDict struct {
	slots []encodeSlot
	mask  uint64
}

type encodeSlot struct {
	occupied bool
	prefix   uint16
	b        byte
	code     uint16
}

// tableSlots must be a power of two comfortably larger than the number
// of entries the dictionary can ever hold (MaxCode-FirstFree+1 ~ 3838)
// to keep open-addressing probes short.
const tableSlots = 8192

func newEncodeDict() *encodeDict {
	return &encodeDict{
		slots: make([]encodeSlot, tableSlots),
		mask:  tableSlots - 1,
	}
}

func hashKey(prefix uint16, b byte) uint64 {
	var buf [3]byte
	buf[0] = byte(prefix)
	buf[1] = byte(prefix >> 8)
	buf[2] = b
	return xxhash.Sum64(buf[:])
}

func (d *encodeDict) lookup(prefix uint16, b byte) (uint16, bool) {
	i := hashKey(prefix, b) & d.mask
	for {
		s := &d.slots[i]
		if !s.occupied {
			return 0, false
		}
		if s.prefix == prefix && s.b == b {
			return s.code, true
		}
		i = (i + 1) & d.mask
	}
}

func (d *encodeDict) insert(prefix uint16, b byte, code uint16) {
	i := hashKey(prefix, b) & d.mask
	for d.slots[i].occupied {
		i = (i + 1) & d.mask
	}
	d.slots[i] = encodeSlot{occupied: true, prefix: prefix, b: b, code: code}
}

func (d *encodeDict) reset() {
	for i := range d.slots {
		d.slots[i] = encodeSlot{}
	}
}

// decodeDict is a slice-indexed arena mapping a dictionary code to the
// (prefix code, last byte) pair it was built from, used by Decode.
// Codes are dense integers in [0, MaxCode], so direct indexing avoids
// any hashing on the decode path.
type decodeDict struct {
	assigned []bool
	prefix   []uint16
	last     []byte
}

func newDecodeDict() *decodeDict {
	d := &decodeDict{
		assigned: make([]bool, MaxCode+1),
		prefix:   make([]uint16, MaxCode+1),
		last:     make([]byte, MaxCode+1),
	}
	return d
}

// has reports whether code is a literal byte (always known) or has
// been assigned a compound entry.
func (d *decodeDict) has(code uint16) bool {
	if code < 256 {
		return true
	}
	return d.assigned[code]
}

func (d *decodeDict) insert(code uint16, prefix uint16, lastByte byte) {
	d.assigned[code] = true
	d.prefix[code] = prefix
	d.last[code] = lastByte
}

// expand reconstructs the full byte string for code by walking the
// prefix chain to a literal byte and reversing.
func (d *decodeDict) expand(code uint16) []byte {
	var rev []byte
	for code >= 256 {
		rev = append(rev, d.last[code])
		code = d.prefix[code]
	}
	rev = append(rev, byte(code))

	out := make([]byte, len(rev))
	for i, b := range rev {
		out[len(rev)-1-i] = b
	}
	return out
}

func (d *decodeDict) reset() {
	for i := range d.assigned {
		d.assigned[i] = false
	}
}
