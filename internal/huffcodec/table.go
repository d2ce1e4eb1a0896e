package huffcodec

import (
	"github.com/kelvins/blockzip/internal/bitio"
)

// serializeTable builds the uncompressed code-table bytes described by
// the block format: a symbol count, a 256-bit presence bitmap, the
// per-symbol code lengths in ascending symbol order, and the packed
// code bits themselves, LSB-first, in the same order.
func serializeTable(codes [256]codeEntry, present [256]bool) []byte {
	count := 0
	for _, ok := range present {
		if ok {
			count++
		}
	}

	out := make([]byte, 0, 1+32+count+count)
	out = append(out, byte(count)) // count==256 wraps to 0, the decode convention

	var bitmap [32]byte
	for b := 0; b < 256; b++ {
		if present[b] {
			bitmap[b/8] |= 1 << uint(b%8)
		}
	}
	out = append(out, bitmap[:]...)

	for b := 0; b < 256; b++ {
		if present[b] {
			out = append(out, byte(codes[b].len))
		}
	}

	w := bitio.NewWriter()
	for b := 0; b < 256; b++ {
		if present[b] {
			w.Write(codes[b].code, codes[b].len)
		}
	}
	out = append(out, w.Bytes()...)

	return out
}

// parsedTable is the decode side's view of a deserialized code table: a
// map from packed (code | length<<58) key to the symbol it decodes to.
type parsedTable map[uint64]byte

func parseTable(raw []byte) (parsedTable, error) {
	if len(raw) < 1+32 {
		return nil, ErrCorruptedTable
	}
	count := int(raw[0])
	if count == 0 {
		count = 256
	}
	bitmap := raw[1:33]
	off := 33

	if len(raw) < off+count {
		return nil, ErrCorruptedTable
	}
	lengths := raw[off : off+count]
	off += count

	symbols := make([]byte, 0, count)
	for b := 0; b < 256; b++ {
		if bitmap[b/8]&(1<<uint(b%8)) != 0 {
			symbols = append(symbols, byte(b))
		}
	}
	if len(symbols) != count {
		return nil, ErrCorruptedTable
	}

	r := bitio.NewReader(raw[off:])
	table := make(parsedTable, count)
	for i, sym := range symbols {
		length := int(lengths[i])
		if length <= 0 || length > maxCodeLen {
			return nil, ErrCorruptedTable
		}
		code, err := r.Read(length)
		if err != nil {
			return nil, ErrCorruptedTable
		}
		table[code|uint64(length)<<58] = sym
	}

	return table, nil
}
