// Package huffcodec implements the static Huffman codec used by the
// block compressor: an arena-built tree (list-and-mark-consumed, no
// heap), LSB-first code assignment, and a self-contained block that
// embeds its own code table, LZW-compressed, so each block decodes
// without external state.
package huffcodec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/kelvins/blockzip/internal/bitio"
	"github.com/kelvins/blockzip/internal/lzwcodec"
)

const (
	// markerNormal precedes a full code table plus bitstream.
	markerNormal = 0xAA
	// markerDegenerate precedes a single repeated symbol and a length,
	// skipping tree construction entirely.
	markerDegenerate = 0x00
)

var (
	// ErrCorruptedTable is returned when an embedded code table fails
	// to parse as a consistent set of prefix codes.
	ErrCorruptedTable = errors.New("huffcodec: corrupted code table")
	// ErrCorruptedStream is returned when the bitstream cannot be
	// decoded against its table, or its length disagrees with the
	// encoded bit count.
	ErrCorruptedStream = errors.New("huffcodec: corrupted bitstream")
)

// Encode compresses src into a self-describing Huffman block. An empty
// src produces an empty block.
func Encode(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}

	var freq [256]uint64
	for _, b := range src {
		freq[b]++
	}

	distinct := 0
	var only byte
	for b := 0; b < 256; b++ {
		if freq[b] > 0 {
			distinct++
			only = byte(b)
		}
	}

	if distinct == 1 {
		out := make([]byte, 1+1+8)
		out[0] = markerDegenerate
		out[1] = only
		binary.LittleEndian.PutUint64(out[2:], uint64(len(src)))
		return out
	}

	arena, root := buildTree(&freq)
	codes, present := assignCodes(arena, root)

	rawTable := serializeTable(codes, present)
	compressedTable := lzwcodec.Encode(rawTable)

	w := bitio.NewWriter()
	for _, b := range src {
		c := codes[b]
		w.Write(c.code, c.len)
	}
	bits := w.Bytes()
	bitCount := w.Len()

	out := make([]byte, 0, 1+2+len(compressedTable)+8+len(bits))
	out = append(out, markerNormal)

	var sizeBuf [2]byte
	binary.LittleEndian.PutUint16(sizeBuf[:], uint16(len(compressedTable)))
	out = append(out, sizeBuf[:]...)
	out = append(out, compressedTable...)

	var bitCountBuf [8]byte
	binary.LittleEndian.PutUint64(bitCountBuf[:], uint64(bitCount))
	out = append(out, bitCountBuf[:]...)
	out = append(out, bits...)

	return out
}

// Decode reverses [Encode].
func Decode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	switch src[0] {
	case markerDegenerate:
		if len(src) < 1+1+8 {
			return nil, fmt.Errorf("%w: truncated degenerate header", ErrCorruptedStream)
		}
		symbol := src[1]
		n := binary.LittleEndian.Uint64(src[2:10])
		out := make([]byte, n)
		for i := range out {
			out[i] = symbol
		}
		return out, nil

	case markerNormal:
		return decodeNormal(src[1:])

	default:
		return nil, fmt.Errorf("%w: unknown marker %#x", ErrCorruptedStream, src[0])
	}
}

func decodeNormal(rest []byte) ([]byte, error) {
	if len(rest) < 2 {
		return nil, fmt.Errorf("%w: truncated table size", ErrCorruptedStream)
	}
	tableSize := int(binary.LittleEndian.Uint16(rest[:2]))
	rest = rest[2:]
	if len(rest) < tableSize {
		return nil, fmt.Errorf("%w: truncated table", ErrCorruptedStream)
	}

	rawTable, err := lzwcodec.Decode(rest[:tableSize])
	if err != nil {
		return nil, fmt.Errorf("%w: table: %v", ErrCorruptedTable, err)
	}
	table, err := parseTable(rawTable)
	if err != nil {
		return nil, err
	}
	rest = rest[tableSize:]

	if len(rest) < 8 {
		return nil, fmt.Errorf("%w: truncated bit count", ErrCorruptedStream)
	}
	bitCount := int(binary.LittleEndian.Uint64(rest[:8]))
	rest = rest[8:]

	needBytes := (bitCount + 7) / 8
	if len(rest) < needBytes {
		return nil, fmt.Errorf("%w: truncated bitstream", ErrCorruptedStream)
	}

	r := bitio.NewReader(rest)
	out := make([]byte, 0, bitCount/2+1)

	bitOffset := 0
	for bitOffset < bitCount {
		matched := false
		for width := 1; width <= maxCodeLen; width++ {
			if bitOffset+width > bitCount {
				break
			}
			r.Seek(bitOffset)
			bits, err := r.Read(width)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorruptedStream, err)
			}
			if sym, ok := table[bits|uint64(width)<<58]; ok {
				out = append(out, sym)
				bitOffset += width
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: no matching code at bit %d", ErrCorruptedStream, bitOffset)
		}
	}

	return out, nil
}
