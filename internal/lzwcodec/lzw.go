// Package lzwcodec implements the variable-width LZW codec used by the
// block compressor: dictionary resets via a CLEAR code, code-width
// growth from 9 to 12 bits, and the KwKwK decode edge case.
//
// The encode-side dictionary is a small open-addressing hash table
// keyed by (prefix code, next byte) and hashed with xxhash, rather
// than Go's built-in map, following the faster of the two
// representations sanctioned for this codec: a hashed (code, byte)
// key avoids allocating a byte string per dictionary entry.
package lzwcodec

import (
	"errors"
	"fmt"

	"github.com/kelvins/blockzip/internal/bitio"
)

const (
	MinCodeSize = 8
	MaxBits     = 12
	Clear       = 256
	EOI         = 257
	FirstFree   = 258
	MaxCode     = 1<<MaxBits - 1 // 4095

	earlyChangeOffset = 0 // EARLY_CHANGE = false
)

var (
	// ErrInvalidFormat is returned when the first code read is not CLEAR.
	ErrInvalidFormat = errors.New("lzwcodec: first code is not CLEAR")
	// ErrCorruptedStream is returned for an unknown code reference that
	// is not the KwKwK case.
	ErrCorruptedStream = errors.New("lzwcodec: unknown code")
)

// Encode compresses src and returns the raw LSB-first LZW bit stream:
// CLEAR at width 9, the coded symbols with the width schedule of the
// package, terminated by EOI.
func Encode(src []byte) []byte {
	w := bitio.NewWriter()
	width := MinCodeSize + 1 // 9
	w.Write(Clear, width)

	d := newEncodeDict()
	nextCode := uint32(FirstFree)

	haveW := false
	var wCode uint16

	emit := func(code uint16) { w.Write(uint64(code), width) }

	growIfNeeded := func() {
		if nextCode > uint32(1<<uint(width))-earlyChangeOffset && width < MaxBits {
			width++
		}
	}

	for _, k := range src {
		if !haveW {
			wCode = uint16(k)
			haveW = true
			continue
		}

		if code, ok := d.lookup(wCode, k); ok {
			wCode = code
			continue
		}

		emit(wCode)

		if nextCode <= MaxCode {
			d.insert(wCode, k, uint16(nextCode))
			nextCode++
			growIfNeeded()
		} else {
			emit(Clear)
			d.reset()
			width = MinCodeSize + 1
			nextCode = FirstFree
		}

		wCode = uint16(k)
	}

	if haveW {
		emit(wCode)
	}
	emit(EOI)

	return w.Bytes()
}

// Decode reverses [Encode]. It returns [ErrInvalidFormat] if the first
// code is not CLEAR and [ErrCorruptedStream] for any code reference
// that is not the legal KwKwK case.
func Decode(src []byte) ([]byte, error) {
	r := bitio.NewReader(src)
	width := MinCodeSize + 1

	first, err := r.Read(width)
	if err != nil {
		return nil, fmt.Errorf("lzwcodec: reading first code: %w", err)
	}
	if first != Clear {
		return nil, ErrInvalidFormat
	}

	d := newDecodeDict()
	nextCode := uint32(FirstFree)

	out := make([]byte, 0, 4096)
	havePrev := false
	var prevEntry []byte
	var prevCode uint16

	for {
		code, err := r.Read(width)
		if err != nil {
			return nil, fmt.Errorf("lzwcodec: reading code: %w", err)
		}

		if code == EOI {
			break
		}
		if code == Clear {
			d.reset()
			nextCode = FirstFree
			width = MinCodeSize + 1
			havePrev = false
			prevEntry = nil
			continue
		}

		var entry []byte
		switch {
		case d.has(uint16(code)):
			entry = d.expand(uint16(code))
		case havePrev && code == uint64(nextCode):
			entry = append(append([]byte{}, prevEntry...), prevEntry[0])
		default:
			return nil, fmt.Errorf("%w: code %d", ErrCorruptedStream, code)
		}

		out = append(out, entry...)

		if havePrev && nextCode <= MaxCode {
			d.insert(uint16(nextCode), prevCode, entry[0])
			nextCode++
			if nextCode >= uint32(1<<uint(width)) && width < MaxBits {
				width++
			}
		}

		havePrev = true
		prevEntry = entry
		prevCode = uint16(code)
	}

	return out, nil
}
