package blockzip

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/kelvins/blockzip/internal/bitio"
	"github.com/kelvins/blockzip/internal/huffcodec"
	"github.com/kelvins/blockzip/internal/lzwcodec"
)

// encodeBlock races the LZW and Huffman codecs over block and returns
// the frame wrapping the smaller payload. Ties go to Huffman, matching
// the source's `huffman_size > lzw_size` comparison (picks LZW only
// when Huffman is strictly larger).
func encodeBlock(block []byte, cache *blockCache) (frame, error) {
	if cache != nil {
		if f, ok := cache.get(block); ok {
			return f, nil
		}
	}

	lzwOut := lzwcodec.Encode(block)
	hufOut := huffcodec.Encode(block)

	var f frame
	if len(hufOut) > len(lzwOut) {
		f = frame{tag: tagLZW, payload: lzwOut}
	} else {
		f = frame{tag: tagHuffman, payload: hufOut}
	}

	if cache != nil {
		cache.put(block, f)
	}

	return f, nil
}

// decodeBlock dispatches a frame's payload to the codec named by its
// tag and returns the recovered bytes.
func decodeBlock(f frame) ([]byte, error) {
	switch f.tag {
	case tagLZW:
		out, err := lzwcodec.Decode(f.payload)
		if err != nil {
			return nil, fmt.Errorf("%w: lzw block: %w", codecSentinel(err), err)
		}
		return out, nil
	case tagHuffman:
		out, err := huffcodec.Decode(f.payload)
		if err != nil {
			return nil, fmt.Errorf("%w: huffman block: %w", codecSentinel(err), err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: tag %q", ErrInvalidFormat, f.tag)
	}
}

// codecSentinel maps an error from one of the internal codec packages
// onto the root sentinel that describes it.
func codecSentinel(err error) error {
	switch {
	case errors.Is(err, lzwcodec.ErrInvalidFormat):
		return ErrInvalidFormat
	case errors.Is(err, bitio.ErrEndOfStream):
		return ErrEndOfStream
	default:
		return ErrCorruptedStream
	}
}

// blockContentHash is the memoization cache's lookup key ingredient,
// salted per cache instance (each Compress call draws a fresh salt) so
// cache hits cannot be used to probe another caller's block contents
// by timing.
func blockContentHash(block []byte, salt uint64) uint64 {
	d := xxhash.New()
	var saltBuf [8]byte
	for i := range saltBuf {
		saltBuf[i] = byte(salt >> (8 * i))
	}
	d.Write(saltBuf[:])
	d.Write(block)
	return d.Sum64()
}
