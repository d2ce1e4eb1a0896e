// Package blockzip implements a block-parallel lossless byte-stream
// compressor: each block is raced through a variable-width LZW codec
// and a static Huffman codec, and the smaller result is framed into
// the output. See [Compress] and [Decompress].
package blockzip

import "errors"

// Sentinel errors, wrapped with positional context at each call site,
// matching the sit package's ErrPassword/ErrAlgo convention. The
// internal codec packages declare their own errors; decodeBlock wraps
// each of them with the matching sentinel below.
var (
	// ErrInvalidFormat is returned when a frame's payload tag or a
	// codec's header is not one of its recognized values.
	ErrInvalidFormat = errors.New("blockzip: invalid format")
	// ErrCorruptedStream is returned when a codec's payload cannot be
	// decoded against its own header.
	ErrCorruptedStream = errors.New("blockzip: corrupted stream")
	// ErrEndOfStream is returned when a frame or bit reader runs past
	// the end of its input before completing a read.
	ErrEndOfStream = errors.New("blockzip: end of stream")
	// ErrBlockTooLarge is returned when a block's raced codec output
	// exceeds the 0xFFFF byte frame payload limit.
	ErrBlockTooLarge = errors.New("blockzip: block payload too large")
)
