package blockzip

import (
	"encoding/binary"
	"fmt"
	"io"
)

// BlockSize is the uncompressed size of every block but the last:
// 2^MAX_BITS - 1, chosen so a full block's LZW codes never need a
// 13th bit of width.
const BlockSize = 4095

const (
	tagLZW     = 'L'
	tagHuffman = 'H'
)

// frame is one length-prefixed unit of the compressed stream: a tag
// byte selecting the codec, followed by that codec's own output.
type frame struct {
	tag     byte
	payload []byte // codec output, tag not included
}

// encode lays out the frame exactly as spec.md §6 describes: u16 LE
// section_size, then the tag byte, then the codec payload.
func (f frame) encode() ([]byte, error) {
	sectionSize := 1 + len(f.payload)
	if sectionSize > 0xFFFF {
		return nil, fmt.Errorf("%w: section is %d bytes", ErrBlockTooLarge, sectionSize)
	}
	out := make([]byte, 2+sectionSize)
	binary.LittleEndian.PutUint16(out, uint16(sectionSize))
	out[2] = f.tag
	copy(out[3:], f.payload)
	return out, nil
}

// writeFrames writes frames to w in order, failing closed: on error no
// partial frame is left dangling in w beyond what has already been
// flushed by previous iterations.
func writeFrames(w io.Writer, frames []frame) error {
	for i, f := range frames {
		b, err := f.encode()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("frame %d: write: %w", i, err)
		}
	}
	return nil
}

// readFrame reads one frame header and payload from r. io.EOF is
// returned verbatim (with no wrapping) to signal a clean end of
// stream to the caller's loop.
func readFrame(r io.Reader) (frame, error) {
	var sizeBuf [2]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		if err == io.EOF {
			return frame{}, io.EOF
		}
		return frame{}, fmt.Errorf("%w: reading section size: %v", ErrEndOfStream, err)
	}
	sectionSize := binary.LittleEndian.Uint16(sizeBuf[:])
	if sectionSize == 0 {
		return frame{}, fmt.Errorf("%w: zero-length section", ErrInvalidFormat)
	}

	section := make([]byte, sectionSize)
	if _, err := io.ReadFull(r, section); err != nil {
		return frame{}, fmt.Errorf("%w: reading section: %v", ErrEndOfStream, err)
	}

	tag := section[0]
	if tag != tagLZW && tag != tagHuffman {
		return frame{}, fmt.Errorf("%w: tag %q", ErrInvalidFormat, tag)
	}
	return frame{tag: tag, payload: section[1:]}, nil
}
