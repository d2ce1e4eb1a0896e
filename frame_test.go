package blockzip

import (
	"bytes"
	"testing"
)

func TestFrameEncodeDecodeRoundTrip(t *testing.T) {
	f := frame{tag: tagHuffman, payload: []byte{1, 2, 3}}
	encoded, err := f.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := readFrame(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if got.tag != f.tag || !bytes.Equal(got.payload, f.payload) {
		t.Fatalf("got %+v, want %+v", got, f)
	}
}

func TestFrameRejectsPayloadOverLimit(t *testing.T) {
	f := frame{tag: tagLZW, payload: make([]byte, 0x10000)}
	if _, err := f.encode(); err == nil {
		t.Fatal("expected ErrBlockTooLarge")
	}
}

func TestReadFrameRejectsUnknownTag(t *testing.T) {
	buf := []byte{2, 0, 'X', 0}
	if _, err := readFrame(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected error for unknown tag")
	}
}

func TestWriteFramesPreservesOrder(t *testing.T) {
	frames := []frame{
		{tag: tagLZW, payload: []byte("a")},
		{tag: tagHuffman, payload: []byte("bb")},
	}
	var buf bytes.Buffer
	if err := writeFrames(&buf, frames); err != nil {
		t.Fatalf("writeFrames: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	for i, want := range frames {
		got, err := readFrame(r)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if got.tag != want.tag || !bytes.Equal(got.payload, want.payload) {
			t.Fatalf("frame %d: got %+v, want %+v", i, got, want)
		}
	}
}
