package blockzip

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Stats reports a compressor run's per-codec selection counts. The
// two counters are the "optional monotonic counters" spec.md §4.5
// allows as the only shared mutable state between workers; both are
// updated with atomic increments only.
type Stats struct {
	LZWChosen     atomic.Int64
	HuffmanChosen atomic.Int64
}

func (s *Stats) record(f frame) {
	if s == nil {
		return
	}
	if f.tag == tagLZW {
		s.LZWChosen.Add(1)
	} else {
		s.HuffmanChosen.Add(1)
	}
}

// compressBlocks runs encodeBlock over blocks in batches of at most
// workers concurrent tasks, grounded on original_source/src/main.cpp's
// launch-up-to-hardware_concurrency()-then-sync_thread loop: a batch
// is fully joined, and its frames are handed back in ascending block
// order, before the next batch starts. Cancellation is all-or-nothing:
// the first error in a batch aborts that batch's errgroup, which joins
// the rest before propagating.
func compressBlocks(blocks [][]byte, workers int, cache *blockCache, stats *Stats) ([]frame, error) {
	out := make([]frame, len(blocks))

	for start := 0; start < len(blocks); start += workers {
		end := start + workers
		if end > len(blocks) {
			end = len(blocks)
		}

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				f, err := encodeBlock(blocks[i], cache)
				if err != nil {
					return err
				}
				out[i] = f
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for i := start; i < end; i++ {
			stats.record(out[i])
		}
	}

	return out, nil
}

// decompressBlocks mirrors compressBlocks on the inverse path: frames
// are already read from the stream in order (frame.go's sequential
// reader), so only the per-frame codec decode is batched across
// workers before being concatenated in frame order.
func decompressBlocks(frames []frame, workers int) ([][]byte, error) {
	out := make([][]byte, len(frames))

	for start := 0; start < len(frames); start += workers {
		end := start + workers
		if end > len(frames) {
			end = len(frames)
		}

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				b, err := decodeBlock(frames[i])
				if err != nil {
					return err
				}
				out[i] = b
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return out, nil
}
