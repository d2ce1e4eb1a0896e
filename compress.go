package blockzip

import (
	"io"
	"log/slog"
)

// CompressOption configures a single [Compress] call.
type CompressOption func(*compressConfig)

type compressConfig struct {
	workers  int
	useCache bool
	logger   *slog.Logger
}

// WithWorkers sets the maximum number of concurrent block workers. The
// zero value falls back to BLOCKZIP_WORKERS then runtime.NumCPU, per
// [resolveWorkerCount].
func WithWorkers(n int) CompressOption {
	return func(c *compressConfig) { c.workers = n }
}

// WithBlockCache enables the content-addressed block memoization
// cache. Disabled by default; never changes output, only whether
// repeated block content re-runs both codecs.
func WithBlockCache(enabled bool) CompressOption {
	return func(c *compressConfig) { c.useCache = enabled }
}

// WithLogger overrides the [slog.Logger] used for compression
// diagnostics. Defaults to [slog.Default].
func WithLogger(l *slog.Logger) CompressOption {
	return func(c *compressConfig) { c.logger = l }
}

// Compress splits input into BlockSize blocks, races the LZW and
// Huffman codecs over each, and writes the resulting frames to w in
// block order. It returns per-codec selection stats for the run.
func Compress(input []byte, w io.Writer, opts ...CompressOption) (*Stats, error) {
	cfg := compressConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	workers := resolveWorkerCount(cfg.workers)

	var cache *blockCache
	if cfg.useCache {
		cache = newBlockCache()
	}

	blocks := splitBlocks(input)
	cfg.logger.Debug("blockzip: compressing",
		"input_bytes", len(input), "blocks", len(blocks), "workers", workers)

	stats := &Stats{}
	frames, err := compressBlocks(blocks, workers, cache, stats)
	if err != nil {
		cfg.logger.Error("blockzip: compression aborted", "error", err)
		return nil, err
	}

	if err := writeFrames(w, frames); err != nil {
		cfg.logger.Error("blockzip: writing frames failed", "error", err)
		return nil, err
	}

	cfg.logger.Debug("blockzip: compression complete",
		"lzw_chosen", stats.LZWChosen.Load(), "huffman_chosen", stats.HuffmanChosen.Load())
	return stats, nil
}

// splitBlocks partitions input into contiguous BlockSize slices, with
// a possibly shorter final block. A zero-length input yields zero
// blocks, matching spec.md §8 scenario 1.
func splitBlocks(input []byte) [][]byte {
	if len(input) == 0 {
		return nil
	}
	n := (len(input) + BlockSize - 1) / BlockSize
	blocks := make([][]byte, n)
	for i := 0; i < n; i++ {
		start := i * BlockSize
		end := start + BlockSize
		if end > len(input) {
			end = len(input)
		}
		blocks[i] = input[start:end]
	}
	return blocks
}
