package blockzip

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// DecompressOption configures a single [Decompress] call.
type DecompressOption func(*decompressConfig)

type decompressConfig struct {
	workers int
	logger  *slog.Logger
}

// WithDecompressWorkers sets the maximum number of concurrent block
// decode workers, with the same fallback as [WithWorkers].
func WithDecompressWorkers(n int) DecompressOption {
	return func(c *decompressConfig) { c.workers = n }
}

// WithDecompressLogger overrides the [slog.Logger] used for
// decompression diagnostics.
func WithDecompressLogger(l *slog.Logger) DecompressOption {
	return func(c *decompressConfig) { c.logger = l }
}

// Decompress reads frames from r until EOF, decodes each against its
// tagged codec, and writes the concatenated bytes to w in frame order.
func Decompress(r io.Reader, w io.Writer, opts ...DecompressOption) error {
	cfg := decompressConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	workers := resolveWorkerCount(cfg.workers)

	var frames []frame
	for {
		f, err := readFrame(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			cfg.logger.Error("blockzip: reading frame failed", "error", err)
			return fmt.Errorf("frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}

	cfg.logger.Debug("blockzip: decompressing", "frames", len(frames), "workers", workers)

	blocks, err := decompressBlocks(frames, workers)
	if err != nil {
		cfg.logger.Error("blockzip: decompression aborted", "error", err)
		return err
	}

	for i, b := range blocks {
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("block %d: write: %w", i, err)
		}
	}
	return nil
}
