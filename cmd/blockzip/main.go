// Command blockzip compresses and decompresses files with the
// block-parallel LZW/Huffman codec implemented by this module.
// Argument parsing, environment handling, and file I/O live here,
// outside the core compress/decompress library, per the module's
// stated scope.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/therootcompany/xz"
	"golang.org/x/sys/unix"

	"github.com/kelvins/blockzip"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ignoreSigpipe()

	fs := flag.NewFlagSet("blockzip", flag.ContinueOnError)
	compress := fs.Bool("c", false, "compress")
	decompress := fs.Bool("d", false, "decompress")
	in := fs.String("i", "", "input file")
	out := fs.String("o", "", "output file")
	glob := fs.String("glob", "", "batch-compress files matching this doublestar glob")
	outdir := fs.String("outdir", "", "output directory for -glob batch mode")
	workers := fs.Int("workers", 0, "max concurrent block workers (0 = auto)")
	useCache := fs.Bool("cache", false, "enable the block memoization cache")
	xzIn := fs.Bool("xz-in", false, "input is xz-wrapped; unwrap before decompressing")
	showVersion := fs.Bool("v", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.Default()

	if *showVersion {
		fmt.Println("blockzip", version)
		return 0
	}

	if *glob != "" {
		return runGlobBatch(logger, *glob, *outdir, *workers, *useCache)
	}

	if *compress == *decompress {
		fmt.Fprintln(os.Stderr, "blockzip: exactly one of -c or -d is required")
		return 2
	}
	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "blockzip: -i and -o are required")
		return 2
	}

	if *compress {
		return runCompressFile(logger, *in, *out, *workers, *useCache)
	}
	return runDecompressFile(logger, *in, *out, *workers, *xzIn)
}

// ignoreSigpipe makes a pipe reader closing early surface as a write
// error instead of terminating the process, matching the signal
// policy spec.md §5 requires for output written to pipes.
func ignoreSigpipe() {
	if runtime.GOOS == "windows" {
		return
	}
	signal.Ignore(unix.SIGPIPE)
}

func runCompressFile(logger *slog.Logger, inPath, outPath string, workers int, useCache bool) int {
	input, err := os.ReadFile(inPath)
	if err != nil {
		logger.Error("blockzip: reading input", "error", err)
		return 1
	}

	f, err := os.Create(outPath)
	if err != nil {
		logger.Error("blockzip: creating output", "error", err)
		return 1
	}
	defer f.Close()

	stats, err := blockzip.Compress(input, f,
		blockzip.WithWorkers(workers),
		blockzip.WithBlockCache(useCache),
		blockzip.WithLogger(logger))
	if err != nil {
		logger.Error("blockzip: compress failed", "error", err)
		return 1
	}

	logger.Info("blockzip: compressed",
		"input", inPath, "output", outPath,
		"lzw_chosen", stats.LZWChosen.Load(), "huffman_chosen", stats.HuffmanChosen.Load())
	return 0
}

func runDecompressFile(logger *slog.Logger, inPath, outPath string, workers int, xzIn bool) int {
	raw, err := os.Open(inPath)
	if err != nil {
		logger.Error("blockzip: opening input", "error", err)
		return 1
	}
	defer raw.Close()

	var src io.Reader = raw
	if xzIn {
		xr, err := xz.NewReader(raw, xz.DefaultDictMax)
		if err != nil {
			logger.Error("blockzip: unwrapping xz input", "error", err)
			return 1
		}
		src = xr
	}

	f, err := os.Create(outPath)
	if err != nil {
		logger.Error("blockzip: creating output", "error", err)
		return 1
	}
	defer f.Close()

	if err := blockzip.Decompress(src, f,
		blockzip.WithDecompressWorkers(workers),
		blockzip.WithDecompressLogger(logger)); err != nil {
		logger.Error("blockzip: decompress failed", "error", err)
		return 1
	}

	logger.Info("blockzip: decompressed", "input", inPath, "output", outPath)
	return 0
}

// runGlobBatch compresses every file matched by pattern into outdir,
// one independent blockzip stream per file, named <basename>.bz0. This
// has no equivalent in the single -i/-o original tool; it exists to
// give the CLI layer a real doublestar call site, the way the teacher
// repo uses doublestar for archive-member path matching.
func runGlobBatch(logger *slog.Logger, pattern, outdir string, workers int, useCache bool) int {
	if outdir == "" {
		fmt.Fprintln(os.Stderr, "blockzip: -outdir is required with -glob")
		return 2
	}
	if !doublestar.ValidatePattern(pattern) {
		fmt.Fprintln(os.Stderr, "blockzip: invalid glob pattern")
		return 2
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		logger.Error("blockzip: glob failed", "error", err)
		return 1
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		logger.Error("blockzip: creating outdir", "error", err)
		return 1
	}

	status := 0
	for _, path := range matches {
		outPath := filepath.Join(outdir, filepath.Base(path)+".bz0")
		if rc := runCompressFile(logger, path, outPath, workers, useCache); rc != 0 {
			status = rc
		}
	}
	return status
}
