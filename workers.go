package blockzip

import (
	"os"
	"runtime"
	"strconv"
)

// resolveWorkerCount applies the same flag/env/fallback precedence the
// teacher used for its BEGB memory-limit knob: an explicit value wins,
// then an environment variable, then a runtime default.
func resolveWorkerCount(requested int) int {
	if requested > 0 {
		return requested
	}
	if e := os.Getenv("BLOCKZIP_WORKERS"); e != "" {
		n, err := strconv.Atoi(e)
		if err == nil && n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}
