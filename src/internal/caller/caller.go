// Package caller resolves the user-code location responsible for a log
// call, excluding frames that belong to the logging pipeline itself.
package caller

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"vibelog/src/internal/core"
)

// Function path prefixes owned by the pipeline. Frames matching these are
// never reported as the caller, so attribution survives any number of
// internal indirections (orchestrator, adapters, slog bridging).
var corePackagePrefixes = []string{
	"vibelog/src/internal/",
	"log/slog.",
}

const maxFrames = 32

// Resolve walks the stack outward from the log call and returns the first
// frame belonging to user code, formatted as "file:line in function". It
// returns core.UnknownSource when nothing resolves; it never fails.
func Resolve() string {
	pcs := make([]uintptr, maxFrames)
	// Skip runtime.Callers and Resolve itself; pipeline frames above are
	// filtered by package path below.
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return core.UnknownSource
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != "" && frame.Function != "" && !isCoreFrame(frame) {
			return fmt.Sprintf("%s:%d in %s",
				filepath.Base(frame.File), frame.Line, shortFuncName(frame.Function))
		}
		if !more {
			break
		}
	}
	return core.UnknownSource
}

func isCoreFrame(f runtime.Frame) bool {
	// The pipeline's own tests are user code like any other caller.
	if strings.HasSuffix(f.File, "_test.go") {
		return false
	}
	for _, prefix := range corePackagePrefixes {
		if strings.HasPrefix(f.Function, prefix) {
			return true
		}
	}
	return strings.HasPrefix(f.Function, "runtime.")
}

// shortFuncName reduces a fully qualified symbol like
// "vibelog/src/internal/foo.(*Bar).Baz" to "(*Bar).Baz", dropping the
// package path but keeping receiver and closure qualifiers.
func shortFuncName(full string) string {
	name := full
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
