package core

import (
	"runtime"
	"sync"
)

// EnvironmentInfo describes the runtime that produced an entry. Every
// materialized entry carries one; the loader synthesizes a fresh snapshot
// when a persisted line lacks a usable one.
type EnvironmentInfo struct {
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Platform     string `json:"platform"`
	Architecture string `json:"architecture"`
}

var (
	envOnce sync.Once
	env     EnvironmentInfo
)

// CaptureEnvironment returns the process-wide environment snapshot. The
// value never changes during a process lifetime, so it is captured once.
func CaptureEnvironment() EnvironmentInfo {
	envOnce.Do(func() {
		env = EnvironmentInfo{
			GoVersion:    runtime.Version(),
			OS:           runtime.GOOS,
			Platform:     runtime.GOOS + "/" + runtime.GOARCH,
			Architecture: runtime.GOARCH,
		}
	})
	return env
}

// IsZero reports whether the snapshot carries no information at all.
func (e EnvironmentInfo) IsZero() bool {
	return e.GoVersion == "" && e.OS == "" && e.Platform == "" && e.Architecture == ""
}
