package core

// Pipeline defaults
const (
	DefaultMaxMemoryLogs = 1000
	DefaultMaxFileSizeMB = 10
)

// UnknownSource is the caller attribution used when stack resolution fails.
const UnknownSource = "Unknown source"
