package core

import (
	"encoding/json"
	"fmt"
)

// LogEntry is a single structured record flowing through the pipeline.
// Once built it is never mutated; the pipeline copies it by value.
type LogEntry struct {
	Timestamp     string          `json:"timestamp"`
	Level         Level           `json:"level"`
	CorrelationID string          `json:"correlation_id"`
	Operation     string          `json:"operation"`
	Message       string          `json:"message"`
	Context       map[string]any  `json:"context,omitempty"`
	Environment   EnvironmentInfo `json:"environment"`
	Source        string          `json:"source,omitempty"`
	StackTrace    string          `json:"stack_trace,omitempty"`
	HumanNote     string          `json:"human_note,omitempty"`
	AITodo        string          `json:"ai_todo,omitempty"`
}

// ToJSON renders the entry as a single line without a trailing newline.
// encoding/json escapes newline characters inside values, so one entry
// always serializes to exactly one line. Unserializable context values
// (cycles, channels, functions) fail here without invalidating the
// in-memory entry.
func (e LogEntry) ToJSON() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize log entry: %w", err)
	}
	return b, nil
}
