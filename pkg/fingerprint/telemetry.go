package fingerprint

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// MatchEvent records one match (or no-match) outcome for telemetry.
type MatchEvent struct {
	Timestamp   time.Time         `json:"timestamp"`
	RunID       string            `json:"run_id"`
	Input       string            `json:"input"`
	MatchType   string            `json:"match_type"` // "match" or "no_match"
	Description string            `json:"description,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
	Confidence  float64           `json:"confidence"`
}

// maxTelemetryInput bounds how much of the raw input is recorded per event.
const maxTelemetryInput = 256

// TelemetryWriter appends match events to a JSONL file in a thread-safe
// manner. An empty path produces a disabled writer whose methods are no-ops.
type TelemetryWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
	enabled bool
}

// NewTelemetryWriter opens (or creates) the JSONL file at filePath for
// appending. If filePath is empty, the writer is disabled.
func NewTelemetryWriter(filePath string) (*TelemetryWriter, error) {
	if filePath == "" {
		return &TelemetryWriter{enabled: false}, nil
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open telemetry file: %w", err)
	}

	return &TelemetryWriter{
		file:    file,
		encoder: json.NewEncoder(file),
		enabled: true,
	}, nil
}

// Write appends one event.
func (w *TelemetryWriter) Write(event MatchEvent) error {
	if !w.enabled {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(event); err != nil {
		return fmt.Errorf("write telemetry event: %w", err)
	}
	return nil
}

// WriteResults records the outcome of matching one input: one event per
// result, or a single no-match event when results is empty.
func (w *TelemetryWriter) WriteResults(runID, input string, results []MatchResult) error {
	if !w.enabled {
		return nil
	}

	input = truncate(input, maxTelemetryInput)
	now := time.Now()

	if len(results) == 0 {
		return w.Write(MatchEvent{
			Timestamp: now,
			RunID:     runID,
			Input:     input,
			MatchType: "no_match",
		})
	}

	for _, res := range results {
		event := MatchEvent{
			Timestamp:   now,
			RunID:       runID,
			Input:       input,
			MatchType:   "match",
			Description: res.Fingerprint.Description,
			Params:      res.Params,
			Confidence:  res.Confidence,
		}
		if err := w.Write(event); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (w *TelemetryWriter) Close() error {
	if !w.enabled || w.file == nil {
		return nil
	}
	return w.file.Close()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
