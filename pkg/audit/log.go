// Package audit writes the human-readable resolution audit trail. The log
// is append-only and records rationale and summaries, never raw structured
// prompts or responses.
package audit

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Header identifies the run in the fixed block at the top of the log.
type Header struct {
	RunID       string
	Runtime     string
	Model       string
	Temperature float64
}

// Field is one ordered key/value line in an entry section.
type Field struct {
	Key   string
	Value string
}

// Entry describes a single resolution attempt. Every attempt, including a
// skipped one, produces exactly one entry.
type Entry struct {
	RowID           string
	Rationale       string
	AmbiguousFields []string
	RowGlimpse      []Field
	Temperature     string
	AllowedTypes    []string
	ExpectedKeys    []string
	ResponseSummary []Field
	RawExcerpt      string
}

// Log is the append-only audit sink. Writes are serialized so concurrent
// resolution attempts cannot interleave entries.
type Log struct {
	mu      sync.Mutex
	f       *os.File
	counter int
	now     func() time.Time
}

// New creates the log file, truncating any previous run, and writes the
// header block.
func New(path string, h Header) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	l := &Log{f: f, now: time.Now}
	temp := h.Temperature
	if temp > 0.2 {
		temp = 0.2
	}
	var b strings.Builder
	b.WriteString("LLM Prompts\n\n")
	fmt.Fprintf(&b, "- Run ID: %s\n", h.RunID)
	fmt.Fprintf(&b, "- Runtime: %s\n", h.Runtime)
	fmt.Fprintf(&b, "- Model: %s\n", h.Model)
	fmt.Fprintf(&b, "- Temperature: %g\n", temp)
	b.WriteString("- Output: Structured fields (JSON requested), best-effort parsing\n\n")
	b.WriteString("Note: This log intentionally avoids dumping raw JSON prompts/outputs.\n")
	b.WriteString("It records the rationale, high-level prompt intent, and a short summary of results.\n\n")
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return nil, fmt.Errorf("write audit header: %w", err)
	}
	return l, nil
}

// Record appends one numbered entry.
func (l *Log) Record(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counter++

	var b strings.Builder
	fmt.Fprintf(&b, "%d. Ambiguity Resolution\n", l.counter)
	fmt.Fprintf(&b, "Timestamp: %s\n\n", l.now().Format("2006-01-02T15:04:05"))

	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Row ID: %s\n", e.RowID)
	fields := "none"
	if len(e.AmbiguousFields) > 0 {
		fields = strings.Join(e.AmbiguousFields, ", ")
	}
	fmt.Fprintf(&b, "- Ambiguous fields: %s\n", fields)
	b.WriteString("- Row glimpse:\n")
	for _, kv := range e.RowGlimpse {
		fmt.Fprintf(&b, "  - %s: %s\n", kv.Key, kv.Value)
	}
	b.WriteString("\n")

	b.WriteString("Prompts:\n")
	b.WriteString("- Instruction: Resolve ambiguous inventory fields for IPAM/DNS normalization.\n")
	b.WriteString("- Ask: Fill missing fields conservatively (prefer null/unknown when uncertain).\n\n")

	b.WriteString("Constraints:\n")
	fmt.Fprintf(&b, "- Temperature: %s\n", e.Temperature)
	fmt.Fprintf(&b, "- Allowed device types: %s\n", strings.Join(e.AllowedTypes, ", "))
	b.WriteString("- Output must be structured: JSON object with specific keys.\n\n")

	b.WriteString("Expected Output Format:\n")
	fmt.Fprintf(&b, "- Keys: %s\n\n", strings.Join(e.ExpectedKeys, ", "))

	b.WriteString("Rationale:\n")
	fmt.Fprintf(&b, "- %s\n\n", e.Rationale)

	b.WriteString("Response (parsed fields):\n")
	if len(e.ResponseSummary) > 0 {
		for _, kv := range e.ResponseSummary {
			fmt.Fprintf(&b, "- %s: %s\n", kv.Key, kv.Value)
		}
	} else {
		b.WriteString("- (no usable structured fields extracted)\n")
	}

	if e.RawExcerpt != "" {
		b.WriteString("\nResponse (excerpt):\n")
		fmt.Fprintf(&b, "- %s\n", e.RawExcerpt)
	}

	b.WriteString("\n---\n\n")
	if _, err := l.f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// Clip caps a value for audit readability: newlines become spaces and long
// values are truncated with an ellipsis.
func Clip(s string, n int) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
