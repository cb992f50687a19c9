// Package resolve implements the ambiguity-resolution protocol: deciding
// when a row warrants external resolution, delegating to a resolution
// capability, and merging its untrusted answer without ever overwriting
// known-good data.
package resolve

import "context"

// Constraints is the bounds block sent with every resolution request.
type Constraints struct {
	Temperature        string   `json:"temperature"`
	AllowedDeviceTypes []string `json:"allowed_device_types"`
	Output             string   `json:"output"`
	NoHallucination    bool     `json:"no_hallucination"`
}

// RequestContext is the length-capped snapshot of raw and normalized values
// included for the capability and the audit trail.
type RequestContext struct {
	RowID                string `json:"row_id"`
	RawOwner             string `json:"raw_owner"`
	RawDeviceType        string `json:"raw_device_type"`
	RawNotes             string `json:"raw_notes"`
	NormalizedOwner      string `json:"normalized_owner"`
	NormalizedOwnerTeam  string `json:"normalized_owner_team"`
	NormalizedDeviceType string `json:"normalized_device_type"`
}

// Request asks the capability to fill specific ambiguous fields.
type Request struct {
	RowID           string
	Rationale       string
	AmbiguousFields []string
	Context         RequestContext
	Constraints     Constraints
}

// ExpectedKeys are the only response keys the protocol will consider.
var ExpectedKeys = []string{
	"device_type", "device_type_confidence",
	"owner", "owner_email", "owner_team",
	"reasoning_short",
}

// Capability is the external resolution collaborator. Its output is always
// treated as untrusted text.
type Capability interface {
	// Available reports whether the capability can serve calls this run.
	Available() bool
	// Complete returns the raw model output for one request.
	Complete(ctx context.Context, req Request) (string, error)
}

// Disabled is the null capability, selected once per run when no resolver
// backend is configured or reachable. Every ambiguous row still gets its
// audit entry, recording Reason.
type Disabled struct {
	Reason string
}

// Available always reports false.
func (Disabled) Available() bool { return false }

// Complete never runs; the protocol skips the call for an unavailable
// capability.
func (Disabled) Complete(ctx context.Context, req Request) (string, error) {
	return "", nil
}

// SkipReason explains the skip in the audit entry.
func (d Disabled) SkipReason() string {
	if d.Reason != "" {
		return d.Reason
	}
	return "LLM unavailable (model missing/unloadable)"
}
