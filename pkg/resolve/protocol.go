package resolve

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ipamops/invnorm/pkg/audit"
	"github.com/ipamops/invnorm/pkg/inventory"
)

const (
	// ConfidenceFloor is the device-type confidence below which a row is
	// considered ambiguous.
	ConfidenceFloor = 0.40

	glimpseCap = 200
	excerptCap = 220
)

// Protocol governs one run's ambiguity resolution: trigger evaluation,
// request construction, the capability call, response validation, and the
// non-overwrite merge. Every attempt writes exactly one audit entry.
type Protocol struct {
	capability Capability
	auditLog   *audit.Log
	logger     *zap.SugaredLogger
	timeout    time.Duration
}

// NewProtocol wires the protocol to a capability and the audit sink.
func NewProtocol(capability Capability, auditLog *audit.Log, logger *zap.SugaredLogger, timeout time.Duration) *Protocol {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Protocol{capability: capability, auditLog: auditLog, logger: logger, timeout: timeout}
}

// triggers evaluates the two independent ambiguity conditions.
func triggers(rec inventory.NormalizedRecord) (reasons, fields []string) {
	if rec.DeviceType == "" || rec.DeviceTypeConfidence < ConfidenceFloor {
		reasons = append(reasons, "device_type ambiguous (empty or low confidence)")
		fields = append(fields, "device_type")
	}
	if rec.Owner == "" || rec.OwnerTeam == "" {
		reasons = append(reasons, "owner info ambiguous (missing owner name and/or team)")
		fields = append(fields, "owner/owner_team")
	}
	return reasons, fields
}

// Apply runs the full resolution attempt for one row. Faults never
// propagate into the row outcome: any capability failure degrades to "no
// update" and the returned error reports only audit-sink trouble.
func (p *Protocol) Apply(ctx context.Context, raw inventory.RawRecord, rec *inventory.NormalizedRecord, steps *inventory.Steps) error {
	reasons, fields := triggers(*rec)
	if len(reasons) == 0 {
		return nil
	}
	rationale := strings.Join(reasons, " | ")
	req := Request{
		RowID:           string(rec.SourceRowID),
		Rationale:       rationale,
		AmbiguousFields: fields,
		Context: RequestContext{
			RowID:                string(rec.SourceRowID),
			RawOwner:             inventory.CleanString(raw.First(inventory.OwnerColumns...)),
			RawDeviceType:        inventory.CleanString(raw.First(inventory.DeviceColumns...)),
			RawNotes:             inventory.CleanString(raw.First("notes")),
			NormalizedOwner:      rec.Owner,
			NormalizedOwnerTeam:  rec.OwnerTeam,
			NormalizedDeviceType: rec.DeviceType,
		},
		Constraints: Constraints{
			Temperature:        "<=0.2",
			AllowedDeviceTypes: inventory.DeviceTypeList(),
			Output:             "json_object_only",
			NoHallucination:    true,
		},
	}
	entry := audit.Entry{
		RowID:           req.RowID,
		Rationale:       rationale,
		AmbiguousFields: fields,
		RowGlimpse:      rowGlimpse(raw),
		Temperature:     req.Constraints.Temperature,
		AllowedTypes:    req.Constraints.AllowedDeviceTypes,
		ExpectedKeys:    ExpectedKeys,
	}

	if !p.capability.Available() {
		reason := "LLM unavailable (model missing/unloadable)"
		if d, ok := p.capability.(Disabled); ok {
			reason = d.SkipReason()
		}
		steps.Add("llm_no_update")
		entry.ResponseSummary = []audit.Field{
			{Key: "status", Value: "skipped"},
			{Key: "reason", Value: reason},
		}
		return p.auditLog.Record(entry)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	text, err := p.capability.Complete(callCtx, req)
	if err != nil {
		// Fail open: a faulting call means no update for this row.
		if p.logger != nil {
			p.logger.Debugf("resolution call failed for row %s: %v", req.RowID, err)
		}
		steps.Add("llm_no_update")
		entry.ResponseSummary = []audit.Field{
			{Key: "status", Value: "skipped"},
			{Key: "reason", Value: audit.Clip("resolution call failed: "+err.Error(), excerptCap)},
		}
		return p.auditLog.Record(entry)
	}

	var updates Updates
	parseState := "ok_json"
	obj, ok := ExtractJSON(text)
	if !ok {
		parseState = "failed_json"
		entry.RawExcerpt = audit.Clip(text, excerptCap)
	} else {
		updates = ValidateResponse(obj)
	}

	merge(rec, steps, updates)

	entry.ResponseSummary = summarize(updates, parseState)
	return p.auditLog.Record(entry)
}

// merge applies accepted updates under the non-overwrite invariant: a field
// changes only when its current value is empty/zero.
func merge(rec *inventory.NormalizedRecord, steps *inventory.Steps, u Updates) {
	if u.DeviceType.Set && rec.DeviceType == "" {
		rec.DeviceType = u.DeviceType.Value
		steps.Add("llm_device_type_applied")
	}
	if u.DeviceTypeConfidence.Set && rec.DeviceTypeConfidence == 0.0 {
		rec.DeviceTypeConfidence = u.DeviceTypeConfidence.Value
		steps.Add("llm_device_type_confidence_applied")
	}
	if u.Owner.Set && rec.Owner == "" {
		rec.Owner = u.Owner.Value
		steps.Add("llm_owner_applied")
	}
	if u.OwnerEmail.Set && rec.OwnerEmail == "" {
		rec.OwnerEmail = u.OwnerEmail.Value
		steps.Add("llm_owner_email_applied")
	}
	if u.OwnerTeam.Set && rec.OwnerTeam == "" {
		rec.OwnerTeam = u.OwnerTeam.Value
		steps.Add("llm_owner_team_applied")
	}
	if u.Empty() {
		steps.Add("llm_no_update")
	}
}

// summarize lists the accepted fields for the audit entry.
func summarize(u Updates, parseState string) []audit.Field {
	status := "no_update"
	if !u.Empty() {
		status = "ok"
	}
	out := []audit.Field{{Key: "status", Value: status}}
	if u.DeviceType.Set {
		out = append(out, audit.Field{Key: "device_type", Value: u.DeviceType.Value})
	}
	if u.DeviceTypeConfidence.Set {
		out = append(out, audit.Field{Key: "device_type_confidence", Value: strconv.FormatFloat(u.DeviceTypeConfidence.Value, 'f', -1, 64)})
	}
	if u.Owner.Set {
		out = append(out, audit.Field{Key: "owner", Value: u.Owner.Value})
	}
	if u.OwnerEmail.Set {
		out = append(out, audit.Field{Key: "owner_email", Value: u.OwnerEmail.Value})
	}
	if u.OwnerTeam.Set {
		out = append(out, audit.Field{Key: "owner_team", Value: u.OwnerTeam.Value})
	}
	out = append(out, audit.Field{Key: "parse", Value: parseState})
	return out
}

// rowGlimpse builds the redacted raw-value snapshot for the audit entry.
func rowGlimpse(raw inventory.RawRecord) []audit.Field {
	pick := func(columns ...string) string {
		return audit.Clip(inventory.CleanString(raw.First(columns...)), glimpseCap)
	}
	return []audit.Field{
		{Key: "ip", Value: pick(inventory.IPColumns...)},
		{Key: "hostname", Value: pick(inventory.HostnameColumns...)},
		{Key: "fqdn", Value: pick(inventory.FQDNColumns...)},
		{Key: "owner", Value: pick(inventory.OwnerColumns...)},
		{Key: "device_type", Value: pick(inventory.DeviceColumns...)},
		{Key: "site", Value: pick(inventory.SiteColumns...)},
		{Key: "notes", Value: pick("notes")},
	}
}
