package resolve

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ipamops/invnorm/pkg/inventory"
)

var emailFullRe = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// ExtractJSON pulls a JSON object out of an unstructured blob: direct parse
// first, else the first brace-balanced {...} substring. Anything else is a
// parse failure.
func ExtractJSON(text string) (map[string]any, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj, true
	}
	candidate, ok := firstBalancedObject(text)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// firstBalancedObject scans for the first balanced {...} region, honoring
// string literals and escapes so braces inside values do not miscount.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// StringField is a per-field validation outcome for string-valued updates.
type StringField struct {
	Value string
	Set   bool
}

// NumberField is a per-field validation outcome for numeric updates.
type NumberField struct {
	Value float64
	Set   bool
}

// Updates holds the individually accepted response fields. Rejected fields
// are simply absent; one bad value never poisons the others.
type Updates struct {
	DeviceType           StringField
	DeviceTypeConfidence NumberField
	Owner                StringField
	OwnerEmail           StringField
	OwnerTeam            StringField
}

// Empty reports whether no field was accepted.
func (u Updates) Empty() bool {
	return !u.DeviceType.Set && !u.DeviceTypeConfidence.Set &&
		!u.Owner.Set && !u.OwnerEmail.Set && !u.OwnerTeam.Set
}

// ValidateResponse checks each expected key independently against its
// grammar. The input mapping is untrusted.
func ValidateResponse(obj map[string]any) Updates {
	var u Updates

	if dt, ok := obj["device_type"].(string); ok {
		dt = strings.ToLower(strings.TrimSpace(dt))
		if dt != "" && inventory.AllowedDeviceTypes[dt] {
			u.DeviceType = StringField{Value: dt, Set: true}
		}
	}
	if conf, ok := obj["device_type_confidence"].(float64); ok {
		if conf >= 0.0 && conf <= 1.0 {
			u.DeviceTypeConfidence = NumberField{Value: conf, Set: true}
		}
	}
	if owner, ok := obj["owner"].(string); ok {
		if owner = strings.TrimSpace(owner); owner != "" {
			u.Owner = StringField{Value: owner, Set: true}
		}
	}
	if email, ok := obj["owner_email"].(string); ok {
		if email = strings.TrimSpace(email); emailFullRe.MatchString(email) {
			u.OwnerEmail = StringField{Value: strings.ToLower(email), Set: true}
		}
	}
	if team, ok := obj["owner_team"].(string); ok {
		if team = strings.TrimSpace(team); team != "" {
			u.OwnerTeam = StringField{Value: inventory.CanonicalTeam(team), Set: true}
		}
	}
	return u
}
