package inventory

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawRecord is one input row mapped by header name. Columns the pipeline
// does not recognize stay in the map and are simply never read.
type RawRecord map[string]string

// First returns the first non-empty raw value among the given columns.
func (r RawRecord) First(columns ...string) string {
	for _, c := range columns {
		if v, ok := r[c]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Ordered alias lists per logical field. Matching is case-sensitive and
// exact, earlier names win.
var (
	IDColumns       = []string{"id", "row_id"}
	IPColumns       = []string{"ip", "ip_address", "address"}
	HostnameColumns = []string{"hostname", "host", "name"}
	FQDNColumns     = []string{"fqdn", "dns_name"}
	MACColumns      = []string{"mac", "mac_address", "ethernet"}
	OwnerColumns    = []string{"owner", "contact", "assigned_to"}
	DeviceColumns   = []string{"device_type", "type"}
	SiteColumns     = []string{"site", "location", "dc", "datacenter"}
	NoteColumns     = []string{"notes", "note", "comment", "comments", "description", "desc", "remarks", "memo"}
)

// CleanString trims a raw cell value and maps the usual null spellings
// ("nan", "null", "none", "n/a") to the empty string.
func CleanString(v string) string {
	s := strings.TrimSpace(v)
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "n/a":
		return ""
	}
	return s
}

// RowID identifies a source row. Numeric identifiers are kept in canonical
// decimal form and marshal as JSON numbers; anything else stays a string.
type RowID string

// NewRowID canonicalizes a raw identifier value.
func NewRowID(raw string) RowID {
	s := strings.TrimSpace(raw)
	if isDigits(s) {
		if n, err := strconv.Atoi(s); err == nil {
			return RowID(strconv.Itoa(n))
		}
	}
	return RowID(s)
}

// MarshalJSON emits numeric row ids as JSON numbers.
func (id RowID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if isDigits(s) {
		if _, err := strconv.Atoi(s); err == nil {
			return []byte(s), nil
		}
	}
	return strconv.AppendQuote(nil, s), nil
}

// UnmarshalJSON accepts both renderings.
func (id *RowID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RowID(s)
		return nil
	}
	*id = RowID(strings.TrimSpace(string(data)))
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Steps is the append-only transformation log for one row. Tags are never
// reordered or rewritten after being added.
type Steps []string

// Add appends step tags in order.
func (s *Steps) Add(tags ...string) {
	*s = append(*s, tags...)
}

// String renders the log as a single delimited value for the output schema.
func (s Steps) String() string {
	return strings.Join(s, "|")
}

// NormalizedRecord is the fixed output schema for one asset row. Missing
// values are empty strings, never an absent marker.
type NormalizedRecord struct {
	SourceRowID          RowID
	IP                   string
	IPValid              bool
	IPVersion            string
	SubnetCIDR           string
	Hostname             string
	HostnameValid        bool
	FQDN                 string
	FQDNConsistent       bool
	ReversePtr           string
	MAC                  string
	MACValid             bool
	Owner                string
	OwnerEmail           string
	OwnerTeam            string
	DeviceType           string
	DeviceTypeConfidence float64
	Site                 string
	SiteNormalized       bool
	NormalizationSteps   string
	Notes                string
}

// Columns is the ordered output header. Row values line up with it.
var Columns = []string{
	"source_row_id",
	"ip", "ip_valid", "ip_version", "subnet_cidr",
	"hostname", "hostname_valid",
	"fqdn", "fqdn_consistent", "reverse_ptr",
	"mac", "mac_valid",
	"owner", "owner_email", "owner_team",
	"device_type", "device_type_confidence",
	"site", "site_normalized",
	"normalization_steps",
	"notes",
}

// Row renders the record in Columns order.
func (r NormalizedRecord) Row() []string {
	return []string{
		string(r.SourceRowID),
		r.IP,
		strconv.FormatBool(r.IPValid),
		r.IPVersion,
		r.SubnetCIDR,
		r.Hostname,
		strconv.FormatBool(r.HostnameValid),
		r.FQDN,
		strconv.FormatBool(r.FQDNConsistent),
		r.ReversePtr,
		r.MAC,
		strconv.FormatBool(r.MACValid),
		r.Owner,
		r.OwnerEmail,
		r.OwnerTeam,
		r.DeviceType,
		strconv.FormatFloat(r.DeviceTypeConfidence, 'f', 2, 64),
		r.Site,
		strconv.FormatBool(r.SiteNormalized),
		r.NormalizationSteps,
		r.Notes,
	}
}
