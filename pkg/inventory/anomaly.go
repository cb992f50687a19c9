package inventory

// Issue types form a closed enumeration; consumers switch on them.
const (
	IssueInvalidIP         = "invalid_ip"
	IssueInvalidMAC        = "invalid_mac"
	IssueInvalidHostname   = "invalid_hostname"
	IssueFQDNInconsistent  = "fqdn_inconsistent"
	IssueTeamInOwner       = "team_embedded_in_owner"
	IssueUnknownDeviceType = "unknown_device_type"
)

// Anomaly is one detected data-quality issue. Values are produced once and
// never mutated.
type Anomaly struct {
	RowID             RowID             `json:"row_id"`
	Fields            []string          `json:"fields"`
	IssueType         string            `json:"issue_type"`
	RecommendedAction string            `json:"recommended_action"`
	Details           map[string]string `json:"details,omitempty"`
}

// DetectAnomalies evaluates the fixed rule set, in order, against a fully
// normalized record. Several rules can fire for one row.
func DetectAnomalies(rec NormalizedRecord) []Anomaly {
	var issues []Anomaly
	add := func(fields []string, issueType, action string, details map[string]string) {
		issues = append(issues, Anomaly{
			RowID:             rec.SourceRowID,
			Fields:            fields,
			IssueType:         issueType,
			RecommendedAction: action,
			Details:           details,
		})
	}

	if rec.IP != "" && !rec.IPValid {
		add([]string{"ip"}, IssueInvalidIP,
			"Correct or remove invalid IP address.",
			map[string]string{"ip": rec.IP})
	}
	if rec.MAC != "" && !rec.MACValid {
		add([]string{"mac"}, IssueInvalidMAC,
			"Fix MAC formatting.",
			map[string]string{"mac": rec.MAC})
	}
	if rec.Hostname != "" && !rec.HostnameValid {
		add([]string{"hostname"}, IssueInvalidHostname,
			"Use RFC1123 hostname label (a-z0-9-).",
			map[string]string{"hostname": rec.Hostname})
	}
	if rec.FQDN != "" && !rec.FQDNConsistent {
		add([]string{"fqdn", "hostname"}, IssueFQDNInconsistent,
			"Ensure FQDN starts with hostname + '.'.",
			map[string]string{"fqdn": rec.FQDN, "hostname": rec.Hostname})
	}
	if rec.Owner != "" && rec.OwnerTeam == "" && TeamKeywordIn(rec.Owner) {
		add([]string{"owner", "owner_team"}, IssueTeamInOwner,
			"Move team token into owner_team and clean owner field.",
			map[string]string{"owner": rec.Owner})
	}
	if rec.DeviceType == "" {
		add([]string{"device_type"}, IssueUnknownDeviceType,
			"Provide explicit device_type or allow LLM enrichment.", nil)
	}
	return issues
}
