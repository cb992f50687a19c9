package inventory

import "testing"

func TestNormalizeDeviceType(t *testing.T) {
	cases := map[string]struct {
		dtype      string
		confidence float64
	}{
		"srv":         {"server", 1.0},
		"SRV":         {"server", 1.0},
		"ap":          {"wireless-ap", 1.0},
		"fw":          {"firewall", 1.0},
		"wireless-ap": {"wireless-ap", 1.0},
		"mainframe":   {"", 0.0},
		"":            {"", 0.0},
		"null":        {"", 0.0},
	}
	for raw, want := range cases {
		var steps Steps
		dtype, confidence := NormalizeDeviceType(raw, &steps)
		if dtype != want.dtype || confidence != want.confidence {
			t.Fatalf("NormalizeDeviceType(%q)=(%q,%v) want (%q,%v)", raw, dtype, confidence, want.dtype, want.confidence)
		}
	}
}

func TestNormalizeSite(t *testing.T) {
	cases := []struct {
		raw        string
		ipValid    bool
		site       string
		normalized bool
	}{
		{"dc1", false, "dc1", true},
		{" ams-01 ", true, "ams-01", true},
		{"", true, "", true},
		{"", false, "", false},
		{"nan", false, "", false},
	}
	for _, tc := range cases {
		var steps Steps
		site, normalized := NormalizeSite(tc.raw, tc.ipValid, &steps)
		if site != tc.site || normalized != tc.normalized {
			t.Fatalf("NormalizeSite(%q,%v)=(%q,%v) want (%q,%v)", tc.raw, tc.ipValid, site, normalized, tc.site, tc.normalized)
		}
	}
}

func TestExtractNotes(t *testing.T) {
	cases := []struct {
		row  RawRecord
		want string
	}{
		{RawRecord{"comment": "rack 4", "description": "spare"}, "rack 4"},
		{RawRecord{"notes": "", "memo": "decommission soon"}, "decommission soon"},
		{RawRecord{"notes": "nan", "desc": "ok"}, "ok"},
		{RawRecord{"hostname": "web01"}, ""},
	}
	for _, tc := range cases {
		if got := ExtractNotes(tc.row); got != tc.want {
			t.Fatalf("ExtractNotes(%v)=%q want %q", tc.row, got, tc.want)
		}
	}
}
