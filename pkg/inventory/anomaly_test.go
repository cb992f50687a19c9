package inventory

import "testing"

func TestDetectAnomaliesOrder(t *testing.T) {
	rec := NormalizedRecord{
		SourceRowID: "5",
		IP:          "999.1.1.1",
		MAC:         "aabb",
		Hostname:    "bad_host!",
		FQDN:        "elsewhere.example.com",
		Owner:       "ops crew",
		// OwnerTeam intentionally empty, DeviceType empty.
	}
	got := DetectAnomalies(rec)
	want := []string{
		IssueInvalidIP,
		IssueInvalidMAC,
		IssueInvalidHostname,
		IssueFQDNInconsistent,
		IssueTeamInOwner,
		IssueUnknownDeviceType,
	}
	if len(got) != len(want) {
		t.Fatalf("detected %d anomalies want %d: %+v", len(got), len(want), got)
	}
	for i, issue := range want {
		if got[i].IssueType != issue {
			t.Fatalf("anomaly %d is %s want %s", i, got[i].IssueType, issue)
		}
		if got[i].RowID != "5" {
			t.Fatalf("anomaly %d row id %s", i, got[i].RowID)
		}
	}
}

func TestDetectAnomaliesCleanRow(t *testing.T) {
	rec := NormalizedRecord{
		SourceRowID:          "1",
		IP:                   "192.168.1.10",
		IPValid:              true,
		Hostname:             "web01",
		HostnameValid:        true,
		FQDN:                 "web01.example.com",
		FQDNConsistent:       true,
		MAC:                  "aa:bb:cc:dd:ee:ff",
		MACValid:             true,
		Owner:                "Jane Doe",
		OwnerTeam:            "sec",
		DeviceType:           "server",
		DeviceTypeConfidence: 1,
	}
	if got := DetectAnomalies(rec); len(got) != 0 {
		t.Fatalf("clean row produced anomalies: %+v", got)
	}
}

func TestDetectAnomaliesEmptyFieldsStaySilent(t *testing.T) {
	// Invalid-field rules fire only when a value is present.
	rec := NormalizedRecord{SourceRowID: "2", DeviceType: "server"}
	if got := DetectAnomalies(rec); len(got) != 0 {
		t.Fatalf("empty row produced anomalies: %+v", got)
	}
}

func TestDetectAnomaliesDetails(t *testing.T) {
	rec := NormalizedRecord{SourceRowID: "9", IP: "999.1.1.1"}
	got := DetectAnomalies(rec)
	if len(got) != 2 {
		t.Fatalf("want invalid_ip and unknown_device_type, got %+v", got)
	}
	if got[0].Details["ip"] != "999.1.1.1" {
		t.Fatalf("invalid_ip details %v", got[0].Details)
	}
	if got[1].Details != nil {
		t.Fatalf("unknown_device_type must carry no details, got %v", got[1].Details)
	}
}

func TestDetectAnomaliesTeamInOwner(t *testing.T) {
	rec := NormalizedRecord{SourceRowID: "3", Owner: "devops crew", DeviceType: "server"}
	got := DetectAnomalies(rec)
	if len(got) != 1 || got[0].IssueType != IssueTeamInOwner {
		t.Fatalf("got %+v", got)
	}
	withTeam := rec
	withTeam.OwnerTeam = "devops"
	if got := DetectAnomalies(withTeam); len(got) != 0 {
		t.Fatalf("team already extracted, got %+v", got)
	}
}
