package inventory

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeIPv4(t *testing.T) {
	cases := map[string]IPResult{
		"192.168.1.10": {Addr: "192.168.1.10", Valid: true, Version: "4", SubnetCIDR: "192.168.1.0/24", ReversePtr: "10.1.168.192.in-addr.arpa"},
		"10.0.0.5":     {Addr: "10.0.0.5", Valid: true, Version: "4", SubnetCIDR: "10.0.0.0/24", ReversePtr: "5.0.0.10.in-addr.arpa"},
		"127.0.0.1":    {Addr: "127.0.0.1", Valid: true, Version: "4", SubnetCIDR: "127.0.0.0/8", ReversePtr: "1.0.0.127.in-addr.arpa"},
		"169.254.7.9":  {Addr: "169.254.7.9", Valid: true, Version: "4", SubnetCIDR: "169.254.0.0/16", ReversePtr: "9.7.254.169.in-addr.arpa"},
		"8.8.8.8":      {Addr: "8.8.8.8", Valid: true, Version: "4", SubnetCIDR: "", ReversePtr: "8.8.8.8.in-addr.arpa"},
		"010.0.0.001":  {Addr: "10.0.0.1", Valid: true, Version: "4", SubnetCIDR: "10.0.0.0/24", ReversePtr: "1.0.0.10.in-addr.arpa"},
		"999.1.1.1":    {Addr: "999.1.1.1"},
		"1.2.3":        {Addr: "1.2.3"},
		"1.2.3.4.5":    {Addr: "1.2.3.4.5"},
		"+1.2.3.4":     {Addr: "+1.2.3.4"},
		"1.2.3.x":      {Addr: "1.2.3.x"},
		"":             {},
		"n/a":          {},
	}
	for raw, want := range cases {
		var steps Steps
		got := NormalizeIP(raw, &steps)
		if got != want {
			t.Fatalf("NormalizeIP(%q)=%+v want %+v", raw, got, want)
		}
	}
}

func TestNormalizeIPv4Idempotent(t *testing.T) {
	for _, raw := range []string{"192.168.1.10", "010.2.3.4", " 172.16.0.9 "} {
		var steps Steps
		first := NormalizeIP(raw, &steps)
		if !first.Valid {
			t.Fatalf("NormalizeIP(%q) unexpectedly invalid", raw)
		}
		var again Steps
		second := NormalizeIP(first.Addr, &again)
		if !second.Valid || second.Addr != first.Addr {
			t.Fatalf("NormalizeIP not idempotent for %q: %+v then %+v", raw, first, second)
		}
	}
}

func TestNormalizeIPv4Steps(t *testing.T) {
	var steps Steps
	NormalizeIP("192.168.1.10", &steps)
	want := Steps{"ip_validated_4", "ip_normalized", "subnet_cidr_generated"}
	if !reflect.DeepEqual(steps, want) {
		t.Fatalf("steps=%v want %v", steps, want)
	}

	var failed Steps
	NormalizeIP("999.1.1.1", &failed)
	if !reflect.DeepEqual(failed, Steps{"ip_validation_failed"}) {
		t.Fatalf("failure steps=%v", failed)
	}
}

func TestNormalizeIPv6(t *testing.T) {
	var steps Steps
	got := NormalizeIP("2001:0db8:0000:0000:0000:0000:0000:0001", &steps)
	if !got.Valid || got.Addr != "2001:db8::1" || got.Version != "6" || got.SubnetCIDR != "" {
		t.Fatalf("compressed form wrong: %+v", got)
	}
	if !strings.HasSuffix(got.ReversePtr, "ip6.arpa") {
		t.Fatalf("reverse ptr %q", got.ReversePtr)
	}

	var loop Steps
	lo := NormalizeIP("::1", &loop)
	wantPtr := strings.Repeat("1.", 1) + strings.Repeat("0.", 31) + "ip6.arpa"
	if lo.ReversePtr != wantPtr {
		t.Fatalf("loopback reverse ptr %q want %q", lo.ReversePtr, wantPtr)
	}
}

func TestNormalizeIPv6LinkLocal(t *testing.T) {
	var steps Steps
	got := NormalizeIP("fe80::1%eth0", &steps)
	if !got.Valid || got.Addr != "fe80::1" || got.SubnetCIDR != "fe80::/64" {
		t.Fatalf("link-local wrong: %+v", got)
	}
	want := Steps{"ip_validated_6", "ip_normalized", "subnet_cidr_generated"}
	if !reflect.DeepEqual(steps, want) {
		t.Fatalf("steps=%v want %v", steps, want)
	}
}

func TestNormalizeIPv6Invalid(t *testing.T) {
	var steps Steps
	got := NormalizeIP("fe80:::1", &steps)
	if got.Valid || got.Addr != "fe80:::1" || got.Version != "" {
		t.Fatalf("invalid v6 wrong: %+v", got)
	}
}
