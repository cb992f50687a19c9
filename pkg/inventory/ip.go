package inventory

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// IPResult carries the outcome of IP normalization. On validation failure
// Addr preserves the original trimmed input and the derived fields stay
// empty.
type IPResult struct {
	Addr       string
	Valid      bool
	Version    string
	SubnetCIDR string
	ReversePtr string
}

// NormalizeIP detects the address family, canonicalizes the address and
// derives subnet and reverse-pointer data.
func NormalizeIP(raw string, steps *Steps) IPResult {
	s := CleanString(raw)
	if s == "" {
		steps.Add("ip_validation_failed")
		return IPResult{}
	}
	if strings.Contains(s, ":") {
		return normalizeIPv6(s, steps)
	}
	return normalizeIPv4(s, steps)
}

func normalizeIPv6(s string, steps *Steps) IPResult {
	// Zone suffixes (fe80::1%eth0) carry no meaning for inventory data.
	bare := s
	if idx := strings.Index(bare, "%"); idx >= 0 {
		bare = bare[:idx]
	}
	addr, err := netip.ParseAddr(bare)
	if err != nil || !addr.Is6() {
		steps.Add("ip_validation_failed")
		return IPResult{Addr: s}
	}
	steps.Add("ip_validated_6", "ip_normalized")
	subnet := ""
	if addr.IsLinkLocalUnicast() {
		subnet = "fe80::/64"
		steps.Add("subnet_cidr_generated")
	}
	return IPResult{
		Addr:       addr.String(),
		Valid:      true,
		Version:    "6",
		SubnetCIDR: subnet,
		ReversePtr: reversePtr6(addr),
	}
}

func normalizeIPv4(s string, steps *Steps) IPResult {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		steps.Add("ip_validation_failed")
		return IPResult{Addr: s}
	}
	octets := make([]string, 0, 4)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !isDigits(p) {
			steps.Add("ip_validation_failed")
			return IPResult{Addr: s}
		}
		v, err := strconv.Atoi(p)
		if err != nil || v > 255 {
			steps.Add("ip_validation_failed")
			return IPResult{Addr: s}
		}
		octets = append(octets, strconv.Itoa(v))
	}
	canonical := strings.Join(octets, ".")
	addr, err := netip.ParseAddr(canonical)
	if err != nil {
		steps.Add("ip_validation_failed")
		return IPResult{Addr: s}
	}
	steps.Add("ip_validated_4", "ip_normalized")

	// Classification precedence: loopback, link-local, RFC1918 private.
	subnet := ""
	switch {
	case addr.IsLoopback():
		subnet = "127.0.0.0/8"
	case addr.IsLinkLocalUnicast():
		subnet = "169.254.0.0/16"
	case addr.IsPrivate():
		subnet = canonical[:strings.LastIndex(canonical, ".")] + ".0/24"
	}
	if subnet != "" {
		steps.Add("subnet_cidr_generated")
	}
	return IPResult{
		Addr:       canonical,
		Valid:      true,
		Version:    "4",
		SubnetCIDR: subnet,
		ReversePtr: reversePtr4(octets),
	}
}

func reversePtr4(octets []string) string {
	return fmt.Sprintf("%s.%s.%s.%s.in-addr.arpa", octets[3], octets[2], octets[1], octets[0])
}

func reversePtr6(addr netip.Addr) string {
	const hexdigits = "0123456789abcdef"
	raw := addr.As16()
	var b strings.Builder
	b.Grow(len(raw)*4 + len("ip6.arpa"))
	for i := len(raw) - 1; i >= 0; i-- {
		b.WriteByte(hexdigits[raw[i]&0xf])
		b.WriteByte('.')
		b.WriteByte(hexdigits[raw[i]>>4])
		b.WriteByte('.')
	}
	b.WriteString("ip6.arpa")
	return b.String()
}
