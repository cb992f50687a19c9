package inventory

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	ciscoMACRe = regexp.MustCompile(`^[0-9a-f]{4}\.[0-9a-f]{4}\.[0-9a-f]{4}$`)
	nonHexRe   = regexp.MustCompile(`[^0-9a-f]`)
	macHexRe   = regexp.MustCompile(`^[0-9a-f]{12}$`)
)

// NormalizeMAC validates a MAC address in any common notation, including
// Cisco dot-grouped hex. The returned value is the original trimmed string,
// not the canonical hex form; downstream consumers rely on that contract.
func NormalizeMAC(raw string, steps *Steps) (string, bool) {
	mac := CleanString(raw)
	steps.Add("mac_processed")

	stripped := strings.ToLower(mac)
	if ciscoMACRe.MatchString(stripped) {
		stripped = strings.ReplaceAll(stripped, ".", "")
	}
	stripped = nonHexRe.ReplaceAllString(stripped, "")

	valid := macHexRe.MatchString(stripped)
	steps.Add("mac_validation_" + strconv.FormatBool(valid))
	return mac, valid
}
