package inventory

import (
	"regexp"
	"strconv"
	"strings"
)

// The substitution passes run in a fixed order: whitespace/underscore to
// hyphen, then disallowed characters to hyphen, then hyphen-run collapse
// and trim. Reordering them changes the result.
var (
	wsUnderscoreRe = regexp.MustCompile(`[\s_]+`)
	nonLabelRe     = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRunRe    = regexp.MustCompile(`-{2,}`)
	hostLabelRe    = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
)

// NormalizeHostname lower-cases and rewrites the raw value into an RFC1123
// label candidate, then validates it against the label grammar.
func NormalizeHostname(raw string, steps *Steps) (string, bool) {
	s := strings.ToLower(CleanString(raw))
	if s == "" {
		steps.Add("hostname_validation_false")
		return "", false
	}
	s = wsUnderscoreRe.ReplaceAllString(s, "-")
	s = nonLabelRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	steps.Add("hostname_normalized")

	valid := hostLabelRe.MatchString(s) && len(s) <= 63
	steps.Add("hostname_validation_" + strconv.FormatBool(valid))
	return s, valid
}

// NormalizeFQDN lower-cases the raw value, strips trailing dots and applies
// the whitespace/underscore substitution. Consistency requires the fqdn to
// start with the already-normalized hostname plus a dot.
func NormalizeFQDN(raw, hostname string, steps *Steps) (string, bool) {
	fqdn := strings.TrimRight(strings.ToLower(CleanString(raw)), ".")
	fqdn = wsUnderscoreRe.ReplaceAllString(fqdn, "-")
	steps.Add("fqdn_normalized")

	consistent := hostname != "" && fqdn != "" && strings.HasPrefix(fqdn, hostname+".")
	steps.Add("fqdn_consistency_check_" + strconv.FormatBool(consistent))
	return fqdn, consistent
}
