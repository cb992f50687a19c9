package inventory

import (
	"regexp"
	"sort"
	"strings"
)

// teamAliases folds free-text team spellings to one canonical value.
var teamAliases = map[string]string{
	"ops":        "ops",
	"operations": "ops",
	"sec":        "sec",
	"security":   "sec",
	"infosec":    "sec",
	"platform":   "platform",
	"plat":       "platform",
	"facilities": "facilities",
	"facility":   "facilities",
	"it":         "it",
	"netops":     "netops",
	"devops":     "devops",
	"sre":        "sre",
	"dba":        "dba",
}

// CanonicalTeam maps a team token through the alias table. Unknown tokens
// pass through verbatim.
func CanonicalTeam(token string) string {
	if canonical, ok := teamAliases[strings.ToLower(token)]; ok {
		return canonical
	}
	return token
}

// AllowedDeviceTypes is the closed device-type enumeration.
var AllowedDeviceTypes = map[string]bool{
	"server":      true,
	"switch":      true,
	"router":      true,
	"firewall":    true,
	"laptop":      true,
	"desktop":     true,
	"printer":     true,
	"wireless-ap": true,
	"camera":      true,
	"iot":         true,
	"unknown":     true,
}

// DeviceTypeList returns the enumeration sorted for prompts and logs.
func DeviceTypeList() []string {
	out := make([]string, 0, len(AllowedDeviceTypes))
	for t := range AllowedDeviceTypes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// deviceTypeSynonyms is the exact-lookup table for raw device type values.
var deviceTypeSynonyms = map[string]string{
	"server":      "server",
	"srv":         "server",
	"switch":      "switch",
	"router":      "router",
	"firewall":    "firewall",
	"fw":          "firewall",
	"laptop":      "laptop",
	"desktop":     "desktop",
	"printer":     "printer",
	"ap":          "wireless-ap",
	"wireless-ap": "wireless-ap",
	"camera":      "camera",
	"iot":         "iot",
}

// Team keyword matchers. The alternation is built longest-first explicitly
// so that e.g. "netops" can never lose to "ops" on a partial token.
var (
	teamWordRe     *regexp.Regexp
	teamWordFullRe *regexp.Regexp
)

// TeamKeywordIn reports whether text still contains a recognizable team
// keyword as a whole word.
func TeamKeywordIn(text string) bool {
	return teamWordRe.MatchString(text)
}

func init() {
	keys := make([]string, 0, len(teamAliases))
	for k := range teamAliases {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	alternation := strings.Join(keys, "|")
	teamWordRe = regexp.MustCompile(`(?i)\b(` + alternation + `)\b`)
	teamWordFullRe = regexp.MustCompile(`(?i)^(?:` + alternation + `)$`)
}
