package inventory

import (
	"regexp"
	"strings"
)

// EmailRe matches the first email-like substring in free text. Exported for
// the resolution layer, which applies the same grammar to untrusted input.
var EmailRe = regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`)

var (
	parenGroupRe = regexp.MustCompile(`\(([^)]*)\)`)
	separatorRe  = regexp.MustCompile(`[\-\/,|]+`)
	spaceRunRe   = regexp.MustCompile(`\s{2,}`)
)

// ExtractOwner pulls an owner name, email and team out of a free-text owner
// cell. Extraction order: email first, then a parenthetical team, then a
// bare team keyword, then separator cleanup. If the leftover text is itself
// nothing but a team keyword it becomes the team, not the owner.
func ExtractOwner(raw string, steps *Steps) (name, email, team string) {
	steps.Add("owner_processed")
	s := CleanString(raw)
	if s == "" {
		steps.Add("owner_parsing_completed")
		return "", "", ""
	}

	email = strings.ToLower(EmailRe.FindString(s))
	text := EmailRe.ReplaceAllString(s, " ")
	text = strings.TrimSpace(spaceRunRe.ReplaceAllString(text, " "))

	if m := parenGroupRe.FindStringSubmatch(text); m != nil {
		if cand := strings.ToLower(strings.TrimSpace(m[1])); cand != "" {
			team = CanonicalTeam(cand)
		}
		// The parenthetical is consumed even when it held no team.
		text = parenGroupRe.ReplaceAllString(text, " ")
	}

	if team == "" {
		if m := teamWordRe.FindStringSubmatch(text); m != nil {
			team = CanonicalTeam(strings.ToLower(m[1]))
			tokenRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(m[1]) + `\b`)
			text = tokenRe.ReplaceAllString(text, " ")
		}
	}

	text = separatorRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(spaceRunRe.ReplaceAllString(text, " "))

	if text != "" && teamWordFullRe.MatchString(text) {
		if team == "" {
			team = CanonicalTeam(strings.ToLower(text))
		}
		text = ""
	}

	steps.Add("owner_parsing_completed")
	return text, email, team
}
