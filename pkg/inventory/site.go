package inventory

// NormalizeSite trims the raw site value. The normalized flag is also true
// when the row's IP validated, since a valid subnet can stand in for
// explicit site data.
func NormalizeSite(raw string, ipValid bool, steps *Steps) (string, bool) {
	steps.Add("site_processed")
	site := CleanString(raw)
	return site, site != "" || ipValid
}
