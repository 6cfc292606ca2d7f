package casefile

import (
	"regexp"
	"strings"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	underscoreRun       = regexp.MustCompile(`_+`)
)

// SanitizeID derives a stable case id from a source filename.
func SanitizeID(filename string) string {
	name := strings.TrimSuffix(filename, ".json")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = underscoreRun.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	return strings.ToLower(name)
}

// ID prefers an explicit case_info.id over the sanitized filename.
func (c Case) ID(filename string) string {
	if c.CaseInfo != nil && c.CaseInfo.ID != "" {
		return c.CaseInfo.ID
	}
	return SanitizeID(filename)
}
