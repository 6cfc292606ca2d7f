package taxonomy

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	dashRun       = regexp.MustCompile(`-+`)
)

// Slug turns a tag label into a file-name-safe key:
// "AI / Automated Decision-Making" becomes "ai-automated-decision-making".
func Slug(label string) string {
	slug := strings.ToLower(label)
	slug = strings.ReplaceAll(slug, "/", "-")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = dashRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
