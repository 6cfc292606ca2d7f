package pattern

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	dashes       = regexp.MustCompile(`[—–-]`)
	nonTitleChar = regexp.MustCompile(`[^a-z0-9\s]`)
	nonSlugChar  = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaces       = regexp.MustCompile(`\s+`)
	dashRun      = regexp.MustCompile(`-+`)
)

// NormalizeTitle folds a provision title to its grouping key: NFKC,
// lower case, dashes as spaces, punctuation dropped, whitespace collapsed.
func NormalizeTitle(title string) string {
	s := strings.ToLower(norm.NFKC.String(title))
	s = dashes.ReplaceAllString(s, " ")
	s = nonTitleChar.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Slug turns a pattern name into its URL-safe id.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = nonSlugChar.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "-")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func wordCount(normalized string) int {
	return len(strings.Fields(normalized))
}

// preview returns the first n runes of s.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
