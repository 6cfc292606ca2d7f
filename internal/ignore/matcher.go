package ignore

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileName holds per-corpus exclusion rules, one glob per line.
const FileName = ".orderlensignore"

type rule struct {
	pattern string
	negated bool
}

// Matcher decides which corpus entries are not case files. Rules are
// globs over the base name with "last rule wins" semantics; a leading "!"
// re-includes a name an earlier rule excluded.
type Matcher struct {
	rules []rule
}

// NewMatcher prepends the default excludes to userRules. Defaults cover
// interrupted atomic writes, classification manifests, and dotfiles.
func NewMatcher(userRules []string) *Matcher {
	defaultRules := []string{
		"*.tmp",
		".*",
		"classify-result-*.json",
		"manifest.json",
	}

	all := make([]string, 0, len(defaultRules)+len(userRules))
	all = append(all, defaultRules...)
	all = append(all, userRules...)

	rules := make([]rule, 0, len(all))
	for _, line := range all {
		if parsed, ok := parseRule(line); ok {
			rules = append(rules, parsed)
		}
	}
	return &Matcher{rules: rules}
}

// Load reads dir/.orderlensignore when it exists. A missing file yields the
// default matcher.
func Load(dir string) (*Matcher, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return NewMatcher(nil), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return NewMatcher(lines), nil
}

// Ignored reports whether the entry named name should be skipped.
func (m *Matcher) Ignored(name string) bool {
	if m == nil {
		return false
	}
	base := path.Base(filepath.ToSlash(name))
	ignored := false
	for _, r := range m.rules {
		if ok, err := path.Match(r.pattern, base); err == nil && ok {
			ignored = !r.negated
		}
	}
	return ignored
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}
	parsed := rule{}
	if strings.HasPrefix(line, "!") {
		parsed.negated = true
		line = strings.TrimPrefix(line, "!")
	}
	line = strings.Trim(filepath.ToSlash(line), "/")
	if line == "" {
		return rule{}, false
	}
	if _, err := path.Match(line, ""); err != nil {
		return rule{}, false
	}
	parsed.pattern = line
	return parsed, true
}
