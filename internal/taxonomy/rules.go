package taxonomy

import "strings"

// Text is the lower-cased search input a rule runs against.
type Text struct {
	// All is every searched field joined with single spaces.
	All string
	// Authority is the case's legal authority on its own; a few statute
	// abbreviations are only trusted when they appear there.
	Authority string
	// Category is a provision's category enum, empty for case-level text.
	Category string
}

// NewText lower-cases and joins fields into a Text.
func NewText(fields ...string) Text {
	return Text{All: strings.ToLower(strings.Join(fields, " "))}
}

// WithAuthority returns a copy of t that also carries the legal authority.
func (t Text) WithAuthority(authority string) Text {
	t.Authority = strings.ToLower(authority)
	return t
}

// WithCategory returns a copy of t that also carries a provision category.
func (t Text) WithCategory(category string) Text {
	t.Category = strings.ToLower(strings.TrimSpace(category))
	return t
}

type Predicate func(Text) bool

// Any matches when at least one keyword is a substring of the text.
func Any(keywords ...string) Predicate {
	return func(t Text) bool {
		for _, keyword := range keywords {
			if strings.Contains(t.All, keyword) {
				return true
			}
		}
		return false
	}
}

// All matches when every keyword co-occurs in the text.
func All(keywords ...string) Predicate {
	return func(t Text) bool {
		for _, keyword := range keywords {
			if !strings.Contains(t.All, keyword) {
				return false
			}
		}
		return len(keywords) > 0
	}
}

// AuthorityAny matches keywords against the legal authority only.
func AuthorityAny(keywords ...string) Predicate {
	return func(t Text) bool {
		for _, keyword := range keywords {
			if strings.Contains(t.Authority, keyword) {
				return true
			}
		}
		return false
	}
}

// CategoryIn matches the provision category exactly.
func CategoryIn(categories ...string) Predicate {
	return func(t Text) bool {
		for _, category := range categories {
			if t.Category == category {
				return true
			}
		}
		return false
	}
}

func Or(preds ...Predicate) Predicate {
	return func(t Text) bool {
		for _, pred := range preds {
			if pred(t) {
				return true
			}
		}
		return false
	}
}

func And(preds ...Predicate) Predicate {
	return func(t Text) bool {
		for _, pred := range preds {
			if !pred(t) {
				return false
			}
		}
		return len(preds) > 0
	}
}

func Not(pred Predicate) Predicate {
	return func(t Text) bool { return !pred(t) }
}

// Rule assigns Label when Match holds.
type Rule[L ~string] struct {
	Label L
	Match Predicate
}

// RuleSet is an ordered rule table. Every matching rule contributes its
// label; order only fixes the order of the result.
type RuleSet[L ~string] []Rule[L]

// Apply returns the labels of all matching rules in table order, deduplicated.
func (rs RuleSet[L]) Apply(t Text) []L {
	var out []L
	seen := make(map[L]bool, len(rs))
	for _, rule := range rs {
		if seen[rule.Label] || rule.Match == nil || !rule.Match(t) {
			continue
		}
		seen[rule.Label] = true
		out = append(out, rule.Label)
	}
	return out
}

// ApplyOr is Apply with a fallback label when nothing matches.
func (rs RuleSet[L]) ApplyOr(t Text, fallback L) []L {
	out := rs.Apply(t)
	if len(out) == 0 {
		return []L{fallback}
	}
	return out
}

// RemedyRule is one row of the remedy precedence table. Rows are evaluated
// top to bottom. When an Exclusive row matches, later rows of the same
// Group are skipped, so position in the table is precedence.
type RemedyRule struct {
	Tag       RemedyType
	When      Predicate
	Group     string
	Exclusive bool
}

// ApplyRemedies evaluates a precedence table and falls back to RemedyOther.
func ApplyRemedies(rules []RemedyRule, t Text) []RemedyType {
	var out []RemedyType
	seen := make(map[RemedyType]bool, len(rules))
	claimed := make(map[string]bool)
	for _, rule := range rules {
		if rule.Group != "" && claimed[rule.Group] {
			continue
		}
		if rule.When == nil || !rule.When(t) {
			continue
		}
		if rule.Exclusive && rule.Group != "" {
			claimed[rule.Group] = true
		}
		if seen[rule.Tag] {
			continue
		}
		seen[rule.Tag] = true
		out = append(out, rule.Tag)
	}
	if len(out) == 0 {
		return []RemedyType{RemedyOther}
	}
	return out
}

// Subsector refines an industry sector for dashboard drill-down.
type Subsector struct {
	Label string
	Match Predicate
}

// SubsectorOf returns the first matching subsector, else "General <sector>".
func SubsectorOf(table map[IndustrySector][]Subsector, sector IndustrySector, t Text) string {
	for _, sub := range table[sector] {
		if sub.Match != nil && sub.Match(t) {
			return sub.Label
		}
	}
	if sector == SectorOther || sector == "" {
		return "General"
	}
	return "General " + string(sector)
}
