// Package classify assigns taxonomy tags to cases and provisions with
// keyword rules. Every function here is pure and total: each tag
// dimension falls back to its default label instead of coming back empty.
package classify

import (
	"slices"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

type Classifier struct {
	rules taxonomy.Rules
}

func New(rules taxonomy.Rules) *Classifier {
	return &Classifier{rules: rules}
}

// CaseTags are the case-level tag sets.
type CaseTags struct {
	StatutoryTopics []taxonomy.StatutoryTopic
	PracticeAreas   []taxonomy.PracticeArea
	IndustrySectors []taxonomy.IndustrySector
}

// ProvisionTags are the provision-level tag sets.
type ProvisionTags struct {
	StatutoryTopics []taxonomy.StatutoryTopic
	PracticeAreas   []taxonomy.PracticeArea
	RemedyTypes     []taxonomy.RemedyType
}

// ClassifyCase tags one case from its text fields.
func (c *Classifier) ClassifyCase(cs casefile.Case) CaseTags {
	topics := c.rules.Statutory.ApplyOr(StatutoryText(cs), taxonomy.SectionFiveOnly)
	return CaseTags{
		StatutoryTopics: topics,
		PracticeAreas:   c.practiceAreas(PracticeText(cs), topics),
		IndustrySectors: c.rules.Industry.ApplyOr(IndustryText(cs), taxonomy.SectorOther),
	}
}

func (c *Classifier) practiceAreas(text taxonomy.Text, topics []taxonomy.StatutoryTopic) []taxonomy.PracticeArea {
	areas := c.rules.PracticeAreas.Apply(text)
	if c.rules.Privacy != nil && c.rules.Privacy(text) && !c.privacyExplained(topics) {
		areas = append(areas, taxonomy.Privacy)
	}
	if len(areas) > 0 {
		return areas
	}
	if matches(c.rules.PrivacyLastResort, text) {
		return []taxonomy.PracticeArea{taxonomy.Privacy}
	}
	return []taxonomy.PracticeArea{taxonomy.PracticeOther}
}

// privacyExplained reports whether a privacy-specific statute already
// covers the case.
func (c *Classifier) privacyExplained(topics []taxonomy.StatutoryTopic) bool {
	for _, topic := range topics {
		if slices.Contains(c.rules.PrivacyStatutes, topic) {
			return true
		}
	}
	return false
}

// ClassifyProvision tags one provision. Statutory topics are the case's,
// copied. Practice areas come from a narrow local pass and fall back to a
// copy of the case's areas when the provision has no signal of its own.
func (c *Classifier) ClassifyProvision(p casefile.Provision, caseTopics []taxonomy.StatutoryTopic, caseAreas []taxonomy.PracticeArea) ProvisionTags {
	text := ProvisionText(p)

	areas := c.rules.ProvisionAreas.Apply(text)
	if len(areas) == 0 {
		areas = append([]taxonomy.PracticeArea(nil), caseAreas...)
	}

	return ProvisionTags{
		StatutoryTopics: append([]taxonomy.StatutoryTopic(nil), caseTopics...),
		PracticeAreas:   areas,
		RemedyTypes:     taxonomy.ApplyRemedies(c.rules.Remedies, text),
	}
}

// Classify tags a case and all of its provisions.
func (c *Classifier) Classify(cs casefile.Case) casefile.Classification {
	tags := c.ClassifyCase(cs)
	cls := casefile.Classification{
		StatutoryTopics: tags.StatutoryTopics,
		PracticeAreas:   tags.PracticeAreas,
		IndustrySectors: tags.IndustrySectors,
		Provisions:      make([]casefile.ProvisionClassification, 0, len(cs.Order.Provisions)),
	}
	for _, p := range cs.Order.Provisions {
		pt := c.ClassifyProvision(p, tags.StatutoryTopics, tags.PracticeAreas)
		cls.Provisions = append(cls.Provisions, casefile.ProvisionClassification{
			Number:          p.ProvisionNumber.String(),
			StatutoryTopics: pt.StatutoryTopics,
			PracticeAreas:   pt.PracticeAreas,
			RemedyTypes:     pt.RemedyTypes,
		})
	}
	return cls
}

// Categories returns the dashboard categories for a case, "Other" when
// none match.
func (c *Classifier) Categories(cs casefile.Case) []string {
	return c.rules.Categories.ApplyOr(CategoryText(cs), taxonomy.CategoryOther)
}

// Subsectors maps each of the case's industry sectors to a subsector.
func (c *Classifier) Subsectors(cs casefile.Case, sectors []taxonomy.IndustrySector, categories []string) map[string]string {
	fields := append([]string{cs.CompanyName(), cs.BusinessDescription()}, categories...)
	text := taxonomy.NewText(fields...)
	out := make(map[string]string, len(sectors))
	for _, sector := range sectors {
		out[string(sector)] = taxonomy.SubsectorOf(c.rules.Subsectors, sector, text)
	}
	return out
}

func matches(pred taxonomy.Predicate, text taxonomy.Text) bool {
	return pred != nil && pred(text)
}
