package llm

import (
	"fmt"
	"strings"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

const summaryClip = 300

// Hints are the rule engine's tags, offered to the model for verification.
type Hints struct {
	StatutoryTopics []taxonomy.StatutoryTopic
	// Remedies is keyed by provision number.
	Remedies map[string][]taxonomy.RemedyType
}

const systemPrompt = "You classify FTC enforcement actions for a legal provisions library. Reply with JSON only."

// BuildPrompt renders the classification request for one case.
func BuildPrompt(doc *casefile.Document, hints Hints) string {
	cs := doc.Case
	info := casefile.CaseInfo{}
	if cs.CaseInfo != nil {
		info = *cs.CaseInfo
	}

	var provisions strings.Builder
	for i, p := range cs.Order.Provisions {
		if i > 0 {
			provisions.WriteString("\n")
		}
		category := p.Category
		if category == "" {
			category = "unknown"
		}
		fmt.Fprintf(&provisions, "    - Provision %s: %q\n      Category: %s\n      Summary: %s",
			p.ProvisionNumber, p.Title, category, clip(p.Summary, summaryClip))
		if remedies := hints.Remedies[p.ProvisionNumber.String()]; len(remedies) > 0 {
			fmt.Fprintf(&provisions, "\n      Rule-based remedy hint: %s. Please verify.", joinLabels(remedies))
		}
	}

	statutory := hints.StatutoryTopics
	if len(statutory) == 0 {
		statutory = []taxonomy.StatutoryTopic{taxonomy.SectionFiveOnly}
	}

	return fmt.Sprintf(`You are classifying an FTC enforcement action for a legal provisions library.

CASE INFORMATION:
  Company: %s
  Date: %s
  Legal Authority: %s
  Company business description: %s

PROVISIONS:
%s

RULE-BASED ANALYSIS (verify and correct if needed):
  Rule-based analysis suggests these statutory topics: %s.

CLASSIFICATION INSTRUCTIONS:
Classify this case and each provision using ONLY the enum values listed below. Multi-tag when multiple apply.

Valid StatutoryTopics: %s
Valid PracticeAreas: %s
Valid RemedyTypes: %s
Valid IndustrySectors: %s

IMPORTANT NOTES:
- "Privacy" as a practice area is reserved for cases where the PRIMARY violation is misrepresentation about privacy practices. If the case primarily concerns a specific statute (COPPA, FCRA, GLBA), its practice area should reflect that domain.
- Infer the industry sector from the business description, not from the company name alone.
- case_statutory_topics is the UNION of all provision-level statutory_topics.
- For affirmative_obligation provisions, read the title and summary to distinguish Monetary Penalty, Data Deletion and Comprehensive Security Program.

Return ONLY valid JSON matching the structure below. Do not include explanation.

{
  "case_statutory_topics": ["..."],
  "case_practice_areas": ["..."],
  "case_industry_sectors": ["..."],
  "provisions": [
    {
      "provision_number": "...",
      "statutory_topics": ["..."],
      "practice_areas": ["..."],
      "remedy_types": ["..."]
    }
  ]
}`,
		orDefault(cs.CompanyName(), "Unknown"),
		promptDate(info),
		orDefault(info.LegalAuthority, "Unknown"),
		orDefault(cs.BusinessDescription(), "Not provided."),
		provisions.String(),
		joinLabels(statutory),
		joinLabels(taxonomy.StatutoryTopics()),
		joinLabels(taxonomy.PracticeAreas()),
		joinLabels(taxonomy.RemedyTypes()),
		joinLabels(taxonomy.IndustrySectors()),
	)
}

func promptDate(info casefile.CaseInfo) string {
	if info.DateIssued != "" {
		return info.DateIssued
	}
	if info.CaseDate != nil {
		return orDefault(info.CaseDate.Month.String(), "?") + "/" + orDefault(info.CaseDate.Year.String(), "?")
	}
	return "Unknown"
}

func joinLabels[L ~string](labels []L) string {
	return strings.Join(taxonomy.Strings(labels), ", ")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// clip cuts s to at most n runes.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
