package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

// ErrInvalidResponse covers replies that are not JSON, use labels outside
// the taxonomies, or leave any tag set empty. Nothing is written for such
// a case.
var ErrInvalidResponse = errors.New("invalid classification response")

type Response struct {
	CaseStatutoryTopics []string            `json:"case_statutory_topics" validate:"min=1,dive,statutory_topic"`
	CasePracticeAreas   []string            `json:"case_practice_areas" validate:"min=1,dive,practice_area"`
	CaseIndustrySectors []string            `json:"case_industry_sectors" validate:"min=1,dive,industry_sector"`
	Provisions          []ResponseProvision `json:"provisions" validate:"dive"`
}

type ResponseProvision struct {
	ProvisionNumber casefile.FlexString `json:"provision_number"`
	StatutoryTopics []string            `json:"statutory_topics" validate:"min=1,dive,statutory_topic"`
	PracticeAreas   []string            `json:"practice_areas" validate:"min=1,dive,practice_area"`
	RemedyTypes     []string            `json:"remedy_types" validate:"min=1,dive,remedy_type"`
}

// ParseResponse decodes and validates a model reply. Markdown code fences
// around the JSON are tolerated.
func ParseResponse(text string) (casefile.Classification, error) {
	cleaned := stripFences(text)
	if cleaned == "" {
		return casefile.Classification{}, fmt.Errorf("%w: empty reply", ErrInvalidResponse)
	}

	var resp Response
	decoder := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	if err := decoder.Decode(&resp); err != nil {
		return casefile.Classification{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := taxonomy.Validator().Struct(resp); err != nil {
		return casefile.Classification{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return resp.Classification(), nil
}

func (r Response) Classification() casefile.Classification {
	cls := casefile.Classification{
		StatutoryTopics: taxonomy.Parse[taxonomy.StatutoryTopic](r.CaseStatutoryTopics),
		PracticeAreas:   taxonomy.Parse[taxonomy.PracticeArea](r.CasePracticeAreas),
		IndustrySectors: taxonomy.Parse[taxonomy.IndustrySector](r.CaseIndustrySectors),
	}
	for _, p := range r.Provisions {
		cls.Provisions = append(cls.Provisions, casefile.ProvisionClassification{
			Number:          p.ProvisionNumber.String(),
			StatutoryTopics: taxonomy.Parse[taxonomy.StatutoryTopic](p.StatutoryTopics),
			PracticeAreas:   taxonomy.Parse[taxonomy.PracticeArea](p.PracticeAreas),
			RemedyTypes:     taxonomy.Parse[taxonomy.RemedyType](p.RemedyTypes),
		})
	}
	return cls
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if newline := strings.IndexByte(text, '\n'); newline >= 0 {
			text = text[newline+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
