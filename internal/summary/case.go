// Package summary builds the case summary index: one denormalized record
// per deduplicated case plus group statistics and templated narratives.
package summary

import (
	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/classify"
	"github.com/orderlens/orderlens/internal/fileutil"
	"github.com/orderlens/orderlens/internal/tagcache"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

type CaseSummary struct {
	ID                     string            `json:"id"`
	DocketNumber           string            `json:"docket_number"`
	CompanyName            string            `json:"company_name"`
	DateIssued             string            `json:"date_issued"`
	Year                   int               `json:"year"`
	Administration         string            `json:"administration"`
	Categories             []string          `json:"categories"`
	ViolationType          string            `json:"violation_type"`
	ComplaintCounts        []string          `json:"complaint_counts"`
	LegalAuthority         string            `json:"legal_authority"`
	Commissioners          []string          `json:"commissioners"`
	FTCURL                 string            `json:"ftc_url,omitempty"`
	SourceFilename         string            `json:"source_filename"`
	NumProvisions          int               `json:"num_provisions"`
	NumRequirements        int               `json:"num_requirements"`
	OrderDurationYears     *float64          `json:"order_duration_years"`
	StatutoryTopics        []string          `json:"statutory_topics"`
	PracticeAreas          []string          `json:"practice_areas"`
	IndustrySectors        []string          `json:"industry_sectors"`
	IndustrySubsectors     map[string]string `json:"industry_subsectors"`
	RemedyTypes            []string          `json:"remedy_types"`
	ProvisionCountsByTopic map[string]int    `json:"provision_counts_by_topic"`
}

// Summarize derives the summary record for one decoded case file. Tags
// come from the document when it is classified, otherwise from the
// published copy in cache; a case with neither gets empty tag sets.
func Summarize(doc *casefile.Document, classifier *classify.Classifier, cache *tagcache.Cache) (CaseSummary, error) {
	cs := doc.Case
	info := *cs.CaseInfo

	date, year, err := casefile.ResolveDate(cs.CaseInfo, doc.Name)
	if err != nil {
		return CaseSummary{}, err
	}
	id := cs.ID(doc.Name)

	var tags casefile.Classification
	if doc.IsClassified() {
		tags = tagcache.FromCase(cs)
	} else if cached, ok := cache.Lookup(id); ok {
		tags = cached
	}

	categories := classifier.Categories(cs)
	commissioners := info.Commissioners
	if commissioners == nil {
		commissioners = []string{}
	}

	summary := CaseSummary{
		ID:                 id,
		DocketNumber:       info.DocketNumber,
		CompanyName:        cs.CompanyName(),
		DateIssued:         date,
		Year:               year,
		Administration:     AdministrationOf(date),
		Categories:         categories,
		ViolationType:      cs.ViolationType(),
		ComplaintCounts:    cs.CountTitles(),
		LegalAuthority:     info.LegalAuthority,
		Commissioners:      commissioners,
		FTCURL:             info.FTCURL,
		SourceFilename:     doc.Name,
		NumProvisions:      len(cs.Order.Provisions),
		NumRequirements:    cs.NumRequirements(),
		OrderDurationYears: cs.DurationYears(),
		PracticeAreas:      taxonomy.Strings(tags.PracticeAreas),
		IndustrySectors:    taxonomy.Strings(tags.IndustrySectors),
		IndustrySubsectors: classifier.Subsectors(cs, tags.IndustrySectors, categories),
	}
	summary.StatutoryTopics, summary.RemedyTypes, summary.ProvisionCountsByTopic = provisionRollup(tags)
	return summary, nil
}

// provisionRollup unions the case topics with every provision's topics,
// collects provision remedies, and counts provisions per topic.
func provisionRollup(tags casefile.Classification) ([]string, []string, map[string]int) {
	topics := taxonomy.Strings(tags.StatutoryTopics)
	remedies := []string{}
	for _, p := range tags.Provisions {
		topics = append(topics, taxonomy.Strings(p.StatutoryTopics)...)
		remedies = append(remedies, taxonomy.Strings(p.RemedyTypes)...)
	}
	topics = fileutil.Dedupe(topics)
	remedies = fileutil.Dedupe(remedies)

	counts := make(map[string]int, len(topics))
	for _, topic := range topics {
		counts[topic] = 0
	}
	for _, p := range tags.Provisions {
		for topic := range fileutil.ToSet(taxonomy.Strings(p.StatutoryTopics)) {
			counts[topic]++
		}
	}
	return topics, remedies, counts
}

// Dedupe keeps one case per docket number: the one with the longest source
// filename, or the earliest seen on a tie. Cases without a docket number
// are keyed by id instead. The result is sorted by issue date, then id.
func Dedupe(cases []CaseSummary) []CaseSummary {
	index := make(map[string]int)
	var kept []CaseSummary
	for _, c := range cases {
		key := "docket:" + c.DocketNumber
		if c.DocketNumber == "" {
			key = "id:" + c.ID
		}
		i, ok := index[key]
		if !ok {
			index[key] = len(kept)
			kept = append(kept, c)
			continue
		}
		if len(c.SourceFilename) > len(kept[i].SourceFilename) {
			kept[i] = c
		}
	}
	sortCases(kept)
	return kept
}
