// Package shard fans tagged provisions out into one file per tag value,
// so each topic, practice area and remedy type can be loaded on its own.
package shard

import (
	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/summary"
)

// ProvisionRecord is a provision denormalized with its case's metadata.
type ProvisionRecord struct {
	ProvisionNumber string   `json:"provision_number"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	Summary         string   `json:"summary"`
	VerbatimText    string   `json:"verbatim_text"`
	StatutoryTopics []string `json:"statutory_topics"`
	PracticeAreas   []string `json:"practice_areas"`
	RemedyTypes     []string `json:"remedy_types"`
	CaseID          string   `json:"case_id"`
	CompanyName     string   `json:"company_name"`
	DateIssued      string   `json:"date_issued"`
	Year            int      `json:"year"`
	Administration  string   `json:"administration"`
	LegalAuthority  string   `json:"legal_authority"`
	ViolationType   string   `json:"violation_type"`
	FTCURL          string   `json:"ftc_url,omitempty"`
	DocketNumber    string   `json:"docket_number"`
}

// Key identifies a provision across shards.
func (r ProvisionRecord) Key() string {
	return r.CaseID + "__" + r.ProvisionNumber
}

// Records flattens a classified case into provision records. The case must
// already have a resolved issue date.
func Records(doc *casefile.Document, date string, year int) []ProvisionRecord {
	cs := doc.Case
	info := *cs.CaseInfo
	administration := info.Administration
	if administration == "" {
		administration = summary.AdministrationOf(date)
	}

	records := make([]ProvisionRecord, 0, len(cs.Order.Provisions))
	for _, p := range cs.Order.Provisions {
		records = append(records, ProvisionRecord{
			ProvisionNumber: p.ProvisionNumber.String(),
			Title:           p.Title,
			Category:        p.Category,
			Summary:         p.Summary,
			VerbatimText:    p.VerbatimText(),
			StatutoryTopics: nonNil(p.StatutoryTopics),
			PracticeAreas:   nonNil(p.PracticeAreas),
			RemedyTypes:     nonNil(p.RemedyTypes),
			CaseID:          cs.ID(doc.Name),
			CompanyName:     cs.CompanyName(),
			DateIssued:      date,
			Year:            year,
			Administration:  administration,
			LegalAuthority:  info.LegalAuthority,
			ViolationType:   cs.ViolationType(),
			FTCURL:          info.FTCURL,
			DocketNumber:    info.DocketNumber,
		})
	}
	return records
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
