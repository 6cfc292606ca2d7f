package casefile

import (
	"strings"
)

// Case is the typed view of one enforcement action file. Fields the
// pipeline never reads are left to the raw document and survive rewrites.
type Case struct {
	CaseInfo  *CaseInfo `json:"case_info" validate:"required"`
	Complaint Complaint `json:"complaint"`
	Order     Order     `json:"order"`
}

type CaseInfo struct {
	ID                  string    `json:"id"`
	DocketNumber        string    `json:"docket_number"`
	Company             Company   `json:"company"`
	CompanyName         string    `json:"company_name"`
	DateIssued          string    `json:"date_issued"`
	CaseDate            *CaseDate `json:"case_date"`
	LegalAuthority      string    `json:"legal_authority"`
	ViolationType       string    `json:"violation_type"`
	BusinessDescription string    `json:"business_description"`
	Commissioners       []string  `json:"commissioners"`
	FTCURL              string    `json:"ftc_url"`
	Administration      string    `json:"administration"`
	StatutoryTopics     []string  `json:"statutory_topics"`
	PracticeAreas       []string  `json:"practice_areas"`
	IndustrySectors     []string  `json:"industry_sectors"`
}

type Company struct {
	Name                string `json:"name"`
	BusinessDescription string `json:"business_description"`
}

type CaseDate struct {
	Month FlexString `json:"month"`
	Year  FlexString `json:"year"`
}

type Complaint struct {
	Counts            []Count `json:"counts"`
	FactualBackground string  `json:"factual_background"`
}

type Count struct {
	Title string `json:"title"`
}

type Order struct {
	Provisions []Provision `json:"provisions"`
	Duration   *Duration   `json:"duration"`
}

type Duration struct {
	DurationYears *float64 `json:"duration_years"`
}

type Provision struct {
	ProvisionNumber FlexString    `json:"provision_number"`
	Title           string        `json:"title"`
	Category        string        `json:"category"`
	Summary         string        `json:"summary"`
	Requirements    []Requirement `json:"requirements"`
	StatutoryTopics []string      `json:"statutory_topics"`
	PracticeAreas   []string      `json:"practice_areas"`
	RemedyTypes     []string      `json:"remedy_types"`
}

type Requirement struct {
	QuotedText string `json:"quoted_text"`
}

func (c Case) info() CaseInfo {
	if c.CaseInfo == nil {
		return CaseInfo{}
	}
	return *c.CaseInfo
}

func (c Case) CompanyName() string {
	info := c.info()
	if info.Company.Name != "" {
		return info.Company.Name
	}
	return info.CompanyName
}

func (c Case) BusinessDescription() string {
	info := c.info()
	if info.BusinessDescription != "" {
		return info.BusinessDescription
	}
	return info.Company.BusinessDescription
}

func (c Case) LegalAuthority() string {
	return c.info().LegalAuthority
}

// ViolationType defaults to "deceptive" when the file does not say.
func (c Case) ViolationType() string {
	switch v := strings.ToLower(strings.TrimSpace(c.info().ViolationType)); v {
	case "deceptive", "unfair", "both":
		return v
	default:
		return "deceptive"
	}
}

func (c Case) CountTitles() []string {
	titles := make([]string, 0, len(c.Complaint.Counts))
	for _, count := range c.Complaint.Counts {
		titles = append(titles, count.Title)
	}
	return titles
}

func (c Case) NumRequirements() int {
	n := 0
	for _, p := range c.Order.Provisions {
		n += len(p.Requirements)
	}
	return n
}

func (c Case) DurationYears() *float64 {
	if c.Order.Duration == nil {
		return nil
	}
	return c.Order.Duration.DurationYears
}

// VerbatimText joins the non-empty quoted text of every requirement in
// order, separated by a blank line.
func (p Provision) VerbatimText() string {
	parts := make([]string, 0, len(p.Requirements))
	for _, req := range p.Requirements {
		if req.QuotedText == "" {
			continue
		}
		parts = append(parts, req.QuotedText)
	}
	return strings.Join(parts, "\n\n")
}
