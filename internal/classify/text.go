package classify

import (
	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

// Each dimension searches a slightly different set of fields.

// StatutoryText: legal authority, complaint count titles, factual background.
func StatutoryText(cs casefile.Case) taxonomy.Text {
	fields := append([]string{cs.LegalAuthority()}, cs.CountTitles()...)
	fields = append(fields, cs.Complaint.FactualBackground)
	return taxonomy.NewText(fields...).WithAuthority(cs.LegalAuthority())
}

// PracticeText is the statutory text plus every provision title and summary.
func PracticeText(cs casefile.Case) taxonomy.Text {
	fields := append([]string{cs.LegalAuthority()}, cs.CountTitles()...)
	fields = append(fields, cs.Complaint.FactualBackground)
	for _, p := range cs.Order.Provisions {
		fields = append(fields, p.Title+" "+p.Summary)
	}
	return taxonomy.NewText(fields...).WithAuthority(cs.LegalAuthority())
}

// IndustryText: business description, company name, factual background.
func IndustryText(cs casefile.Case) taxonomy.Text {
	return taxonomy.NewText(cs.BusinessDescription(), cs.CompanyName(), cs.Complaint.FactualBackground)
}

// CategoryText: complaint count titles, legal authority, factual background.
func CategoryText(cs casefile.Case) taxonomy.Text {
	fields := append(cs.CountTitles(), cs.LegalAuthority(), cs.Complaint.FactualBackground)
	return taxonomy.NewText(fields...)
}

// ProvisionText: category, title, summary.
func ProvisionText(p casefile.Provision) taxonomy.Text {
	return taxonomy.NewText(p.Category, p.Title, p.Summary).WithCategory(p.Category)
}
