package summary

// UnknownAdministration labels dates outside every known term.
const UnknownAdministration = "Unknown"

// Administration is a presidential term, half-open: Start inclusive, End
// exclusive, both ISO dates.
type Administration struct {
	Label string
	Start string
	End   string
}

func Administrations() []Administration {
	return []Administration{
		{Label: "Clinton", Start: "1993-01-20", End: "2001-01-20"},
		{Label: "G.W. Bush", Start: "2001-01-20", End: "2009-01-20"},
		{Label: "Obama", Start: "2009-01-20", End: "2017-01-20"},
		{Label: "Trump (1st)", Start: "2017-01-20", End: "2021-01-20"},
		{Label: "Biden", Start: "2021-01-20", End: "2025-01-20"},
		{Label: "Trump (2nd)", Start: "2025-01-20", End: "2029-01-20"},
	}
}

// AdministrationOf returns the first term containing date. ISO dates
// compare correctly as strings.
func AdministrationOf(date string) string {
	for _, admin := range Administrations() {
		if date >= admin.Start && date < admin.End {
			return admin.Label
		}
	}
	return UnknownAdministration
}

func administrationRank(label string) int {
	for i, admin := range Administrations() {
		if admin.Label == label {
			return i
		}
	}
	return len(Administrations())
}
