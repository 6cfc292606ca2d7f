package taxonomy

// StatutoryTopic is the statute (or absence of one) a case or provision falls under.
type StatutoryTopic string

const (
	COPPA                    StatutoryTopic = "COPPA"
	FCRA                     StatutoryTopic = "FCRA"
	GLBA                     StatutoryTopic = "GLBA"
	HealthBreachNotification StatutoryTopic = "Health Breach Notification"
	CANSPAM                  StatutoryTopic = "CAN-SPAM"
	TCPA                     StatutoryTopic = "TCPA"
	TSR                      StatutoryTopic = "TSR"
	SectionFiveOnly          StatutoryTopic = "Section 5 Only"
)

// PracticeArea is the subject-matter area of a case or provision.
type PracticeArea string

const (
	Privacy           PracticeArea = "Privacy"
	DataSecurity      PracticeArea = "Data Security"
	DeceptiveDesign   PracticeArea = "Deceptive Design / Dark Patterns"
	AutomatedDecision PracticeArea = "AI / Automated Decision-Making"
	Surveillance      PracticeArea = "Surveillance"
	FinancialPractice PracticeArea = "Financial Practices"
	Telemarketing     PracticeArea = "Telemarketing"
	PracticeOther     PracticeArea = "Other"
)

// RemedyType is what a provision orders the respondent to do or not do.
type RemedyType string

const (
	MonetaryPenalty        RemedyType = "Monetary Penalty"
	DataDeletion           RemedyType = "Data Deletion"
	SecurityProgram        RemedyType = "Comprehensive Security Program"
	ThirdPartyAssessment   RemedyType = "Third-Party Assessment"
	AlgorithmicDestruction RemedyType = "Algorithmic Destruction"
	BiometricBan           RemedyType = "Biometric Ban"
	ComplianceMonitoring   RemedyType = "Compliance Monitoring"
	Recordkeeping          RemedyType = "Recordkeeping"
	Prohibition            RemedyType = "Prohibition"
	RemedyOther            RemedyType = "Other"
)

// IndustrySector is the respondent's line of business.
type IndustrySector string

const (
	Technology        IndustrySector = "Technology"
	Healthcare        IndustrySector = "Healthcare"
	FinancialServices IndustrySector = "Financial Services"
	Retail            IndustrySector = "Retail"
	Telecom           IndustrySector = "Telecom"
	Education         IndustrySector = "Education"
	SocialMedia       IndustrySector = "Social Media"
	SectorOther       IndustrySector = "Other"
)

func StatutoryTopics() []StatutoryTopic {
	return []StatutoryTopic{COPPA, FCRA, GLBA, HealthBreachNotification, CANSPAM, TCPA, TSR, SectionFiveOnly}
}

func PracticeAreas() []PracticeArea {
	return []PracticeArea{Privacy, DataSecurity, DeceptiveDesign, AutomatedDecision, Surveillance, FinancialPractice, Telemarketing, PracticeOther}
}

func RemedyTypes() []RemedyType {
	return []RemedyType{
		MonetaryPenalty,
		DataDeletion,
		SecurityProgram,
		ThirdPartyAssessment,
		AlgorithmicDestruction,
		BiometricBan,
		ComplianceMonitoring,
		Recordkeeping,
		Prohibition,
		RemedyOther,
	}
}

func IndustrySectors() []IndustrySector {
	return []IndustrySector{Technology, Healthcare, FinancialServices, Retail, Telecom, Education, SocialMedia, SectorOther}
}

func (t StatutoryTopic) Valid() bool { return contains(StatutoryTopics(), t) }
func (a PracticeArea) Valid() bool   { return contains(PracticeAreas(), a) }
func (r RemedyType) Valid() bool     { return contains(RemedyTypes(), r) }
func (s IndustrySector) Valid() bool { return contains(IndustrySectors(), s) }

// Strings converts a label slice to plain strings, never returning nil.
func Strings[L ~string](labels []L) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		out = append(out, string(label))
	}
	return out
}

// Parse converts plain strings to labels without validating them.
func Parse[L ~string](values []string) []L {
	out := make([]L, 0, len(values))
	for _, value := range values {
		out = append(out, L(value))
	}
	return out
}

func contains[L comparable](values []L, target L) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
