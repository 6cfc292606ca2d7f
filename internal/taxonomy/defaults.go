package taxonomy

// Rules bundles every table the classifiers and the summary builder read.
// Callers receive it by value so tests and alternative regimes can swap
// individual tables without touching pipeline code.
type Rules struct {
	Statutory RuleSet[StatutoryTopic]

	// PracticeAreas holds every case-level area except Privacy, which
	// has its own suppression logic below.
	PracticeAreas RuleSet[PracticeArea]
	Privacy       Predicate
	// PrivacyStatutes suppress the Privacy rule when the case's own
	// statutory topics include one of them.
	PrivacyStatutes []StatutoryTopic
	// PrivacyLastResort runs only when no case-level area matched.
	PrivacyLastResort Predicate

	Industry   RuleSet[IndustrySector]
	Subsectors map[IndustrySector][]Subsector

	// ProvisionAreas is the narrow provision-level pass; no match means
	// the provision inherits the case's areas.
	ProvisionAreas RuleSet[PracticeArea]
	Remedies       []RemedyRule

	// Categories drive the dashboard's category grouping and are
	// independent of the four tag dimensions.
	Categories RuleSet[string]
}

const (
	CategoryOther = "Other"

	prohibitionGroup = "prohibition"
)

// StructuralCategories are provision categories that carry administrative
// boilerplate rather than a substantive remedy.
func StructuralCategories() map[string]bool {
	return map[string]bool{
		"compliance_reporting": true,
		"acknowledgment":       true,
		"recordkeeping":        true,
		"monitoring":           true,
		"duration":             true,
	}
}

func DefaultRules() Rules {
	return Rules{
		Statutory:         defaultStatutoryRules(),
		PracticeAreas:     defaultPracticeAreaRules(),
		Privacy:           defaultPrivacyRule(),
		PrivacyStatutes:   []StatutoryTopic{COPPA, FCRA, GLBA, TSR},
		PrivacyLastResort: Any("privacy", "personal information", "consumer data"),
		Industry:          defaultIndustryRules(),
		Subsectors:        defaultSubsectors(),
		ProvisionAreas:    defaultProvisionAreaRules(),
		Remedies:          DefaultRemedyRules(),
		Categories:        defaultCategoryRules(),
	}
}

func defaultStatutoryRules() RuleSet[StatutoryTopic] {
	return RuleSet[StatutoryTopic]{
		{COPPA, Any("coppa", "children's online privacy protection", "children's privacy", "child-directed", "child's personal information")},
		{FCRA, Any("fcra", "fair credit reporting", "consumer report", "credit report", "background check")},
		{GLBA, Any("glba", "gramm-leach-bliley", "financial modernization")},
		{HealthBreachNotification, Any("health breach notification", "health breach rule")},
		{CANSPAM, Any("can-spam")},
		{TCPA, Any("tcpa", "telephone consumer protection")},
		{TSR, Or(Any("telemarketing sales rule", "telemarketing and consumer fraud"), AuthorityAny("tsr"))},
	}
}

func defaultPracticeAreaRules() RuleSet[PracticeArea] {
	return RuleSet[PracticeArea]{
		{DataSecurity, Any(
			"data security",
			"security breach",
			"information security",
			"security program",
			"safeguard",
			"unauthorized access",
			"security practices",
			"security failures",
			"reasonably protect",
			"comprehensive security",
		)},
		{AutomatedDecision, Any(
			"algorithm",
			"artificial intelligence",
			"facial recognition",
			"biometric",
			"machine learning",
			"automated decision",
			"ai-powered",
			"model destruction",
		)},
		{Surveillance, Or(
			Any("surveillance", "spyware", "stalkerware", "monitoring software"),
			All("tracking", "without consent"),
		)},
		{DeceptiveDesign, Or(
			Any("dark pattern", "deceptive design", "negative option", "deceptive cancellation"),
			All("trick", "consent"),
		)},
		{Telemarketing, Or(
			Any("telemarketing", "do-not-call", "robocall", "telemarketing sales rule"),
			AuthorityAny("tsr"),
		)},
		{FinancialPractice, Any(
			"fcra",
			"fair credit",
			"glba",
			"gramm-leach-bliley",
			"lending",
			"debt collection",
			"payday",
			"credit card",
			"billing",
		)},
	}
}

func defaultPrivacyRule() Predicate {
	return Or(
		Any("privacy policy", "privacy practices", "deceptive privacy", "privacy misrepresentation"),
		And(Any("privacy"), Any("personal information", "consumer data", "tracking")),
	)
}

func defaultIndustryRules() RuleSet[IndustrySector] {
	return RuleSet[IndustrySector]{
		{Technology, Any(
			"software", "app", "technology company", "tech", "platform", "digital",
			"online service", "internet", "cloud", "saas", "data analytics",
		)},
		{SocialMedia, Any(
			"social media", "social network", "facebook", "twitter", "instagram",
			"tiktok", "youtube", "snapchat", "user-generated content",
		)},
		{Healthcare, Any(
			"health", "medical", "hospital", "pharmaceutical", "drug", "patient",
			"doctor", "clinical", "telehealth", "fertility", "mental health", "therapy",
		)},
		{FinancialServices, Any(
			"bank", "financial", "lending", "credit", "mortgage", "loan",
			"insurance", "payment", "fintech", "investment", "debt",
		)},
		{Retail, Any(
			"retail", "e-commerce", "ecommerce", "online store", "shopping",
			"consumer goods", "marketplace", "sells products", "merchant",
		)},
		{Telecom, Any(
			"telecom", "wireless", "cable", "broadband", "phone service",
			"carrier", "cellular", "voip",
		)},
		{Education, Any(
			"education", "school", "student", "learning", "university",
			"academic", "tutoring", "educational",
		)},
	}
}

func defaultSubsectors() map[IndustrySector][]Subsector {
	return map[IndustrySector][]Subsector{
		Technology: {
			{"Software & Apps", Any("software", "app", "mobile app", "platform")},
			{"IoT & Connected Devices", Any("iot", "connected", "smart", "wearable", "device")},
			{"Ad Tech & Tracking", Any("advertising", "ad tech", "tracking", "analytics", "data broker")},
			{"Cloud Services", Any("cloud", "hosting", "saas")},
		},
		FinancialServices: {
			{"Banking & Lending", Any("bank", "lending", "loan", "mortgage")},
			{"Credit Reporting", Any("credit report", "credit bureau", "credit score")},
			{"Insurance", Any("insurance")},
			{"Payment Processing", Any("payment", "fintech")},
		},
		Retail: {
			{"E-Commerce", Any("e-commerce", "ecommerce", "online retail", "online store", "marketplace")},
			{"Brick-and-Mortar", Any("store", "retail chain", "retailer")},
		},
		Healthcare: {
			{"Health Tech & Apps", Any("health app", "fitness", "telehealth", "telemedicine")},
			{"Health Services", Any("hospital", "clinic", "medical")},
			{"Pharma & Biotech", Any("pharma", "biotech", "drug")},
		},
		SocialMedia: {
			{"Social Networks", Any("social network", "social media")},
			{"Online Communities", Any("forum", "community", "messaging")},
		},
		Education: {
			{"EdTech", Any("edtech", "educational technology", "learning platform", "online learning")},
			{"Educational Institutions", Any("school", "university", "college")},
		},
		Telecom: {
			{"ISPs & Carriers", Any("isp", "internet service", "carrier", "wireless", "broadband")},
		},
	}
}

func defaultProvisionAreaRules() RuleSet[PracticeArea] {
	return RuleSet[PracticeArea]{
		{DataSecurity, Any("security", "safeguard", "breach")},
		{AutomatedDecision, Any("algorithm", "artificial intelligence", "biometric", "facial recognition")},
		{Telemarketing, Any("telemarketing", "do-not-call", "robocall")},
		{Privacy, Any("privacy", "personal information", "consumer data", "tracking")},
	}
}

// DefaultRemedyRules is the remedy precedence table. Biometric Ban beats
// Algorithmic Destruction, which beats a generic Prohibition; the
// obligation add-ons below them accumulate freely.
func DefaultRemedyRules() []RemedyRule {
	prohibits := Or(CategoryIn("prohibition"), Any("prohibition", "prohibited", "shall not"))
	obliges := Or(CategoryIn("affirmative_obligation"), Any("shall", "required", "must"))
	modelDestruction := Or(Any("model destruction"), All("destroy", "model"))

	return []RemedyRule{
		{Tag: ThirdPartyAssessment, When: Or(CategoryIn("assessment"), Any("third-party assessment", "biennial assessment"))},
		{Tag: ComplianceMonitoring, When: Or(CategoryIn("compliance_reporting", "monitoring"), Any("compliance report"))},
		{Tag: Recordkeeping, When: Or(CategoryIn("recordkeeping"), Any("recordkeeping", "record keeping"))},
		{Tag: RemedyOther, When: CategoryIn("acknowledgment", "duration")},

		{Tag: BiometricBan, Group: prohibitionGroup, Exclusive: true,
			When: And(prohibits, Any("facial recognition", "biometric"))},
		{Tag: AlgorithmicDestruction, Group: prohibitionGroup, Exclusive: true,
			When: And(prohibits, Or(Any("algorithm"), modelDestruction))},
		{Tag: Prohibition, Group: prohibitionGroup, Exclusive: true, When: prohibits},
		{Tag: AlgorithmicDestruction, When: And(obliges, modelDestruction)},

		{Tag: MonetaryPenalty, When: And(obliges, Any("civil penalty", "monetary", "judgment", "$", "payment", "pay"))},
		{Tag: DataDeletion, When: And(obliges, Any("delet", "dispose", "destroy"), Not(modelDestruction))},
		{Tag: SecurityProgram, When: And(obliges, Any(
			"security program",
			"information security",
			"safeguard",
			"comprehensive security",
			"privacy program",
		))},
	}
}

func defaultCategoryRules() RuleSet[string] {
	return RuleSet[string]{
		{"COPPA / Children's Privacy", Any("coppa", "children's online privacy", "child-directed", "children's privacy", "child's personal information")},
		{"Data Security", Any("data security", "security breach", "safeguards", "information security", "security practices", "unauthorized access", "security program")},
		{"Privacy / Deceptive Privacy Practices", Any("privacy", "privacy policy", "deceptive privacy", "privacy misrepresentation", "personal information", "tracking")},
		{"Health Data", Any("health data", "medical", "health breach", "health information", "hipaa", "reproductive")},
		{"Location / Geolocation Data", Any("location data", "geolocation", "geofenc", "precise location", "gps")},
		{"Fair Credit Reporting (FCRA)", Any("fair credit reporting", "fcra", "consumer report", "credit report", "background check")},
		{"Gramm-Leach-Bliley", Any("gramm-leach-bliley", "glba", "financial privacy", "safeguards rule")},
		{"AI / Algorithmic / Facial Recognition", Any("algorithm", "artificial intelligence", "facial recognition", "biometric", "machine learning", "automated", "ai-powered")},
		{"Telemarketing / Do-Not-Call", Any("telemarketing", "do-not-call", "robocall", "telephone", "tsr")},
	}
}
