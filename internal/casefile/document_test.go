package casefile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlens/orderlens/internal/taxonomy"
)

const sampleCase = `{
  "case_info": {
    "docket_number": "C-4365",
    "company": {"name": "Acme Apps", "business_description": "mobile app developer"},
    "date_issued": "2019-07-24",
    "legal_authority": "Section 5 of the FTC Act",
    "extra_field": {"kept": true}
  },
  "complaint": {"counts": [{"title": "Deceptive privacy claims"}], "factual_background": "Acme collected data."},
  "order": {
    "provisions": [
      {"provision_number": "I", "title": "Prohibition Against Misrepresentation", "category": "prohibition",
       "requirements": [{"quoted_text": "shall not misrepresent"}, {"quoted_text": ""}, {"quoted_text": "in any manner"}]},
      {"provision_number": 2, "title": "Recordkeeping", "category": "recordkeeping"}
    ]
  }
}`

func TestDecodeTypedAndRaw(t *testing.T) {
	doc, err := Decode("07.19, Acme Apps.json", []byte(sampleCase))
	require.NoError(t, err)

	assert.Equal(t, "Acme Apps", doc.Case.CompanyName())
	assert.Equal(t, "mobile app developer", doc.Case.BusinessDescription())
	assert.Equal(t, "deceptive", doc.Case.ViolationType())
	assert.Equal(t, []string{"Deceptive privacy claims"}, doc.Case.CountTitles())
	require.Len(t, doc.Case.Order.Provisions, 2)
	assert.Equal(t, "2", doc.Case.Order.Provisions[1].ProvisionNumber.String())
	assert.Equal(t, "shall not misrepresent\n\nin any manner", doc.Case.Order.Provisions[0].VerbatimText())
	assert.False(t, doc.IsClassified())
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode("broken.json", []byte(`{"case_info": `))
	assert.ErrorIs(t, err, ErrParse)

	_, err = Decode("array.json", []byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrParse)

	_, err = Decode("missing.json", []byte(`{"order": {"provisions": []}}`))
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "case_info")

	_, err = Decode("null.json", []byte(`{"case_info": null}`))
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestIsClassifiedUsesPresenceNotEmptiness(t *testing.T) {
	doc, err := Decode("x.json", []byte(`{"case_info": {"statutory_topics": []}}`))
	require.NoError(t, err)
	assert.True(t, doc.IsClassified())
}

func TestApplyPreservesUnknownFields(t *testing.T) {
	doc, err := Decode("acme.json", []byte(sampleCase))
	require.NoError(t, err)

	doc.Apply(Classification{
		StatutoryTopics: []taxonomy.StatutoryTopic{taxonomy.SectionFiveOnly},
		PracticeAreas:   []taxonomy.PracticeArea{taxonomy.Privacy},
		IndustrySectors: []taxonomy.IndustrySector{taxonomy.Technology},
		Provisions: []ProvisionClassification{
			{
				Number:          "I",
				StatutoryTopics: []taxonomy.StatutoryTopic{taxonomy.SectionFiveOnly},
				PracticeAreas:   []taxonomy.PracticeArea{taxonomy.Privacy},
				RemedyTypes:     []taxonomy.RemedyType{taxonomy.Prohibition},
			},
		},
	})
	assert.True(t, doc.IsClassified())

	data, err := doc.Encode()
	require.NoError(t, err)

	var out struct {
		CaseInfo map[string]any `json:"case_info"`
		Order    struct {
			Provisions []map[string]any `json:"provisions"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, map[string]any{"kept": true}, out.CaseInfo["extra_field"])
	assert.Equal(t, []any{"Section 5 Only"}, out.CaseInfo["statutory_topics"])
	assert.Equal(t, []any{"Prohibition"}, out.Order.Provisions[0]["remedy_types"])
	assert.Equal(t, float64(2), out.Order.Provisions[1]["provision_number"])
	assert.Equal(t, []any{"Other"}, out.Order.Provisions[1]["remedy_types"])

	assert.Equal(t, []string{"Prohibition"}, doc.Case.Order.Provisions[0].RemedyTypes)
}

func TestApplyNeverLeavesProvisionSetsEmpty(t *testing.T) {
	doc, err := Decode("acme.json", []byte(`{
  "case_info": {"docket_number": "C-1"},
  "order": {"provisions": [
    {"provision_number": 1, "title": "Misrepresentations"},
    {"provision_number": 2, "title": "Recordkeeping", "remedy_types": ["Recordkeeping"], "practice_areas": []},
    {"provision_number": 3, "title": "Duration", "statutory_topics": null}
  ]}
}`))
	require.NoError(t, err)

	doc.Apply(Classification{
		StatutoryTopics: []taxonomy.StatutoryTopic{taxonomy.COPPA},
		PracticeAreas:   []taxonomy.PracticeArea{taxonomy.Privacy},
		IndustrySectors: []taxonomy.IndustrySector{taxonomy.Technology},
		Provisions: []ProvisionClassification{{
			Number:          "1",
			StatutoryTopics: []taxonomy.StatutoryTopic{taxonomy.COPPA},
			PracticeAreas:   []taxonomy.PracticeArea{taxonomy.Privacy},
			RemedyTypes:     []taxonomy.RemedyType{taxonomy.Prohibition},
		}},
	})

	provisions := doc.Raw()["order"].(map[string]any)["provisions"].([]any)
	second := provisions[1].(map[string]any)
	assert.Equal(t, []any{"Recordkeeping"}, second["remedy_types"])
	assert.Equal(t, []string{"COPPA"}, second["statutory_topics"])
	assert.Equal(t, []string{"Privacy"}, second["practice_areas"])

	third := provisions[2].(map[string]any)
	assert.Equal(t, []string{"COPPA"}, third["statutory_topics"])
	assert.Equal(t, []string{"Other"}, third["remedy_types"])

	typed := doc.Case.Order.Provisions
	assert.Equal(t, []string{"Recordkeeping"}, typed[1].RemedyTypes)
	assert.Equal(t, []string{"Privacy"}, typed[1].PracticeAreas)
	assert.Equal(t, []string{"Other"}, typed[2].RemedyTypes)
}

func TestResolveDate(t *testing.T) {
	cases := []struct {
		name     string
		info     CaseInfo
		filename string
		want     string
		year     int
	}{
		{name: "explicit", info: CaseInfo{DateIssued: "2017-01-20"}, filename: "x.json", want: "2017-01-20", year: 2017},
		{name: "filename nineties", info: CaseInfo{DateIssued: "1998"}, filename: "03.98, Acme.json", want: "1998-03-15", year: 1998},
		{name: "sanitized filename", filename: "11.05_acme.json", want: "2005-11-15", year: 2005},
		{name: "case_date", info: CaseInfo{CaseDate: &CaseDate{Month: "4", Year: "2021"}}, filename: "acme.json", want: "2021-04-15", year: 2021},
		{name: "bad month falls through", info: CaseInfo{CaseDate: &CaseDate{Month: "6", Year: "2012"}}, filename: "13.12, Acme.json", want: "2012-06-15", year: 2012},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := tc.info
			date, year, err := ResolveDate(&info, tc.filename)
			require.NoError(t, err)
			assert.Equal(t, tc.want, date)
			assert.Equal(t, tc.year, year)
		})
	}

	_, _, err := ResolveDate(&CaseInfo{}, "acme.json")
	assert.ErrorIs(t, err, ErrNoDate)
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "07.19_acme_apps_inc", SanitizeID("07.19, Acme Apps, Inc.json"))
	assert.Equal(t, "a-b_c", SanitizeID("__A-B  C__.json"))
}
