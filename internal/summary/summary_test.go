package summary

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderlens/orderlens/internal/tagcache"
)

func TestAdministrationBoundaries(t *testing.T) {
	cases := map[string]string{
		"2017-01-20": "Trump (1st)",
		"2017-01-19": "Obama",
		"2021-01-20": "Biden",
		"1993-01-20": "Clinton",
		"1990-06-15": UnknownAdministration,
		"2029-01-20": UnknownAdministration,
	}
	for date, want := range cases {
		assert.Equal(t, want, AdministrationOf(date), date)
	}
}

func TestDedupeKeepsLongerFilename(t *testing.T) {
	short := CaseSummary{ID: "a", DocketNumber: "C-1", SourceFilename: "short.json", DateIssued: "2020-01-01"}
	long := CaseSummary{ID: "b", DocketNumber: "C-1", SourceFilename: "much-longer-one.json", DateIssued: "2020-01-01"}
	require.Len(t, short.SourceFilename, 10)
	require.Len(t, long.SourceFilename, 20)

	for _, input := range [][]CaseSummary{{short, long}, {long, short}} {
		out := Dedupe(input)
		require.Len(t, out, 1)
		assert.Equal(t, "much-longer-one.json", out[0].SourceFilename)
	}

	sameLength := []CaseSummary{
		{ID: "first", DocketNumber: "C-2", SourceFilename: "aaaa.json"},
		{ID: "second", DocketNumber: "C-2", SourceFilename: "bbbb.json"},
		{ID: "nodocket-1", SourceFilename: "x.json", DateIssued: "2001-01-01"},
		{ID: "nodocket-2", SourceFilename: "y.json", DateIssued: "2000-01-01"},
	}
	out := Dedupe(sameLength)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"first", "nodocket-2", "nodocket-1"}, ids(out))
}

func TestGroupingsAndNarratives(t *testing.T) {
	cases := []CaseSummary{
		{ID: "1", Year: 2018, Administration: "Trump (1st)", Categories: []string{"Data Security", "Other"}, ViolationType: "unfair", CompanyName: "Acme"},
		{ID: "2", Year: 2016, Administration: "Obama", Categories: []string{"Data Security"}, ViolationType: "deceptive", CompanyName: "Beta"},
		{ID: "3", Year: 2018, Administration: UnknownAdministration, Categories: []string{"Other"}, ViolationType: "unfair", CompanyName: "Acme"},
		{ID: "4", Year: 2018, Administration: "Trump (1st)", Categories: []string{"Health Data"}, ViolationType: "both", CompanyName: "Gamma"},
	}
	g := Group(cases)

	assert.Equal(t, []string{"2016", "2018"}, keys(g.ByYear))
	assert.Equal(t, []string{"Obama", "Trump (1st)", UnknownAdministration}, keys(g.ByAdministration))
	assert.Equal(t, []string{"Data Security", "Other", "Health Data"}, keys(g.ByCategory))

	y2018 := g.ByYear[1]
	assert.Equal(t, 3, y2018.Count)
	assert.Equal(t, ViolationBreakdown{Unfair: 2, Both: 1}, y2018.ViolationBreakdown)
	assert.Equal(t, []string{"Acme", "Gamma"}, y2018.TopCompanies)
	assert.Equal(t, []string{"Other", "Data Security", "Health Data"}, y2018.TopCategories)

	analysis := Analyze(g)
	assert.Equal(t, Narrative{
		Title:     "2018",
		Summary:   "3 enforcement actions, primarily unfair violations.",
		Narrative: "The FTC brought 3 enforcement actions in this group, with the majority involving unfair practices. Key focus areas included Other, Data Security, Health Data.",
	}, analysis["by_year"]["2018"])
	assert.Equal(t, "1 enforcement action, primarily deceptive violations.", analysis["by_year"]["2016"].Summary)
}

func TestDominantTieBreak(t *testing.T) {
	assert.Equal(t, "deceptive", ViolationBreakdown{}.Dominant())
	assert.Equal(t, "deceptive", ViolationBreakdown{Deceptive: 2, Unfair: 2, Both: 2}.Dominant())
	assert.Equal(t, "unfair", ViolationBreakdown{Deceptive: 1, Unfair: 2, Both: 2}.Dominant())
	assert.Equal(t, "both", ViolationBreakdown{Deceptive: 1, Unfair: 1, Both: 2}.Dominant())
}

func TestBuildReadsTagsAndPublishes(t *testing.T) {
	source := t.TempDir()
	published := t.TempDir()

	writeFile(t, filepath.Join(source, "01.17, Acme.json"), `{
  "case_info": {
    "docket_number": "C-1",
    "company": {"name": "Acme"},
    "date_issued": "2017-01-20",
    "legal_authority": "Section 5 of the FTC Act",
    "business_description": "mobile app developer",
    "statutory_topics": ["COPPA"],
    "practice_areas": ["Privacy"],
    "industry_sectors": ["Technology"]
  },
  "complaint": {"counts": [{"title": "Deceptive privacy policy"}]},
  "order": {"provisions": [
    {"provision_number": 1, "statutory_topics": ["COPPA", "FCRA"], "remedy_types": ["Prohibition"], "requirements": [{"quoted_text": "a"}, {"quoted_text": "b"}]},
    {"provision_number": 2, "statutory_topics": ["COPPA"], "remedy_types": ["Recordkeeping", "Prohibition"]}
  ]}
}`)
	writeFile(t, filepath.Join(source, "01.17, Acme Inc full order.json"), `{
  "case_info": {"docket_number": "C-1", "company": {"name": "Acme Inc"}, "violation_type": "unfair"},
  "order": {"provisions": [{"provision_number": 1}]}
}`)
	writeFile(t, filepath.Join(source, "undated.json"), `{"case_info": {"docket_number": "C-2"}}`)
	writeFile(t, filepath.Join(source, "broken.json"), `{`)

	// Published copy of the long-named file carries tags the source lacks.
	writeFile(t, filepath.Join(published, "01.17_acme_inc_full_order.json"), `{
  "case_info": {"statutory_topics": ["TSR"], "practice_areas": ["Telemarketing"], "industry_sectors": ["Telecom"]},
  "order": {"provisions": [{"provision_number": 1, "statutory_topics": ["TSR"], "remedy_types": ["Monetary Penalty"]}]}
}`)

	builder := &Builder{
		Tags:   tagcache.Open(published, zap.NewNop()),
		Logger: zap.NewNop(),
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	payload, report, err := builder.Build(context.Background(), source)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-02T03:04:05Z", payload.GeneratedAt)
	assert.Equal(t, 4, report.Files)
	assert.Equal(t, 2, report.Processed)
	assert.Len(t, report.Skipped, 2)
	require.Equal(t, 1, payload.TotalCases)

	c := payload.Cases[0]
	assert.Equal(t, "01.17_acme_inc_full_order", c.ID)
	assert.Equal(t, "2017-01-15", c.DateIssued)
	assert.Equal(t, "Obama", c.Administration)
	assert.Equal(t, "unfair", c.ViolationType)
	assert.Equal(t, []string{"TSR"}, c.StatutoryTopics)
	assert.Equal(t, []string{"Monetary Penalty"}, c.RemedyTypes)
	assert.Equal(t, map[string]int{"TSR": 1}, c.ProvisionCountsByTopic)
	assert.Equal(t, map[string]string{"Telecom": "General Telecom"}, c.IndustrySubsectors)

	copied, err := Publish(source, published, payload.Cases, nil)
	require.NoError(t, err)
	assert.Zero(t, copied, "existing published copy must be kept")
}

func TestSummarizeRollsUpProvisionTopics(t *testing.T) {
	source := t.TempDir()
	writeFile(t, filepath.Join(source, "acme.json"), `{
  "case_info": {
    "docket_number": "C-1",
    "company": {"name": "Acme"},
    "date_issued": "2017-01-20",
    "business_description": "mobile app developer",
    "statutory_topics": ["COPPA"],
    "practice_areas": ["Privacy"],
    "industry_sectors": ["Technology"]
  },
  "order": {"provisions": [
    {"provision_number": 1, "statutory_topics": ["COPPA", "FCRA"], "remedy_types": ["Prohibition"], "requirements": [{"quoted_text": "a"}, {"quoted_text": "b"}]},
    {"provision_number": 2, "statutory_topics": ["COPPA"], "remedy_types": ["Recordkeeping", "Prohibition"]}
  ]}
}`)

	payload, _, err := (&Builder{}).Build(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, payload.Cases, 1)

	c := payload.Cases[0]
	assert.Equal(t, "Trump (1st)", c.Administration)
	assert.Equal(t, []string{"COPPA", "FCRA"}, c.StatutoryTopics)
	assert.Equal(t, []string{"Prohibition", "Recordkeeping"}, c.RemedyTypes)
	assert.Equal(t, map[string]int{"COPPA": 2, "FCRA": 1}, c.ProvisionCountsByTopic)
	assert.Equal(t, 2, c.NumProvisions)
	assert.Equal(t, 2, c.NumRequirements)
	assert.Equal(t, map[string]string{"Technology": "Software & Apps"}, c.IndustrySubsectors)
	assert.Equal(t, []string{}, c.Commissioners)

	out := t.TempDir()
	path, err := Write(out, payload)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"by_administration"`))

	published := t.TempDir()
	copied, err := Publish(source, published, payload.Cases, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)
	_, err = os.Stat(filepath.Join(published, "acme.json"))
	assert.NoError(t, err)
}

func ids(cases []CaseSummary) []string {
	out := make([]string, 0, len(cases))
	for _, c := range cases {
		out = append(out, c.ID)
	}
	return out
}

func keys(groups []GroupStats) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Key)
	}
	return out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
