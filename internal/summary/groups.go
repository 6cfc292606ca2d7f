package summary

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/orderlens/orderlens/internal/fileutil"
)

const topN = 5

type ViolationBreakdown struct {
	Deceptive int `json:"deceptive"`
	Unfair    int `json:"unfair"`
	Both      int `json:"both"`
}

func (v *ViolationBreakdown) add(violationType string) {
	switch violationType {
	case "unfair":
		v.Unfair++
	case "both":
		v.Both++
	default:
		v.Deceptive++
	}
}

// Dominant prefers deceptive, then unfair, on ties.
func (v ViolationBreakdown) Dominant() string {
	switch {
	case v.Deceptive >= v.Unfair && v.Deceptive >= v.Both:
		return "deceptive"
	case v.Unfair >= v.Both:
		return "unfair"
	default:
		return "both"
	}
}

type GroupStats struct {
	Key                string             `json:"key"`
	Label              string             `json:"label"`
	Count              int                `json:"count"`
	ViolationBreakdown ViolationBreakdown `json:"violation_breakdown"`
	TopCategories      []string           `json:"top_categories"`
	TopCompanies       []string           `json:"top_companies"`
}

type Groupings struct {
	ByYear           []GroupStats `json:"by_year"`
	ByAdministration []GroupStats `json:"by_administration"`
	ByCategory       []GroupStats `json:"by_category"`
}

type Narrative struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Narrative string `json:"narrative"`
}

// ComputeGroups buckets cases by keyFn. A case with several keys is counted
// once in each of its groups. Groups come back in first-seen order.
func ComputeGroups(cases []CaseSummary, keyFn func(CaseSummary) []string) []GroupStats {
	var order []string
	members := make(map[string][]CaseSummary)
	for _, c := range cases {
		for _, key := range keyFn(c) {
			if _, ok := members[key]; !ok {
				order = append(order, key)
			}
			members[key] = append(members[key], c)
		}
	}

	groups := make([]GroupStats, 0, len(order))
	for _, key := range order {
		group := GroupStats{Key: key, Label: key, Count: len(members[key])}
		categories := fileutil.NewCounter[string]()
		companies := fileutil.NewCounter[string]()
		for _, m := range members[key] {
			group.ViolationBreakdown.add(m.ViolationType)
			for _, category := range m.Categories {
				categories.Add(category)
			}
			companies.Add(m.CompanyName)
		}
		group.TopCategories = categories.Top(topN)
		group.TopCompanies = companies.Top(topN)
		groups = append(groups, group)
	}
	return groups
}

// Group computes all three groupings in their published order: years
// ascending, administrations chronologically with Unknown last, categories
// by count descending.
func Group(cases []CaseSummary) Groupings {
	byYear := ComputeGroups(cases, func(c CaseSummary) []string { return []string{strconv.Itoa(c.Year)} })
	sort.SliceStable(byYear, func(i, j int) bool { return byYear[i].Key < byYear[j].Key })

	byAdmin := ComputeGroups(cases, func(c CaseSummary) []string { return []string{c.Administration} })
	sort.SliceStable(byAdmin, func(i, j int) bool {
		return administrationRank(byAdmin[i].Key) < administrationRank(byAdmin[j].Key)
	})

	byCategory := ComputeGroups(cases, func(c CaseSummary) []string { return c.Categories })
	sort.SliceStable(byCategory, func(i, j int) bool { return byCategory[i].Count > byCategory[j].Count })

	return Groupings{ByYear: byYear, ByAdministration: byAdmin, ByCategory: byCategory}
}

// Analyze renders the templated narrative for every group, keyed by
// dimension name then group key.
func Analyze(g Groupings) map[string]map[string]Narrative {
	dimensions := map[string][]GroupStats{
		"by_year":           g.ByYear,
		"by_administration": g.ByAdministration,
		"by_category":       g.ByCategory,
	}
	analysis := make(map[string]map[string]Narrative, len(dimensions))
	for dimension, groups := range dimensions {
		analysis[dimension] = make(map[string]Narrative, len(groups))
		for _, group := range groups {
			analysis[dimension][group.Key] = narrate(group)
		}
	}
	return analysis
}

func narrate(g GroupStats) Narrative {
	plural := "s"
	if g.Count == 1 {
		plural = ""
	}
	dominant := g.ViolationBreakdown.Dominant()
	focus := "various areas"
	if len(g.TopCategories) > 0 {
		focus = strings.Join(g.TopCategories[:min(3, len(g.TopCategories))], ", ")
	}
	return Narrative{
		Title:   g.Label,
		Summary: fmt.Sprintf("%d enforcement action%s, primarily %s violations.", g.Count, plural, dominant),
		Narrative: fmt.Sprintf(
			"The FTC brought %d enforcement action%s in this group, with the majority involving %s practices. Key focus areas included %s.",
			g.Count, plural, dominant, focus,
		),
	}
}

func sortCases(cases []CaseSummary) {
	sort.SliceStable(cases, func(i, j int) bool {
		if cases[i].DateIssued != cases[j].DateIssued {
			return cases[i].DateIssued < cases[j].DateIssued
		}
		return cases[i].ID < cases[j].ID
	})
}
