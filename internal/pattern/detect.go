// Package pattern finds provision language that recurs across cases.
package pattern

import (
	"sort"
	"strings"

	"github.com/orderlens/orderlens/internal/fileutil"
	"github.com/orderlens/orderlens/internal/shard"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

type Options struct {
	// MinCases is how many distinct cases a group needs to qualify.
	MinCases int
	// MinPrefixWords guards prefix merges against short parents like "the".
	MinPrefixWords int
	// FullTextLimit is how many of the most recent variants keep full text.
	FullTextLimit int
	PreviewChars  int
}

func DefaultOptions() Options {
	return Options{MinCases: 3, MinPrefixWords: 3, FullTextLimit: 30, PreviewChars: 300}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinCases <= 0 {
		o.MinCases = d.MinCases
	}
	if o.MinPrefixWords <= 0 {
		o.MinPrefixWords = d.MinPrefixWords
	}
	if o.FullTextLimit <= 0 {
		o.FullTextLimit = d.FullTextLimit
	}
	if o.PreviewChars <= 0 {
		o.PreviewChars = d.PreviewChars
	}
	return o
}

type Variant struct {
	CaseID          string `json:"case_id"`
	CompanyName     string `json:"company_name"`
	DateIssued      string `json:"date_issued"`
	Year            int    `json:"year"`
	ProvisionNumber string `json:"provision_number"`
	Title           string `json:"title"`
	TextPreview     string `json:"text_preview"`
	VerbatimText    string `json:"verbatim_text"`
	DocketNumber    string `json:"docket_number"`
	FTCURL          string `json:"ftc_url,omitempty"`
	Administration  string `json:"administration"`
}

type Group struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	IsStructural      bool      `json:"is_structural"`
	CaseCount         int       `json:"case_count"`
	VariantCount      int       `json:"variant_count"`
	YearRange         [2]int    `json:"year_range"`
	MostRecentYear    int       `json:"most_recent_year"`
	EnforcementTopics []string  `json:"enforcement_topics"`
	PracticeAreas     []string  `json:"practice_areas"`
	Variants          []Variant `json:"variants"`
}

// Stats describes one detection pass.
type Stats struct {
	Provisions  int `json:"provisions"`
	TitleGroups int `json:"title_groups"`
	Merged      int `json:"merged"`
	Qualified   int `json:"qualified"`
}

type rawGroup struct {
	key        string
	provisions []shard.ProvisionRecord
	titles     *fileutil.Counter[string]
	cases      map[string]bool
}

func (g *rawGroup) add(p shard.ProvisionRecord) {
	g.provisions = append(g.provisions, p)
	g.titles.Add(p.Title)
	g.cases[p.CaseID] = true
}

// Detect groups provisions by normalized title, folds small groups into
// established ones that prefix them, and materializes every group with
// enough distinct cases. Groups are ordered by most recent year, then by
// case count, both descending.
func Detect(provisions []shard.ProvisionRecord, opts Options) ([]Group, Stats) {
	opts = opts.withDefaults()
	stats := Stats{Provisions: len(provisions)}

	var order []*rawGroup
	byKey := make(map[string]*rawGroup)
	for _, p := range provisions {
		key := NormalizeTitle(p.Title)
		g, ok := byKey[key]
		if !ok {
			g = &rawGroup{key: key, titles: fileutil.NewCounter[string](), cases: make(map[string]bool)}
			byKey[key] = g
			order = append(order, g)
		}
		g.add(p)
	}
	stats.TitleGroups = len(order)

	stats.Merged = prefixMerge(order, opts)

	var groups []Group
	for _, g := range order {
		if g.provisions == nil || len(g.cases) < opts.MinCases {
			continue
		}
		groups = append(groups, materialize(g, opts))
	}
	stats.Qualified = len(groups)

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].MostRecentYear != groups[j].MostRecentYear {
			return groups[i].MostRecentYear > groups[j].MostRecentYear
		}
		return groups[i].CaseCount > groups[j].CaseCount
	})
	return groups, stats
}

// prefixMerge moves each orphan (fewer than MinCases cases) into the
// largest qualified group whose key, of at least MinPrefixWords words, is a
// word prefix of the orphan's key. Merged orphans are emptied in place.
func prefixMerge(order []*rawGroup, opts Options) int {
	ranked := append([]*rawGroup(nil), order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].cases) > len(ranked[j].cases)
	})

	merged := 0
	for _, small := range ranked {
		if small.provisions == nil || len(small.cases) >= opts.MinCases {
			continue
		}
		for _, large := range ranked {
			if large == small || large.provisions == nil || len(large.cases) < opts.MinCases {
				continue
			}
			if wordCount(large.key) < opts.MinPrefixWords || !strings.HasPrefix(small.key, large.key+" ") {
				continue
			}
			for _, p := range small.provisions {
				large.add(p)
			}
			small.provisions = nil
			merged++
			break
		}
	}
	return merged
}

func materialize(g *rawGroup, opts Options) Group {
	name := g.titles.Top(1)[0]

	structural := 0
	structuralCategories := taxonomy.StructuralCategories()
	for _, p := range g.provisions {
		if structuralCategories[p.Category] {
			structural++
		}
	}

	variants := append([]shard.ProvisionRecord(nil), g.provisions...)
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].DateIssued < variants[j].DateIssued
	})

	minYear, maxYear := variants[0].Year, variants[0].Year
	var topics, areas []string
	for _, p := range variants {
		minYear = min(minYear, p.Year)
		maxYear = max(maxYear, p.Year)
		topics = append(topics, p.StatutoryTopics...)
		areas = append(areas, p.PracticeAreas...)
	}

	cutoff := max(0, len(variants)-opts.FullTextLimit)
	out := make([]Variant, 0, len(variants))
	for i, p := range variants {
		text := p.VerbatimText
		if text == "" {
			text = p.Summary
		}
		v := Variant{
			CaseID:          p.CaseID,
			CompanyName:     p.CompanyName,
			DateIssued:      p.DateIssued,
			Year:            p.Year,
			ProvisionNumber: p.ProvisionNumber,
			Title:           p.Title,
			TextPreview:     preview(text, opts.PreviewChars),
			DocketNumber:    p.DocketNumber,
			FTCURL:          p.FTCURL,
			Administration:  p.Administration,
		}
		if i >= cutoff {
			v.VerbatimText = p.VerbatimText
		}
		out = append(out, v)
	}

	return Group{
		ID:                Slug(name),
		Name:              name,
		IsStructural:      structural*2 > len(g.provisions),
		CaseCount:         len(g.cases),
		VariantCount:      len(out),
		YearRange:         [2]int{minYear, maxYear},
		MostRecentYear:    maxYear,
		EnforcementTopics: sortedSet(topics),
		PracticeAreas:     sortedSet(areas),
		Variants:          out,
	}
}

func sortedSet(values []string) []string {
	out := fileutil.Dedupe(values)
	sort.Strings(out)
	return out
}
