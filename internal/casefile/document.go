package casefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/orderlens/orderlens/internal/fileutil"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

// Document pairs the typed case with the untyped object it was decoded
// from. Tags are written into the untyped object so fields this package
// does not model are preserved on rewrite. Object key order is not.
type Document struct {
	Name string
	Case Case

	raw map[string]any
}

// Classification is a complete set of tags for one case.
type Classification struct {
	StatutoryTopics []taxonomy.StatutoryTopic
	PracticeAreas   []taxonomy.PracticeArea
	IndustrySectors []taxonomy.IndustrySector
	Provisions      []ProvisionClassification
}

// ProvisionClassification tags one provision, matched by provision number.
type ProvisionClassification struct {
	Number          string
	StatutoryTopics []taxonomy.StatutoryTopic
	PracticeAreas   []taxonomy.PracticeArea
	RemedyTypes     []taxonomy.RemedyType
}

// Read loads and decodes the case file at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(filepath.Base(path), data)
}

// Decode parses and validates one case file. Malformed bytes return
// ErrParse; a missing or non-object case_info returns ErrMissingField.
func Decode(name string, data []byte) (*Document, error) {
	var raw map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrParse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w: not a JSON object", name, ErrParse)
	}

	var c Case
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrParse, err)
	}
	if err := taxonomy.Validator().Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, ErrMissingField, jsonFieldName(invalid[0].Field()))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if _, ok := raw["case_info"].(map[string]any); !ok {
		return nil, fmt.Errorf("%s: %w: case_info", name, ErrMissingField)
	}

	return &Document{Name: name, Case: c, raw: raw}, nil
}

// IsClassified reports whether case_info.statutory_topics is present.
// Presence is the marker; an empty or null array still counts.
func (d *Document) IsClassified() bool {
	info, _ := d.raw["case_info"].(map[string]any)
	_, ok := info["statutory_topics"]
	return ok
}

// Apply writes a classification into the document. Each provision takes
// the first unused entry with its provision number. A provision without a
// match keeps the tags it already has; any set it lacks, or holds empty,
// falls back to the case's topics and areas and to the Other remedy.
func (d *Document) Apply(cls Classification) {
	info := d.raw["case_info"].(map[string]any)
	info["statutory_topics"] = taxonomy.Strings(cls.StatutoryTopics)
	info["practice_areas"] = taxonomy.Strings(cls.PracticeAreas)
	info["industry_sectors"] = taxonomy.Strings(cls.IndustrySectors)

	d.Case.CaseInfo.StatutoryTopics = taxonomy.Strings(cls.StatutoryTopics)
	d.Case.CaseInfo.PracticeAreas = taxonomy.Strings(cls.PracticeAreas)
	d.Case.CaseInfo.IndustrySectors = taxonomy.Strings(cls.IndustrySectors)

	used := make([]bool, len(cls.Provisions))
	match := func(number string) (ProvisionClassification, bool) {
		for i, pc := range cls.Provisions {
			if !used[i] && pc.Number == number {
				used[i] = true
				return pc, true
			}
		}
		return ProvisionClassification{}, false
	}

	for i, item := range d.rawProvisions() {
		prov, ok := item.(map[string]any)
		if !ok {
			continue
		}
		number := rawString(prov["provision_number"])
		pc, found := match(number)
		if !found {
			pc = ProvisionClassification{
				StatutoryTopics: cls.StatutoryTopics,
				PracticeAreas:   cls.PracticeAreas,
				RemedyTypes:     []taxonomy.RemedyType{taxonomy.RemedyOther},
			}
			fillEmpty(prov, "statutory_topics", taxonomy.Strings(pc.StatutoryTopics))
			fillEmpty(prov, "practice_areas", taxonomy.Strings(pc.PracticeAreas))
			fillEmpty(prov, "remedy_types", taxonomy.Strings(pc.RemedyTypes))
			if i < len(d.Case.Order.Provisions) {
				typed := &d.Case.Order.Provisions[i]
				typed.StatutoryTopics = orDefault(typed.StatutoryTopics, taxonomy.Strings(pc.StatutoryTopics))
				typed.PracticeAreas = orDefault(typed.PracticeAreas, taxonomy.Strings(pc.PracticeAreas))
				typed.RemedyTypes = orDefault(typed.RemedyTypes, taxonomy.Strings(pc.RemedyTypes))
			}
			continue
		}
		prov["statutory_topics"] = taxonomy.Strings(pc.StatutoryTopics)
		prov["practice_areas"] = taxonomy.Strings(pc.PracticeAreas)
		prov["remedy_types"] = taxonomy.Strings(pc.RemedyTypes)

		if i < len(d.Case.Order.Provisions) {
			typed := &d.Case.Order.Provisions[i]
			typed.StatutoryTopics = taxonomy.Strings(pc.StatutoryTopics)
			typed.PracticeAreas = taxonomy.Strings(pc.PracticeAreas)
			typed.RemedyTypes = taxonomy.Strings(pc.RemedyTypes)
		}
	}
}

func fillEmpty(prov map[string]any, key string, fallback []string) {
	switch v := prov[key].(type) {
	case []any:
		if len(v) > 0 {
			return
		}
	case []string:
		if len(v) > 0 {
			return
		}
	}
	prov[key] = fallback
}

func orDefault(values, fallback []string) []string {
	if len(values) > 0 {
		return values
	}
	return fallback
}

// Raw returns the untyped object, for writers that persist the document.
func (d *Document) Raw() map[string]any {
	return d.raw
}

// Encode serializes the document the way case files are stored.
func (d *Document) Encode() ([]byte, error) {
	return fileutil.MarshalJSON(d.raw)
}

func (d *Document) rawProvisions() []any {
	order, _ := d.raw["order"].(map[string]any)
	provisions, _ := order["provisions"].([]any)
	return provisions
}

func rawString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func jsonFieldName(field string) string {
	switch field {
	case "CaseInfo":
		return "case_info"
	default:
		return field
	}
}
