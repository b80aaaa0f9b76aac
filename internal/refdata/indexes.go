package refdata

import (
	"sort"
	"sync"

	"github.com/cn-address-parser/app/models"
)

// Common administrative suffixes, longest first. Stripping them from a
// division name yields the colloquial short forms users actually write
// ("昌平区" → "昌平", "高唐县" → "高唐").
var adminSuffixes = []string{
	"维吾尔自治区",
	"壮族自治区",
	"回族自治区",
	"特别行政区",
	"自治区",
	"自治州",
	"办事处",
	"开发区",
	"高新区",
	"地区",
	"新区",
	"街道",
	"盟",
	"省",
	"市",
	"区",
	"县",
	"旗",
	"镇",
	"乡",
	"州",
}

// Table holds the four read-only indexes derived from the division tree.
// Built once per process; every parse operation shares it without locking.
type Table struct {
	// AliasIndex maps an alias (canonical name or short form) to the
	// candidate divisions it may refer to, in tree document order.
	AliasIndex map[string][]models.DivisionCandidate

	// PostalIndex maps a 6-digit postal code to its division. First
	// registration wins on collision; manual overrides may replace.
	PostalIndex map[string]models.DivisionCandidate

	// PostalPrefixIndex maps the leading 3 digits of a postal code to all
	// divisions sharing that metro postal family.
	PostalPrefixIndex map[string][]models.DivisionCandidate

	// ProvinceFallback maps a province name to a representative district
	// candidate, used as the last-resort postal/centroid source.
	ProvinceFallback map[string]models.DivisionCandidate
}

type aliasOverride struct {
	Alias     string
	Candidate models.DivisionCandidate
}

type postalOverride struct {
	Code      string
	Candidate models.DivisionCandidate
}

// Manual corrections for spots where the registered district code is too
// coarse for real delivery segments, or where a colloquial area name has no
// generated alias (片区 names like 北京沙河 belong to 昌平区 but are not
// division names themselves).
var (
	shaheLat = 40.220660
	shaheLng = 116.231204

	manualAliasOverrides = []aliasOverride{
		{
			Alias: "北京沙河",
			Candidate: models.DivisionCandidate{
				Level:      models.LevelDistrict,
				Province:   "北京市",
				City:       "北京市",
				District:   "昌平区",
				PostalCode: "102200",
				Lat:        &shaheLat,
				Lng:        &shaheLng,
			},
		},
	}

	manualPostalOverrides = []postalOverride{
		{
			Code: "102206",
			Candidate: models.DivisionCandidate{
				Level:      models.LevelDistrict,
				Province:   "北京市",
				City:       "北京市",
				District:   "昌平区",
				PostalCode: "102206",
				Lat:        &shaheLat,
				Lng:        &shaheLng,
			},
		},
	}
)

// GenerateAliases returns the canonical name plus every suffix-stripped
// short form that keeps at least two characters, longest first.
func GenerateAliases(name string) []string {
	if name == "" {
		return nil
	}
	aliases := []string{name}
	runes := []rune(name)
	// Longest suffix wins and only one strip applies: 新疆维吾尔自治区
	// yields 新疆, not the intermediate 新疆维吾尔.
	for _, suf := range adminSuffixes {
		sufRunes := []rune(suf)
		if len(runes) <= len(sufRunes) {
			continue
		}
		if string(runes[len(runes)-len(sufRunes):]) != suf {
			continue
		}
		short := string(runes[:len(runes)-len(sufRunes)])
		if len([]rune(short)) >= 2 {
			aliases = append(aliases, short)
		}
		break
	}
	return aliases
}

// AliasesForNames generates the strip list for the street normalizer: all
// aliases of the resolved province/city/district, longest first.
func AliasesForNames(names ...string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		if n == "" {
			continue
		}
		for _, a := range GenerateAliases(n) {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := len([]rune(out[i])), len([]rune(out[j]))
		if li != lj {
			return li > lj
		}
		return out[i] < out[j]
	})
	return out
}

// BuildTable derives the four indexes from a division tree. Exported so
// tests can run the engine against synthetic tables.
func BuildTable(provinces []*DivisionNode) *Table {
	t := &Table{
		AliasIndex:        make(map[string][]models.DivisionCandidate),
		PostalIndex:       make(map[string]models.DivisionCandidate),
		PostalPrefixIndex: make(map[string][]models.DivisionCandidate),
		ProvinceFallback:  make(map[string]models.DivisionCandidate),
	}

	for _, prov := range provinces {
		provCand := models.DivisionCandidate{
			Level:    models.LevelProvince,
			Province: prov.Name,
		}
		t.addAliases(prov.Name, provCand)

		for _, city := range prov.Children {
			cityCand := models.DivisionCandidate{
				Level:    models.LevelCity,
				Province: prov.Name,
				City:     city.Name,
			}
			t.addAliases(city.Name, cityCand)

			for _, dist := range city.Children {
				distCand := models.DivisionCandidate{
					Level:      models.LevelDistrict,
					Province:   prov.Name,
					City:       city.Name,
					District:   dist.Name,
					PostalCode: dist.PostalCode,
					Lat:        dist.Lat,
					Lng:        dist.Lng,
				}
				t.addAliases(dist.Name, distCand)
				t.registerPostal(distCand)
			}
		}
	}

	for _, ov := range manualAliasOverrides {
		t.AliasIndex[ov.Alias] = append(t.AliasIndex[ov.Alias], ov.Candidate)
	}
	for _, ov := range manualPostalOverrides {
		t.PostalIndex[ov.Code] = ov.Candidate
		if prefix, ok := postalPrefix(ov.Code); ok {
			t.PostalPrefixIndex[prefix] = append(t.PostalPrefixIndex[prefix], ov.Candidate)
		}
	}

	return t
}

func (t *Table) addAliases(name string, cand models.DivisionCandidate) {
	for _, alias := range GenerateAliases(name) {
		t.AliasIndex[alias] = append(t.AliasIndex[alias], cand)
	}
}

func (t *Table) registerPostal(cand models.DivisionCandidate) {
	if cand.PostalCode == "" {
		return
	}
	if _, exists := t.PostalIndex[cand.PostalCode]; !exists {
		t.PostalIndex[cand.PostalCode] = cand
	}
	if prefix, ok := postalPrefix(cand.PostalCode); ok {
		t.PostalPrefixIndex[prefix] = append(t.PostalPrefixIndex[prefix], cand)
	}
	if _, exists := t.ProvinceFallback[cand.Province]; !exists {
		t.ProvinceFallback[cand.Province] = cand
	}
}

func postalPrefix(code string) (string, bool) {
	if len(code) < 3 {
		return "", false
	}
	return code[:3], true
}

var (
	loadOnce  sync.Once
	loaded    *Table
	loadError error
)

// Load builds the process-wide table from the embedded tree. Safe under
// concurrent first access; subsequent calls return the cached table. A load
// failure is sticky: the process cannot serve and the caller should treat
// it as fatal.
func Load() (*Table, error) {
	loadOnce.Do(func() {
		tree, err := LoadTree()
		if err != nil {
			loadError = err
			return
		}
		loaded = BuildTable(tree)
	})
	return loaded, loadError
}
