package parser

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cn-address-parser/app/models"
	"github.com/cn-address-parser/internal/refdata"
)

// Mainland province-name prefixes. Resolution and postal reconciliation
// give mainland candidates priority over Hong Kong/Macau/Taiwan homonyms,
// and codes attached to non-mainland areas are always flagged.
var mainlandProvincePrefixes = []string{
	"北京", "天津", "上海", "重庆",
	"河北", "山西", "辽宁", "吉林", "黑龙江",
	"江苏", "浙江", "安徽", "福建", "江西", "山东",
	"河南", "湖北", "湖南", "广东", "海南",
	"四川", "贵州", "云南", "陕西", "甘肃", "青海",
	"内蒙古", "广西", "西藏", "宁夏", "新疆",
}

// IsMainlandProvince báo cáo tỉnh có thuộc đại lục hay không.
func IsMainlandProvince(province string) bool {
	for _, p := range mainlandProvincePrefixes {
		if strings.HasPrefix(province, p) {
			return true
		}
	}
	return false
}

// Generic city placeholders used by municipality rows in division data.
var municipalityPlaceholders = map[string]bool{
	"市辖区": true,
	"市辖县": true,
	"区":   true,
	"县":   true,
}

var municipalities = map[string]bool{
	"北京市": true,
	"上海市": true,
	"天津市": true,
	"重庆市": true,
}

// aliasHit — một lần khớp alias trong văn bản.
type aliasHit struct {
	alias string
	cand  models.DivisionCandidate
}

// Resolution is the administrative triple plus the district-level postal
// code and centroid that came with it. Empty string means unresolved.
type Resolution struct {
	Province string
	City     string
	District string

	// Registered postal code of the resolved district, before any
	// reconciliation with the code found in the text.
	AdminPostal string

	Lat *float64
	Lng *float64
}

// Resolver matches residual text against the alias index and settles
// homonyms with context filters and mainland priority.
type Resolver struct {
	table  *refdata.Table
	logger *zap.Logger
}

// NewResolver tạo mới Resolver.
func NewResolver(table *refdata.Table, logger *zap.Logger) *Resolver {
	return &Resolver{table: table, logger: logger}
}

// Resolve determines province/city/district for the whitespace-stripped
// residual text. Order: district first (most specific), then city under the
// resolved province, then a second district pass under province+city, then
// province alone.
func (r *Resolver) Resolve(text string) Resolution {
	hits, provSet, citySet := r.collectHits(text)

	var res Resolution
	if d, ok := pickBest(hits, models.LevelDistrict, "", "", provSet, citySet); ok {
		r.adoptDistrict(&res, d)
	}

	if res.City == "" {
		if c, ok := pickBest(hits, models.LevelCity, res.Province, "", provSet, citySet); ok {
			res.City = c.City
			if res.Province == "" {
				res.Province = c.Province
			}
		}
	}

	if res.District == "" && (res.Province != "" || res.City != "") {
		if d, ok := pickBest(hits, models.LevelDistrict, res.Province, res.City, provSet, citySet); ok {
			r.adoptDistrict(&res, d)
		}
	}

	if res.Province == "" {
		if p, ok := pickBest(hits, models.LevelProvince, "", "", provSet, citySet); ok {
			res.Province = p.Province
		}
	}

	// Municipality fix-up: 北京/上海/天津/重庆 carry placeholder city rows;
	// callers expect city == province there.
	if municipalities[res.Province] && (res.City == "" || municipalityPlaceholders[res.City]) {
		res.City = res.Province
	}

	r.logger.Debug("resolved administrative triple",
		zap.String("province", res.Province),
		zap.String("city", res.City),
		zap.String("district", res.District))
	return res
}

func (r *Resolver) adoptDistrict(res *Resolution, d models.DivisionCandidate) {
	res.Province = d.Province
	res.City = d.City
	res.District = d.District
	res.AdminPostal = d.PostalCode
	res.Lat = d.Lat
	res.Lng = d.Lng
}

// collectHits gathers every alias contained in the text, plus the sets of
// provinces and cities literally present. Those sets act as context
// filters: "河南郑州二七" must land in Henan even though 二七区 alone would
// also match elsewhere.
func (r *Resolver) collectHits(text string) (hits []aliasHit, provSet, citySet map[string]bool) {
	provSet = map[string]bool{}
	citySet = map[string]bool{}
	for alias, cands := range r.table.AliasIndex {
		if !strings.Contains(text, alias) {
			continue
		}
		for _, cand := range cands {
			hits = append(hits, aliasHit{alias: alias, cand: cand})
			switch cand.Level {
			case models.LevelProvince:
				provSet[cand.Province] = true
			case models.LevelCity:
				citySet[cand.City] = true
			}
		}
	}
	return hits, provSet, citySet
}

// pickBest filters hits of one level against the established province/city
// and the text-wide province set, then ranks: mainland first, then context
// city agreement, then alias length, with a lexicographic key as the final
// deterministic tie-break.
func pickBest(hits []aliasHit, level models.DivisionLevel, province, city string, provSet, citySet map[string]bool) (models.DivisionCandidate, bool) {
	var eligible []aliasHit
	for _, h := range hits {
		if h.cand.Level != level {
			continue
		}
		if province != "" && h.cand.Province != province {
			continue
		}
		if city != "" && h.cand.City != "" && h.cand.City != city {
			continue
		}
		if len(provSet) > 0 && !provSet[h.cand.Province] {
			continue
		}
		eligible = append(eligible, h)
	}
	if len(eligible) == 0 {
		return models.DivisionCandidate{}, false
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		am, bm := IsMainlandProvince(a.cand.Province), IsMainlandProvince(b.cand.Province)
		if am != bm {
			return am
		}
		ac, bc := citySet[a.cand.City], citySet[b.cand.City]
		if ac != bc {
			return ac
		}
		al, bl := len([]rune(a.alias)), len([]rune(b.alias))
		if al != bl {
			return al > bl
		}
		return a.cand.Key() < b.cand.Key()
	})
	return eligible[0].cand, true
}
