package parser

import (
	"sort"

	"github.com/cn-address-parser/app/models"
	"github.com/cn-address-parser/internal/refdata"
)

// PostalDecision is the outcome of reconciling the extracted postal code
// with the resolved administrative area.
type PostalDecision struct {
	// Final is the recommended postal code ("" when none can be given).
	Final string

	// Mismatch is set only when administrative and postal evidence still
	// disagree on area after every fallback comparison.
	Mismatch bool
}

// ReconcilePostal so khớp mã bưu chính với khu vực hành chính đã phân giải.
// The resolution may be backfilled from postal evidence when the text alone
// could not settle the area.
func ReconcilePostal(table *refdata.Table, res *Resolution, input string) PostalDecision {
	sameArea := false
	conflict := false

	if input != "" {
		if cand, ok := table.PostalIndex[input]; ok {
			if agreesWithResolution(res, cand) {
				sameArea = true
				backfillResolution(res, cand)
			} else {
				conflict = true
			}
		} else if family := table.PostalPrefixIndex[prefixOf(input)]; len(family) > 0 {
			cand := bestFamilyCandidate(family, res)
			if res.Province == "" && res.City == "" && res.District == "" {
				sameArea = true
				backfillResolution(res, cand)
			} else if agreesWithResolution(res, cand) {
				backfillResolution(res, cand)
			} else {
				conflict = true
			}
		}
	}

	// Street-level codes are finer than the registered district code;
	// sharing the 3-digit metro family still counts as the same area.
	if !sameArea && input != "" && samePostalFamily(input, res.AdminPostal) {
		sameArea = true
	}

	switch {
	case input != "" && sameArea:
		return PostalDecision{Final: input}
	case res.AdminPostal != "" && input != "":
		return PostalDecision{Final: res.AdminPostal, Mismatch: true}
	case res.AdminPostal != "":
		return PostalDecision{Final: res.AdminPostal}
	case input != "" && !conflict:
		// Codes attached to non-mainland areas are always flagged.
		mismatch := res.Province != "" && !IsMainlandProvince(res.Province)
		return PostalDecision{Final: input, Mismatch: mismatch}
	case input != "":
		if fb, ok := table.ProvinceFallback[res.Province]; ok {
			adoptCentroid(res, fb)
			return PostalDecision{Final: fb.PostalCode, Mismatch: true}
		}
		return PostalDecision{Mismatch: true}
	default:
		return PostalDecision{}
	}
}

// agreesWithResolution reports whether a postal candidate names the same
// area as the resolution: every field both sides have must match. A fully
// unresolved triple agrees vacuously.
func agreesWithResolution(res *Resolution, cand models.DivisionCandidate) bool {
	candCity := cand.City
	if municipalities[cand.Province] && (candCity == "" || municipalityPlaceholders[candCity]) {
		candCity = cand.Province
	}
	if res.Province != "" && cand.Province != "" && res.Province != cand.Province {
		return false
	}
	if res.City != "" && candCity != "" && res.City != candCity {
		return false
	}
	if res.District != "" && cand.District != "" && res.District != cand.District {
		return false
	}
	return true
}

// backfillResolution adopts whatever the candidate knows that the text did
// not reveal.
func backfillResolution(res *Resolution, cand models.DivisionCandidate) {
	if res.Province == "" {
		res.Province = cand.Province
	}
	if res.City == "" {
		res.City = cand.City
		if municipalities[res.Province] && municipalityPlaceholders[res.City] {
			res.City = res.Province
		}
	}
	if res.District == "" {
		res.District = cand.District
	}
	if res.AdminPostal == "" {
		res.AdminPostal = cand.PostalCode
	}
	adoptCentroid(res, cand)
}

func adoptCentroid(res *Resolution, cand models.DivisionCandidate) {
	if res.Lat == nil && cand.Lat != nil {
		res.Lat = cand.Lat
		res.Lng = cand.Lng
	}
}

// bestFamilyCandidate ranks a 3-digit postal family: province match, city
// match, has-district, mainland priority, then a deterministic key.
func bestFamilyCandidate(family []models.DivisionCandidate, res *Resolution) models.DivisionCandidate {
	ranked := make([]models.DivisionCandidate, len(family))
	copy(ranked, family)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if pm, qm := a.Province == res.Province, b.Province == res.Province; pm != qm {
			return pm
		}
		if cm, dm := a.City == res.City, b.City == res.City; cm != dm {
			return cm
		}
		if hd, hd2 := a.District != "", b.District != ""; hd != hd2 {
			return hd
		}
		if am, bm := IsMainlandProvince(a.Province), IsMainlandProvince(b.Province); am != bm {
			return am
		}
		return a.Key() < b.Key()
	})
	return ranked[0]
}

func samePostalFamily(a, b string) bool {
	return len(a) >= 3 && len(b) >= 3 && a[:3] == b[:3]
}

func prefixOf(code string) string {
	if len(code) < 3 {
		return code
	}
	return code[:3]
}
