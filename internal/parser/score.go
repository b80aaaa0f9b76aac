package parser

import (
	"math"
	"strings"

	"github.com/cn-address-parser/app/config"
	"github.com/cn-address-parser/app/models"
)

// buildingMarkers are building/floor level words; a street mentioning one
// without any unit marker pins down the building but not the door.
const buildingMarkers = "楼栋幢座层"

// DetailLevel classifies how deep the street string goes: "unit" for a
// room/door/unit marker or a house number not followed by a building word
// ("88号" is a door, "5号楼" is not), "building" for building/floor words,
// otherwise "none".
func DetailLevel(street string) string {
	if strings.Contains(street, "单元") {
		return models.DetailUnit
	}
	runes := []rune(street)
	hasBuilding := false
	for i, r := range runes {
		switch {
		case r == '室' || r == '房' || r == '户':
			return models.DetailUnit
		case r == '号':
			next := rune(0)
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			if !strings.ContainsRune(buildingMarkers, next) {
				return models.DetailUnit
			}
			hasBuilding = true
		case strings.ContainsRune(buildingMarkers, r):
			hasBuilding = true
		}
	}
	if hasBuilding {
		return models.DetailBuilding
	}
	return models.DetailNone
}

// Confidence tính điểm tin cậy theo trọng số cấu hình.
func Confidence(districtResolved bool, detail string, hasPhone bool) float64 {
	w := config.C.Scoring.Weights
	score := w.Base
	if districtResolved {
		score += w.DistrictBonus
	}
	switch detail {
	case models.DetailUnit:
		score += w.UnitBonus
	case models.DetailBuilding:
		score += w.BuildingBonus
	}
	if !hasPhone {
		score -= w.NoPhonePenalty
	}
	if score < 0 {
		score = 0
	}
	if limit := config.C.Thresholds.ConfidenceCap; score > limit {
		score = limit
	}
	return math.Round(score*100) / 100
}

// Deliverable requires a resolved district, unit-level detail, a phone
// number and enough confidence. NeedsDetail is the inverse of unit-level.
func Deliverable(districtResolved bool, detail string, hasPhone bool, confidence float64) bool {
	return districtResolved &&
		detail == models.DetailUnit &&
		hasPhone &&
		confidence >= config.C.Thresholds.Deliverable
}
