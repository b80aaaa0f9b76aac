package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ScoringWeights struct {
	Base           float64 `yaml:"base" json:"base"`
	DistrictBonus  float64 `yaml:"district_bonus" json:"district_bonus"`
	UnitBonus      float64 `yaml:"unit_bonus" json:"unit_bonus"`
	BuildingBonus  float64 `yaml:"building_bonus" json:"building_bonus"`
	NoPhonePenalty float64 `yaml:"no_phone_penalty" json:"no_phone_penalty"`
}

type Thresholds struct {
	// Deliverable is the minimum confidence for deliverable=true.
	Deliverable float64 `yaml:"deliverable" json:"deliverable"`
	// ConfidenceCap keeps confidence strictly below 1.0: the engine is a
	// heuristic and never claims certainty.
	ConfidenceCap float64 `yaml:"confidence_cap" json:"confidence_cap"`
}

type BatchCfg struct {
	MaxAddresses int `yaml:"max_addresses" json:"max_addresses"`
}

type CacheCfg struct {
	LRUSize  int    `yaml:"lru_size" json:"lru_size"`
	RedisTTL string `yaml:"redis_ttl" json:"redis_ttl"`
}

type ParserCfg struct {
	Scoring struct {
		Weights ScoringWeights `yaml:"weights" json:"weights"`
	} `yaml:"scoring" json:"scoring"`
	Thresholds Thresholds `yaml:"thresholds" json:"thresholds"`
	Batch      BatchCfg   `yaml:"batch" json:"batch"`
	Cache      CacheCfg   `yaml:"cache" json:"cache"`
}

// C là cấu hình toàn cục; khởi tạo với defaults, Load ghi đè từ file.
var C = Defaults()

// Defaults returns the built-in configuration. The engine must work with
// no config file at all.
func Defaults() ParserCfg {
	var c ParserCfg
	c.Scoring.Weights = ScoringWeights{
		Base:           0.6,
		DistrictBonus:  0.2,
		UnitBonus:      0.15,
		BuildingBonus:  0.05,
		NoPhonePenalty: 0.1,
	}
	c.Thresholds = Thresholds{Deliverable: 0.8, ConfidenceCap: 0.99}
	c.Batch = BatchCfg{MaxAddresses: 1000}
	c.Cache = CacheCfg{LRUSize: 4096, RedisTTL: "24h"}
	return c
}

// Load đọc file YAML và ghi đè lên defaults.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c := Defaults()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return err
	}
	C = c
	return nil
}
