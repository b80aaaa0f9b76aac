package refdata

import (
	"reflect"
	"testing"

	"github.com/cn-address-parser/app/models"
)

func TestLoadTree(t *testing.T) {
	provinces, err := LoadTree()
	if err != nil {
		t.Fatalf("LoadTree failed: %v", err)
	}
	if len(provinces) == 0 {
		t.Fatal("no provinces loaded")
	}
	// Document order must survive decoding.
	if provinces[0].Name != "北京市" {
		t.Errorf("first province = %q, want 北京市", provinces[0].Name)
	}

	var changping *DivisionNode
	for _, city := range provinces[0].Children {
		for _, d := range city.Children {
			if d.Name == "昌平区" {
				changping = d
			}
		}
	}
	if changping == nil {
		t.Fatal("昌平区 not found under 北京市")
	}
	if changping.PostalCode != "102200" {
		t.Errorf("昌平区 postal = %q, want 102200", changping.PostalCode)
	}
	if changping.Pinyin != "ChangPing" {
		t.Errorf("昌平区 pinyin = %q, want ChangPing", changping.Pinyin)
	}
	if changping.Lat == nil || changping.Lng == nil {
		t.Fatal("昌平区 missing centroid")
	}
	// center is stored [lng, lat]
	if *changping.Lng < 116 || *changping.Lng > 117 || *changping.Lat < 40 || *changping.Lat > 41 {
		t.Errorf("昌平区 centroid swapped or wrong: lat=%v lng=%v", *changping.Lat, *changping.Lng)
	}
}

func TestGenerateAliases(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "district",
			input:    "昌平区",
			expected: []string{"昌平区", "昌平"},
		},
		{
			name:     "long autonomous region suffix",
			input:    "新疆维吾尔自治区",
			expected: []string{"新疆维吾尔自治区", "新疆"},
		},
		{
			name:     "short form needs two runes",
			input:    "东区",
			expected: []string{"东区"},
		},
		{
			name:     "sar suffix",
			input:    "香港特别行政区",
			expected: []string{"香港特别行政区", "香港"},
		},
		{
			name:     "county",
			input:    "高唐县",
			expected: []string{"高唐县", "高唐"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GenerateAliases(tc.input); !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("GenerateAliases(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestBuildTableIndexes(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	t.Run("homonym districts all indexed", func(t *testing.T) {
		cands := table.AliasIndex["鼓楼区"]
		if len(cands) != 3 {
			t.Fatalf("鼓楼区 candidates = %d, want 3 (南京/福州/开封)", len(cands))
		}
		provs := map[string]bool{}
		for _, c := range cands {
			provs[c.Province] = true
		}
		for _, want := range []string{"江苏省", "福建省", "河南省"} {
			if !provs[want] {
				t.Errorf("鼓楼区 missing candidate in %s", want)
			}
		}
	})

	t.Run("short form shares candidates with canonical", func(t *testing.T) {
		full := table.AliasIndex["滨江区"]
		short := table.AliasIndex["滨江"]
		if !reflect.DeepEqual(full, short) {
			t.Errorf("滨江区/滨江 candidate lists differ: %v vs %v", full, short)
		}
	})

	t.Run("postal index", func(t *testing.T) {
		c, ok := table.PostalIndex["310051"]
		if !ok {
			t.Fatal("310051 not in PostalIndex")
		}
		if c.District != "滨江区" || c.Province != "浙江省" {
			t.Errorf("310051 = %s/%s, want 浙江省/滨江区", c.Province, c.District)
		}
	})

	t.Run("postal prefix family", func(t *testing.T) {
		family := table.PostalPrefixIndex["310"]
		if len(family) != 3 {
			t.Errorf("310 family size = %d, want 3 (Hangzhou districts)", len(family))
		}
	})

	t.Run("province fallback is first district with a code", func(t *testing.T) {
		fb, ok := table.ProvinceFallback["北京市"]
		if !ok {
			t.Fatal("no fallback for 北京市")
		}
		if fb.PostalCode != "100010" {
			t.Errorf("北京市 fallback postal = %q, want 100010 (东城区)", fb.PostalCode)
		}
	})

	t.Run("manual alias override", func(t *testing.T) {
		cands := table.AliasIndex["北京沙河"]
		if len(cands) != 1 || cands[0].District != "昌平区" {
			t.Errorf("北京沙河 = %v, want single 昌平区 candidate", cands)
		}
	})

	t.Run("manual postal override", func(t *testing.T) {
		c, ok := table.PostalIndex["102206"]
		if !ok || c.District != "昌平区" {
			t.Errorf("102206 = %v (ok=%v), want 昌平区", c, ok)
		}
	})

	t.Run("sar districts carry no postal code", func(t *testing.T) {
		for _, c := range table.AliasIndex["中西区"] {
			if c.PostalCode != "" {
				t.Errorf("中西区 has postal %q, want none", c.PostalCode)
			}
		}
	})
}

func TestFirstPostalRegistrationWins(t *testing.T) {
	lat, lng := 1.0, 2.0
	tree := []*DivisionNode{
		{
			Name: "甲省",
			Children: []*DivisionNode{
				{
					Name: "乙市",
					Children: []*DivisionNode{
						{Name: "丙区", PostalCode: "123456", Lat: &lat, Lng: &lng},
						{Name: "丁区", PostalCode: "123456"},
					},
				},
			},
		},
	}
	table := BuildTable(tree)
	got := table.PostalIndex["123456"]
	if got.District != "丙区" {
		t.Errorf("PostalIndex[123456] = %s, want 丙区 (first registration)", got.District)
	}
	if len(table.PostalPrefixIndex["123"]) != 2 {
		t.Errorf("prefix family size = %d, want 2", len(table.PostalPrefixIndex["123"]))
	}
	if fb := table.ProvinceFallback["甲省"]; fb.District != "丙区" {
		t.Errorf("fallback = %s, want 丙区", fb.District)
	}
	if got.Level != models.LevelDistrict {
		t.Errorf("level = %v, want district", got.Level)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	a, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	b, _ := Load()
	if a != b {
		t.Error("Load returned different table instances")
	}
}
