package parser

import (
	"strings"
	"testing"
)

func TestRomanize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"division", "昌平区", "ChangPingQu"},
		{"city", "北京", "BeiJing"},
		{"digits kept", "建国路88号", "JianGuoLu88Hao"},
		{"latin kept", "XX科技园", "XXKeJiYuan"},
		{"empty", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Romanize(tc.input); got != tc.expected {
				t.Errorf("Romanize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestComposeCN(t *testing.T) {
	t.Run("city repeated in municipality is omitted", func(t *testing.T) {
		got := ComposeCN("北京市", "北京市", "朝阳区", "建国路88号")
		if got != "北京市朝阳区建国路88号" {
			t.Errorf("ComposeCN = %q", got)
		}
	})
	t.Run("distinct city kept", func(t *testing.T) {
		got := ComposeCN("浙江省", "杭州市", "滨江区", "长河街道1号")
		if got != "浙江省杭州市滨江区长河街道1号" {
			t.Errorf("ComposeCN = %q", got)
		}
	})
	t.Run("unresolved parts drop out", func(t *testing.T) {
		got := ComposeCN("", "", "", "某地1号")
		if got != "某地1号" {
			t.Errorf("ComposeCN = %q", got)
		}
	})
}

func TestComposeEN(t *testing.T) {
	got := ComposeEN("浙江省", "杭州市", "滨江区", "长河街道1号", "310052")
	want := "ChangHeJieDao1Hao, BinJiangQu, HangZhouShi, ZheJiangSheng, 310052, China"
	if got != want {
		t.Errorf("ComposeEN = %q, want %q", got, want)
	}

	t.Run("municipality city omitted", func(t *testing.T) {
		got := ComposeEN("北京市", "北京市", "朝阳区", "建国路88号", "100020")
		if strings.Contains(got, "BeiJingShi, BeiJingShi") {
			t.Errorf("city repeated: %q", got)
		}
		if !strings.HasSuffix(got, "100020, China") {
			t.Errorf("missing postal/country tail: %q", got)
		}
	})

	t.Run("empty postal omitted", func(t *testing.T) {
		got := ComposeEN("香港特别行政区", "香港特别行政区", "中西区", "某街10号", "")
		if strings.Contains(got, ", , ") {
			t.Errorf("empty component leaked: %q", got)
		}
		if !strings.HasSuffix(got, "China") {
			t.Errorf("missing country suffix: %q", got)
		}
	})
}
