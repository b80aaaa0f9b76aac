package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cn-address-parser/app/controllers"
	"github.com/cn-address-parser/app/services"
	"github.com/cn-address-parser/internal/parser"
	"github.com/cn-address-parser/internal/refdata"
)

func newTestRouter(t *testing.T, authCfg AuthConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	table, err := refdata.Load()
	if err != nil {
		t.Fatalf("refdata.Load failed: %v", err)
	}
	logger := zap.NewNop()
	cache, err := services.NewLRUCacheService(128, logger)
	if err != nil {
		t.Fatalf("cache init failed: %v", err)
	}
	parseService := services.NewParseService(parser.NewAddressParser(table, logger), cache, logger)
	parseController := controllers.NewParseController(parseService, logger)

	router := gin.New()
	SetupAllRoutes(router, parseController, authCfg, logger)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func keylessAuth() AuthConfig {
	return AuthConfig{APIKeys: map[string]bool{}, AllowKeyless: true}
}

func TestParseEndpoint(t *testing.T) {
	router := newTestRouter(t, keylessAuth())

	w := postJSON(router, "/parse", gin.H{"raw_address": "北京市朝阳区建国路88号"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if result["district"] != "朝阳区" {
		t.Errorf("district = %v, want 朝阳区", result["district"])
	}
	// Nullable fields must serialize as null, not empty strings.
	if v, ok := result["recipient"]; !ok || v != nil {
		t.Errorf("recipient = %v, want explicit null", v)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestParseEndpointValidation(t *testing.T) {
	router := newTestRouter(t, keylessAuth())

	testCases := []struct {
		name string
		body interface{}
	}{
		{"missing field", gin.H{}},
		{"empty address", gin.H{"raw_address": ""}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(router, "/parse", tc.body, nil)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", w.Code)
			}
			var resp map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &resp)
			if resp["error"] != "validation_error" {
				t.Errorf("error kind = %v, want validation_error", resp["error"])
			}
		})
	}
}

func TestBatchEndpoint(t *testing.T) {
	router := newTestRouter(t, keylessAuth())

	w := postJSON(router, "/parse/batch", gin.H{
		"addresses": []string{"北京市朝阳区建国路88号", "浙江省杭州市滨江区"},
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Results []json.RawMessage `json:"results"`
		Total   int               `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if resp.Total != 2 || len(resp.Results) != 2 {
		t.Errorf("total = %d results = %d, want 2/2", resp.Total, len(resp.Results))
	}
}

func TestBatchEndpointLimit(t *testing.T) {
	router := newTestRouter(t, keylessAuth())

	huge := make([]string, 1001)
	for i := range huge {
		huge[i] = "北京市"
	}
	w := postJSON(router, "/parse/batch", gin.H{"addresses": huge}, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 for oversized batch", w.Code)
	}
}

func TestAuth(t *testing.T) {
	withKeys := AuthConfig{
		APIKeys:      map[string]bool{"valid-key": true},
		ProxySecret:  "proxy-secret",
		AllowKeyless: true,
	}
	body := gin.H{"raw_address": "北京市朝阳区建国路88号"}

	t.Run("valid api key", func(t *testing.T) {
		router := newTestRouter(t, withKeys)
		w := postJSON(router, "/parse", body, map[string]string{"X-API-Key": "valid-key"})
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("valid proxy secret", func(t *testing.T) {
		router := newTestRouter(t, withKeys)
		w := postJSON(router, "/parse", body, map[string]string{"X-RapidAPI-Proxy-Secret": "proxy-secret"})
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		router := newTestRouter(t, withKeys)
		w := postJSON(router, "/parse", body, map[string]string{"X-API-Key": "nope"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["error"] != "unauthorized" {
			t.Errorf("error kind = %v, want unauthorized", resp["error"])
		}
	})

	t.Run("missing key rejected when keys configured", func(t *testing.T) {
		router := newTestRouter(t, withKeys)
		if w := postJSON(router, "/parse", body, nil); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("keyless disabled without keys is a deployment error", func(t *testing.T) {
		router := newTestRouter(t, AuthConfig{APIKeys: map[string]bool{}, AllowKeyless: false})
		w := postJSON(router, "/parse", body, nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["error"] != "auth_not_configured" {
			t.Errorf("error kind = %v, want auth_not_configured", resp["error"])
		}
	})

	t.Run("health stays open", func(t *testing.T) {
		router := newTestRouter(t, AuthConfig{APIKeys: map[string]bool{"k": true}})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("health status = %d, want 200 without credentials", w.Code)
		}
	})
}

func TestAuthConfigFromEnv(t *testing.T) {
	t.Setenv("API_KEYS", "k1, k2 ,")
	t.Setenv("RAPIDAPI_PROXY_SECRET", "sec")
	t.Setenv("ALLOW_KEYLESS_ACCESS", "false")

	cfg := AuthConfigFromEnv()
	if !cfg.APIKeys["k1"] || !cfg.APIKeys["k2"] || len(cfg.APIKeys) != 2 {
		t.Errorf("APIKeys = %v, want k1 and k2", cfg.APIKeys)
	}
	if cfg.ProxySecret != "sec" {
		t.Errorf("ProxySecret = %q", cfg.ProxySecret)
	}
	if cfg.AllowKeyless {
		t.Error("AllowKeyless = true, want false")
	}
	if !cfg.Configured() {
		t.Error("Configured() = false with keys present")
	}
}
