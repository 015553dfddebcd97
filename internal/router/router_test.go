package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/think41/catalog/internal/config"
	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/models"
	"github.com/think41/catalog/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.L = zap.NewNop()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		App:    config.AppConfig{Name: "Think41 Catalog API", Version: "1.0.0"},
		Server: config.ServerConfig{Mode: "release"},
		Catalog: config.CatalogConfig{
			StoreName:        "Think41",
			DefaultPageSize:  20,
			MaxPageSize:      100,
			TaxonomyPageSize: 100,
			FeaturedLimit:    12,
		},
		Migration: config.MigrationConfig{BatchSize: 100, VerifySample: 5},
	}
	return SetupRouter(cfg, provider.NewWithDB(cfg, db, nil))
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return env
}

func TestHealthAndAPIInfo(t *testing.T) {
	r := setupTestRouter(t)

	w := serve(r, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status want 200 got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); !env.Success || env.Message != "API is running properly" {
		t.Fatalf("unexpected health body: %s", w.Body.String())
	}

	w = serve(r, http.MethodGet, "/api", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/api/distribution-centers") {
		t.Fatalf("unexpected api info: %d %s", w.Code, w.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	r := setupTestRouter(t)

	w := serve(r, http.MethodGet, "/api/unknown", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Success || env.Message != "Route not found" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestProductCreateAndGet(t *testing.T) {
	r := setupTestRouter(t)

	body := `{"productId":501,"name":"Slim Fit Jeans","brand":"Acme","category":"Jeans","department":"Men",` +
		`"cost":"12.50","retailPrice":30,"sku":"acme-501","distributionCenterId":1}`
	w := serve(r, http.MethodPost, "/api/products", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status want 201 got %d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "Product created successfully" {
		t.Fatalf("unexpected create message: %s", env.Message)
	}
	var created struct {
		ID  string `json:"_id"`
		SKU string `json:"sku"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("unmarshal product failed: %v", err)
	}
	if created.ID == "" || created.SKU != "ACME-501" {
		t.Fatalf("unexpected product: %s", string(env.Data))
	}

	w = serve(r, http.MethodGet, "/api/products/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status want 200 got %d", w.Code)
	}

	w = serve(r, http.MethodPost, "/api/products", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create status want 400 got %d", w.Code)
	}

	w = serve(r, http.MethodGet, "/api/products?limit=5", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"totalItems":1`) {
		t.Fatalf("unexpected list response: %d %s", w.Code, w.Body.String())
	}
}

func TestProductListRejectsBadQuery(t *testing.T) {
	r := setupTestRouter(t)

	w := serve(r, http.MethodGet, "/api/products?minPrice=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Success || !strings.Contains(env.Error, "minPrice") {
		t.Fatalf("error should name the field: %s", w.Body.String())
	}
}

func TestMissingProductReturns404(t *testing.T) {
	r := setupTestRouter(t)

	w := serve(r, http.MethodGet, "/api/products/does-not-exist", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Message != "Product not found" {
		t.Fatalf("unexpected message: %s", env.Message)
	}
}
