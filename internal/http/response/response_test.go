package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name    string
		page    int
		limit   int
		total   int64
		pages   int64
		hasNext bool
		hasPrev bool
	}{
		{name: "first page", page: 1, limit: 20, total: 45, pages: 3, hasNext: true, hasPrev: false},
		{name: "last page", page: 3, limit: 20, total: 45, pages: 3, hasNext: false, hasPrev: true},
		{name: "beyond last page", page: 9, limit: 20, total: 45, pages: 3, hasNext: false, hasPrev: true},
		{name: "empty", page: 1, limit: 20, total: 0, pages: 0, hasNext: false, hasPrev: false},
		{name: "exact multiple", page: 2, limit: 10, total: 20, pages: 2, hasNext: false, hasPrev: true},
	}
	for _, tc := range cases {
		got := NewPagination(tc.page, tc.limit, tc.total)
		if got.TotalPages != tc.pages || got.HasNext != tc.hasNext || got.HasPrev != tc.hasPrev {
			t.Fatalf("%s: want pages=%d next=%v prev=%v got %+v", tc.name, tc.pages, tc.hasNext, tc.hasPrev, got)
		}
		if got.CurrentPage != tc.page || got.ItemsPerPage != tc.limit || got.TotalItems != tc.total {
			t.Fatalf("%s: echo fields mismatch %+v", tc.name, got)
		}
	}
}

func TestErrorEnvelopeCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	NotFound(c, "Product not found")

	if w.Code != CodeNotFound {
		t.Fatalf("want status 404 got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body["success"] != false || body["message"] != "Product not found" || body["requestId"] != "req-1" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("error detail should be omitted, got %v", body["error"])
	}
}

func TestAppErrorDetail(t *testing.T) {
	cause := errors.New("sku already exists")

	badRequest := WrapError(CodeBadRequest, "Error creating product", cause)
	if got := badRequest.Detail(false); got != "sku already exists" {
		t.Fatalf("client error detail want cause got %q", got)
	}

	internal := WrapError(CodeInternal, "Error fetching products", cause)
	if got := internal.Detail(false); got != "" {
		t.Fatalf("internal detail should be hidden, got %q", got)
	}
	if got := internal.Detail(true); got != "sku already exists" {
		t.Fatalf("internal detail in debug want cause got %q", got)
	}
	if !errors.Is(internal, cause) {
		t.Fatalf("AppError should unwrap to cause")
	}
}
