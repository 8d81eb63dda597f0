// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/motorgraph/internal/config"
	"github.com/tomtom215/motorgraph/internal/recommend"
)

func testRecords() []recommend.CarRecord {
	return []recommend.CarRecord{
		{
			ID: "alto", Make: "Maruti", Model: "Alto", Price: 500000,
			Seating: 5, Fuel: recommend.FuelPetrol, Body: recommend.BodyHatchback,
			Performance: 3, Economy: 9, Safety: 2, Comfort: 3, OwnershipCost: 2,
		},
		{
			ID: "city", Make: "Honda", Model: "City", Price: 1200000,
			Seating: 5, Fuel: recommend.FuelPetrol, Body: recommend.BodySedan,
			Performance: 7, Economy: 7, Safety: 6, Comfort: 7, OwnershipCost: 4,
		},
		{
			ID: "nexon-ev", Make: "Tata", Model: "Nexon EV", Price: 1500000,
			Seating: 5, Fuel: recommend.FuelElectric, Body: recommend.BodySUV,
			Performance: 8, Economy: 8, Safety: 9, Comfort: 7, OwnershipCost: 3,
		},
		{
			ID: "innova", Make: "Toyota", Model: "Innova", Price: 2000000,
			Seating: 7, Fuel: recommend.FuelDiesel, Body: recommend.BodyMUV,
			Performance: 7, Economy: 5, Safety: 8, Comfort: 9, OwnershipCost: 6,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cat, err := recommend.NewCatalog(testRecords())
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Server.RateLimit = 0
	cfg.Server.RateWindow = time.Minute

	return NewRouter(cfg, NewHandler(engine, cat))
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, *APIResponse) {
	t.Helper()

	var rdr *bytes.Reader
	if body == "" {
		rdr = bytes.NewReader(nil)
	} else {
		rdr = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	resp := &APIResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, resp
}

func TestHandleRecommend(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"profile": {
			"budget": {"min": 0, "max": 2500000},
			"weights": {"safety": 1.0}
		},
		"k": 10
	}`
	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/recommend", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	if resp.Status != "success" {
		t.Fatalf("envelope status = %q, want success", resp.Status)
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatal(err)
	}
	var engineResp recommend.Response
	if err := json.Unmarshal(data, &engineResp); err != nil {
		t.Fatalf("data is not a recommendation response: %v", err)
	}

	if len(engineResp.Cars) != 4 {
		t.Fatalf("returned %d cars, want 4", len(engineResp.Cars))
	}
	// Safety-only weighting puts the safest car first.
	if engineResp.Cars[0].Car.ID != "nexon-ev" {
		t.Errorf("top car = %q, want nexon-ev", engineResp.Cars[0].Car.ID)
	}
	for i := 1; i < len(engineResp.Cars); i++ {
		if engineResp.Cars[i].Score > engineResp.Cars[i-1].Score {
			t.Errorf("cars not sorted: index %d score %v > %v", i, engineResp.Cars[i].Score, engineResp.Cars[i-1].Score)
		}
	}
	if engineResp.Metadata.Mode != "hard" {
		t.Errorf("metadata mode = %q, want hard", engineResp.Metadata.Mode)
	}
}

func TestHandleRecommendBudgetShorthand(t *testing.T) {
	router := newTestRouter(t)

	// "5 lakh" to "15 lakh" covers alto, city and nexon-ev.
	body := `{
		"profile": {
			"budget": {"min": "5 lakh", "max": "15 lakh"},
			"weights": {"economy": 1.0}
		}
	}`
	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/recommend", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	data, _ := json.Marshal(resp.Data)
	var engineResp recommend.Response
	if err := json.Unmarshal(data, &engineResp); err != nil {
		t.Fatal(err)
	}
	if len(engineResp.Cars) != 3 {
		t.Fatalf("returned %d cars, want 3", len(engineResp.Cars))
	}
}

func TestHandleRecommendFuelSynonym(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"profile": {
			"budget": {"min": 0, "max": 2500000},
			"fuel_type": "EV",
			"weights": {"safety": 1.0}
		}
	}`
	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/recommend", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	data, _ := json.Marshal(resp.Data)
	var engineResp recommend.Response
	if err := json.Unmarshal(data, &engineResp); err != nil {
		t.Fatal(err)
	}
	if len(engineResp.Cars) != 1 || engineResp.Cars[0].Car.ID != "nexon-ev" {
		t.Fatalf("cars = %+v, want only nexon-ev", engineResp.Cars)
	}
}

func TestHandleRecommendEmptyResult(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"profile": {
			"budget": {"min": 0, "max": 100000},
			"weights": {"safety": 1.0}
		}
	}`
	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/recommend", body)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422\nbody: %s", rec.Code, rec.Body.String())
	}
	if resp.Error == nil || resp.Error.Code != "EMPTY_RESULT" {
		t.Fatalf("error = %+v, want EMPTY_RESULT", resp.Error)
	}
	if _, ok := resp.Error.Details["suggestion"]; !ok {
		t.Error("EMPTY_RESULT details missing relaxed profile suggestion")
	}
}

func TestHandleRecommendInvalid(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"profile": `},
		{name: "unknown field", body: `{"profile": {}, "bogus": 1}`},
		{name: "bad fuel", body: `{"profile": {"budget": {"min": 0, "max": 1}, "fuel_type": "steam"}}`},
		{name: "bad mode", body: `{"profile": {"budget": {"min": 0, "max": 1}, "mode": "strict"}}`},
		{name: "negative k", body: `{"profile": {"budget": {"min": 0, "max": 1}}, "k": -5}`},
		{name: "min over max", body: `{"profile": {"budget": {"min": 10, "max": 1}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/recommend", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400\nbody: %s", rec.Code, rec.Body.String())
			}
			if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
				t.Fatalf("error = %+v, want VALIDATION_ERROR", resp.Error)
			}
		})
	}
}

func TestHandleCompare(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"profile": {
			"budget": {"min": 0, "max": 2500000},
			"weights": {"safety": 1.0}
		},
		"ids": ["innova", "alto"]
	}`
	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/compare", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	data, _ := json.Marshal(resp.Data)
	var table recommend.ComparisonTable
	if err := json.Unmarshal(data, &table); err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	// Rows follow selection order, not rank order.
	if table.Rows[0].Car.ID != "innova" || table.Rows[1].Car.ID != "alto" {
		t.Errorf("row order = [%s, %s], want [innova, alto]", table.Rows[0].Car.ID, table.Rows[1].Car.ID)
	}
}

func TestHandleCompareErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown id",
			body:     `{"profile": {"budget": {"min": 0, "max": 2500000}}, "ids": ["alto", "ghost"]}`,
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
		{
			name:     "single id",
			body:     `{"profile": {"budget": {"min": 0, "max": 2500000}}, "ids": ["alto"]}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "no ids",
			body:     `{"profile": {"budget": {"min": 0, "max": 2500000}}, "ids": []}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "id filtered out by budget",
			body:     `{"profile": {"budget": {"min": 0, "max": 600000}}, "ids": ["alto", "innova"]}`,
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/compare", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d\nbody: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Fatalf("error = %+v, want code %s", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestHandleListCars(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/cars", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T, want object", resp.Data)
	}
	if count, _ := data["count"].(float64); int(count) != 4 {
		t.Errorf("count = %v, want 4", data["count"])
	}
}

func TestHandleGetCar(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/cars/nexon-ev", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, _ := json.Marshal(resp.Data)
	var car carDTO
	if err := json.Unmarshal(data, &car); err != nil {
		t.Fatal(err)
	}
	if car.ID != "nexon-ev" {
		t.Errorf("id = %q, want nexon-ev", car.ID)
	}
	if !strings.Contains(car.PriceDisplay, "₹") {
		t.Errorf("price_display = %q, want formatted rupee value", car.PriceDisplay)
	}
}

func TestHandleGetCarNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/cars/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Fatalf("error = %+v, want NOT_FOUND", resp.Error)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", rec.Code)
	}
}

func TestHealthReadyWithoutCatalog(t *testing.T) {
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"*"}
	router := NewRouter(cfg, NewHandler(engine, nil))

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "NOT_READY" {
		t.Fatalf("error = %+v, want NOT_READY", resp.Error)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars", nil)
	req.Header.Set(requestIDHeader, "test-request-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "test-request-42" {
		t.Errorf("%s = %q, want test-request-42", requestIDHeader, got)
	}

	// A fresh ID is generated when none is supplied.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cars", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("no request ID assigned")
	}
}

func TestNotFoundRoute(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Fatalf("error = %+v, want NOT_FOUND", resp.Error)
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte("hello"))
	b := generateETag([]byte("hello"))
	c := generateETag([]byte("world"))

	if a != b {
		t.Errorf("same input produced different ETags: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different inputs produced identical ETags")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	got := sanitizeLogValue("id\nwith\tnewline")
	if strings.ContainsAny(got, "\n\t") {
		t.Errorf("sanitizeLogValue left control characters: %q", got)
	}
}
