package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/openfund-app/backend/database"
	"github.com/openfund-app/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router    http.Handler
	uploadDir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:  logger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	categories := []*models.Category{
		{Category: "Animals"},
		{Category: "Children"},
		{Category: "Health"},
		{Category: "Other"},
	}
	if err := db.Create(&categories).Error; err != nil {
		t.Fatalf("create test categories: %v", err)
	}

	uploadDir := t.TempDir()
	router := newRouter(database.New(db), withConfig(map[string]string{
		"UPLOAD_DIR": uploadDir,
	}), withStartupTime(time.Now()))

	return testEnv{router: router, uploadDir: uploadDir}
}

func (e testEnv) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeFund(t *testing.T, rec *httptest.ResponseRecorder) FundResponse {
	t.Helper()

	var fund FundResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &fund); err != nil {
		t.Fatalf("decode fund response: %v (body: %s)", err, rec.Body.String())
	}
	return fund
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v (body: %s)", err, rec.Body.String())
	}
	return errResp
}

func validCreatePayload() map[string]any {
	return map[string]any{
		"category_id": 1,
		"title":       "Helping stray cats",
		"description": "Food and treatment for stray cats in the city",
		"target":      100000,
		"target_date": time.Now().UTC().AddDate(0, 0, 30).Format(time.RFC3339),
	}
}

func (e testEnv) createFund(t *testing.T, payload map[string]any) FundResponse {
	t.Helper()

	rec := e.doJSON(t, http.MethodPost, "/funds/", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create fund status = %d, body: %s", rec.Code, rec.Body.String())
	}
	return decodeFund(t, rec)
}

func TestCreateFund(t *testing.T) {
	env := newTestEnv(t)

	fund := env.createFund(t, validCreatePayload())

	if fund.ID == 0 {
		t.Error("created fund has no id")
	}
	if fund.Collected != 0 || fund.DonateCount != 0 {
		t.Errorf("new fund counters = %d/%d, want 0/0", fund.Collected, fund.DonateCount)
	}
	if fund.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
	if fund.DaysLeft < 29 || fund.DaysLeft > 30 {
		t.Errorf("days_left = %d, want ~30", fund.DaysLeft)
	}
}

func TestCreateFundMultibyteBounds(t *testing.T) {
	env := newTestEnv(t)

	// Character counts, not byte counts: 30 Cyrillic letters are 60 bytes
	// but well within the 50-character title bound.
	payload := validCreatePayload()
	payload["title"] = strings.Repeat("Д", 30)
	payload["description"] = strings.Repeat("о", 40)

	fund := env.createFund(t, payload)
	if fund.Title != strings.Repeat("Д", 30) {
		t.Errorf("title = %q, want the 30-character original", fund.Title)
	}
}

func TestCreateFundDefaultCategory(t *testing.T) {
	env := newTestEnv(t)

	payload := validCreatePayload()
	delete(payload, "category_id")

	fund := env.createFund(t, payload)
	if fund.CategoryID != models.DefaultCategoryID {
		t.Errorf("category_id = %d, want default %d", fund.CategoryID, models.DefaultCategoryID)
	}
}

func TestCreateFundValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
	}{
		{
			name:      "title too short",
			mutate:    func(p map[string]any) { p["title"] = "ab" },
			wantField: "title",
		},
		{
			name:      "title too long",
			mutate:    func(p map[string]any) { p["title"] = string(make([]byte, 51)) },
			wantField: "title",
		},
		{
			name:      "multibyte title too long",
			mutate:    func(p map[string]any) { p["title"] = strings.Repeat("Д", 51) },
			wantField: "title",
		},
		{
			name:      "description too short",
			mutate:    func(p map[string]any) { p["description"] = "short" },
			wantField: "description",
		},
		{
			name:      "target zero",
			mutate:    func(p map[string]any) { p["target"] = 0 },
			wantField: "target",
		},
		{
			name:      "target negative",
			mutate:    func(p map[string]any) { p["target"] = -100 },
			wantField: "target",
		},
		{
			name:      "negative collected",
			mutate:    func(p map[string]any) { p["collected"] = -1 },
			wantField: "collected",
		},
		{
			name:      "missing target date",
			mutate:    func(p map[string]any) { delete(p, "target_date") },
			wantField: "target_date",
		},
		{
			name: "past target date",
			mutate: func(p map[string]any) {
				p["target_date"] = time.Now().UTC().AddDate(0, 0, -1).Format(time.RFC3339)
			},
			wantField: "target_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validCreatePayload()
			tt.mutate(payload)

			rec := env.doJSON(t, http.MethodPost, "/funds/", payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
			}
			if errResp := decodeError(t, rec); errResp.Field != tt.wantField {
				t.Errorf("field = %q, want %q", errResp.Field, tt.wantField)
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}

	var health struct {
		Status        string `json:"status"`
		UptimeSeconds int    `json:"uptime_seconds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("status = %q, want ok", health.Status)
	}
	if health.UptimeSeconds < 0 {
		t.Errorf("uptime_seconds = %d, want non-negative", health.UptimeSeconds)
	}
}

func TestGetFundNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/funds/9999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDonationLifecycle(t *testing.T) {
	env := newTestEnv(t)

	fund := env.createFund(t, validCreatePayload())
	path := fmt.Sprintf("/funds/%d", fund.ID)

	rec := env.doJSON(t, http.MethodPost, path+"/donate", map[string]any{"amount": 5000})
	if rec.Code != http.StatusOK {
		t.Fatalf("first donation status = %d, body: %s", rec.Code, rec.Body.String())
	}
	after := decodeFund(t, rec)
	if after.Collected != 5000 || after.DonateCount != 1 {
		t.Errorf("after first donation: %d/%d, want 5000/1", after.Collected, after.DonateCount)
	}

	rec = env.doJSON(t, http.MethodPost, path+"/donate", map[string]any{"amount": 3000})
	if rec.Code != http.StatusOK {
		t.Fatalf("second donation status = %d", rec.Code)
	}
	after = decodeFund(t, rec)
	if after.Collected != 8000 || after.DonateCount != 2 {
		t.Errorf("after second donation: %d/%d, want 8000/2", after.Collected, after.DonateCount)
	}

	rec = env.doJSON(t, http.MethodDelete, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = env.doJSON(t, http.MethodGet, path, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestDonateToMissingFund(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/funds/9999/donate", map[string]any{"amount": 100})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDonateInvalidAmount(t *testing.T) {
	env := newTestEnv(t)

	fund := env.createFund(t, validCreatePayload())

	for _, amount := range []int64{0, -500} {
		rec := env.doJSON(t, http.MethodPost, fmt.Sprintf("/funds/%d/donate", fund.ID), map[string]any{"amount": amount})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("amount %d: status = %d, want 400", amount, rec.Code)
		}
		if errResp := decodeError(t, rec); errResp.Field != "amount" {
			t.Errorf("amount %d: field = %q, want amount", amount, errResp.Field)
		}
	}
}

func TestUpdateFundPartial(t *testing.T) {
	env := newTestEnv(t)

	fund := env.createFund(t, validCreatePayload())
	path := fmt.Sprintf("/funds/%d", fund.ID)

	rec := env.doJSON(t, http.MethodPatch, path, map[string]any{"title": "New campaign title"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body: %s", rec.Code, rec.Body.String())
	}

	updated := decodeFund(t, rec)
	if updated.Title != "New campaign title" {
		t.Errorf("title = %q, want updated value", updated.Title)
	}
	if updated.Description != fund.Description {
		t.Errorf("description changed: %q", updated.Description)
	}
	if updated.Target != fund.Target {
		t.Errorf("target changed: %d", updated.Target)
	}
	if !updated.TargetDate.Equal(fund.TargetDate) {
		t.Errorf("target_date changed: %v, was %v", updated.TargetDate, fund.TargetDate)
	}
}

func TestUpdateFundNullHandling(t *testing.T) {
	env := newTestEnv(t)

	fund := env.createFund(t, validCreatePayload())
	path := fmt.Sprintf("/funds/%d", fund.ID)

	// Required columns reject explicit null
	rec := env.doJSON(t, http.MethodPatch, path, json.RawMessage(`{"title":null}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("null title status = %d, want 400", rec.Code)
	}

	// Nullable columns can be cleared
	rec = env.doJSON(t, http.MethodPatch, path, json.RawMessage(`{"photo_url":"/uploads/test.jpg"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("set photo_url status = %d", rec.Code)
	}
	rec = env.doJSON(t, http.MethodPatch, path, json.RawMessage(`{"photo_url":null}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear photo_url status = %d", rec.Code)
	}
	if updated := decodeFund(t, rec); updated.PhotoURL != nil {
		t.Errorf("photo_url = %q, want cleared", *updated.PhotoURL)
	}
}

func TestUpdateMissingFund(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPatch, "/funds/9999", map[string]any{"title": "Does not matter"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListFundsPagination(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		env.createFund(t, validCreatePayload())
	}

	rec := env.doJSON(t, http.MethodGet, "/funds/?limit=2&offset=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var funds []FundResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &funds); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(funds) != 2 {
		t.Fatalf("len(funds) = %d, want 2", len(funds))
	}
	if funds[0].ID != 2 {
		t.Errorf("first fund id = %d, want 2", funds[0].ID)
	}
}

func TestListFundsByCategory(t *testing.T) {
	env := newTestEnv(t)

	payload := validCreatePayload()
	payload["category_id"] = 2
	env.createFund(t, payload)
	env.createFund(t, validCreatePayload())

	rec := env.doJSON(t, http.MethodGet, "/funds/categories/2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list by category status = %d", rec.Code)
	}
	var funds []FundResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &funds); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(funds) != 1 {
		t.Errorf("len(funds) = %d, want 1", len(funds))
	}

	// Unknown category is an empty list, not an error
	rec = env.doJSON(t, http.MethodGet, "/funds/categories/9999", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown category status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &funds); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(funds) != 0 {
		t.Errorf("unknown category returned %d funds, want 0", len(funds))
	}
}

func TestCategoryEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list categories status = %d", rec.Code)
	}
	var categories []models.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(categories) != 4 {
		t.Errorf("len(categories) = %d, want 4", len(categories))
	}

	rec = env.doJSON(t, http.MethodPost, "/categories", map[string]any{"category": "Ecology"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category status = %d, body: %s", rec.Code, rec.Body.String())
	}

	rec = env.doJSON(t, http.MethodPost, "/categories", map[string]any{"category": ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty category status = %d, want 400", rec.Code)
	}
}

func TestUploadFundPhoto(t *testing.T) {
	env := newTestEnv(t)

	fund := env.createFund(t, validCreatePayload())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "photo.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("fake jpeg bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/funds/%d/upload-photo", fund.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body: %s", rec.Code, rec.Body.String())
	}

	updated := decodeFund(t, rec)
	wantURL := fmt.Sprintf("/uploads/%d.jpg", fund.ID)
	if updated.PhotoURL == nil || *updated.PhotoURL != wantURL {
		t.Errorf("photo_url = %v, want %q", updated.PhotoURL, wantURL)
	}

	stored := filepath.Join(env.uploadDir, fmt.Sprintf("%d.jpg", fund.ID))
	if _, err := os.Stat(stored); err != nil {
		t.Errorf("uploaded file missing: %v", err)
	}
}

func TestUploadPhotoMissingFund(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "photo.jpg")
	fw.Write([]byte("fake jpeg bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/funds/9999/upload-photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
