package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adforge-dev/adforge-admin/internal/enrich"
	"github.com/adforge-dev/adforge-admin/internal/platform/logger"
	"github.com/adforge-dev/adforge-admin/internal/relay"
	"github.com/adforge-dev/adforge-admin/internal/store"
	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

type recordingDispatcher struct {
	dispatched []taxonomy.DemographicProfile
}

func (d *recordingDispatcher) Dispatch(p taxonomy.DemographicProfile) {
	d.dispatched = append(d.dispatched, p)
}

// failingGenerator stands in for an enrichment collaborator that always
// errors; the create response must not care.
type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, taxonomy.DemographicProfile) (enrich.PersonaPrompt, error) {
	return enrich.PersonaPrompt{}, errors.New("generator collaborator unreachable")
}

func setupTestRouter(enricher EnrichDispatcher, webhookURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	st := store.NewDemoStore(taxonomy.DemoSnapshot())

	return NewRouter(RouterConfig{
		Brands:       NewBrandHandler(st, log),
		Demographics: NewDemographicHandler(st, log, enricher),
		Legal:        NewLegalHandler(st, log),
		Track:        NewTrackHandler(relay.New(webhookURL, log), log),
		Log:          log,
	})
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListAlwaysHasData(t *testing.T) {
	r := setupTestRouter(nil, "")
	for _, path := range []string{"/api/brand-profiles", "/api/demographic-profiles", "/api/legal-guidelines"} {
		w := doJSON(r, "GET", path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		var resp struct {
			Success bool              `json:"success"`
			Data    []json.RawMessage `json:"data"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if !resp.Success || len(resp.Data) == 0 {
			t.Errorf("%s: expected non-empty fallback dataset, got %s", path, w.Body.String())
		}
	}
}

func TestCreateBrandAppliesDefaults(t *testing.T) {
	r := setupTestRouter(nil, "")
	w := doJSON(r, "POST", "/api/brand-profiles", map[string]any{"name": "Acme"})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	for _, key := range []string{"id", "name", "description", "tone", "logo", "is_active", "created_at", "updated_at"} {
		if _, ok := resp.Data[key]; !ok {
			t.Errorf("Created record missing field %q: %v", key, resp.Data)
		}
	}
	if resp.Data["is_active"] != true {
		t.Errorf("is_active should default to true, got %v", resp.Data["is_active"])
	}
	id, _ := resp.Data["id"].(string)
	if !strings.HasPrefix(id, "custom-") {
		t.Errorf("Demo-mode id should be custom-<millis>, got %q", id)
	}
}

func TestCreateWithoutNameFails(t *testing.T) {
	r := setupTestRouter(nil, "")
	w := doJSON(r, "POST", "/api/legal-guidelines", map[string]any{"description": "no name"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error == "" {
		t.Error("Expected an error message")
	}
}

func TestUpdatePreservesSuppliedCreatedAt(t *testing.T) {
	r := setupTestRouter(nil, "")
	w := doJSON(r, "PUT", "/api/brand-profiles", map[string]any{
		"id":         "brand-001",
		"name":       "Northwind Outfitters",
		"created_at": "2024-01-15T09:00:00Z",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data map[string]any `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data["created_at"] != "2024-01-15T09:00:00Z" {
		t.Errorf("created_at should be preserved on update, got %v", resp.Data["created_at"])
	}
	if resp.Data["updated_at"] == "2024-01-15T09:00:00Z" {
		t.Error("updated_at should be regenerated on update")
	}
}

func TestUpdateWithoutIDFails(t *testing.T) {
	r := setupTestRouter(nil, "")
	w := doJSON(r, "PUT", "/api/brand-profiles", map[string]any{"name": "No ID"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	r := setupTestRouter(nil, "")

	w := doJSON(r, "DELETE", "/api/demographic-profiles", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without id, got %d", w.Code)
	}
	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error == "" {
		t.Error("Expected explicit error message for missing id")
	}

	// Any non-empty id succeeds, whether or not it ever existed.
	w = doJSON(r, "DELETE", "/api/demographic-profiles?id=never-existed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 with id, got %d", w.Code)
	}
}

func TestDemographicCreateDispatchesEnrichment(t *testing.T) {
	d := &recordingDispatcher{}
	r := setupTestRouter(d, "")

	w := doJSON(r, "POST", "/api/demographic-profiles", map[string]any{"name": "Gamers"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(d.dispatched) != 1 {
		t.Fatalf("Expected 1 dispatched profile, got %d", len(d.dispatched))
	}
	if d.dispatched[0].Name != "Gamers" {
		t.Errorf("Dispatched profile should carry the created record, got %+v", d.dispatched[0])
	}
	if d.dispatched[0].ID == "" {
		t.Error("Dispatched profile should carry the assigned id")
	}
}

func TestBrandCreateDoesNotDispatchEnrichment(t *testing.T) {
	d := &recordingDispatcher{}
	r := setupTestRouter(d, "")

	doJSON(r, "POST", "/api/brand-profiles", map[string]any{"name": "Acme"})
	if len(d.dispatched) != 0 {
		t.Errorf("Only the demographic taxonomy triggers enrichment, got %d dispatches", len(d.dispatched))
	}
}

func TestUpdateDoesNotDispatchEnrichment(t *testing.T) {
	d := &recordingDispatcher{}
	r := setupTestRouter(d, "")

	doJSON(r, "PUT", "/api/demographic-profiles", map[string]any{"id": "demo-001", "name": "Urban Millennials"})
	if len(d.dispatched) != 0 {
		t.Errorf("Update must not re-trigger enrichment, got %d dispatches", len(d.dispatched))
	}
}

func TestDemographicCreateSurvivesEnrichmentFailure(t *testing.T) {
	d := enrich.NewDispatcher(failingGenerator{}, logger.NewNop(), 4)
	defer d.Close()
	r := setupTestRouter(d, "")

	w := doJSON(r, "POST", "/api/demographic-profiles", map[string]any{"name": "Night Owls"})
	if w.Code != http.StatusOK {
		t.Fatalf("Create must succeed despite enrichment failure, got %d: %s", w.Code, w.Body.String())
	}
	var resp DataResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success {
		t.Error("Expected success:true despite enrichment failure")
	}
}

type failingStore struct{}

func (failingStore) List(context.Context, taxonomy.Kind) ([]json.RawMessage, error) {
	return nil, errors.New("storage service unavailable")
}
func (failingStore) Insert(context.Context, taxonomy.Kind, json.RawMessage) (json.RawMessage, error) {
	return nil, errors.New("storage service unavailable")
}
func (failingStore) Update(context.Context, taxonomy.Kind, string, json.RawMessage) (json.RawMessage, error) {
	return nil, errors.New("storage service unavailable")
}
func (failingStore) Delete(context.Context, taxonomy.Kind, string) error {
	return errors.New("storage service unavailable")
}

func TestListFallsBackWhenStoreFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	r := NewRouter(RouterConfig{Brands: NewBrandHandler(failingStore{}, log), Log: log})

	w := doJSON(r, "GET", "/api/brand-profiles", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("List must succeed even when the store fails, got %d", w.Code)
	}
	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) == 0 {
		t.Error("Expected the fallback dataset when the store fails")
	}
}

func TestCreateFailingStoreIsInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	r := NewRouter(RouterConfig{Brands: NewBrandHandler(failingStore{}, log), Log: log})

	w := doJSON(r, "POST", "/api/brand-profiles", map[string]any{"name": "Acme"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Details == "" {
		t.Error("Internal errors should carry a details string")
	}
}

var requestIDPattern = regexp.MustCompile(`^pd_\d+_[0-9a-z]{9}$`)

func TestTrackWithoutDestinationSucceeds(t *testing.T) {
	r := setupTestRouter(nil, "")
	w := doJSON(r, "POST", "/api/track/prompt-discovery", map[string]any{
		"email":           "a@b.com",
		"productCategory": "shoes",
		"timestamp":       "2024-01-01T00:00:00Z",
		"source":          "test",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp TrackResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success {
		t.Error("Expected success:true")
	}
	if !requestIDPattern.MatchString(resp.RequestID) {
		t.Errorf("Unexpected request_id format: %q", resp.RequestID)
	}
	if !strings.Contains(resp.Message, "skipped") {
		t.Errorf("Response message must say delivery was skipped, got %q", resp.Message)
	}
}

func TestTrackMissingEmailRejectedBeforeDelivery(t *testing.T) {
	delivered := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delivered = true
	}))
	defer srv.Close()

	r := setupTestRouter(nil, srv.URL)
	w := doJSON(r, "POST", "/api/track/prompt-discovery", map[string]any{"productCategory": "shoes"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if delivered {
		t.Error("No delivery may be attempted for an invalid event")
	}
}

func TestTrackAbsorbsDeliveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := setupTestRouter(nil, srv.URL)
	w := doJSON(r, "POST", "/api/track/prompt-discovery", map[string]any{
		"email":           "a@b.com",
		"productCategory": "shoes",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Delivery failure must not fail the caller, got %d", w.Code)
	}
	var resp TrackResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success {
		t.Error("Expected success:true despite delivery failure")
	}
	if resp.Error == "" {
		t.Error("Absorbed failure should be described in the error field")
	}
	if strings.Contains(resp.Message, "skipped") {
		t.Errorf("A failed delivery was attempted, not skipped, got %q", resp.Message)
	}
	if !requestIDPattern.MatchString(resp.RequestID) {
		t.Errorf("Unexpected request_id format: %q", resp.RequestID)
	}
}
