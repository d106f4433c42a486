package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/internal/storage"
)

const testKey = "anon-key"

// fakeTableAPI records the last request and answers with a canned body.
type fakeTableAPI struct {
	status int
	body   string

	method string
	path   string
	query  map[string]string
	header http.Header
	sent   string
}

func (f *fakeTableAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.method = r.Method
	f.path = r.URL.Path
	f.header = r.Header.Clone()
	f.query = map[string]string{}
	for k, v := range r.URL.Query() {
		f.query[k] = v[0]
	}
	raw, _ := io.ReadAll(r.Body)
	f.sent = string(raw)

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, f.body)
}

func setup(t *testing.T, fake *fakeTableAPI) *Store {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	store, err := New(server.URL+"/", testKey, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return store
}

func TestNewRequiresURLAndKey(t *testing.T) {
	if _, err := New("", testKey); err == nil {
		t.Error("expected error for missing url")
	}
	if _, err := New("https://example.supabase.co", ""); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestListItinerary(t *testing.T) {
	fake := &fakeTableAPI{body: `[
		{"id":"e1","fecha":"2026-03-30","hora":null,"titulo":"Llegada","descripcion":"","ubicacion":"","precio":0,"created_at":"2026-01-10T12:00:00+00:00"},
		{"id":"e2","fecha":"2026-03-31","hora":"09:30:00","titulo":"Tour","descripcion":"","ubicacion":"Muelle","precio":200000}
	]`}
	store := setup(t, fake)

	events, err := store.ListItinerary(context.Background())
	if err != nil {
		t.Fatalf("ListItinerary failed: %v", err)
	}

	if fake.method != http.MethodGet || fake.path != "/rest/v1/itinerario" {
		t.Errorf("unexpected request %s %s", fake.method, fake.path)
	}
	if fake.query["order"] != "fecha.asc,hora.asc.nullsfirst" {
		t.Errorf("unexpected order %q", fake.query["order"])
	}
	if fake.header.Get("apikey") != testKey || fake.header.Get("Authorization") != "Bearer "+testKey {
		t.Error("missing api key headers")
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Time != "" || events[0].CreatedAt == 0 {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].Time != "09:30" {
		t.Errorf("Time = %q, want 09:30", events[1].Time)
	}
	if !events[1].Price.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("Price = %s, want 200000", events[1].Price)
	}
}

func TestGetMissingRowIsNotFound(t *testing.T) {
	store := setup(t, &fakeTableAPI{body: `[]`})

	_, err := store.GetPlace(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	fake := &fakeTableAPI{body: `[]`}
	store := setup(t, fake)

	err := store.DeleteExpense(context.Background(), "x1")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if fake.method != http.MethodDelete || fake.query["id"] != "eq.x1" {
		t.Errorf("unexpected request %s id=%q", fake.method, fake.query["id"])
	}
}

func TestUpsertProgress(t *testing.T) {
	fake := &fakeTableAPI{status: http.StatusCreated}
	store := setup(t, fake)

	err := store.UpsertProgress(context.Background(), models.ItineraryDomain, &models.Progress{
		UserID: "u1", ItemID: "e1", Completed: true,
	})
	if err != nil {
		t.Fatalf("UpsertProgress failed: %v", err)
	}

	if fake.path != "/rest/v1/itinerario_progreso" {
		t.Errorf("unexpected path %s", fake.path)
	}
	if fake.query["on_conflict"] != "user_id,item_id" {
		t.Errorf("unexpected on_conflict %q", fake.query["on_conflict"])
	}
	if !strings.Contains(fake.header.Get("Prefer"), "resolution=merge-duplicates") {
		t.Errorf("unexpected Prefer %q", fake.header.Get("Prefer"))
	}

	var sent map[string]any
	if err := json.Unmarshal([]byte(fake.sent), &sent); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if sent["completado"] != true || sent["user_id"] != "u1" || sent["item_id"] != "e1" {
		t.Errorf("unexpected body %s", fake.sent)
	}
}

func TestListExpensesFiltersOwner(t *testing.T) {
	fake := &fakeTableAPI{body: `[
		{"id":"x1","categoria":"comida","monto":"12.50","descripcion":"Almuerzo","fecha":"2026-03-31","tipo":"personal","user_id":"u1"},
		{"id":"x2","categoria":"otro","monto":300,"descripcion":"Legacy","fecha":"2026-03-30","tipo":null,"user_id":null}
	]`}
	store := setup(t, fake)

	expenses, err := store.ListExpenses(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if fake.query["or"] != "(user_id.eq.u1,user_id.is.null)" {
		t.Errorf("unexpected owner filter %q", fake.query["or"])
	}
	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(expenses))
	}
	if !expenses[0].Amount.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("Amount = %s, want 12.50", expenses[0].Amount)
	}
	if !expenses[1].Shared() || expenses[1].Kind != models.KindPersonal {
		t.Errorf("unexpected legacy row %+v", expenses[1])
	}
}

func TestCreateExpenseSendsNullOwner(t *testing.T) {
	fake := &fakeTableAPI{status: http.StatusCreated, body: `[{"id":"x","created_at":"2026-03-30T10:00:00Z"}]`}
	store := setup(t, fake)

	e := &models.Expense{Category: models.CategoryFood, Amount: decimal.NewFromInt(5), Description: "Agua", Date: "2026-03-30"}
	if err := store.CreateExpense(context.Background(), e); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if e.ID == "" || e.CreatedAt == 0 {
		t.Errorf("expected id and created_at, got %+v", e)
	}
	if !strings.Contains(fake.sent, `"user_id":null`) {
		t.Errorf("expected null owner in %s", fake.sent)
	}
	if fake.header.Get("Prefer") != "return=representation" {
		t.Errorf("unexpected Prefer %q", fake.header.Get("Prefer"))
	}
}

func TestAPIErrorIsSurfaced(t *testing.T) {
	store := setup(t, &fakeTableAPI{
		status: http.StatusBadRequest,
		body:   `{"message":"invalid input syntax","code":"22P02","hint":null,"details":null}`,
	})

	err := store.CreatePackingItems(context.Background(), []*models.PackingItem{{Name: "Toalla", Category: "playa"}})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Code != "22P02" {
		t.Errorf("unexpected APIError %+v", apiErr)
	}
}
