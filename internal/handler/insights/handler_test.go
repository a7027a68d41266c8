package insights

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	model "github.com/anshgupta/merchant-desk/backend/internal/model/insights"
)

func TestWeeklyInsights(t *testing.T) {
	handler := New(model.NewStaticProvider(model.Seed()))

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/insights/weekly", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var record model.WeeklyInsights
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.TopPaymentMethod != "UPI" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.TotalTransactions == 0 {
		t.Fatal("expected a seeded transaction count")
	}
}
