package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"beerapp/server/internal/services"
)

func newTaraRouter(tara *services.TaraService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewTaraController(tara)

	r := gin.New()
	r.POST("/api/v1/tara/movements", controller.RecordMovement)
	r.GET("/api/v1/tara/balance", controller.GetBalance)
	return r
}

func TestTaraEndpointsUnavailable(t *testing.T) {
	r := newTaraRouter(services.NewTaraService(nil, nil, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/tara/balance?client=c1", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("баланс без леджера: ожидали 503, получили %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/v1/tara/movements",
		strings.NewReader(`{"client": "c1", "tara_id": "t1", "count": "+1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("движение без леджера: ожидали 503, получили %d", w.Code)
	}
}

func TestRecordMovementValidation(t *testing.T) {
	// Supabase настроен, но до сети дойти не должны
	supabase := services.NewSupabaseClient("http://supabase.invalid", "key")
	r := newTaraRouter(services.NewTaraService(nil, supabase, nil))

	cases := []string{
		`{"tara_id": "t1", "count": "+1"}`,             // нет client
		`{"client": "c1", "count": "+1"}`,              // нет tara_id
		`{"client": "c1", "tara_id": "t1"}`,            // нет count
		`{"client": "c1", "tara_id": "t1", "count": "2"}`,   // count без знака
		`{"client": "c1", "tara_id": "t1", "count": "+2.5"}`, // дробный count
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/tara/movements", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("тело %s: ожидали 400, получили %d", body, w.Code)
		}
	}
}

func TestTaraBalanceRequiresClient(t *testing.T) {
	supabase := services.NewSupabaseClient("http://supabase.invalid", "key")
	r := newTaraRouter(services.NewTaraService(nil, supabase, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/tara/balance", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("баланс без client: ожидали 400, получили %d", w.Code)
	}
}

// Баланс против фейкового PostgREST
func TestTaraBalanceThroughLedger(t *testing.T) {
	supabaseServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"client": "c1", "tara": "Кега", "tara_id": "t1", "count": "+3"},
			{"client": "c1", "tara": "Кега", "tara_id": "t1", "count": "-1"}
		]`))
	}))
	defer supabaseServer.Close()

	supabase := services.NewSupabaseClient(supabaseServer.URL, "key")
	r := newTaraRouter(services.NewTaraService(nil, supabase, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/tara/balance?client=c1", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("баланс: ожидали 200, получили %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"balance":2`) {
		t.Fatalf("баланс не посчитан: %s", w.Body.String())
	}
}
