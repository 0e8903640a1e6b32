package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"beerapp/server/internal/services"
)

func newStatusRouter(erp *services.ERPClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewStatusController(services.NewStatusService(nil, erp))

	r := gin.New()
	r.POST("/api/v1/orders/statuses/batch", controller.BatchStatuses)
	return r
}

func TestBatchStatusesBadRequest(t *testing.T) {
	r := newStatusRouter(nil)

	cases := []string{
		``,
		`{}`,
		`{"refs": []}`,
		`не json`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/orders/statuses/batch", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("тело %q: ожидали 400, получили %d", body, w.Code)
		}
	}
}

func TestBatchStatusesTooLarge(t *testing.T) {
	r := newStatusRouter(nil)

	refs := make([]services.StatusRef, maxStatusBatchSize+1)
	for i := range refs {
		refs[i] = services.StatusRef{UID: "u"}
	}
	body, _ := json.Marshal(BatchStatusRequest{Refs: refs})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/orders/statuses/batch", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("слишком большой батч: ожидали 400, получили %d", w.Code)
	}
}

// Полный путь: контроллер -> сервис статусов -> 1C
// Отказ одного UID не мешает остальным
func TestBatchStatusesThroughERP(t *testing.T) {
	erpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/zakaz-status/u1":
			w.Write([]byte("Выполнен"))
		case "/zakaz-status/u2":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer erpServer.Close()

	r := newStatusRouter(services.NewERPClient(erpServer.URL, "user", "pass", 5))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/orders/statuses/batch",
		strings.NewReader(`{"refs": [{"uid": "u1"}, {"uid": "u2"}]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("ожидали 200, получили %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Statuses map[string]services.StatusResult `json:"statuses"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("разбор ответа: %v", err)
	}

	u1 := resp.Statuses["u1"]
	if u1.Display != "Выполнен" || u1.Source != "1c" {
		t.Fatalf("u1: %+v", u1)
	}

	u2 := resp.Statuses["u2"]
	if u2.Display != "В обработке" || u2.Error == "" {
		t.Fatalf("u2 должен получить дефолт с ошибкой: %+v", u2)
	}
}
