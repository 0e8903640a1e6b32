package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"beerapp/server/internal/models"
)

func TestSupabaseClientInsertMovement(t *testing.T) {
	var gotAPIKey, gotAuth string
	var gotMovement models.TaraMovement

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pride_beer_tara" || r.Method != "POST" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotMovement)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sc := NewSupabaseClient(server.URL, "service-key")
	err := sc.InsertMovement(&models.TaraMovement{
		Client: "2724132975",
		Tara:   "Кега 30л",
		TaraID: "tara-1",
		Count:  "+2",
	})
	if err != nil {
		t.Fatalf("InsertMovement: %v", err)
	}

	if gotAPIKey != "service-key" || gotAuth != "Bearer service-key" {
		t.Fatalf("заголовки авторизации: apikey=%q auth=%q", gotAPIKey, gotAuth)
	}
	if gotMovement.Client != "2724132975" || gotMovement.Count != "+2" {
		t.Fatalf("тело движения: %+v", gotMovement)
	}
}

func TestSupabaseClientListMovements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("client") != "eq.2724132975" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`[
			{"client": "2724132975", "tara": "Кега 30л", "tara_id": "tara-1", "count": "+2"},
			{"client": "2724132975", "tara": "Кега 30л", "tara_id": "tara-1", "count": "-1"}
		]`))
	}))
	defer server.Close()

	sc := NewSupabaseClient(server.URL, "service-key")
	movements, err := sc.ListMovements("2724132975")
	if err != nil {
		t.Fatalf("ListMovements: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("ожидали 2 движения, получили %d", len(movements))
	}
	if movements[1].Count != "-1" {
		t.Fatalf("движения: %+v", movements)
	}
}

func TestSupabaseClientNotConfigured(t *testing.T) {
	sc := NewSupabaseClient("", "")
	if sc.Available() {
		t.Fatalf("клиент без URL не должен быть доступен")
	}
	if err := sc.InsertMovement(&models.TaraMovement{}); err == nil {
		t.Fatalf("запись без настроенного URL должна возвращать ошибку")
	}
	if _, err := sc.ListMovements("x"); err == nil {
		t.Fatalf("чтение без настроенного URL должно возвращать ошибку")
	}
}
