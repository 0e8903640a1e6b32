package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// Баланс: движения со знаком суммируются по видам тары,
// кривые значения count пропускаются без ошибки
func TestTaraServiceGetBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"client": "c1", "tara": "Кега 30л", "tara_id": "t1", "count": "+2"},
			{"client": "c1", "tara": "Кега 50л", "tara_id": "t2", "count": "+1"},
			{"client": "c1", "tara": "Кега 30л", "tara_id": "t1", "count": "-1"},
			{"client": "c1", "tara": "", "tara_id": "t2", "count": "битое"},
			{"client": "c1", "tara": "Кега 30л", "tara_id": "t1", "count": "+3"}
		]`))
	}))
	defer server.Close()

	ts := NewTaraService(nil, NewSupabaseClient(server.URL, "key"), nil)

	balances, err := ts.GetBalance("c1")
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("ожидали 2 вида тары, получили %d: %+v", len(balances), balances)
	}

	// Порядок соответствует первому появлению в леджере
	if balances[0].TaraID != "t1" || balances[0].Balance != 4 {
		t.Fatalf("t1: %+v", balances[0])
	}
	if balances[0].TaraName != "Кега 30л" {
		t.Fatalf("имя тары: %+v", balances[0])
	}
	if balances[1].TaraID != "t2" || balances[1].Balance != 1 {
		t.Fatalf("t2: %+v", balances[1])
	}
}

func TestTaraServiceUnavailable(t *testing.T) {
	ts := NewTaraService(nil, nil, nil)
	if ts.Available() {
		t.Fatalf("сервис без Supabase не должен быть доступен")
	}
	if _, err := ts.GetBalance("c1"); err == nil {
		t.Fatalf("GetBalance без леджера должен возвращать ошибку")
	}
}
