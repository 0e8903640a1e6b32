package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestERPClientAvailable(t *testing.T) {
	if NewERPClient("", "", "", 10).Available() {
		t.Fatalf("клиент без базового URL не должен быть доступен")
	}
	if !NewERPClient("http://1c.local", "user", "pass", 10).Available() {
		t.Fatalf("клиент с базовым URL должен быть доступен")
	}
}

func TestERPClientBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotAuth bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotAuth = r.BasicAuth()
		w.Write([]byte("Новый"))
	}))
	defer server.Close()

	erp := NewERPClient(server.URL, "operator", "secret", 5)
	if _, err := erp.OrderStatus(context.Background(), "u1"); err != nil {
		t.Fatalf("OrderStatus: %v", err)
	}

	if !gotAuth || gotUser != "operator" || gotPass != "secret" {
		t.Fatalf("Basic Auth не передан: ok=%v user=%q", gotAuth, gotUser)
	}
}

// 1C отвечает на zakaz-status то простым текстом, то JSON
func TestERPClientOrderStatusFormats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/zakaz-status/plain":
			w.Write([]byte("  Выполнен \n"))
		case "/zakaz-status/quoted":
			w.Write([]byte(`"В работе"`))
		case "/zakaz-status/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"STATUS": "Отменен"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	erp := NewERPClient(server.URL, "user", "pass", 5)

	cases := map[string]string{
		"plain":  "Выполнен",
		"quoted": "В работе",
		"json":   "Отменен",
	}
	for uid, want := range cases {
		got, err := erp.OrderStatus(context.Background(), uid)
		if err != nil {
			t.Fatalf("OrderStatus(%s): %v", uid, err)
		}
		if got != want {
			t.Fatalf("OrderStatus(%s) = %q, ожидали %q", uid, got, want)
		}
	}
}

func TestERPClientCreateSubOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/novzakaz" || r.Method != "POST" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req SubOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.OrgID != "org-1" || req.LegalEntity != 2 || len(req.Items) != 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(SubOrderResponse{Nomer: "A-001", UID: "uid-123"})
	}))
	defer server.Close()

	erp := NewERPClient(server.URL, "user", "pass", 5)
	resp, err := erp.CreateSubOrder(&SubOrderRequest{
		OrgID:       "org-1",
		LegalEntity: 2,
		Items:       []SubOrderItem{{UID: "beer-uid", Count: 3, Price: 150}},
	})
	if err != nil {
		t.Fatalf("CreateSubOrder: %v", err)
	}
	if resp.UID != "uid-123" || resp.Nomer != "A-001" {
		t.Fatalf("неожиданный ответ: %+v", resp)
	}
}

func TestERPClientCreateSubOrderWithoutUID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Nomer": "A-002"}`))
	}))
	defer server.Close()

	erp := NewERPClient(server.URL, "user", "pass", 5)
	if _, err := erp.CreateSubOrder(&SubOrderRequest{OrgID: "org-1"}); err == nil {
		t.Fatalf("подзаказ без UID должен считаться ошибкой")
	}
}

func TestERPClientOrderHistory(t *testing.T) {
	payload := `[{"Nomer": "A-001", "Status": "Выполнен"}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/istorzakaz/org-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(payload))
	}))
	defer server.Close()

	erp := NewERPClient(server.URL, "user", "pass", 5)
	history, err := erp.OrderHistory("org-1")
	if err != nil {
		t.Fatalf("OrderHistory: %v", err)
	}
	if string(history) != payload {
		t.Fatalf("история должна проксироваться как есть, получили %s", history)
	}
}
