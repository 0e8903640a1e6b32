package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ERPClient клиент для работы с HTTP API 1C
// Все запросы идут с Basic Auth и фиксированным тайм-аутом
type ERPClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// NewERPClient создает новый клиент 1C
func NewERPClient(baseURL, username, password string, timeoutSeconds int) *ERPClient {
	if baseURL == "" {
		log.Printf("⚠️ 1C: базовый URL не задан, интеграция с 1C будет недоступна")
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}

	return &ERPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		client: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

// Available настроена ли интеграция с 1C
func (ec *ERPClient) Available() bool {
	return ec.baseURL != ""
}

// CheckoutItem позиция для расчета стоимости
type CheckoutItem struct {
	UID   string `json:"UID"`
	Count int    `json:"Count"`
}

// CheckoutRequest запрос расчета стоимости заказа в 1C
type CheckoutRequest struct {
	OrgID string         `json:"org_ID"`
	Items []CheckoutItem `json:"Positions"`
}

// SubOrderItem позиция подзаказа для 1C
type SubOrderItem struct {
	UID   string  `json:"UID"`
	Count int     `json:"Count"`
	Price float64 `json:"Price"`
}

// SubOrderRequest запрос создания подзаказа в 1C (novzakaz)
// Один локальный заказ разбивается на подзаказы по юрлицам
type SubOrderRequest struct {
	OrgID       string         `json:"org_ID"`
	LegalEntity int            `json:"Legal_Entity"`
	Items       []SubOrderItem `json:"Positions"`
}

// SubOrderResponse ответ 1C на создание подзаказа
type SubOrderResponse struct {
	Nomer string `json:"Nomer"` // Человекочитаемый номер заказа в 1C
	UID   string `json:"UID"`   // UID заказа, по нему запрашиваем статус
}

// statusPayload 1C может вернуть статус как JSON {"STATUS": "..."}
type statusPayload struct {
	Status string `json:"STATUS"`
}

func (ec *ERPClient) do(req *http.Request) ([]byte, int, error) {
	req.SetBasicAuth(ec.username, ec.password)

	resp, err := ec.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// CalculateCheckout запрашивает у 1C расчет стоимости корзины
// Ответ отдаем как есть — формат целиком определяет 1C
func (ec *ERPClient) CalculateCheckout(req *CheckoutRequest) (json.RawMessage, error) {
	if !ec.Available() {
		return nil, fmt.Errorf("1C API is not configured")
	}

	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/calculate_checkout", ec.baseURL)
	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.Printf("🧮 1C: расчет стоимости для организации %s (%d позиций)", req.OrgID, len(req.Items))

	body, status, err := ec.do(httpReq)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		log.Printf("❌ 1C calculate_checkout error (status %d): %s", status, string(body))
		return nil, fmt.Errorf("1C API error (status %d)", status)
	}

	return json.RawMessage(body), nil
}

// CreateSubOrder создает подзаказ в 1C и возвращает его номер и UID
func (ec *ERPClient) CreateSubOrder(req *SubOrderRequest) (*SubOrderResponse, error) {
	if !ec.Available() {
		return nil, fmt.Errorf("1C API is not configured")
	}

	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/novzakaz", ec.baseURL)
	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.Printf("📦 1C: создание подзаказа (организация %s, юрлицо %d, %d позиций)",
		req.OrgID, req.LegalEntity, len(req.Items))

	body, status, err := ec.do(httpReq)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		log.Printf("❌ 1C novzakaz error (status %d): %s", status, string(body))
		return nil, fmt.Errorf("1C API error (status %d)", status)
	}

	var subOrder SubOrderResponse
	if err := json.Unmarshal(body, &subOrder); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if subOrder.UID == "" {
		return nil, fmt.Errorf("1C returned sub-order without UID")
	}

	log.Printf("✅ 1C: подзаказ создан (Nomer=%s, UID=%s)", subOrder.Nomer, subOrder.UID)
	return &subOrder, nil
}

// OrderHistory запрашивает историю заказов организации из 1C
// Ответ отдаем как есть, фронтенд сам его рисует
func (ec *ERPClient) OrderHistory(orgID string) (json.RawMessage, error) {
	if !ec.Available() {
		return nil, fmt.Errorf("1C API is not configured")
	}

	url := fmt.Sprintf("%s/istorzakaz/%s", ec.baseURL, orgID)
	httpReq, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, status, err := ec.do(httpReq)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		log.Printf("❌ 1C istorzakaz error (status %d): %s", status, string(body))
		return nil, fmt.Errorf("1C API error (status %d)", status)
	}

	return json.RawMessage(body), nil
}

// OrderStatus запрашивает статус подзаказа по его UID
// 1C отвечает либо простым текстом, либо JSON {"STATUS": "..."}
func (ec *ERPClient) OrderStatus(ctx context.Context, uid string) (string, error) {
	if !ec.Available() {
		return "", fmt.Errorf("1C API is not configured")
	}

	url := fmt.Sprintf("%s/zakaz-status/%s", ec.baseURL, uid)
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	body, status, err := ec.do(httpReq)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("1C API error (status %d): %s", status, string(body))
	}

	// Сначала пробуем JSON, иначе считаем ответ простым текстом
	var payload statusPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Status != "" {
		return payload.Status, nil
	}

	return strings.Trim(strings.TrimSpace(string(body)), `"`), nil
}
