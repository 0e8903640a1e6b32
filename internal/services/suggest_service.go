package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"beerapp/server/internal/models"
)

// Сколько последних заказов показываем модели
const suggestHistoryDepth = 5

// SuggestService подсказки повторного заказа на основе истории
// Ключ OpenAI хранится в настройках приложения и читается на каждый запрос,
// чтобы его можно было поменять без рестарта сервера
type SuggestService struct {
	orders      *OrderService
	userService *UserService
}

// NewSuggestService создает новый сервис подсказок
func NewSuggestService(orders *OrderService, userService *UserService) *SuggestService {
	return &SuggestService{
		orders:      orders,
		userService: userService,
	}
}

// Suggestion одна подсказка для повторного заказа
type Suggestion struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// buildPrompt собирает описание истории заказов для модели
func buildPrompt(orders []models.Order) string {
	var sb strings.Builder
	sb.WriteString("История последних заказов клиента пивного магазина:\n")

	for i, order := range orders {
		sb.WriteString(fmt.Sprintf("Заказ %d (%s):\n", i+1, order.Date.Format("2006-01-02")))
		for _, line := range order.Lines() {
			sb.WriteString(fmt.Sprintf("- %s x%d\n", line.BeerName, line.Quantity))
		}
	}

	sb.WriteString("\nНа основе этой истории предложи до 5 товаров для повторного заказа. ")
	sb.WriteString("Ответь строго JSON-массивом объектов вида ")
	sb.WriteString(`[{"name": "название", "quantity": 2}]`)
	sb.WriteString(" без пояснений и без markdown.")

	return sb.String()
}

// parseSuggestions разбирает ответ модели
// Модель иногда заворачивает JSON в markdown-блок, срезаем его
func parseSuggestions(answer string) ([]Suggestion, error) {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil, fmt.Errorf("не удалось разобрать ответ модели: %w", err)
	}

	// Выкидываем пустые и неположительные строки
	valid := suggestions[:0]
	for _, s := range suggestions {
		if s.Name == "" || s.Quantity <= 0 {
			continue
		}
		valid = append(valid, s)
	}

	return valid, nil
}

// GetSuggestions возвращает подсказки повторного заказа для организации
// Без ключа OpenAI или истории возвращается пустой список, а не ошибка
func (sg *SuggestService) GetSuggestions(orgID string) ([]Suggestion, error) {
	settings, err := sg.userService.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения настроек: %w", err)
	}
	if settings.OpenAIKey == "" {
		log.Printf("💡 Подсказки: ключ OpenAI не настроен, отдаем пустой список")
		return []Suggestion{}, nil
	}

	orders, err := sg.orders.GetRecentOrders(orgID, suggestHistoryDepth)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []Suggestion{}, nil
	}

	openai := NewOpenAIClient(settings.OpenAIKey)
	answer, err := openai.Complete(&ChatRequest{
		Model: "gpt-4o-mini",
		Messages: []ChatMessage{
			{Role: "system", Content: "Ты помощник пивного магазина, помогаешь клиентам с повторными заказами."},
			{Role: "user", Content: buildPrompt(orders)},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, err
	}

	suggestions, err := parseSuggestions(answer)
	if err != nil {
		log.Printf("⚠️ Подсказки: %v (ответ: %.200s)", err, answer)
		return []Suggestion{}, nil
	}

	log.Printf("💡 Подсказки: для организации %s предложено %d товаров", orgID, len(suggestions))
	return suggestions, nil
}
