package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// OpenAIClient клиент для работы с OpenAI Chat Completions API
// Используется для подсказок повторного заказа на основе истории
type OpenAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIClient создает новый клиент OpenAI
// Ключ хранится в настройках приложения (хэш beer:setting, поле OpenAI)
func NewOpenAIClient(apiKey string) *OpenAIClient {
	if apiKey == "" {
		log.Printf("⚠️ OpenAI: API ключ пустой, подсказки будут недоступны")
	} else if len(apiKey) < 20 {
		log.Printf("⚠️ OpenAI: API ключ слишком короткий (%d символов), возможно обрезан", len(apiKey))
	} else {
		// Логируем только первые и последние 4 символа для безопасности
		maskedKey := apiKey[:4] + "..." + apiKey[len(apiKey)-4:]
		log.Printf("✅ OpenAI: API ключ установлен (длина: %d, маска: %s)", len(apiKey), maskedKey)
	}

	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: "https://api.openai.com/v1",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ChatMessage одно сообщение диалога
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest запрос к Chat Completions API
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse ответ Chat Completions API
type ChatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete выполняет запрос к Chat Completions и возвращает текст ответа
func (oc *OpenAIClient) Complete(req *ChatRequest) (string, error) {
	if oc.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key is not set")
	}

	requestBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", oc.baseURL)
	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", oc.apiKey))

	log.Printf("🤖 OpenAI: отправка запроса (model=%s, сообщений: %d)", req.Model, len(req.Messages))

	resp, err := oc.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ OpenAI API error (status %d): %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("OpenAI API error (status %d)", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned empty choices")
	}

	log.Printf("✅ OpenAI: ответ получен (prompt=%d, completion=%d токенов)",
		chatResp.Usage.PromptTokens, chatResp.Usage.CompletionTokens)

	return chatResp.Choices[0].Message.Content, nil
}
