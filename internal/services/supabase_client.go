package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"beerapp/server/internal/models"
)

// SupabaseClient клиент REST API Supabase (PostgREST) для леджера тары
// Леджер append-only: балансы считаются агрегацией движений на нашей стороне
type SupabaseClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSupabaseClient создает новый клиент леджера тары
func NewSupabaseClient(baseURL, apiKey string) *SupabaseClient {
	if baseURL == "" {
		log.Printf("⚠️ Supabase: URL не задан, учет тары будет недоступен")
	}

	return &SupabaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Available настроен ли леджер тары
func (sc *SupabaseClient) Available() bool {
	return sc.baseURL != ""
}

func (sc *SupabaseClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if sc.apiKey != "" {
		req.Header.Set("apikey", sc.apiKey)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", sc.apiKey))
	}
}

// InsertMovement записывает одно движение тары в леджер
func (sc *SupabaseClient) InsertMovement(movement *models.TaraMovement) error {
	if !sc.Available() {
		return fmt.Errorf("Supabase is not configured")
	}

	requestBody, err := json.Marshal(movement)
	if err != nil {
		return fmt.Errorf("failed to marshal movement: %w", err)
	}

	endpoint := fmt.Sprintf("%s/pride_beer_tara", sc.baseURL)
	httpReq, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	sc.setHeaders(httpReq)
	httpReq.Header.Set("Prefer", "return=minimal")

	resp, err := sc.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ Supabase insert error (status %d): %s", resp.StatusCode, string(body))
		return fmt.Errorf("Supabase API error (status %d)", resp.StatusCode)
	}

	log.Printf("🍺 Тара: записано движение client=%s tara_id=%s count=%s",
		movement.Client, movement.TaraID, movement.Count)
	return nil
}

// ListMovements возвращает все движения тары клиента
func (sc *SupabaseClient) ListMovements(clientID string) ([]models.TaraMovement, error) {
	if !sc.Available() {
		return nil, fmt.Errorf("Supabase is not configured")
	}

	endpoint := fmt.Sprintf("%s/pride_beer_tara?client=eq.%s", sc.baseURL, url.QueryEscape(clientID))
	httpReq, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	sc.setHeaders(httpReq)

	resp, err := sc.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Supabase list error (status %d): %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("Supabase API error (status %d)", resp.StatusCode)
	}

	var movements []models.TaraMovement
	if err := json.Unmarshal(body, &movements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return movements, nil
}
