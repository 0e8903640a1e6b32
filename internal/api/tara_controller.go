package api

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"beerapp/server/internal/models"
	"beerapp/server/internal/services"
)

// count движения: знак обязателен, чтобы направление было явным
var taraCountPattern = regexp.MustCompile(`^[+-]\d+$`)

// TaraController учет возвратной тары
type TaraController struct {
	tara *services.TaraService
}

// NewTaraController создает новый контроллер тары
func NewTaraController(tara *services.TaraService) *TaraController {
	return &TaraController{tara: tara}
}

// TaraMovementRequest запрос на запись движения тары
type TaraMovementRequest struct {
	Client         string `json:"client" binding:"required"`
	Tara           string `json:"tara"`
	TaraID         string `json:"tara_id" binding:"required"`
	Count          string `json:"count" binding:"required"`
	IdempotencyKey string `json:"idempotency_key"`
}

// RecordMovement записывает движение тары в леджер
// POST /api/v1/tara/movements
func (tc *TaraController) RecordMovement(c *gin.Context) {
	if !tc.tara.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Учет тары не настроен"})
		return
	}

	var req TaraMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные параметры запроса",
			"details": err.Error(),
		})
		return
	}
	if !taraCountPattern.MatchString(req.Count) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count должен иметь вид +N или -N"})
		return
	}

	// Без ключа клиента движение все равно идемпотентно в рамках ретраев
	key := req.IdempotencyKey
	if key == "" {
		key = uuid.New().String()
	}

	movement := &models.TaraMovement{
		Client: req.Client,
		Tara:   req.Tara,
		TaraID: req.TaraID,
		Count:  req.Count,
	}
	if err := tc.tara.RecordMovement(movement, key); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Ошибка записи движения тары"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// GetBalance возвращает баланс тары клиента по видам
// GET /api/v1/tara/balance?client=
func (tc *TaraController) GetBalance(c *gin.Context) {
	if !tc.tara.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Учет тары не настроен"})
		return
	}

	clientID := c.Query("client")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не указан client"})
		return
	}

	balances, err := tc.tara.GetBalance(clientID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Ошибка чтения баланса тары"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": balances})
}
