package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beerapp/server/internal/services"
)

// Максимальный размер батча статусов за один запрос
const maxStatusBatchSize = 100

// StatusController отдает сводные статусы заказов
type StatusController struct {
	statuses *services.StatusService
}

// NewStatusController создает новый контроллер статусов
func NewStatusController(statuses *services.StatusService) *StatusController {
	return &StatusController{statuses: statuses}
}

// BatchStatusRequest запрос статусов пачкой
type BatchStatusRequest struct {
	Refs []services.StatusRef `json:"refs" binding:"required,min=1"`
}

// BatchStatuses возвращает статусы по списку ссылок
// POST /api/v1/orders/statuses/batch
func (sc *StatusController) BatchStatuses(c *gin.Context) {
	var req BatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные параметры запроса",
			"details": err.Error(),
		})
		return
	}
	if len(req.Refs) > maxStatusBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Слишком большой батч"})
		return
	}

	results := sc.statuses.BatchStatuses(req.Refs)
	c.JSON(http.StatusOK, gin.H{"statuses": results})
}

// CombinedStatus возвращает сводный статус одного заказа
// GET /api/v1/orders/:id/combined-status
func (sc *StatusController) CombinedStatus(c *gin.Context) {
	orderID := c.Param("id")

	result, err := sc.statuses.CombinedStatus(orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения заказа"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Заказ не найден"})
		return
	}

	c.JSON(http.StatusOK, result)
}
