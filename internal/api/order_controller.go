package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beerapp/server/internal/models"
	"beerapp/server/internal/services"
)

// OrderController управляет заказами мини-аппа
type OrderController struct {
	orders  *services.OrderService
	users   *services.UserService
	erp     *services.ERPClient
	suggest *services.SuggestService
}

// NewOrderController создает новый контроллер заказов
func NewOrderController(orders *services.OrderService, users *services.UserService, erp *services.ERPClient, suggest *services.SuggestService) *OrderController {
	return &OrderController{
		orders:  orders,
		users:   users,
		erp:     erp,
		suggest: suggest,
	}
}

// CreateOrderRequest запрос создания заказа
type CreateOrderRequest struct {
	UserID string                      `json:"user_id" binding:"required"`
	Items  []services.OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder создает заказ и отправляет подзаказы в 1C
// POST /api/v1/orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные параметры запроса",
			"details": err.Error(),
		})
		return
	}

	profile, err := oc.users.GetProfile(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки пользователя"})
		return
	}
	if profile == nil || !profile.Registered() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Пользователь не зарегистрирован"})
		return
	}

	order, err := oc.orders.CreateOrder(profile, req.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка создания заказа"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"order_id":   order.ID,
		"status":     order.Status,
		"orders_uid": order.OrdersUID,
	})
}

// GetMyOrders возвращает последние заказы организации пользователя
// GET /api/v1/orders/my?user_id=
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	profile := requireProfile(c, oc.users)
	if profile == nil {
		return
	}

	orders, err := oc.orders.GetRecentOrders(profile.OrgID, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения заказов"})
		return
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, orders[i].Summary())
	}

	c.JSON(http.StatusOK, gin.H{"orders": summaries})
}

// GetOrder возвращает заказ целиком, с развернутыми позициями
// GET /api/v1/orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := oc.orders.GetOrder(orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения заказа"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Заказ не найден"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     order.ID,
		"org_id": order.OrgID,
		"status": order.Status,
		"date":   order.Date,
		"items":  order.Lines(),
	})
}

// CancelOrder отменяет заказ, если он еще не ушел в работу
// POST /api/v1/orders/:id/cancel
func (oc *OrderController) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")

	if err := oc.orders.CancelOrder(orderID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Заказ не найден или уже в работе"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetHistory проксирует историю заказов организации из 1C
// GET /api/v1/orders/history?user_id=
func (oc *OrderController) GetHistory(c *gin.Context) {
	profile := requireProfile(c, oc.users)
	if profile == nil {
		return
	}

	history, err := oc.erp.OrderHistory(profile.OrgID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "История заказов временно недоступна"})
		return
	}

	c.Data(http.StatusOK, "application/json", history)
}

// CheckoutRequest запрос расчета стоимости корзины
type CheckoutRequest struct {
	UserID string                  `json:"user_id" binding:"required"`
	Items  []services.CheckoutItem `json:"items" binding:"required,min=1"`
}

// CalculateCheckout проксирует расчет стоимости корзины в 1C
// POST /api/v1/checkout/calculate
func (oc *OrderController) CalculateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные параметры запроса",
			"details": err.Error(),
		})
		return
	}

	profile, err := oc.users.GetProfile(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки пользователя"})
		return
	}
	if profile == nil || !profile.Registered() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Пользователь не зарегистрирован"})
		return
	}

	result, err := oc.erp.CalculateCheckout(&services.CheckoutRequest{
		OrgID: profile.OrgID,
		Items: req.Items,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Расчет стоимости временно недоступен"})
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}

// GetSuggestions возвращает подсказки повторного заказа
// GET /api/v1/orders/suggestions?user_id=
func (oc *OrderController) GetSuggestions(c *gin.Context) {
	profile := requireProfile(c, oc.users)
	if profile == nil {
		return
	}

	suggestions, err := oc.suggest.GetSuggestions(profile.OrgID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Подсказки временно недоступны"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
