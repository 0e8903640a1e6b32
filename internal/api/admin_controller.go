package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"beerapp/server/internal/services"
)

// AdminController настройки приложения, доступные только администратору
type AdminController struct {
	users *services.UserService
}

// NewAdminController создает новый админский контроллер
func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{users: users}
}

// requireAdmin проверяет, что запрос пришел от администратора
func (ac *AdminController) requireAdmin(c *gin.Context, userID string) bool {
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не указан user_id"})
		return false
	}

	isAdmin, err := ac.users.IsAdmin(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки прав"})
		return false
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Доступ только для администратора"})
		return false
	}

	return true
}

// GetCoefficient возвращает текущий ценовой коэффициент
// GET /api/v1/admin/coefficient?user_id=
func (ac *AdminController) GetCoefficient(c *gin.Context) {
	if !ac.requireAdmin(c, c.Query("user_id")) {
		return
	}

	settings, err := ac.users.GetSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения настроек"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coefficient":           settings.Coefficient,
		"coefficient_last_date": settings.CoefficientLastDate,
	})
}

// SetCoefficientRequest запрос на смену коэффициента
type SetCoefficientRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Coefficient string `json:"coefficient" binding:"required"`
}

// SetCoefficient сохраняет новый ценовой коэффициент
// PUT /api/v1/admin/coefficient
func (ac *AdminController) SetCoefficient(c *gin.Context) {
	var req SetCoefficientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные параметры запроса",
			"details": err.Error(),
		})
		return
	}

	value, err := decimal.NewFromString(req.Coefficient)
	if err != nil || value.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Коэффициент должен быть положительным числом"})
		return
	}

	if !ac.requireAdmin(c, req.UserID) {
		return
	}

	if err := ac.users.SetCoefficient(value.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения коэффициента"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"coefficient": value.String(),
	})
}
