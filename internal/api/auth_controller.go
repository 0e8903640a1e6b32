package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beerapp/server/internal/models"
	"beerapp/server/internal/services"
)

// AuthController проверка регистрации пользователя мини-аппа
// Регистрацию ведет Telegram-бот, бэкенд только читает ее из Redis
type AuthController struct {
	users       *services.UserService
	registerURL string
}

// NewAuthController создает новый контроллер авторизации
func NewAuthController(users *services.UserService, registerURL string) *AuthController {
	return &AuthController{
		users:       users,
		registerURL: registerURL,
	}
}

// requireProfile загружает профиль зарегистрированного пользователя
// Пишет ответ об ошибке сам и возвращает nil, если пользователя пускать нельзя
func requireProfile(c *gin.Context, users *services.UserService) *models.UserProfile {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не указан user_id"})
		return nil
	}

	profile, err := users.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки пользователя"})
		return nil
	}
	if profile == nil || !profile.Registered() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Пользователь не зарегистрирован"})
		return nil
	}

	return profile
}

// Check проверяет регистрацию пользователя
// GET /api/v1/auth/check?user_id=
func (ac *AuthController) Check(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не указан user_id"})
		return
	}

	profile, err := ac.users.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки пользователя"})
		return
	}
	if profile == nil || !profile.Registered() {
		// Незарегистрированного отправляем регистрироваться к боту
		c.JSON(http.StatusUnauthorized, gin.H{
			"registered":   false,
			"register_url": ac.registerURL,
		})
		return
	}

	isAdmin, err := ac.users.IsAdmin(userID)
	if err != nil {
		// Настройки недоступны — пользователь все равно зарегистрирован
		isAdmin = false
	}

	c.JSON(http.StatusOK, gin.H{
		"registered":   true,
		"organization": profile.Organization,
		"org_id":       profile.OrgID,
		"is_admin":     isAdmin,
	})
}
