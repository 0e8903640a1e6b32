package services

import (
	"fmt"
	"log"
	"time"

	"beerapp/server/internal/models"
)

// Ключи в Redis: регистрацию ведет Telegram-бот, мы ее только читаем
const (
	userKeyPrefix = "beer:user:"
	settingsKey   = "beer:setting"
)

// HashStore хэш-операции Redis, нужные сервису пользователей
type HashStore interface {
	HGetAll(key string) (map[string]string, error)
	HSet(key string, values ...interface{}) error
}

// UserService читает регистрационные данные и настройки из Redis
type UserService struct {
	store HashStore
}

// NewUserService создает новый сервис пользователей
func NewUserService(store HashStore) *UserService {
	return &UserService{store: store}
}

// GetProfile возвращает профиль пользователя или nil, если он не зарегистрирован
func (us *UserService) GetProfile(userID string) (*models.UserProfile, error) {
	if us.store == nil {
		return nil, fmt.Errorf("Redis connection not available")
	}

	fields, err := us.store.HGetAll(userKeyPrefix + userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения профиля пользователя %s: %w", userID, err)
	}
	if len(fields) == 0 {
		return nil, nil // Пользователь боту неизвестен
	}

	return models.UserProfileFromHash(fields), nil
}

// GetSettings возвращает глобальные настройки приложения
func (us *UserService) GetSettings() (*models.Settings, error) {
	if us.store == nil {
		return nil, fmt.Errorf("Redis connection not available")
	}

	fields, err := us.store.HGetAll(settingsKey)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения настроек: %w", err)
	}

	return models.SettingsFromHash(fields), nil
}

// IsAdmin является ли пользователь администратором
func (us *UserService) IsAdmin(userID string) (bool, error) {
	settings, err := us.GetSettings()
	if err != nil {
		return false, err
	}
	return settings.Admin != "" && settings.Admin == userID, nil
}

// SetCoefficient сохраняет новый ценовой коэффициент и дату изменения
func (us *UserService) SetCoefficient(value string) error {
	if us.store == nil {
		return fmt.Errorf("Redis connection not available")
	}

	err := us.store.HSet(settingsKey,
		"coefficient", value,
		"coefficient_last_Date", time.Now().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения коэффициента: %w", err)
	}

	log.Printf("⚙️ Коэффициент обновлен: %s", value)
	return nil
}
