package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MongoURI    string
	MongoDBName string // Название базы данных (по умолчанию Pivo)
	RedisURL    string
	// Настройки API 1C
	API1CBaseURL  string
	API1CUsername string
	API1CPassword string
	API1CTimeout  int // Тайм-аут запросов к 1C в секундах
	// Настройки Supabase (леджер тары)
	SupabaseURL string
	SupabaseKey string
	// URL регистрации в Telegram-боте (отдаем незарегистрированным)
	TelegramRegisterURL string
	ServerPort          string
	Environment         string
}

func Load() *Config {
	// Полный URI имеет приоритет, иначе собираем из отдельных переменных
	mongoURI := getEnv("MONGO_URI", "")
	if mongoURI == "" {
		mongoHost := getEnv("MONGO_HOST", "")
		mongoPort := getEnv("MONGO_PORT", "27017")
		mongoUser := getEnv("MONGO_USER", "root")
		mongoPassword := getEnv("MONGO_PASSWORD", "")

		if mongoHost != "" {
			if mongoPassword != "" {
				mongoURI = fmt.Sprintf("mongodb://%s:%s@%s:%s/admin?authSource=admin&directConnection=true",
					mongoUser, mongoPassword, mongoHost, mongoPort)
			} else {
				mongoURI = fmt.Sprintf("mongodb://%s:%s/admin?directConnection=true", mongoHost, mongoPort)
			}
		}
	}
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/admin" // Fallback для разработки
	}

	// Redis: полный URL или сборка из частей
	redisURL := getEnv("REDIS_URL", "")
	if redisURL == "" {
		redisHost := getEnv("REDIS_HOST", "")
		redisPort := getEnv("REDIS_PORT", "6379")
		redisPassword := getEnv("REDIS_PASSWORD", "")
		redisDB := getEnv("REDIS_DB", "0")

		if redisHost != "" {
			if redisPassword != "" {
				redisURL = fmt.Sprintf("redis://:%s@%s:%s/%s", redisPassword, redisHost, redisPort, redisDB)
			} else {
				redisURL = fmt.Sprintf("redis://%s:%s/%s", redisHost, redisPort, redisDB)
			}
		}
	}
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0" // Fallback
	}

	return &Config{
		MongoURI:            mongoURI,
		MongoDBName:         getEnv("MONGO_DB_NAME", "Pivo"),
		RedisURL:            redisURL,
		API1CBaseURL:        strings.TrimRight(getEnv("API_1C_BASE_URL", ""), "/"),
		API1CUsername:       getEnv("API_1C_USERNAME", ""),
		API1CPassword:       getEnv("API_1C_PASSWORD", ""),
		API1CTimeout:        getEnvInt("API_1C_TIMEOUT", 10), // 10 секунд по умолчанию
		SupabaseURL:         strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:         getEnv("SUPABASE_KEY", ""),
		TelegramRegisterURL: getEnv("TELEGRAM_BOT_REGISTER_URL", "https://t.me/beer_otto_bot?start=register"),
		ServerPort:          getEnv("PORT", "8080"),
		Environment:         getEnv("ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
