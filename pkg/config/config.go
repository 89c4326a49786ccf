// Файл: config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ApiConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RefreshEvery   time.Duration
	QRImageURL     string // шаблон URL стороннего сервиса генерации кодов, %s = ИНН
	QRFetchPerSec  float64
	FontDir        string // карты кодировок для gofpdf (cp1251.map)
	LogoPath       string
	ExportDir      string
	ExportFileBase string
}

type StateConfig struct {
	Path string // файл с локальным состоянием клиента (тема, язык, токены)
}

type Config struct {
	Api   ApiConfig
	State StateConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Api: ApiConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8000/api/v1"),
			Timeout:        getDuration("API_TIMEOUT", 30*time.Second),
			RefreshEvery:   getDuration("TOKEN_REFRESH_INTERVAL", 4*time.Minute),
			QRImageURL:     getEnv("QR_IMAGE_URL", "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=%s"),
			QRFetchPerSec:  getFloat("QR_FETCH_PER_SEC", 5),
			FontDir:        getEnv("EXPORT_FONT_DIR", "./assets/fonts"),
			LogoPath:       getEnv("EXPORT_LOGO_PATH", "./assets/logo.png"),
			ExportDir:      getEnv("EXPORT_DIR", "./exports"),
			ExportFileBase: getEnv("EXPORT_FILE_BASE", "inventory-qr"),
		},
		State: StateConfig{
			Path: getEnv("CLIENT_STATE_PATH", "./state.yaml"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
