package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Assistant AssistantConfig
	SMTP      SMTPConfig
	Keys      APIKeys
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	DataDir            string
}

// AssistantConfig carries every scheduling tunable. None of these are
// hardcoded anywhere else.
type AssistantConfig struct {
	WorkStart              string
	WorkEnd                string
	BufferMinutes          int
	SlotStepMinutes        int
	DefaultDurationMinutes int
	TeamSizeLimit          int
	Timezone               string
	SlotLimit              int
	RestaurantLimit        int
	CallTimeoutSeconds     int
	MinRestaurantRating    float64
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	Geoapify     string
	GoogleGemini string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "assistant.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			DataDir:            getEnv("DATA_DIR", "data"),
		},
		Assistant: AssistantConfig{
			WorkStart:              getEnv("WORKING_HOURS_START", "09:00"),
			WorkEnd:                getEnv("WORKING_HOURS_END", "18:00"),
			BufferMinutes:          getEnvAsInt("BUFFER_TIME_MINUTES", 15),
			SlotStepMinutes:        getEnvAsInt("SLOT_STEP_MINUTES", 30),
			DefaultDurationMinutes: getEnvAsInt("DEFAULT_MEETING_DURATION", 60),
			TeamSizeLimit:          getEnvAsInt("TEAM_SIZE_LIMIT", 20),
			Timezone:               getEnv("DEFAULT_TIMEZONE", "Asia/Kolkata"),
			SlotLimit:              getEnvAsInt("SLOT_OPTION_LIMIT", 5),
			RestaurantLimit:        getEnvAsInt("RESTAURANT_OPTION_LIMIT", 5),
			CallTimeoutSeconds:     getEnvAsInt("COLLABORATOR_TIMEOUT_SECONDS", 10),
			MinRestaurantRating:    getEnvAsFloat("MIN_RESTAURANT_RATING", 3.5),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Work-Life Assistant"),
		},
		Keys: APIKeys{
			Geoapify:     getEnv("GEOAPIFY_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
