package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config параметры процесса, читаются из окружения
type Config struct {
	Addr         string
	DBPath       string
	JWTSecret    string
	AllowOrigins []string
}

// Load подхватывает .env (если он есть), затем окружение
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:         getenv("LISTEN_ADDR", ":9091"),
		DBPath:       getenv("DB_PATH", "drug_inventory.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AllowOrigins: strings.Split(getenv("CORS_ORIGINS", "http://localhost:3000"), ","),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
