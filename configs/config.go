package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// Default order rates, percent. Captured onto each order at creation.
	ServiceRate decimal.Decimal
	TaxRate     decimal.Decimal
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:    getEnv("DB_SOURCE", "comandero.db"),
		Port:        getEnv("PORT", "8000"),
		JWTSecret:   getEnv("JWT_SECRET", "changeme"),
		JWTTTL:      24 * time.Hour,
		ServiceRate: getDecimalEnv("SERVICE_RATE", "0"),
		TaxRate:     getDecimalEnv("TAX_RATE", "16"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDecimalEnv(key, fallback string) decimal.Decimal {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("invalid decimal env %s=%q: %v", key, raw, err)
	}
	return d
}
