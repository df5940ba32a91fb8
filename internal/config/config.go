package config

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DBDriver       string
	DBPath         string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
	DBMaxIdleConns int
	SessionSecret  string
	GinMode        string
	BcryptCost     int
	ExportDir      string
	Port           string
}

func Load() *Config {
	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBPath:         getEnv("DB_PATH", "farmers.db"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "farmer"),
		DBPassword:     getEnv("DB_PASSWORD", "farmerpassword"),
		DBName:         getEnv("DB_NAME", "farmer_registration"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		BcryptCost:     getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		ExportDir:      getEnv("EXPORT_DIR", "exports"),
		Port:           getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
