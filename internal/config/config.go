package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                string
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	RedisHost           string
	RedisPort           string
	SessionSecret       string
	GinMode             string
	OpenAIAPIKey        string
	AllowDesignerCreate bool
}

func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", "8080"),
		DBDriver:            getEnv("DB_DRIVER", "mysql"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "cvassist"),
		DBPassword:          getEnv("DB_PASSWORD", "cvassist"),
		DBName:              getEnv("DB_NAME", "cvassist_tasks"),
		RedisHost:           getEnv("REDIS_HOST", "localhost"),
		RedisPort:           getEnv("REDIS_PORT", "6379"),
		SessionSecret:       getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		AllowDesignerCreate: getEnvBool("ALLOW_DESIGNER_CREATE", false),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
