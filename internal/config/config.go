package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

// Stock adjustment policy values for STOCK_POLICY.
const (
	StockPolicyBestEffort = "best-effort"
	StockPolicyStrict     = "strict"
)

type Config struct {
	MongoURI        string
	DBName          string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// StrictAssignmentCheck rejects delivery updates when the actor's
	// nickname does not match the order's direction. Off reproduces the
	// legacy log-and-proceed behaviour.
	StrictAssignmentCheck bool

	// StockPolicy decides whether a missing product or unrecognized unit
	// during stock adjustment fails the order or is skipped with a warning.
	StockPolicy string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:              getEnvOrDefault("MONGO_URI", ""),
		DBName:                getEnvOrDefault("DB_NAME", "gromart"),
		JWTSecret:             getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:        getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		RefreshTokenTTL:       getDurationEnv("REFRESH_TOKEN_TTL", 7, 24*time.Hour),
		StrictAssignmentCheck: getBoolEnv("STRICT_ASSIGNMENT_CHECK", true),
		StockPolicy:           getStockPolicyEnv("STOCK_POLICY", StockPolicyBestEffort),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getStockPolicyEnv(key, defaultValue string) string {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case StockPolicyBestEffort, StockPolicyStrict:
		return value
	case "":
		return defaultValue
	default:
		log.Printf("unknown %s value %q, using %s", key, value, defaultValue)
		return defaultValue
	}
}
