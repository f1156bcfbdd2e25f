package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Database   DatabaseConfig
	App        AppConfig
	Simulation SimulationConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig is optional. With neither DSN nor Host set, report
// archiving and metric history are disabled.
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

func (c DatabaseConfig) Enabled() bool {
	return c.DSN != "" || c.Host != ""
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

type SimulationConfig struct {
	MaxSessions   int
	IdleTTL       time.Duration
	SweepSpec     string
	ScenariosFile string
	TickInterval  time.Duration
	TickChance    float64
	RateLimit     float64 // command requests per second per client
	RateBurst     int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "purple_team_sim"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Simulation: SimulationConfig{
			MaxSessions:   getEnvAsInt("SIM_MAX_SESSIONS", 100),
			IdleTTL:       getEnvAsDuration("SIM_IDLE_TTL", 30*time.Minute),
			SweepSpec:     getEnv("SIM_SWEEP_SPEC", "*/30 * * * * *"),
			ScenariosFile: getEnv("SIM_SCENARIOS_FILE", ""),
			TickInterval:  getEnvAsDuration("SIM_TICK_INTERVAL", 3500*time.Millisecond),
			TickChance:    getEnvAsFloat("SIM_TICK_CHANCE", 0.6),
			RateLimit:     getEnvAsFloat("SIM_RATE_LIMIT", 5),
			RateBurst:     getEnvAsInt("SIM_RATE_BURST", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Simulation.MaxSessions <= 0 {
		return fmt.Errorf("SIM_MAX_SESSIONS must be positive, got %d", c.Simulation.MaxSessions)
	}

	if c.Simulation.TickChance < 0 || c.Simulation.TickChance > 1 {
		return fmt.Errorf("SIM_TICK_CHANCE must be within [0,1], got %v", c.Simulation.TickChance)
	}

	if c.Simulation.RateLimit <= 0 || c.Simulation.RateBurst <= 0 {
		return fmt.Errorf("SIM_RATE_LIMIT and SIM_RATE_BURST must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
