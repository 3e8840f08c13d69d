package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=fx_bank_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultAccountServiceURL = "https://demo8909904.mockable.io"
const defaultChannelID = "FXBankTeller"
const defaultChannelKey = "TellerKey001"

const (
	AccountServiceModeRemote = "remote"
	AccountServiceModeLocal  = "local"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

type SeedHolder struct {
	FirstName  string
	LastName   string
	Pin        string
	Balance    int64
	DailyLimit int64
}

type Config struct {
	TellerAddr         string
	AccountdAddr       string
	AccountServiceMode string
	AccountServiceURL  string
	RequestTimeout     time.Duration
	Breaker            BreakerConfig
	ChannelID          string
	ChannelKey         string
	LogLevel           string
	Store              string
	DatabaseDSN        string
	MigrationsDir      string
	Seed               SeedHolder
}

// Load reads the environment, after merging an optional .env file from the working
// directory. Variables already set win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	requestTimeout, err := durationEnv("SESSION_REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	breakerInterval, err := durationEnv("BREAKER_INTERVAL", time.Minute)
	if err != nil {
		return Config{}, err
	}
	breakerTimeout, err := durationEnv("BREAKER_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	breakerFailures, err := uint32Env("BREAKER_CONSECUTIVE_FAILURES", 5)
	if err != nil {
		return Config{}, err
	}
	seedBalance, err := intEnv("ACCOUNTD_SEED_BALANCE", 500)
	if err != nil {
		return Config{}, err
	}
	seedDailyLimit, err := intEnv("ACCOUNTD_SEED_DAILY_LIMIT", 100)
	if err != nil {
		return Config{}, err
	}

	mode := strings.ToLower(stringEnv("ACCOUNT_SERVICE_MODE", AccountServiceModeRemote))
	if mode != AccountServiceModeRemote && mode != AccountServiceModeLocal {
		return Config{}, fmt.Errorf("ACCOUNT_SERVICE_MODE must be %s or %s", AccountServiceModeRemote, AccountServiceModeLocal)
	}

	store := strings.ToLower(stringEnv("ACCOUNTD_STORE", StoreMemory))
	if store != StoreMemory && store != StorePostgres {
		return Config{}, fmt.Errorf("ACCOUNTD_STORE must be %s or %s", StoreMemory, StorePostgres)
	}

	return Config{
		TellerAddr:         stringEnv("TELLER_ADDR", ":8080"),
		AccountdAddr:       stringEnv("ACCOUNTD_ADDR", ":8081"),
		AccountServiceMode: mode,
		AccountServiceURL:  strings.TrimRight(stringEnv("ACCOUNT_SERVICE_URL", defaultAccountServiceURL), "/"),
		RequestTimeout:     requestTimeout,
		Breaker: BreakerConfig{
			MaxRequests:         1,
			Interval:            breakerInterval,
			Timeout:             breakerTimeout,
			ConsecutiveFailures: breakerFailures,
		},
		ChannelID:     stringEnv("CHANNEL_ID", defaultChannelID),
		ChannelKey:    stringEnv("CHANNEL_KEY", defaultChannelKey),
		LogLevel:      stringEnv("LOG_LEVEL", "info"),
		Store:         store,
		DatabaseDSN:   normalizeConnectionString(stringEnv("DATABASE_DSN", defaultConnectionString)),
		MigrationsDir: stringEnv("MIGRATIONS_DIR", ""),
		Seed: SeedHolder{
			FirstName:  stringEnv("ACCOUNTD_SEED_FIRST_NAME", "Ada"),
			LastName:   stringEnv("ACCOUNTD_SEED_LAST_NAME", "Lovelace"),
			Pin:        stringEnv("ACCOUNTD_SEED_PIN", "1234"),
			Balance:    int64(seedBalance),
			DailyLimit: int64(seedDailyLimit),
		},
	}, nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s cannot be negative", key)
	}
	return n, nil
}

func uint32Env(key string, fallback uint32) (uint32, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return uint32(n), nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
