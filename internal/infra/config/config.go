package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	domainpricing "villamare/internal/domain/pricing"
	"villamare/internal/domain/shared/money"
)

// Currency is the single currency the property prices in.
const Currency = "EUR"

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env      string
	HTTPAddr string

	StoreMode string
	MongoURI  string
	MongoDB   string

	KafkaBrokers []string
	KafkaTopic   string

	ChannelMode    string
	ChannelURL     string
	ChannelSource  string
	ChannelTimeout time.Duration

	AdminPasswordHash string
	SessionTTL        time.Duration

	Pricing domainpricing.Config
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:               getEnv("APP_ENV", "dev"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		StoreMode:         strings.ToLower(getEnv("STORE_MODE", "memory")),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", "villamare"),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "villamare.bookings"),
		ChannelMode:       strings.ToLower(getEnv("CHANNEL_MODE", "none")),
		ChannelURL:        os.Getenv("CHANNEL_URL"),
		ChannelSource:     getEnv("CHANNEL_SOURCE", "channel"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	channelTimeout, err := parseDurationEnv("CHANNEL_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ChannelTimeout = channelTimeout

	sessionTTL, err := parseDurationEnv("ADMIN_SESSION_TTL", 12*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = sessionTTL

	pricing, err := loadPricing()
	if err != nil {
		return Config{}, err
	}
	cfg.Pricing = pricing

	if cfg.StoreMode == "mongo" && cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required when STORE_MODE=mongo")
	}
	if cfg.ChannelMode == "http" && cfg.ChannelURL == "" {
		return Config{}, fmt.Errorf("CHANNEL_URL is required when CHANNEL_MODE=http")
	}
	return cfg, nil
}

func loadPricing() (domainpricing.Config, error) {
	baseNightly, err := parseMoneyEnv("PRICE_BASE_NIGHTLY_CENTS", 8000)
	if err != nil {
		return domainpricing.Config{}, err
	}
	cleaningFee, err := parseMoneyEnv("PRICE_CLEANING_FEE_CENTS", 6000)
	if err != nil {
		return domainpricing.Config{}, err
	}
	dogFee, err := parseMoneyEnv("PRICE_DOG_FEE_CENTS", 2500)
	if err != nil {
		return domainpricing.Config{}, err
	}
	cityTax, err := parseMoneyEnv("PRICE_CITY_TAX_CENTS", 410)
	if err != nil {
		return domainpricing.Config{}, err
	}
	minimumStay, err := parseIntEnv("MINIMUM_STAY_NIGHTS", domainpricing.DefaultMinimumStay)
	if err != nil {
		return domainpricing.Config{}, err
	}
	seasons, err := ParseSeasonWindows(os.Getenv("SEASON_WINDOWS"))
	if err != nil {
		return domainpricing.Config{}, err
	}
	return domainpricing.Config{
		BaseNightly:          baseNightly,
		CleaningFee:          cleaningFee,
		DogFee:               dogFee,
		CityTaxPerAdultNight: cityTax,
		MinimumStay:          minimumStay,
		Seasons:              seasons,
	}, nil
}

// ParseSeasonWindows parses a compact season listing, for example:
//
//	high:2026-06-15:2026-09-15:12500,low:2026-01-10:2026-03-31:8500
//
// The multiplier is in basis points (10000 == x1.0).
func ParseSeasonWindows(raw string) ([]domainpricing.SeasonWindow, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var windows []domainpricing.SeasonWindow
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid SEASON_WINDOWS entry %q: want name:from:to:bps", entry)
		}
		from, err := time.ParseInLocation("2006-01-02", parts[1], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid SEASON_WINDOWS start in %q: %w", entry, err)
		}
		to, err := time.ParseInLocation("2006-01-02", parts[2], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid SEASON_WINDOWS end in %q: %w", entry, err)
		}
		if to.Before(from) {
			return nil, fmt.Errorf("SEASON_WINDOWS entry %q ends before it starts", entry)
		}
		bps, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil || bps <= 0 {
			return nil, fmt.Errorf("invalid SEASON_WINDOWS multiplier in %q", entry)
		}
		windows = append(windows, domainpricing.SeasonWindow{
			Name:       domainpricing.Season(parts[0]),
			From:       from,
			To:         to,
			Multiplier: bps,
		})
	}
	return windows, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}

func parseMoneyEnv(key string, defCents int64) (money.Money, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return money.Must(defCents, Currency), nil
	}
	cents, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return money.Money{}, fmt.Errorf("invalid %s amount: %w", key, err)
	}
	if cents < 0 {
		return money.Money{}, fmt.Errorf("invalid %s amount: must not be negative", key)
	}
	return money.Must(cents, Currency), nil
}
