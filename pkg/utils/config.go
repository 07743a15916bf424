package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Booking    BookingConfig
	Stripe     StripeConfig
	SSLCommerz SSLCommerzConfig
	Catalog    CatalogConfig
}

type AppConfig struct {
	Name      string
	Port      string
	Debug     bool
	LogPath   string
	ClientURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// BookingConfig holds the admission rules for the capacity engine: bookable
// hours are [DayStartHour, DayEndHour] inclusive of start, slots are
// SlotHours long and start on exact hour boundaries.
type BookingConfig struct {
	DayStartHour int
	DayEndHour   int
	SlotHours    int
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
}

type SSLCommerzConfig struct {
	StoreID       string
	StorePassword string
	BaseURL       string
}

// CatalogConfig carries the listing category/language whitelists. They are
// plain config records so tests and deployments can override them.
type CatalogConfig struct {
	Categories []string
	Languages  []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CLIENT_URL", "http://localhost:3000")
	viper.SetDefault("BOOKING_DAY_START_HOUR", 7)
	viper.SetDefault("BOOKING_DAY_END_HOUR", 17)
	viper.SetDefault("BOOKING_SLOT_HOURS", 1)
	viper.SetDefault("STRIPE_BASE_URL", "https://api.stripe.com")
	viper.SetDefault("SSLCOMMERZ_BASE_URL", "https://sandbox.sslcommerz.com")
	viper.SetDefault("LISTING_CATEGORIES", []string{
		"Food", "Adventure", "History", "Art", "Nightlife",
		"Shopping", "Nature", "Photography", "Cultural",
	})
	viper.SetDefault("LISTING_LANGUAGES", []string{
		"English", "Spanish", "French", "German", "Italian",
		"Japanese", "Chinese", "Arabic", "Bengali", "Hindi",
	})

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:      viper.GetString("APP_NAME"),
			Port:      viper.GetString("PORT"),
			Debug:     viper.GetBool("DEBUG"),
			LogPath:   viper.GetString("LOG_PATH"),
			ClientURL: viper.GetString("CLIENT_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			DayStartHour: viper.GetInt("BOOKING_DAY_START_HOUR"),
			DayEndHour:   viper.GetInt("BOOKING_DAY_END_HOUR"),
			SlotHours:    viper.GetInt("BOOKING_SLOT_HOURS"),
		},
		Stripe: StripeConfig{
			SecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
			BaseURL:       viper.GetString("STRIPE_BASE_URL"),
		},
		SSLCommerz: SSLCommerzConfig{
			StoreID:       viper.GetString("SSLCOMMERZ_STORE_ID"),
			StorePassword: viper.GetString("SSLCOMMERZ_STORE_PASS"),
			BaseURL:       viper.GetString("SSLCOMMERZ_BASE_URL"),
		},
		Catalog: CatalogConfig{
			Categories: viper.GetStringSlice("LISTING_CATEGORIES"),
			Languages:  viper.GetStringSlice("LISTING_LANGUAGES"),
		},
	}

	return config, nil
}
