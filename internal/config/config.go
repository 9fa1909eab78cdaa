package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN                 string
	Environment           string
	HTTPAddr              string
	JWTSecret             string
	OwnerPhone            string
	UPIID                 string
	UPIName               string
	PaymentCallbackSecret string
	MigrationsPath        string
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:                 os.Getenv("DB_DSN"),
		Environment:           os.Getenv("ENV"),
		HTTPAddr:              os.Getenv("HTTP_ADDR"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		OwnerPhone:            os.Getenv("OWNER_PHONE"),
		UPIID:                 os.Getenv("UPI_ID"),
		UPIName:               os.Getenv("UPI_NAME"),
		PaymentCallbackSecret: os.Getenv("PAYMENT_CALLBACK_SECRET"),
		MigrationsPath:        os.Getenv("MIGRATIONS_PATH"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.OwnerPhone == "" {
		cfg.OwnerPhone = "918050006565"
	}
	if cfg.UPIID == "" {
		cfg.UPIID = "littlemangalore@upi"
	}
	if cfg.UPIName == "" {
		cfg.UPIName = "Little Mangalore"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
