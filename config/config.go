package config

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Port    string
	GinMode string

	// WhatsApp Cloud API
	WhatsAppToken string
	PhoneNumberID string
	VerifyToken   string

	// Classifier
	OpenAIKey string

	// Persistence
	StoreDriver string // file | sqlite | mysql
	OrdersFile  string
	DBDSN       string

	// Katalog
	MenuFile string

	// Admin dashboard
	AdminUsername     string
	AdminPasswordHash string
}

// Load membaca konfigurasi dari environment. Nilai wajib yang kosong hanya
// menghasilkan warning; service tetap jalan dengan perilaku degradasi
// (classifier fallback, kirim pesan gagal tercatat di log).
func Load() *Config {
	cfg := &Config{
		Port:              envOr("PORT", "8080"),
		GinMode:           os.Getenv("GIN_MODE"),
		WhatsAppToken:     os.Getenv("WHATSAPP_TOKEN"),
		PhoneNumberID:     os.Getenv("WABA_PHONE_ID"),
		VerifyToken:       os.Getenv("WHATSAPP_VERIFY_TOKEN"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		StoreDriver:       envOr("STORE_DRIVER", "file"),
		OrdersFile:        envOr("ORDERS_FILE", "orders_log.json"),
		DBDSN:             os.Getenv("DB_DSN"),
		MenuFile:          envOr("MENU_FILE", "menu.json"),
		AdminUsername:     envOr("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	for _, name := range []string{"WHATSAPP_TOKEN", "WABA_PHONE_ID", "WHATSAPP_VERIFY_TOKEN", "OPENAI_API_KEY"} {
		if os.Getenv(name) == "" {
			log.Printf("Warning: environment variable %s is not set", name)
		}
	}
	if cfg.AdminPasswordHash == "" {
		log.Printf("Warning: ADMIN_PASSWORD_HASH is not set, admin login disabled")
	}

	return cfg
}

// InitDB membuka koneksi gorm untuk STORE_DRIVER sqlite/mysql.
func InitDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.StoreDriver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	default:
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = "orders.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
