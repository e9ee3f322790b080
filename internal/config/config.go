package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Invoice struct {
		NumberPrefix string `mapstructure:"number_prefix"`
		Currency     string `mapstructure:"currency"`
		PaymentTerms string `mapstructure:"payment_terms"`
	} `mapstructure:"invoice"`

	// Seller seeds the persisted seller record on first run. After that the
	// stored record is authoritative and is edited through the API.
	Seller struct {
		Name        string `mapstructure:"name"`
		Address     string `mapstructure:"address"`
		Phone       string `mapstructure:"phone"`
		Email       string `mapstructure:"email"`
		PanNo       string `mapstructure:"pan_no"`
		BankName    string `mapstructure:"bank_name"`
		BankAccount string `mapstructure:"bank_account"`
		BankIFSC    string `mapstructure:"bank_ifsc"`
		BankBranch  string `mapstructure:"bank_branch"`
	} `mapstructure:"seller"`

	Printer struct {
		AgentURL      string `mapstructure:"agent_url"`
		SettleDelayMS int    `mapstructure:"settle_delay_ms"`
	} `mapstructure:"printer"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "invoice_db")
	v.SetDefault("invoice.number_prefix", "YG")
	v.SetDefault("invoice.currency", "INR")
	v.SetDefault("invoice.payment_terms", "Due on receipt")
	v.SetDefault("printer.settle_delay_ms", 500)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	if url := os.Getenv("PRINTER_AGENT_URL"); url != "" {
		cfg.Printer.AgentURL = url
	}

	return &cfg
}
