package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Backend   BackendConfig
	Database  DatabaseConfig
	Session   SessionConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Receipt   ReceiptConfig
	Browser   BrowserConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type LogConfig struct {
	Level    string
	Encoding string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
}

type SessionConfig struct {
	CookieName   string
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	CharWidth int
}

type ReceiptConfig struct {
	StoreName string
	Tagline   string
	Phone     string
	Email     string
	Footer    []string
	PoweredBy []string
	Currency  string
	Symbol    string
	Timezone  string
}

type BrowserConfig struct {
	Bin     string
	Timeout time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name: viper.GetString("APP_NAME"),
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetString("APP_PORT"),
		},
		Log: LogConfig{
			Level:    viper.GetString("LOG_LEVEL"),
			Encoding: viper.GetString("LOG_ENCODING"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(viper.GetString("BACKEND_URL"), "/"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Driver:     viper.GetString("DB_DRIVER"),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
			Timezone:   viper.GetString("DB_TIMEZONE"),
			SQLitePath: viper.GetString("SQLITE_PATH"),
		},
		Session: SessionConfig{
			CookieName:   viper.GetString("SESSION_COOKIE_NAME"),
			Secret:       viper.GetString("SESSION_SECRET"),
			TTL:          time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CookieSecure: viper.GetBool("SESSION_COOKIE_SECURE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: stringList("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: stringList("CORS_ALLOWED_METHODS"),
			AllowedHeaders: stringList("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		Receipt: ReceiptConfig{
			StoreName: viper.GetString("RECEIPT_STORE_NAME"),
			Tagline:   viper.GetString("RECEIPT_TAGLINE"),
			Phone:     viper.GetString("RECEIPT_PHONE"),
			Email:     viper.GetString("RECEIPT_EMAIL"),
			Footer:    splitLines(viper.GetString("RECEIPT_FOOTER")),
			PoweredBy: splitLines(viper.GetString("RECEIPT_POWERED_BY")),
			Currency:  viper.GetString("RECEIPT_CURRENCY"),
			Symbol:    viper.GetString("RECEIPT_CURRENCY_SYMBOL"),
			Timezone:  viper.GetString("RECEIPT_TIMEZONE"),
		},
		Browser: BrowserConfig{
			Bin:     viper.GetString("BROWSER_BIN"),
			Timeout: time.Duration(viper.GetInt("BROWSER_TIMEOUT_SECONDS")) * time.Second,
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "stockflow-dashboard")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("LOG_ENCODING", "")
	viper.SetDefault("BACKEND_URL", "http://localhost:5000/api")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "stockflow_dashboard")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Lagos")
	viper.SetDefault("SQLITE_PATH", "./storage/dashboard.db")
	viper.SetDefault("SESSION_COOKIE_NAME", "stockflow_session")
	viper.SetDefault("SESSION_SECRET", "change-this-secret-in-production")
	viper.SetDefault("SESSION_TTL_HOURS", 12)
	viper.SetDefault("SESSION_COOKIE_SECURE", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Accept,Authorization,Idempotency-Key")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("RECEIPT_STORE_NAME", "STOCKFLOW")
	viper.SetDefault("RECEIPT_TAGLINE", "Inventory Management System")
	viper.SetDefault("RECEIPT_PHONE", "+234 800 000 0000")
	viper.SetDefault("RECEIPT_EMAIL", "info@stockflow.com")
	viper.SetDefault("RECEIPT_FOOTER", "THANK YOU FOR YOUR BUSINESS!|Goods sold are not returnable|Please keep this receipt for your records")
	viper.SetDefault("RECEIPT_POWERED_BY", "Powered by Abit|www.abithub.tech")
	viper.SetDefault("RECEIPT_CURRENCY", "NGN")
	viper.SetDefault("RECEIPT_CURRENCY_SYMBOL", "₦")
	viper.SetDefault("RECEIPT_TIMEZONE", "Africa/Lagos")
	viper.SetDefault("BROWSER_BIN", "")
	viper.SetDefault("BROWSER_TIMEOUT_SECONDS", 30)
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// stringList reads a comma separated env value
func stringList(key string) []string {
	var out []string
	for _, part := range strings.Split(viper.GetString(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitLines reads a '|' separated list of receipt lines
func splitLines(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
