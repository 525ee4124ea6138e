package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Conf menyimpan semua nilai konfigurasi (env + default).
var Conf = viper.New()

func init() {
	setDefaults(Conf)
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		log.Println("🚀 Running in production, menggunakan ENV dari sistem")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
	} else {
		log.Println("✅ .env file berhasil dimuat!")
	}
}

func setDefaults(v *viper.Viper) {
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REQUEST_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "futbolokulu")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_STATEMENT_TIMEOUT_MS", 5000)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("TOKEN_BLACKLIST_TTL_DAYS", 7)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM", "noreply@futbolokulu.local")
	v.SetDefault("MAIL_FROM_NAME", "Futbol Okulu")
	v.SetDefault("SMS_FROM", "FUTBOLOKULU")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

/* =======================
   Typed config
======================= */

type DBConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	StatementTimeoutMS int
}

type AppConfig struct {
	Env            string
	Port           string
	LogLevel       string
	RequestTimeout time.Duration

	DB DBConfig

	JWTSecret        string
	JWTTTL           time.Duration
	BlacklistTTLDays int
	CORSOrigins      string

	SendGridAPIKey string
	MailFrom       string
	MailFromName   string
	SMSFrom        string
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load membaca konfigurasi dari viper. JWT_SECRET wajib ada.
func Load(v *viper.Viper) (AppConfig, error) {
	if v == nil {
		v = Conf
	}
	cfg := AppConfig{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		DB: DBConfig{
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			StatementTimeoutMS: v.GetInt("DB_STATEMENT_TIMEOUT_MS"),
		},
		JWTSecret:        strings.TrimSpace(v.GetString("JWT_SECRET")),
		JWTTTL:           v.GetDuration("JWT_TTL"),
		BlacklistTTLDays: v.GetInt("TOKEN_BLACKLIST_TTL_DAYS"),
		CORSOrigins:      v.GetString("CORS_ORIGINS"),
		SendGridAPIKey:   strings.TrimSpace(v.GetString("SENDGRID_API_KEY")),
		MailFrom:         v.GetString("MAIL_FROM"),
		MailFromName:     v.GetString("MAIL_FROM_NAME"),
		SMSFrom:          v.GetString("SMS_FROM"),
	}

	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET belum diset")
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 24 * time.Hour
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.BlacklistTTLDays <= 0 {
		cfg.BlacklistTTLDays = 7
	}
	return cfg, nil
}

// NewViper membuat instance baru dengan default yang sama (dipakai di test).
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}
