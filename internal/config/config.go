package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config — общая конфигурация трёх сервисов. Каждый бинарник читает
// только свой адрес, остальные поля общие (одна БД, один каталог медиа).
type Config struct {
	SubmitAddr    string `env:"SUBMIT_ADDR"`
	DashboardAddr string `env:"DASHBOARD_ADDR"`
	CardAddr      string `env:"CARD_ADDR"`

	DatabaseDSN string `env:"DATABASE_DSN"`
	MediaPath   string `env:"MEDIA_PATH"`

	AuthSecret    string `env:"AUTH_SECRET"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	FFmpegPath       string `env:"FFMPEG_PATH"`
	FFmpegTimeoutSec int    `env:"FFMPEG_TIMEOUT_SEC"`
}

// NewConfig собирает конфигурацию: .env → переменные окружения → флаги.
// Флаги работают ТОЛЬКО если переменные из env не заданы.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	flag.StringVar(&cfg.SubmitAddr, "submit-addr", cfg.SubmitAddr, "адрес сервиса отправки (host:port)")
	flag.StringVar(&cfg.DashboardAddr, "dashboard-addr", cfg.DashboardAddr, "адрес дашборда (host:port)")
	flag.StringVar(&cfg.CardAddr, "card-addr", cfg.CardAddr, "адрес страницы открытки (host:port)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (sqlite-файл или postgres://)")
	flag.StringVar(&cfg.MediaPath, "media", cfg.MediaPath, "корень каталога медиафайлов")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи admin-cookie")
	flag.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "пароль администратора дашборда")
	flag.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "путь к ffmpeg")
	flag.IntVar(&cfg.FFmpegTimeoutSec, "ffmpeg-timeout", cfg.FFmpegTimeoutSec, "таймаут извлечения кадра, сек")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)

func (cfg *Config) applyDefaults() {
	if !hostPortRe.MatchString(cfg.SubmitAddr) {
		cfg.SubmitAddr = "localhost:8081"
	}
	if !hostPortRe.MatchString(cfg.DashboardAddr) {
		cfg.DashboardAddr = "localhost:8082"
	}
	if !hostPortRe.MatchString(cfg.CardAddr) {
		cfg.CardAddr = "localhost:8083"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "data/virtual_card.db"
	}
	if cfg.MediaPath == "" {
		cfg.MediaPath = "media"
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin"
	}
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFmpegTimeoutSec <= 0 {
		cfg.FFmpegTimeoutSec = 30
	}
}
