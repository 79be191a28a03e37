package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	League      League
	SleeperAPI  SleeperAPI
	Server      Server
	TelegramBot TelegramBot
}

type League struct {
	LeagueID string `envconfig:"LEAGUE_ID" required:"true"`
	Weeks    int    `envconfig:"WEEKS" default:"17"`
}

type SleeperAPI struct {
	BaseURL         string        `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	Timeout         time.Duration `envconfig:"SLEEPER_TIMEOUT" default:"30s"`
	PlayersCacheTTL time.Duration `envconfig:"PLAYERS_CACHE_TTL" default:"1h"`
	RequestsPerSec  float64       `envconfig:"SLEEPER_REQUESTS_PER_SEC" default:"10"`
}

type Server struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8000"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

// Enabled reports whether the bot surface is configured.
func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
