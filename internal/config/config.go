package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port    string `toml:"port"`
	DataDir string `toml:"data_dir"`
}

type AuctionConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	SiteURL string `toml:"site_url"`
}

type LobConfig struct {
	APIKey     string `toml:"api_key"`
	TestAPIKey string `toml:"test_api_key"`
	FromName   string `toml:"from_name"`
	FromLine1  string `toml:"from_line1"`
	FromCity   string `toml:"from_city"`
	FromState  string `toml:"from_state"`
	FromZip    string `toml:"from_zip"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	To       string `toml:"to"`
}

type DropboxConfig struct {
	AppKey       string `toml:"app_key"`
	AppSecret    string `toml:"app_secret"`
	RefreshToken string `toml:"refresh_token"`
	TokenFile    string `toml:"token_file"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Auction AuctionConfig `toml:"auction"`
	Lob     LobConfig     `toml:"lob"`
	SMTP    SMTPConfig    `toml:"smtp"`
	Dropbox DropboxConfig `toml:"dropbox"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a usable configuration when no config file exists;
// secrets still have to come from the environment.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = "data"
	}
	if c.Auction.BaseURL == "" {
		c.Auction.BaseURL = "https://www.mclemoreauction.com/uapi"
	}
	if c.Auction.SiteURL == "" {
		c.Auction.SiteURL = "https://www.mclemoreauction.com"
	}
	if c.Lob.FromName == "" {
		c.Lob.FromName = "McLemore Auction Company"
		c.Lob.FromLine1 = "P.O. Box 58"
		c.Lob.FromCity = "Columbia"
		c.Lob.FromState = "TN"
		c.Lob.FromZip = "38402"
	}
	if c.SMTP.Host == "" {
		c.SMTP.Host = "smtp.gmail.com"
		c.SMTP.Port = 587
	}
	if c.Dropbox.TokenFile == "" {
		c.Dropbox.TokenFile = "dropbox_token.env"
	}
}

// ApplyEnv overrides file values with environment variables when set.
// Env wins so deployments can keep secrets out of the config file.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Server.Port, "PORT")
	set(&c.Server.DataDir, "DATA_DIR")
	set(&c.Auction.APIKey, "AM_API_KEY")
	set(&c.Auction.BaseURL, "BASE_API_URL")
	set(&c.Auction.SiteURL, "BASE_AUCTION_URL")
	set(&c.Lob.APIKey, "LOB_API_KEY")
	set(&c.Lob.TestAPIKey, "LOB_TEST_API_KEY")
	set(&c.SMTP.Username, "SMTP_USERNAME")
	set(&c.SMTP.Password, "SMTP_PASSWORD")
	set(&c.SMTP.From, "EMAIL_FROM")
	set(&c.SMTP.To, "EMAIL_TO")
	set(&c.Dropbox.AppKey, "DBX_APP_KEY")
	set(&c.Dropbox.AppSecret, "DBX_APP_SECRET")
	set(&c.Dropbox.RefreshToken, "DBX_REFRESH_TOKEN")
}
