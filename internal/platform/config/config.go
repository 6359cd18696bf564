package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultRequestTimeout = 10 * time.Second

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	API  APIConfig  `yaml:"api"`
	Stub StubConfig `yaml:"stub"`
}

// APIConfig はリモート権威サーバーへの接続に関する設定です。
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"-"`
	TimeoutRaw string        `yaml:"timeout"`
}

// StubConfig はローカルスタブ権威サーバーに関する設定です。
type StubConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	AuthToken  string `yaml:"auth_token"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if err := c.API.validateAndNormalize(); err != nil {
		return err
	}

	if c.Stub.ListenAddr == "" {
		c.Stub.ListenAddr = ":8480"
	}

	return nil
}

func (a *APIConfig) validateAndNormalize() error {
	if a.BaseURL == "" {
		return fmt.Errorf("config: api.base_url must be set")
	}

	u, err := url.Parse(a.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: api.base_url must be an absolute URL, got %q", a.BaseURL)
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")

	timeout, err := parseDurationAllowEmpty(a.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: api.timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}
	a.Timeout = timeout

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}
