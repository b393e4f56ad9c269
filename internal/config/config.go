package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Provider struct {
		Name           string `yaml:"name"` // gemini | openai
		APIKey         string `yaml:"api_key"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"provider"`

	Uploads struct {
		Dir       string `yaml:"dir"`
		MaxSizeMB int64  `yaml:"max_size_mb"`
	} `yaml:"uploads"`

	Imaging struct {
		Selection string `yaml:"selection"` // hash | random
	} `yaml:"imaging"`

	Archive struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"archive"`

	RateLimit struct {
		Capacity   int  `yaml:"capacity"`
		RefillRate int  `yaml:"refill_rate"`
		TrustProxy bool `yaml:"trust_proxy"`
	} `yaml:"rate_limit"`
}

// Load reads the yaml config file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config with defaults only, for running without a
// config file.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5001
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Provider.Name == "" {
		c.Provider.Name = "gemini"
	}
	if c.Provider.TimeoutSeconds == 0 {
		c.Provider.TimeoutSeconds = 30
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "temp_uploads"
	}
	if c.Uploads.MaxSizeMB == 0 {
		c.Uploads.MaxSizeMB = 10
	}
	if c.Imaging.Selection == "" {
		c.Imaging.Selection = "hash"
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 30
	}
	if c.RateLimit.RefillRate == 0 {
		c.RateLimit.RefillRate = 5
	}
}

// ProviderAPIKey resolves the credential: config value first, then the
// provider's conventional environment variable. An empty result means
// the generative path stays disabled for the process lifetime.
func (c *Config) ProviderAPIKey() string {
	if c.Provider.APIKey != "" {
		return c.Provider.APIKey
	}
	switch c.Provider.Name {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	default:
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			return v
		}
		return os.Getenv("GOOGLE_API_KEY")
	}
}

// ProviderTimeout returns the bounded per-call provider timeout.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

// MaxUploadBytes returns the upload size cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.Uploads.MaxSizeMB << 20
}
