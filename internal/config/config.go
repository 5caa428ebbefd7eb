package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	GeneratorRandom = "random"
	GeneratorMD5    = "md5"
)

type Config struct {
	Env        string `yaml:"env" validate:"oneof=dev stage prod"`
	Shortener  `yaml:"shortener"`
	HTTPServer `yaml:"http_server"`
	Log        `yaml:"log"`
}

type Shortener struct {
	ShortURILength       int    `yaml:"short_uri_length" validate:"min=1,max=255"`
	Generator            string `yaml:"generator" validate:"oneof=random md5"`
	MaxAddAttempts       int    `yaml:"max_add_attempts" validate:"min=1"`
	MaxTotalItems        int    `yaml:"max_total_items" validate:"min=0"`
	MonitorMaxTotalItems bool   `yaml:"monitor_max_total_items"`
	ShardCount           int    `yaml:"shard_count" validate:"min=1"`
}

var defaultShortener = Shortener{
	ShortURILength:       6,
	Generator:            GeneratorRandom,
	MaxAddAttempts:       10,
	MaxTotalItems:        10_000_000,
	MonitorMaxTotalItems: false,
	ShardCount:           32,
}

type HTTPServer struct {
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

var defaultLog = Log{
	Level: "info",
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}

	if cfg.Env == EnvProd && (cfg.HTTPServer.CertFile == "" || cfg.HTTPServer.KeyFile == "") {
		return nil, fmt.Errorf("%s: cert_file and key_file are required in %s env", op, EnvProd)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.Shortener = defaultShortener
	cfg.HTTPServer = defaultHTTPServer
	cfg.Log = defaultLog
}
