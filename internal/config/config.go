// config предоставляет структуру конфигурации profile-service
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	S3       S3Config       `yaml:"s3"`
	Image    ImageConfig    `yaml:"image"`
	Auth     AuthConfig     `yaml:"auth"`
	Users    UsersConfig    `yaml:"users"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8085"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

type PostgresConfig struct {
	URL string `yaml:"url" env:"POSTGRES" env-required:"true"`
}

// RedisConfig — подключение к Redis (staging временных изображений + кэш профилей).
type RedisConfig struct {
	URL           string        `yaml:"url" env:"REDIS_URL" env-required:"true"`
	StagingPrefix string        `yaml:"staging_prefix" env:"REDIS_STAGING_PREFIX" env-default:"temp_image:"`
	CachePrefix   string        `yaml:"cache_prefix" env:"REDIS_CACHE_PREFIX" env-default:"profile:"`
	StagingTTL    time.Duration `yaml:"staging_ttl" env:"REDIS_STAGING_TTL" env-default:"1h"`
	CacheTTL      time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"5m"`
}

type S3Config struct {
	Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT" env-required:"true"`
	RootUser      string `yaml:"root_user" env:"S3_ROOT_USER" env-required:"true"`
	RootPassword  string `yaml:"root_password" env:"S3_ROOT_PASSWORD" env-required:"true"`
	Bucket        string `yaml:"bucket" env:"S3_BUCKET" env-required:"true"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL" env-default:"/uploads"`
}

// ImageConfig — параметры пайплайна обработки изображений.
type ImageConfig struct {
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"IMAGE_MAX_UPLOAD_BYTES" env-default:"10485760"`
	// PreviewQuality — JPEG-качество при стейджинге (для предпросмотра).
	PreviewQuality int `yaml:"preview_quality" env:"IMAGE_PREVIEW_QUALITY" env-default:"95"`
	// StoredQuality — JPEG-качество финального изображения профиля.
	StoredQuality int `yaml:"stored_quality" env:"IMAGE_STORED_QUALITY" env-default:"85"`
	// FinalSize — сторона финального квадратного изображения (px).
	FinalSize int `yaml:"final_size" env:"IMAGE_FINAL_SIZE" env-default:"300"`
	// MaxTransforms — число одновременных CPU-трансформаций (0 -> GOMAXPROCS).
	MaxTransforms int `yaml:"max_transforms" env:"IMAGE_MAX_TRANSFORMS" env-default:"0"`
}

// AuthConfig — параметры проверки bearer-токенов.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer    string `yaml:"issuer" env:"AUTH_ISSUER" env-default:""`
}

// UsersConfig — внешний user-service (делегирование операций с паролем).
type UsersConfig struct {
	BaseURL string        `yaml:"base_url" env:"USERS_BASE_URL" env-default:"http://user-service:8080"`
	Timeout time.Duration `yaml:"timeout" env:"USERS_TIMEOUT" env-default:"5s"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
	// Cache — короткий таймаут best-effort обращений к кэшу.
	Cache time.Duration `yaml:"cache" env:"CACHE_TIMEOUT" env-default:"300ms"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Redis.StagingTTL == 0 {
		c.Redis.StagingTTL = time.Hour
	}

	if c.Redis.CacheTTL == 0 {
		c.Redis.CacheTTL = 5 * time.Minute
	}

	if c.Image.MaxTransforms <= 0 {
		c.Image.MaxTransforms = runtime.GOMAXPROCS(0)
	}

	if c.Postgres.URL == "" {
		return fmt.Errorf("postgres.url is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required")
	}

	if c.HTTP.Host == "" {
		return fmt.Errorf("http.host is required")
	}

	if c.HTTP.Port == "" {
		return fmt.Errorf("http.port is required")
	}

	if p, err := strconv.Atoi(c.HTTP.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("http.port must be a valid TCP port (1..65535)")
	}

	if c.S3.Endpoint == "" {
		return fmt.Errorf("s3.endpoint is required")
	}

	if c.S3.RootUser == "" {
		return fmt.Errorf("s3.root_user is required")
	}

	if c.S3.RootPassword == "" {
		return fmt.Errorf("s3.root_password is required")
	}

	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Image.MaxUploadBytes <= 0 {
		return fmt.Errorf("image.max_upload_bytes must be > 0")
	}

	if c.Image.PreviewQuality <= 0 || c.Image.PreviewQuality > 100 {
		return fmt.Errorf("image.preview_quality must be in (0..100]")
	}

	if c.Image.StoredQuality <= 0 || c.Image.StoredQuality > 100 {
		return fmt.Errorf("image.stored_quality must be in (0..100]")
	}

	if c.Image.FinalSize <= 0 {
		return fmt.Errorf("image.final_size must be > 0")
	}

	if c.Redis.StagingTTL < 0 || c.Redis.CacheTTL < 0 {
		return fmt.Errorf("redis ttls must be >= 0")
	}

	return nil
}
