package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Chat          ChatConfig
	ChatRateLimit ChatRateLimitConfig
	Gemini        GeminiConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ELETRODESK_APP_ENV" required:"true"`
	Port         string `envconfig:"ELETRODESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ELETRODESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ELETRODESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ELETRODESK_DB_DSN"`
	Driver string `envconfig:"ELETRODESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ELETRODESK_DB_HOST"`
	LegacyPort     int    `envconfig:"ELETRODESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ELETRODESK_DB_USER"`
	LegacyPassword string `envconfig:"ELETRODESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"ELETRODESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"ELETRODESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ELETRODESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ELETRODESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ELETRODESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ELETRODESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ELETRODESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ELETRODESK_REDIS_ADDR"`
	Password     string        `envconfig:"ELETRODESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ELETRODESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ELETRODESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ELETRODESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ELETRODESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ELETRODESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ELETRODESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig validates bearer tokens minted by the hosted auth service.
type JWTConfig struct {
	Secret   string `envconfig:"ELETRODESK_JWT_SECRET" required:"true"`
	Issuer   string `envconfig:"ELETRODESK_JWT_ISSUER"`
	Audience string `envconfig:"ELETRODESK_JWT_AUDIENCE"`
}

// ChatConfig bounds the chat pipeline. The fetch/relevance caps mirror what the
// dashboard can usefully render; the preview cap bounds the denormalized
// last_message column.
type ChatConfig struct {
	ProductFetchLimit  int           `envconfig:"ELETRODESK_CHAT_PRODUCT_FETCH_LIMIT" default:"50"`
	RelevantLimit      int           `envconfig:"ELETRODESK_CHAT_RELEVANT_LIMIT" default:"20"`
	LowStockLimit      int           `envconfig:"ELETRODESK_CHAT_LOW_STOCK_LIMIT" default:"15"`
	FallbackSampleSize int           `envconfig:"ELETRODESK_CHAT_FALLBACK_SAMPLE" default:"10"`
	PreviewMaxLen      int           `envconfig:"ELETRODESK_CHAT_PREVIEW_MAX_LEN" default:"120"`
	CompletionTimeout  time.Duration `envconfig:"ELETRODESK_CHAT_COMPLETION_TIMEOUT" default:"25s"`
}

type ChatRateLimitConfig struct {
	Window    time.Duration `envconfig:"ELETRODESK_CHAT_RATE_LIMIT_WINDOW" default:"1m"`
	UserLimit int           `envconfig:"ELETRODESK_CHAT_RATE_LIMIT_USER_LIMIT" default:"20"`
}

type GeminiConfig struct {
	APIKey  string `envconfig:"ELETRODESK_GEMINI_API_KEY"`
	Model   string `envconfig:"ELETRODESK_GEMINI_MODEL" default:"gemini-1.5-flash"`
	BaseURL string `envconfig:"ELETRODESK_GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ELETRODESK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
