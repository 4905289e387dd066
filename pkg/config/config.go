package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "STOREFRONT_DB_DSN"
	EnvDBHost = "STOREFRONT_DB_HOST"
	EnvDBUser = "STOREFRONT_DB_USER"
	EnvDBName = "STOREFRONT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	CartToken    CartTokenConfig
	Newsletter   NewsletterConfig
	Theme        ThemeConfig
	Optimistic   OptimisticConfig
	Viewer       ViewerConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOREFRONT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFRONT_DB_USER"`
	LegacyPassword string `envconfig:"STOREFRONT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFRONT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
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

	dsn := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     db.LegacyHost + ":" + strconv.Itoa(db.LegacyPort),
		Path:     "/" + db.LegacyName,
		RawQuery: "sslmode=" + db.LegacySSLMode,
	}
	db.DSN = dsn.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartTokenConfig drives the signed tokens binding a storefront client to its cart.
type CartTokenConfig struct {
	Secret            string `envconfig:"STOREFRONT_CART_TOKEN_SECRET" required:"true"`
	Issuer            string `envconfig:"STOREFRONT_CART_TOKEN_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STOREFRONT_CART_TOKEN_EXPIRATION_MINUTES" default:"20160"`
}

// TTL returns the cart token lifetime.
func (c CartTokenConfig) TTL() time.Duration {
	if c.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(c.ExpirationMinutes) * time.Minute
}

type NewsletterConfig struct {
	ProviderURL     string        `envconfig:"STOREFRONT_NEWSLETTER_PROVIDER_URL" required:"true"`
	APIKey          string        `envconfig:"STOREFRONT_NEWSLETTER_API_KEY"`
	RequestTimeout  time.Duration `envconfig:"STOREFRONT_NEWSLETTER_REQUEST_TIMEOUT" default:"5s"`
	PendingTTL      time.Duration `envconfig:"STOREFRONT_NEWSLETTER_PENDING_TTL" default:"30s"`
	SuccessMessage  string        `envconfig:"STOREFRONT_NEWSLETTER_SUCCESS_MESSAGE" default:"Thanks for subscribing!"`
	FallbackMessage string        `envconfig:"STOREFRONT_NEWSLETTER_FALLBACK_MESSAGE" default:"Something went wrong. Please try again."`
}

// ThemeConfig carries the content-layer settings rendered into the footer view.
type ThemeConfig struct {
	BrandName             string `envconfig:"STOREFRONT_THEME_BRAND_NAME" default:"Harborline"`
	Tagline               string `envconfig:"STOREFRONT_THEME_TAGLINE"`
	LogoURL               string `envconfig:"STOREFRONT_THEME_LOGO_URL"`
	LogoWidth             int    `envconfig:"STOREFRONT_THEME_LOGO_WIDTH" default:"0"`
	LogoHeight            int    `envconfig:"STOREFRONT_THEME_LOGO_HEIGHT" default:"0"`
	AddressLine1          string `envconfig:"STOREFRONT_THEME_ADDRESS_LINE1"`
	AddressLine2          string `envconfig:"STOREFRONT_THEME_ADDRESS_LINE2"`
	InstagramURL          string `envconfig:"STOREFRONT_THEME_INSTAGRAM_URL"`
	FacebookURL           string `envconfig:"STOREFRONT_THEME_FACEBOOK_URL"`
	TwitterURL            string `envconfig:"STOREFRONT_THEME_TWITTER_URL"`
	NewsletterTitle       string `envconfig:"STOREFRONT_THEME_NEWSLETTER_TITLE" default:"Subscribe to our newsletter"`
	NewsletterPlaceholder string `envconfig:"STOREFRONT_THEME_NEWSLETTER_PLACEHOLDER" default:"Email address"`
	LegalLine             string `envconfig:"STOREFRONT_THEME_LEGAL_LINE"`
}

// OptimisticConfig bounds how long an unreconciled overlay patch may linger.
type OptimisticConfig struct {
	PatchTTL time.Duration `envconfig:"STOREFRONT_OPTIMISTIC_PATCH_TTL" default:"5m"`
}

type ViewerConfig struct {
	SessionTTL time.Duration `envconfig:"STOREFRONT_VIEWER_SESSION_TTL" default:"1h"`
}

// RateLimitConfig throttles the public form surfaces.
type RateLimitConfig struct {
	NewsletterWindow     time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_NEWSLETTER_WINDOW" default:"1m"`
	NewsletterEmailLimit int           `envconfig:"STOREFRONT_RATE_LIMIT_NEWSLETTER_EMAIL_LIMIT" default:"3"`
	NewsletterIPLimit    int           `envconfig:"STOREFRONT_RATE_LIMIT_NEWSLETTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
}
