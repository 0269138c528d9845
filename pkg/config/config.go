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
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Cart          CartConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
	Mail          MailConfig
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
	Env          string `envconfig:"ORDESITE_APP_ENV" required:"true"`
	Port         string `envconfig:"ORDESITE_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"ORDESITE_APP_BASE_URL" default:"http://localhost:3000"`
	LogLevel     string `envconfig:"ORDESITE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDESITE_LOG_WARN_STACK" default:"false"`
	StaticDir    string `envconfig:"ORDESITE_STATIC_DIR" default:"web/static"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ORDESITE_DB_DSN"`
	Driver string `envconfig:"ORDESITE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ORDESITE_DB_HOST"`
	LegacyPort     int    `envconfig:"ORDESITE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ORDESITE_DB_USER"`
	LegacyPassword string `envconfig:"ORDESITE_DB_PASSWORD"`
	LegacyName     string `envconfig:"ORDESITE_DB_NAME"`
	LegacySSLMode  string `envconfig:"ORDESITE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ORDESITE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ORDESITE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ORDESITE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORDESITE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDESITE_REDIS_URL"`
	Address      string        `envconfig:"ORDESITE_REDIS_ADDR"`
	Password     string        `envconfig:"ORDESITE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDESITE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDESITE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDESITE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDESITE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDESITE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORDESITE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ORDESITE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ORDESITE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ORDESITE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"ORDESITE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
	CookieDomain           string `envconfig:"ORDESITE_COOKIE_DOMAIN"`
	CookieSecure           bool   `envconfig:"ORDESITE_COOKIE_SECURE" default:"true"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ORDESITE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ORDESITE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ORDESITE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ORDESITE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ORDESITE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"ORDESITE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"ORDESITE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"ORDESITE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"ORDESITE_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"ORDESITE_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"ORDESITE_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type CartConfig struct {
	// TTL of an idle cart entry; zero keeps carts forever.
	TTL time.Duration `envconfig:"ORDESITE_CART_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ORDESITE_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ORDESITE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type MailConfig struct {
	FromName    string `envconfig:"ORDESITE_MAIL_FROM_NAME" default:"Ordesite"`
	FromAddress string `envconfig:"ORDESITE_MAIL_FROM_ADDRESS"`
	OrderCopyTo string `envconfig:"ORDESITE_MAIL_ORDER_COPY_TO"`
	Enabled     bool   `envconfig:"ORDESITE_MAIL_ENABLED" default:"false"`
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
