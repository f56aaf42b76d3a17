package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Square   SquareConfig
	GCP      GCPConfig
	PubSub   PubSubConfig
	BigQuery BigQueryConfig
	Features FeatureFlagsConfig
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
	Env          string `envconfig:"STAFFSHIELD_APP_ENV" required:"true"`
	Port         string `envconfig:"STAFFSHIELD_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STAFFSHIELD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STAFFSHIELD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STAFFSHIELD_DB_DSN"`
	Driver string `envconfig:"STAFFSHIELD_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STAFFSHIELD_DB_HOST"`
	LegacyPort     int    `envconfig:"STAFFSHIELD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STAFFSHIELD_DB_USER"`
	LegacyPassword string `envconfig:"STAFFSHIELD_DB_PASSWORD"`
	LegacyName     string `envconfig:"STAFFSHIELD_DB_NAME"`
	LegacySSLMode  string `envconfig:"STAFFSHIELD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STAFFSHIELD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STAFFSHIELD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STAFFSHIELD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STAFFSHIELD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STAFFSHIELD_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STAFFSHIELD_REDIS_ADDR"`
	Password     string        `envconfig:"STAFFSHIELD_REDIS_PASSWORD"`
	DB           int           `envconfig:"STAFFSHIELD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STAFFSHIELD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STAFFSHIELD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STAFFSHIELD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STAFFSHIELD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STAFFSHIELD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"STAFFSHIELD_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"STAFFSHIELD_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"STAFFSHIELD_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"STAFFSHIELD_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STAFFSHIELD_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STAFFSHIELD_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STAFFSHIELD_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STAFFSHIELD_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STAFFSHIELD_ARGON_KEY_LEN" default:"32"`
}

type SquareConfig struct {
	AccessToken   string `envconfig:"STAFFSHIELD_SQUARE_ACCESS_TOKEN"`
	WebhookSecret string `envconfig:"STAFFSHIELD_SQUARE_WEBHOOK_SECRET"`
	WebhookURL    string `envconfig:"STAFFSHIELD_SQUARE_WEBHOOK_URL"`
	LocationID    string `envconfig:"STAFFSHIELD_SQUARE_LOCATION_ID"`
	Env           string `envconfig:"STAFFSHIELD_SQUARE_ENV" default:"sandbox"`
}

// Environment returns the normalized Square environment (sandbox/production).
func (s SquareConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "sandbox"
	}
	return env
}

type GCPConfig struct {
	ProjectID       string `envconfig:"STAFFSHIELD_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"STAFFSHIELD_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	RealtimeTopic        string `envconfig:"STAFFSHIELD_PUBSUB_REALTIME_TOPIC" default:"ss-realtime-events"`
	RealtimeSubscription string `envconfig:"STAFFSHIELD_PUBSUB_REALTIME_SUBSCRIPTION"`
}

type BigQueryConfig struct {
	Dataset                string `envconfig:"STAFFSHIELD_BIGQUERY_DATASET" default:"staffshield"`
	MarketplaceEventsTable string `envconfig:"STAFFSHIELD_BIGQUERY_MARKETPLACE_TABLE" default:"marketplace_events"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STAFFSHIELD_AUTO_MIGRATE" default:"false"`
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
