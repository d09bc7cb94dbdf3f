package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	Settlement   SettlementConfig
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
	Env          string `envconfig:"VAHANBAZAR_APP_ENV" required:"true"`
	Port         string `envconfig:"VAHANBAZAR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VAHANBAZAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VAHANBAZAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"VAHANBAZAR_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"VAHANBAZAR_DB_DSN"`
	Driver string `envconfig:"VAHANBAZAR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VAHANBAZAR_DB_HOST"`
	LegacyPort     int    `envconfig:"VAHANBAZAR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VAHANBAZAR_DB_USER"`
	LegacyPassword string `envconfig:"VAHANBAZAR_DB_PASSWORD"`
	LegacyName     string `envconfig:"VAHANBAZAR_DB_NAME"`
	LegacySSLMode  string `envconfig:"VAHANBAZAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VAHANBAZAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VAHANBAZAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VAHANBAZAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VAHANBAZAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VAHANBAZAR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VAHANBAZAR_REDIS_ADDR"`
	Password     string        `envconfig:"VAHANBAZAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"VAHANBAZAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VAHANBAZAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VAHANBAZAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VAHANBAZAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VAHANBAZAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VAHANBAZAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VAHANBAZAR_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VAHANBAZAR_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"VAHANBAZAR_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"VAHANBAZAR_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"VAHANBAZAR_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"VAHANBAZAR_PUBSUB_ORDERS_TOPIC" required:"true"`
	OrdersSubscription string `envconfig:"VAHANBAZAR_PUBSUB_ORDERS_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"VAHANBAZAR_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"VAHANBAZAR_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"VAHANBAZAR_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// SettlementConfig tunes the payment settlement path. AllowOversell keeps the
// original marketplace behavior of settling even when stock is exhausted;
// flipping it off makes settlement fail closed on depleted stock.
type SettlementConfig struct {
	AllowOversell bool          `envconfig:"VAHANBAZAR_SETTLEMENT_ALLOW_OVERSELL" default:"true"`
	LockTimeout   time.Duration `envconfig:"VAHANBAZAR_SETTLEMENT_LOCK_TIMEOUT" default:"10s"`
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
