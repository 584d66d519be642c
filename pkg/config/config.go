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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Password     PasswordConfig
	Cart         CartConfig
	Orders       OrdersConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"HARITHA_APP_ENV" required:"true"`
	Port         string `envconfig:"HARITHA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HARITHA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HARITHA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HARITHA_DB_DSN"`
	Driver string `envconfig:"HARITHA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HARITHA_DB_HOST"`
	LegacyPort     int    `envconfig:"HARITHA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HARITHA_DB_USER"`
	LegacyPassword string `envconfig:"HARITHA_DB_PASSWORD"`
	LegacyName     string `envconfig:"HARITHA_DB_NAME"`
	LegacySSLMode  string `envconfig:"HARITHA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HARITHA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HARITHA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HARITHA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HARITHA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HARITHA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HARITHA_REDIS_ADDR"`
	Password     string        `envconfig:"HARITHA_REDIS_PASSWORD"`
	DB           int           `envconfig:"HARITHA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HARITHA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HARITHA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HARITHA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HARITHA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HARITHA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HARITHA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HARITHA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HARITHA_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type AdminConfig struct {
	// CredentialHash is the Argon2id hash the admin token exchange
	// verifies against. Leaving it empty disables the admin surface.
	CredentialHash string `envconfig:"HARITHA_ADMIN_CREDENTIAL_HASH"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HARITHA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HARITHA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HARITHA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HARITHA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HARITHA_ARGON_KEY_LEN" default:"32"`
}

type CartConfig struct {
	DefaultMaxQuantity int           `envconfig:"HARITHA_CART_DEFAULT_MAX_QTY" default:"10"`
	SnapshotTTL        time.Duration `envconfig:"HARITHA_CART_SNAPSHOT_TTL" default:"168h"`
}

type OrdersConfig struct {
	BaseURL string        `envconfig:"HARITHA_ORDERS_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"HARITHA_ORDERS_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"HARITHA_CORS_ALLOWED_ORIGINS"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"HARITHA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"HARITHA_AUTO_MIGRATE" default:"false"`
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
