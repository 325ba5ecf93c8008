package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API       APIConfig
	Session   SessionConfig
	Bootstrap BootstrapConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Server    ServerConfig
}

type APIConfig struct {
	// URL is the explicit backend root; empty selects the platform default.
	URL      string        `env:"API_URL"`
	Platform string        `env:"PLATFORM,        default=web"`
	Timeout  time.Duration `env:"REQUEST_TIMEOUT, default=30s"`
}

type SessionConfig struct {
	Backend   string `env:"SESSION_BACKEND,   default=sqlite"`
	Path      string `env:"SESSION_PATH,      default=marketctl.db"`
	Namespace string `env:"SESSION_NAMESPACE, default=default"`
}

type BootstrapConfig struct {
	// Timeout bounds the initial session read; zero waits indefinitely.
	Timeout time.Duration `env:"BOOTSTRAP_TIMEOUT, default=0s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=market_client"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ServerConfig is read by the development backend only.
type ServerConfig struct {
	Port      string `env:"PORT,       default=3000"`
	JWTSecret string `env:"JWT_SECRET, default=dev-secret"`
	// AdminEmail and AdminPassword seed the administrator account; no admin
	// exists when the password is empty.
	AdminEmail    string `env:"ADMIN_EMAIL, default=admin@voltmarket.vn"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// IsDevelopment reports whether human-readable logs are wanted.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads .env files when present and then the process environment.
// Variables already set in the environment win over .env values.
func Load() *Config {
	for _, file := range []string{".env", "../.env"} {
		if err := godotenv.Load(file); err == nil {
			break
		}
	}

	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom resolves configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.API.Platform {
	case "web", "ios", "android":
	default:
		return fmt.Errorf("PLATFORM must be web, ios or android, got %q", c.API.Platform)
	}
	switch c.Session.Backend {
	case BackendMemory, BackendSQLite, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("SESSION_BACKEND must be memory, sqlite, redis or mongo, got %q", c.Session.Backend)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	return nil
}
