package config

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"blogforge"`
	Password string `env:"PASSWORD" envDefault:"blogforge"`
	Name     string `env:"NAME"     envDefault:"blogforge"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the token revocation store.
type RedisConfig struct {
	// Enabled turns the revocation store on. When false, logout cannot
	// invalidate tokens early and they age out at their natural expiry.
	Enabled  bool   `env:"ENABLED"  envDefault:"true"`
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
