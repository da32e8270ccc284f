package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	CORS      CORSConfig      `mapstructure:"cors"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Environment selects environment-specific behaviour. API documentation
	// is only served in development.
	Environment            string `mapstructure:"environment"              validate:"required,oneof=development staging production"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// IsDevelopment reports whether the server runs in the development environment.
func (c ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the storage backend: "memory" keeps everything in the
	// process, "postgres" uses URL.
	Driver string `mapstructure:"driver" validate:"required,oneof=memory postgres"`
	URL    string `mapstructure:"url"    validate:"required_if=Driver postgres,omitempty,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	Issuer                      string `mapstructure:"issuer"                         validate:"required"`
	Audience                    string `mapstructure:"audience"                       validate:"required"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0,lt=1440"`  // Max 24 hours
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,lt=44640"` // Max 31 days
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=4,lte=31"`
}

// CORSConfig selects one of the named cross-origin policies.
type CORSConfig struct {
	// Policy is "all" (any origin, no credentials) or "special"
	// (AllowedOrigins only, credentials allowed).
	Policy         string   `mapstructure:"policy"          validate:"required,oneof=all special"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required_if=Policy special,dive,url"`
}

// RateLimitConfig configures per-client request throttling.
type RateLimitConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Backend           string `mapstructure:"backend"             validate:"omitempty,oneof=memory redis"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" validate:"required_if=Enabled true,gte=0"`
	Burst             int    `mapstructure:"burst"               validate:"gte=0"`
	RedisURL          string `mapstructure:"redis_url"           validate:"required_if=Backend redis"`
	// FailOpen lets requests through when the limiter backend errors.
	FailOpen bool `mapstructure:"fail_open"`
}
