package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	ProjectID string
	Turso     TursoConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Backend   BackendConfig
	Slack     SlackConfig
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// StorageConfig selects where the reservation collection is mirrored.
type StorageConfig struct {
	Driver         string // "sqlite" or "redis"
	ReservationKey string
}
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}
type BackendConfig struct {
	BaseURL string
	Token   string
}
type SlackConfig struct {
	Token     string
	ChannelID string
	DryRun    bool
}
