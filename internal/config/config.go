package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Mongo     MongoConfig
	Routing   RoutingConfig
	Auth      AuthConfig
	MQTT      MQTTConfig
	Cache     CacheConfig
	Occupancy OccupancyConfig
	Fuel      FuelConfig
	Log       LogConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type ProviderConfig struct {
	BaseURL string
	APIKey  string
}

type RoutingConfig struct {
	Provider    string // graphhopper | ors
	GraphHopper ProviderConfig
	ORS         ProviderConfig
	Profile     string
	Locale      string
	Timeout     time.Duration
	RateLimit   float64 // requests per second
	Burst       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

type MQTTConfig struct {
	Enabled     bool
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
}

type CacheConfig struct {
	RouteCacheTTL   time.Duration
	CountryCacheTTL time.Duration
}

type OccupancyConfig struct {
	ReportTTL      time.Duration
	ExpiryInterval time.Duration
}

type FuelConfig struct {
	PricePerLiter       float64
	ConsumptionPer100Km float64
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	ExpiryEnabled     bool
	BroadcastEnabled  bool
}

// Load reads .env from the working directory (if present) and the environment
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom reads the given env file; environment variables override it.
// A missing file is not an error so containers can run on environment only.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			PoolSize: v.GetInt("REDIS_POOL_SIZE"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGO_TIMEOUT")) * time.Second,
		},
		Routing: RoutingConfig{
			Provider: v.GetString("ROUTING_PROVIDER"),
			GraphHopper: ProviderConfig{
				BaseURL: v.GetString("GRAPHHOPPER_BASE_URL"),
				APIKey:  v.GetString("GRAPHHOPPER_API_KEY"),
			},
			ORS: ProviderConfig{
				BaseURL: v.GetString("ORS_BASE_URL"),
				APIKey:  v.GetString("ORS_API_KEY"),
			},
			Profile:   v.GetString("ROUTING_PROFILE"),
			Locale:    v.GetString("ROUTING_LOCALE"),
			Timeout:   time.Duration(v.GetInt("ROUTING_TIMEOUT")) * time.Second,
			RateLimit: v.GetFloat64("ROUTING_RATE_LIMIT"),
			Burst:     v.GetInt("ROUTING_BURST"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  time.Duration(v.GetInt("JWT_TTL")) * time.Hour,
			Issuer:    v.GetString("JWT_ISSUER"),
		},
		MQTT: MQTTConfig{
			Enabled:     v.GetBool("MQTT_ENABLED"),
			Broker:      v.GetString("MQTT_BROKER"),
			ClientID:    v.GetString("MQTT_CLIENT_ID"),
			Username:    v.GetString("MQTT_USERNAME"),
			Password:    v.GetString("MQTT_PASSWORD"),
			TopicPrefix: v.GetString("MQTT_TOPIC_PREFIX"),
			QoS:         byte(v.GetInt("MQTT_QOS")),
		},
		Cache: CacheConfig{
			RouteCacheTTL:   time.Duration(v.GetInt("ROUTE_CACHE_TTL")) * time.Second,
			CountryCacheTTL: time.Duration(v.GetInt("COUNTRY_CACHE_TTL")) * time.Second,
		},
		Occupancy: OccupancyConfig{
			ReportTTL:      time.Duration(v.GetInt("OCCUPANCY_REPORT_TTL")) * time.Minute,
			ExpiryInterval: time.Duration(v.GetInt("OCCUPANCY_EXPIRY_INTERVAL")) * time.Second,
		},
		Fuel: FuelConfig{
			PricePerLiter:       v.GetFloat64("FUEL_PRICE"),
			ConsumptionPer100Km: v.GetFloat64("FUEL_CONSUMPTION"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
			ExpiryEnabled:     !v.IsSet("WORKER_EXPIRY_ENABLED") || v.GetBool("WORKER_EXPIRY_ENABLED"),
			BroadcastEnabled:  v.GetBool("WORKER_BROADCAST_ENABLED"),
		},
	}

	applyDefaults(cfg)

	return cfg, nil
}

// Set default values if not provided
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.CORSOrigins == "" {
		cfg.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 20
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 50
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "truckershub"
	}
	if cfg.Mongo.Timeout == 0 {
		cfg.Mongo.Timeout = 10 * time.Second
	}
	if cfg.Routing.Provider == "" {
		cfg.Routing.Provider = "graphhopper"
	}
	if cfg.Routing.GraphHopper.BaseURL == "" {
		cfg.Routing.GraphHopper.BaseURL = "https://graphhopper.com/api/1"
	}
	if cfg.Routing.ORS.BaseURL == "" {
		cfg.Routing.ORS.BaseURL = "https://api.openrouteservice.org"
	}
	if cfg.Routing.Profile == "" {
		cfg.Routing.Profile = "truck"
	}
	if cfg.Routing.Locale == "" {
		cfg.Routing.Locale = "de"
	}
	if cfg.Routing.Timeout == 0 {
		cfg.Routing.Timeout = 30 * time.Second
	}
	if cfg.Routing.RateLimit == 0 {
		cfg.Routing.RateLimit = 1
	}
	if cfg.Routing.Burst == 0 {
		cfg.Routing.Burst = 3
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "truckershub"
	}
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "truckershub-worker"
	}
	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = "truckershub"
	}
	if cfg.Cache.RouteCacheTTL == 0 {
		cfg.Cache.RouteCacheTTL = 15 * time.Minute
	}
	if cfg.Cache.CountryCacheTTL == 0 {
		cfg.Cache.CountryCacheTTL = 24 * time.Hour
	}
	if cfg.Occupancy.ReportTTL == 0 {
		cfg.Occupancy.ReportTTL = 30 * time.Minute
	}
	if cfg.Occupancy.ExpiryInterval == 0 {
		cfg.Occupancy.ExpiryInterval = time.Minute
	}
	if cfg.Fuel.PricePerLiter == 0 {
		cfg.Fuel.PricePerLiter = 1.89
	}
	if cfg.Fuel.ConsumptionPer100Km == 0 {
		cfg.Fuel.ConsumptionPer100Km = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "occupancy-broadcast-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - key/value connection string; application_name tags our sessions in pg_stat_activity
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s application_name=truckershub",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// IsProduction - stack traces and debug endpoints are off in production
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
