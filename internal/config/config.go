package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"dsn"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Redis struct {
		Addr           string `yaml:"addr"`
		DB             int    `yaml:"db"`
		MaxConnections int    `yaml:"max_connections"`
		TimeoutSec     int    `yaml:"timeout"` // таймаут на подключение и операцию
	} `yaml:"redis"`

	Kafka struct {
		Brokers         []string `yaml:"brokers"`
		Topic           string   `yaml:"topic"`
		WriteTimeoutSec int      `yaml:"write_timeout"`
	} `yaml:"kafka"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	JWT struct {
		Secret      string   `yaml:"secret"`
		Algorithm   string   `yaml:"algorithm"`   // HS256, HS384, HS512
		LifetimeSec int      `yaml:"lifetime"`    // 0 = токен без exp
		Audience    []string `yaml:"audience"`    // допустимые значения "aud"
		TokenURL    string   `yaml:"token_url"`   // для bearer-транспорта
	} `yaml:"jwt"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию из config.yaml или,
// если задан DATABASE_URL, целиком из переменных окружения (режим теста/CI).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.LifetimeSec = 3600

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	cfg.Admin.Email = os.Getenv("ADMIN_EMAIL")
	cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 15 // пул фиксированного размера + ограниченный overflow
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.DB == 0 {
		cfg.Redis.DB = 1 // db1 под кеш, как и раньше
	}
	if cfg.Redis.MaxConnections == 0 {
		cfg.Redis.MaxConnections = 100
	}
	if cfg.Redis.TimeoutSec == 0 {
		cfg.Redis.TimeoutSec = 10
	}
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{"localhost:9092"}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "nimbus"
	}
	if cfg.Kafka.WriteTimeoutSec == 0 {
		cfg.Kafka.WriteTimeoutSec = 10
	}
	if cfg.JWT.Algorithm == "" {
		cfg.JWT.Algorithm = "HS256"
	}
	if len(cfg.JWT.Audience) == 0 {
		cfg.JWT.Audience = []string{"nimbus:auth"}
	}
	if cfg.JWT.TokenURL == "" {
		cfg.JWT.TokenURL = "/api/v1/auth/login"
	}
}
