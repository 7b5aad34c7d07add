package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderLangchain = "langchain"
	ProviderOpenAI    = "openai"

	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Mongo     MongoConfig
	Store     StoreConfig
	Redis     RedisConfig
	CacheTTLs CacheTTLConfig
	Keywords  KeywordConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// LLMConfig describes the OpenAI-compatible provider used for grading.
type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	// Timeout of zero leaves provider calls bounded only by the request context.
	Timeout time.Duration
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

type StoreConfig struct {
	Driver string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheTTLConfig struct {
	Evaluation string `yaml:"evaluation"`
}

type KeywordConfig struct {
	StopWords []string
	MinLength int
	Limit     int
}

type LoggerConfig struct {
	Env   string
	Level string
}

func setDefaults() {
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", 0)
	viper.SetDefault("server.write_timeout", 0)
	viper.SetDefault("server.body_limit", 4*1024*1024)

	viper.SetDefault("llm.provider", ProviderLangchain)
	viper.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("llm.model", "llama3-70b-8192")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.max_tokens", 1000)
	viper.SetDefault("llm.timeout", "0s")

	viper.SetDefault("mongo.database", "examdb")
	viper.SetDefault("mongo.collection", "exam_results")
	viper.SetDefault("mongo.timeout", "10s")

	viper.SetDefault("store.driver", StoreDriverMongo)

	viper.SetDefault("cache_ttls.evaluation", "24h")

	viper.SetDefault("logger.level", "info")
}

// LoadConfig reads config.yaml (if any), a .env file (if any) and the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			Provider:    viper.GetString("llm.provider"),
			APIKey:      viper.GetString("llm.api_key"),
			BaseURL:     viper.GetString("llm.base_url"),
			Model:       viper.GetString("llm.model"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
			Timeout:     viper.GetDuration("llm.timeout"),
		},
		Mongo: MongoConfig{
			URI:        viper.GetString("mongo.uri"),
			Database:   viper.GetString("mongo.database"),
			Collection: viper.GetString("mongo.collection"),
			Timeout:    viper.GetDuration("mongo.timeout"),
		},
		Store: StoreConfig{
			Driver: viper.GetString("store.driver"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		CacheTTLs: CacheTTLConfig{
			Evaluation: viper.GetString("cache_ttls.evaluation"),
		},
		Keywords: KeywordConfig{
			StopWords: viper.GetStringSlice("keywords.stop_words"),
			MinLength: viper.GetInt("keywords.min_length"),
			Limit:     viper.GetInt("keywords.limit"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("env"),
			Level: viper.GetString("logger.level"),
		},
	}

	// Names used by the original deployment.
	if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		config.Mongo.URI = uri
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key is required (GROQ_API_KEY)")
	}
	switch c.LLM.Provider {
	case ProviderLangchain, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("document store URI is required (MONGO_URI)")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported store driver: %q", c.Store.Driver)
	}
	return nil
}

// ParseTTLStringOrDefault parses a duration string, falling back to defaultTTL
// when it is empty or malformed.
func (c *Config) ParseTTLStringOrDefault(ttlString string, defaultTTL time.Duration) time.Duration {
	if ttlString == "" {
		return defaultTTL
	}
	duration, err := time.ParseDuration(ttlString)
	if err != nil || duration <= 0 {
		return defaultTTL
	}
	return duration
}
