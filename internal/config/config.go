package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Line      LineConfig      `mapstructure:"line"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	Chat      ChatConfig      `mapstructure:"chat"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// LineConfig holds LINE Messaging API credentials and endpoints.
// ChannelSecret signs webhook bodies; ChannelToken authorizes outbound sends.
type LineConfig struct {
	ChannelToken  string `mapstructure:"channel_token"`
	ChannelSecret string `mapstructure:"channel_secret"`
	APIEndpoint   string `mapstructure:"api_endpoint"`
	Timeout       int    `mapstructure:"timeout"`
}

type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"`
	MaxRetries  int     `mapstructure:"max_retries"`
}

type SentimentConfig struct {
	APIEndpoint string `mapstructure:"api_endpoint"`
	APIKey      string `mapstructure:"api_key"`
	Timeout     int    `mapstructure:"timeout"`
	MaxRetries  int    `mapstructure:"max_retries"`
}

type ChatConfig struct {
	HistoryLimit int `mapstructure:"history_limit"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set defaults
	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "lume_db")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 300)

	viper.SetDefault("line.channel_token", "")
	viper.SetDefault("line.channel_secret", "")
	viper.SetDefault("line.api_endpoint", "https://api.line.me")
	viper.SetDefault("line.timeout", 30)

	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.model", "gpt-4")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.timeout", 30)
	viper.SetDefault("llm.max_retries", 3)

	viper.SetDefault("sentiment.api_endpoint", "https://api-inference.huggingface.co/models/uer/roberta-base-finetuned-jd-binary-chinese")
	viper.SetDefault("sentiment.api_key", "")
	viper.SetDefault("sentiment.timeout", 15)
	viper.SetDefault("sentiment.max_retries", 2)

	viper.SetDefault("chat.history_limit", 10)
}
