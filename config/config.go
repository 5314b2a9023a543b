package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/propchain/bridge/pkg/types"
	"github.com/spf13/viper"
)

type BridgeSettings struct {
	SourceChain           string   `mapstructure:"source_chain" validate:"required"`
	Admin                 string   `mapstructure:"admin" validate:"required"`
	Operators             []string `mapstructure:"operators" validate:"min=1"`
	SupportedChains       []string `mapstructure:"supported_chains" validate:"min=1"`
	MinSignatures         int      `mapstructure:"min_signatures" validate:"min=1"`
	MaxSignatures         int      `mapstructure:"max_signatures" validate:"gtefield=MinSignatures"`
	DefaultTimeoutSeconds int      `mapstructure:"default_timeout_seconds" validate:"min=0"`
	GasBudget             uint64   `mapstructure:"gas_budget" validate:"min=1"`
}

type DatabaseConfig struct {
	// URL is the Postgres DSN; empty means run on the in-memory store.
	URL           string `mapstructure:"url"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

type APIConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=0,max=65535"`
}

type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	Credential  string `mapstructure:"credential"`
	ServiceName string `mapstructure:"service_name"`
}

type Config struct {
	Bridge    BridgeSettings  `mapstructure:"bridge" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	API       APIConfig       `mapstructure:"api"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

var GlobalConfig *Config

// LoadEnv pulls .env into the process and makes every variable
// available through viper.
func LoadEnv() error {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()
	viper.AutomaticEnv()
	return nil
}

// Load reads data/<environment>/config.json, applies environment
// overrides and validates the result into GlobalConfig.
func Load(environment string) error {
	v := viper.New()
	v.SetConfigFile(fmt.Sprintf("data/%s/config.json", environment))
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file for environment %s: %w", environment, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	if url := viper.GetString("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if uri := viper.GetString("MONGODB_URI"); uri != "" {
		cfg.Database.MongoURI = uri
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	GlobalConfig = &cfg
	return nil
}

// BridgeConfig converts the file settings into the protocol tunables.
func (c *Config) BridgeConfig() types.BridgeConfig {
	chains := make([]types.ChainID, 0, len(c.Bridge.SupportedChains))
	for _, chain := range c.Bridge.SupportedChains {
		chains = append(chains, types.ChainID(chain))
	}
	return types.BridgeConfig{
		SupportedChains: chains,
		MinSignatures:   c.Bridge.MinSignatures,
		MaxSignatures:   c.Bridge.MaxSignatures,
		DefaultTimeout:  time.Duration(c.Bridge.DefaultTimeoutSeconds) * time.Second,
		GasBudget:       c.Bridge.GasBudget,
	}
}

func (c *Config) OperatorAccounts() []types.AccountID {
	operators := make([]types.AccountID, 0, len(c.Bridge.Operators))
	for _, op := range c.Bridge.Operators {
		operators = append(operators, types.AccountID(op))
	}
	return operators
}
