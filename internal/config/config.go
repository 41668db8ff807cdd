package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"pumpjack_simulator/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PUMPJACK"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port       string                 `mapstructure:"port"`
	DB         DBConfig               `mapstructure:"db"`
	Log        LogConfig              `mapstructure:"log"`
	Simulation SimulationConfig       `mapstructure:"simulation"`
	Limits     models.OperatingLimits `mapstructure:"limits"`
	MQTT       MQTTConfig             `mapstructure:"mqtt"`
	Auth       AuthConfig             `mapstructure:"auth"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SimulationConfig struct {
	Tick      time.Duration `mapstructure:"tick"`
	Seed      uint64        `mapstructure:"seed"` // 0 seeds from the clock
	Autostart bool          `mapstructure:"autostart"`
}

// MQTTConfig configures the tag bridge. The bridge is off unless Enabled is set.
type MQTTConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Broker      string        `mapstructure:"broker"`
	ClientID    string        `mapstructure:"client_id"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	TopicPrefix string        `mapstructure:"topic_prefix"`
	QoS         byte          `mapstructure:"qos"`
	KeepAlive   time.Duration `mapstructure:"keep_alive"`
	Tags        []string      `mapstructure:"tags"`
	Writable    []string      `mapstructure:"writable"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "pumpjack.db")
	v.SetDefault("log.level", "info")

	v.SetDefault("simulation.tick", time.Second)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.autostart", false)

	for name, l := range models.DefaultOperatingLimits() {
		v.SetDefault("limits."+name+".min", l.Min)
		v.SetDefault("limits."+name+".max", l.Max)
		v.SetDefault("limits."+name+".kind", string(l.Kind))
		v.SetDefault("limits."+name+".threshold", l.Threshold)
	}

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "pumpjack-simulator")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topic_prefix", "pumpjack/1")
	v.SetDefault("mqtt.qos", 0)
	v.SetDefault("mqtt.keep_alive", 30*time.Second)
	v.SetDefault("mqtt.tags", []string{"spm", "motor_amps", "production_rate", "rod_load", "high_motor_amps", "oee"})
	v.SetDefault("mqtt.writable", []string{"spm"})

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
}

// Load reads dir/config.yml, then environment variables prefixed with PUMPJACK_
// (dots become underscores, e.g. PUMPJACK_DB_PATH). Any envFiles that exist are
// loaded into the environment first; a missing config file leaves the defaults.
func Load(dir string, envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("%w: port is empty", ErrInvalidConfig)
	}
	if c.Simulation.Tick <= 0 {
		return fmt.Errorf("%w: simulation.tick must be positive, got %s", ErrInvalidConfig, c.Simulation.Tick)
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("%w: auth.signing_key is required", ErrInvalidConfig)
	}
	if c.MQTT.Enabled {
		if c.MQTT.Broker == "" {
			return fmt.Errorf("%w: mqtt.broker is empty", ErrInvalidConfig)
		}
		if c.MQTT.QoS > 2 {
			return fmt.Errorf("%w: mqtt.qos must be 0, 1 or 2", ErrInvalidConfig)
		}
	}
	return nil
}
