// Package config loads clusteval settings from defaults, a YAML file, a .env
// file, CLUSTEVAL_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. CLUSTEVAL_LOG_LEVEL.
const EnvPrefix = "CLUSTEVAL"

// ErrInvalid is returned for settings that fail validation.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings.
type Config struct {
	Seed    int64  `mapstructure:"seed"`
	Workers int    `mapstructure:"workers"`
	KMeans  KMeans `mapstructure:"kmeans"`
	Log     Log    `mapstructure:"log"`
	Output  Output `mapstructure:"output"`
	S3      S3     `mapstructure:"s3"`
	MinIO   MinIO  `mapstructure:"minio"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

// KMeans holds the K-means bounds.
type KMeans struct {
	// MaxIterations caps K-means inside evaluate.
	MaxIterations int `mapstructure:"max_iterations"`
	// ClusterMaxIterations is the cluster command default.
	ClusterMaxIterations int     `mapstructure:"cluster_max_iterations"`
	Epsilon              float64 `mapstructure:"epsilon"`
}

// Log holds logging settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Output holds result formatting settings.
type Output struct {
	Format string `mapstructure:"format"`
	Codec  string `mapstructure:"codec"`
}

// S3 holds settings for s3:// locations.
type S3 struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// MinIO holds settings for minio:// locations.
type MinIO struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string `mapstructure:"region"`
	Secure    bool   `mapstructure:"secure"`
}

// Loader reads a Config. Each Loader owns its viper instance.
type Loader struct {
	v       *viper.Viper
	envFile string
}

// NewLoader returns a Loader with defaults applied.
func NewLoader(optFns ...func(*Loader)) *Loader {
	l := &Loader{
		v:       viper.New(),
		envFile: ".env",
	}
	for _, fn := range optFns {
		fn(l)
	}

	setDefaults(l.v)
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
	return l
}

// WithEnvFile sets the dotenv file. An empty path disables it.
func WithEnvFile(path string) func(*Loader) {
	return func(l *Loader) { l.envFile = path }
}

// Viper exposes the underlying instance, e.g. for flag binding.
func (l *Loader) Viper() *viper.Viper { return l.v }

// Load reads configFile, or .clusteval.yaml from the working or home
// directory when configFile is empty, and returns the merged settings.
func (l *Loader) Load(configFile string) (*Config, error) {
	if l.envFile != "" {
		if _, err := os.Stat(l.envFile); err == nil {
			if err := godotenv.Load(l.envFile); err != nil {
				return nil, fmt.Errorf("loading %s: %w", l.envFile, err)
			}
		}
	}

	if configFile != "" {
		l.v.SetConfigFile(configFile)
	} else {
		l.v.AddConfigPath(".")
		l.v.AddConfigPath("$HOME")
		l.v.SetConfigName(".clusteval")
		l.v.SetConfigType("yaml")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.ConfigFile = l.v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 1234)
	v.SetDefault("workers", 1)

	v.SetDefault("kmeans.max_iterations", 300)
	v.SetDefault("kmeans.cluster_max_iterations", 200)
	v.SetDefault("kmeans.epsilon", 0.001)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.format", "text")
	v.SetDefault("output.codec", "go-json")

	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.region", "")
	v.SetDefault("minio.secure", true)
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: output.format %q", ErrInvalid, c.Output.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if c.KMeans.Epsilon < 0 {
		return fmt.Errorf("%w: kmeans.epsilon %g", ErrInvalid, c.KMeans.Epsilon)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return level, nil
}
