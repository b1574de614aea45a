package avisha

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/tfkr-ae/avisha/persist"
)

// EnvPrefix is the prefix of environment variables that override config.yaml.
const EnvPrefix = "AVISHA"

// Config is the on-disk configuration of a Controller, read from config.yaml in the config dir.
type Config struct {
	viper        *viper.Viper
	ConfigDir    string `mapstructure:"-"`             // Directory holding config.yaml and, by default, the database
	DatabaseFile string `mapstructure:"database_file"` // SQLite file, relative paths resolve against ConfigDir
	StorageKey   string `mapstructure:"storage_key"`   // Slot the ledger is stored under
	Codec        string `mapstructure:"codec"`         // "json" or "cbor"
	Compress     bool   `mapstructure:"compress"`      // Brotli compress the stored blob
	LogMode      string `mapstructure:"log_mode"`      // "development" or "production"
}

// DefaultConfigDir returns $AVISHA_CONFIG_DIR, or the avisha folder under the user configuration directory.
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir : %w", err)
	}
	return filepath.Join(base, "avisha"), nil
}

// LoadConfig reads config.yaml from dir, creating the directory and a default file when missing.
// AVISHA_* environment variables take precedence over the file.
//
// Parameters:
//   - dir: Path to the configuration directory
//
// Returns:
//   - *Config: Configuration with defaults applied
//   - error: Error creating the directory or reading, writing or decoding the file
func LoadConfig(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating config dir %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetDefault("database_file", "avisha.db")
	v.SetDefault("storage_key", persist.DefaultKey)
	v.SetDefault("codec", string(persist.FormatJSON))
	v.SetDefault("compress", false)
	v.SetDefault("log_mode", "development")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file : %w", err)
		}
		if err := v.SafeWriteConfig(); err != nil {
			return nil, fmt.Errorf("writing config file : %w", err)
		}
	}

	cfg := &Config{viper: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	cfg.ConfigDir = dir
	return cfg, nil
}

// DatabasePath returns the location of the SQLite file.
func (cfg *Config) DatabasePath() string {
	if filepath.IsAbs(cfg.DatabaseFile) {
		return cfg.DatabaseFile
	}
	return filepath.Join(cfg.ConfigDir, cfg.DatabaseFile)
}

// BlobCodec returns the codec described by the codec and compress settings.
func (cfg *Config) BlobCodec() (persist.Codec, error) {
	format, err := persist.ParseFormat(cfg.Codec)
	if err != nil {
		return persist.Codec{}, err
	}
	return persist.Codec{Format: format, Compress: cfg.Compress}, nil
}

// SetCodec changes the stored codec and rewrites config.yaml. It takes effect on the next start.
func (cfg *Config) SetCodec(codec persist.Codec) error {
	if _, err := persist.ParseFormat(string(codec.Format)); err != nil {
		return err
	}

	cfg.viper.Set("codec", string(codec.Format))
	cfg.viper.Set("compress", codec.Compress)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cfg.Codec = string(codec.Format)
	cfg.Compress = codec.Compress
	return nil
}
