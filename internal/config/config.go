// Package config loads graphlite settings from defaults, an optional
// configuration file, GRAPHLITE_* environment variables and command line
// flags, in increasing order of precedence.
package config

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/born-ml/graphlite/internal/model"
	"github.com/born-ml/graphlite/internal/ops"
)

// EnvPrefix prefixes every environment variable, e.g. GRAPHLITE_LOG_LEVEL.
const EnvPrefix = "GRAPHLITE"

// Config is the resolved configuration of the CLI.
type Config struct {
	Log     LogConfig
	Import  ImportConfig
	Convert ConvertConfig
	Output  OutputConfig
	Verify  VerifyConfig
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string
	Format string
}

// ImportConfig bounds the model containers that are accepted.
type ImportConfig struct {
	MaxModelSize int64
}

// ConvertConfig holds the converter defaults.
type ConvertConfig struct {
	Format ops.Format
	Strict bool
}

// OutputConfig controls how model files are written.
type OutputConfig struct {
	Compress bool
}

// VerifyConfig sizes the verify worker pool.
type VerifyConfig struct {
	Workers int
}

// Flags maps configuration keys to the command line flags that override
// them.
var Flags = map[string]string{
	"log.level":             "log-level",
	"log.format":            "log-format",
	"import.max_model_size": "max-model-size",
	"convert.format":        "format",
	"convert.strict":        "strict",
	"output.compress":       "compress",
	"verify.workers":        "workers",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("import.max_model_size", model.DefaultMaxModelSize)
	v.SetDefault("convert.format", ops.NHWC.String())
	v.SetDefault("convert.strict", true)
	v.SetDefault("output.compress", false)
	v.SetDefault("verify.workers", runtime.NumCPU())
}

// Load resolves the configuration. file may be empty. Only flags that were
// set on the command line override the other sources.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", file)
		}
	}

	if flags != nil {
		for key, name := range Flags {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	format, err := ops.ParseFormat(v.GetString("convert.format"))
	if err != nil {
		return nil, errors.Wrap(err, "convert.format")
	}
	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Import: ImportConfig{
			MaxModelSize: v.GetInt64("import.max_model_size"),
		},
		Convert: ConvertConfig{
			Format: format,
			Strict: v.GetBool("convert.strict"),
		},
		Output: OutputConfig{
			Compress: v.GetBool("output.compress"),
		},
		Verify: VerifyConfig{
			Workers: v.GetInt("verify.workers"),
		},
	}
	if cfg.Import.MaxModelSize <= 0 {
		return nil, errors.Errorf("import.max_model_size must be positive, got %d", cfg.Import.MaxModelSize)
	}
	if cfg.Verify.Workers <= 0 {
		cfg.Verify.Workers = 1
	}
	return cfg, nil
}
