package stego

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/pixelseal/pixelseal/stego/imaging"
	"github.com/pixelseal/pixelseal/stego/kdf"
)

// Config contains all settings for a pixelseal Codec.
type Config struct {
	LogLevel      uint32
	LogSilent     bool
	KDFIterations int
	OutputFormat  imaging.Format
}

// configKeys are the settings a configuration file may contain. Anything
// else in the file is rejected so typos surface instead of silently keeping
// a default.
var configKeys = map[string]struct{}{
	"log.level":      {},
	"log.silent":     {},
	"kdf.iterations": {},
	"output.format":  {},
}

// NewDefaultConfig creates a new Config with default settings.
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:      uint32(log.InfoLevel),
		KDFIterations: kdf.DefaultIterations,
		OutputFormat:  imaging.PNG,
	}
}

// NewConfig creates a new Config with default settings and applies any
// settings from the given configuration file. An empty file name yields the
// defaults.
func NewConfig(configFile string) (*Config, error) {
	config := NewDefaultConfig()
	if configFile == "" {
		return config, nil
	}

	v := viper.New()
	// Expect a config.yaml file in the destination
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	keys := v.AllKeys()
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := configKeys[key]; !ok {
			return nil, errors.Errorf("Unknown setting %q in config file", key)
		}
	}

	if v.IsSet("log.level") {
		level, err := GetLogLevel(v.GetString("log.level"))
		if err != nil {
			return nil, err
		}
		config.LogLevel = level
	}

	if v.IsSet("log.silent") {
		config.LogSilent = v.GetBool("log.silent")
	}

	if v.IsSet("kdf.iterations") {
		iterations := v.GetInt("kdf.iterations")
		if iterations < 1 {
			return nil, errors.Errorf("Invalid kdf.iterations setting %d", iterations)
		}
		config.KDFIterations = iterations
	}

	if v.IsSet("output.format") {
		format, err := imaging.ParseFormat(v.GetString("output.format"))
		if err != nil {
			return nil, err
		}
		if !format.Lossless() {
			return nil, errors.Errorf("Invalid output.format setting %q: lossy formats destroy the hidden payload", format)
		}
		config.OutputFormat = format
	}

	return config, nil
}

// GetLogLevel converts the level string to its corresponding int value. It
// returns an error if the level is invalid.
func GetLogLevel(level string) (uint32, error) {
	var l uint32
	switch strings.ToLower(level) {
	case "debug":
		l = uint32(log.DebugLevel)
	case "info":
		l = uint32(log.InfoLevel)
	case "warn":
		l = uint32(log.WarnLevel)
	case "error":
		l = uint32(log.ErrorLevel)
	default:
		return 0, errors.Errorf("Invalid log.level setting %q", level)
	}
	return l, nil
}
