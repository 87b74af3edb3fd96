// Package config loads the stockdb command configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/stockdb/asset"
)

// EnvLogLevel overrides log_level when set.
const EnvLogLevel = "STOCKDB_LOG_LEVEL"

// Config is the command configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level" default:"info" validate:"oneof=trace debug info warn warning error"`
	LogFormat string          `yaml:"log_format" default:"text" validate:"oneof=text json"`
	ChunkSize int             `yaml:"chunk_size" default:"50" validate:"gt=0"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Lists     ListsConfig     `yaml:"lists"`
}

// BootstrapConfig holds the bootstrap defaults of the fit command.
type BootstrapConfig struct {
	Samples int     `yaml:"samples" default:"10000" validate:"gte=0"`
	Seed    uint64  `yaml:"seed" default:"1"`
	Level   float64 `yaml:"level" default:"0.95" validate:"gt=0,lt=1"`
}

// ListsConfig holds the reference ticker lists. Inline tickers and the
// tickers read from the optional files are merged.
type ListsConfig struct {
	Stocks          []string `yaml:"stocks"`
	MutualFunds     []string `yaml:"mutual_funds"`
	ETFs            []string `yaml:"etfs"`
	StocksFile      string   `yaml:"stocks_file"`
	MutualFundsFile string   `yaml:"mutual_funds_file"`
	ETFsFile        string   `yaml:"etfs_file"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("set config defaults: %w", err)
	}
	return c, nil
}

// Load reads a YAML configuration file over the defaults. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(b, c); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Parse decodes YAML into c, keeping the values of keys absent from b.
func Parse(b []byte, c *Config) error {
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

// AssetLists builds the classifier reference sets.
func (c *Config) AssetLists() (asset.Lists, error) {
	stocks, err := loadSet(c.Lists.Stocks, c.Lists.StocksFile)
	if err != nil {
		return asset.Lists{}, err
	}
	funds, err := loadSet(c.Lists.MutualFunds, c.Lists.MutualFundsFile)
	if err != nil {
		return asset.Lists{}, err
	}
	etfs, err := loadSet(c.Lists.ETFs, c.Lists.ETFsFile)
	if err != nil {
		return asset.Lists{}, err
	}
	return asset.Lists{Stocks: stocks, MutualFunds: funds, ETFs: etfs}, nil
}

func loadSet(inline []string, path string) (asset.Set, error) {
	s := asset.Set{}
	for _, t := range inline {
		s.Add(strings.ToUpper(strings.TrimSpace(t)))
	}
	if path == "" {
		return s, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ticker list: %w", err)
	}
	defer f.Close()
	fromFile, err := asset.ReadSet(f)
	if err != nil {
		return nil, fmt.Errorf("read ticker list %s: %w", path, err)
	}
	for t := range fromFile {
		s.Add(t)
	}
	return s, nil
}
