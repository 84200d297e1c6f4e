// Package config is for settings that are unmarshalled from viper. Every
// setting can come from a command line flag, a NUCMER_ environment variable
// or a config file, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/aria-lang/nucmer-go/internal/alignment"
	"github.com/aria-lang/nucmer-go/internal/cluster"
	"github.com/aria-lang/nucmer-go/internal/nucmer"
)

// EnvPrefix prefixes environment variables, e.g. NUCMER_SEED_MIN_LENGTH.
const EnvPrefix = "NUCMER"

// SeedConfig controls the maximal unique match search.
type SeedConfig struct {
	// minimum length of a seed match
	MinLength int `mapstructure:"min-length" toml:"min-length"`

	// also search the reverse complement of each query
	Reverse bool `mapstructure:"reverse" toml:"reverse"`
}

// ClusterConfig holds the clustering tolerances. -1 selects a default.
type ClusterConfig struct {
	FixedSeparation   int     `mapstructure:"fixed-separation" toml:"fixed-separation"`
	MaximumSeparation int     `mapstructure:"max-separation" toml:"max-separation"`
	MinimumScore      int     `mapstructure:"min-score" toml:"min-score"`
	SeparationFactor  float64 `mapstructure:"separation-factor" toml:"separation-factor"`
}

// ExtendConfig controls the extension between seeds.
type ExtendConfig struct {
	// how far an extension may run past its best point before it stops
	BreakLength int `mapstructure:"break-length" toml:"break-length"`

	// longest single extension
	MaxLength int `mapstructure:"max-length" toml:"max-length"`

	ValidScore        int `mapstructure:"valid-score" toml:"valid-score"`
	SubstitutionScore int `mapstructure:"substitution-score" toml:"substitution-score"`
	BandWidth         int `mapstructure:"band-width" toml:"band-width"`

	// scoring preset of the extender: nucmer, dna or blast
	Scoring string `mapstructure:"scoring" toml:"scoring"`
}

// ScoreConfig is how finished alignments are scored.
type ScoreConfig struct {
	Match     int  `mapstructure:"match" toml:"match"`
	Mismatch  int  `mapstructure:"mismatch" toml:"mismatch"`
	GapOpen   int  `mapstructure:"gap-open" toml:"gap-open"`
	GapExtend int  `mapstructure:"gap-extend" toml:"gap-extend"`
	Affine    bool `mapstructure:"affine" toml:"affine"`
}

// Config is the root-level settings struct.
type Config struct {
	Seed    SeedConfig    `mapstructure:"seed" toml:"seed"`
	Cluster ClusterConfig `mapstructure:"cluster" toml:"cluster"`
	Extend  ExtendConfig  `mapstructure:"extend" toml:"extend"`
	Score   ScoreConfig   `mapstructure:"score" toml:"score"`

	// queries aligned at once, 0 for one per CPU
	Workers int `mapstructure:"workers" toml:"workers"`

	// output format: delta, coords or json
	Format string `mapstructure:"format" toml:"format"`

	LogLevel string `mapstructure:"log-level" toml:"log-level"`
}

// NewViper returns a viper instance with every setting defaulted and bound
// to its environment variable.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults registers the default of every setting on v.
func SetDefaults(v *viper.Viper) {
	opts := nucmer.DefaultOptions()
	identity := alignment.IdentityMatrix()

	v.SetDefault("seed.min-length", opts.LengthOfMUM)
	v.SetDefault("seed.reverse", opts.IncludeReverse)

	v.SetDefault("cluster.fixed-separation", cluster.DefaultFixedSeparation)
	v.SetDefault("cluster.max-separation", cluster.DefaultMaximumSeparation)
	v.SetDefault("cluster.min-score", cluster.DefaultMinimumScore)
	v.SetDefault("cluster.separation-factor", cluster.DefaultSeparationFactor)

	v.SetDefault("extend.break-length", opts.BreakLength)
	v.SetDefault("extend.max-length", opts.MaximumAlignmentLength)
	v.SetDefault("extend.valid-score", opts.ValidScore)
	v.SetDefault("extend.substitution-score", opts.SubstitutionScore)
	v.SetDefault("extend.band-width", opts.BandWidth)
	v.SetDefault("extend.scoring", "nucmer")

	v.SetDefault("score.match", identity.Match)
	v.SetDefault("score.mismatch", identity.Mismatch)
	v.SetDefault("score.gap-open", opts.GapOpenCost)
	v.SetDefault("score.gap-extend", opts.GapExtensionCost)
	v.SetDefault("score.affine", opts.IsAlign)

	v.SetDefault("workers", 0)
	v.SetDefault("format", "delta")
	v.SetDefault("log-level", logrus.InfoLevel.String())
}

// ReadFile merges the settings of a config file into v. The format follows
// the file extension.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// New returns the Config populated by v.
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return c, nil
}

// Options converts c into aligner options. The logger and callbacks are left
// at their defaults.
func (c Config) Options() (nucmer.Options, error) {
	scoring, err := alignment.Preset(c.Extend.Scoring)
	if err != nil {
		return nucmer.Options{}, err
	}

	opts := nucmer.DefaultOptions()
	opts.LengthOfMUM = c.Seed.MinLength
	opts.IncludeReverse = c.Seed.Reverse

	opts.FixedSeparation = c.Cluster.FixedSeparation
	opts.MaximumSeparation = c.Cluster.MaximumSeparation
	opts.MinimumScore = c.Cluster.MinimumScore
	opts.SeparationFactor = c.Cluster.SeparationFactor

	opts.BreakLength = c.Extend.BreakLength
	opts.MaximumAlignmentLength = c.Extend.MaxLength
	opts.ValidScore = c.Extend.ValidScore
	opts.SubstitutionScore = c.Extend.SubstitutionScore
	opts.BandWidth = c.Extend.BandWidth
	opts.ExtensionScoring = scoring

	opts.SimilarityMatrix = alignment.DiagonalMatrix{Match: c.Score.Match, Mismatch: c.Score.Mismatch}
	opts.GapOpenCost = c.Score.GapOpen
	opts.GapExtensionCost = c.Score.GapExtend
	opts.IsAlign = c.Score.Affine

	if c.Workers > 0 {
		opts.Workers = c.Workers
	}

	return opts, nil
}

// Level parses the configured log level.
func (c Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// TOML encodes c as a config file.
func (c Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
