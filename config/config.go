// SPDX-License-Identifier: MIT

// Package config describes a likelihood run in YAML: which statistics, which
// Gaussian-family variant, how to factorize, and how to log.
//
//	likelihood:
//	  kind: student_t
//	  nu: 5
//	  factorization: eigen
//	statistics:
//	  - kind: supernova
//	    tracers: [sn_ddf]
//	  - kind: tabulated
//	    data_type: galaxy_shear_xi_plus
//	    tracers: [src0, src0]
//	    theory: [1.2e-5, 8.1e-6]
//	log:
//	  level: debug
//	  format: json
//
// Files are decoded with unknown keys rejected, defaults applied, then
// checked with validator struct tags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlike/likelihood"
	"github.com/katalvlaran/lvlike/parameters"
	"github.com/katalvlaran/lvlike/statistic"
)

// ErrInvalid reports a config that cannot describe a likelihood.
var ErrInvalid = errors.New("config: invalid configuration")

// Likelihood kinds.
const (
	KindConstGaussian = "const_gaussian"
	KindStudentT      = "student_t"
)

// Statistic kinds.
const (
	KindSupernova = "supernova"
	KindTabulated = "tabulated"
)

// DefaultNuName is the parameter name of a sampled ν.
const DefaultNuName = "nu"

var configValidate = validator.New()

// Config is the root document.
type Config struct {
	Likelihood LikelihoodConfig  `yaml:"likelihood"`
	Statistics []StatisticConfig `yaml:"statistics" validate:"required,min=1,dive"`
	Log        LogConfig         `yaml:"log"`
}

// LikelihoodConfig selects and tunes the variant.
type LikelihoodConfig struct {
	Kind string `yaml:"kind" validate:"required,oneof=const_gaussian student_t"`

	// Nu is a fixed ν for student_t, above 2 where the density is defined.
	// Exclusive with NuSampled.
	Nu *float64 `yaml:"nu,omitempty" validate:"omitempty,gt=2"`
	// NuSampled makes ν a sampled parameter named "<prefix>_nu".
	NuSampled bool   `yaml:"nu_sampled,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`

	Factorization string `yaml:"factorization,omitempty" validate:"omitempty,oneof=cholesky eigen"`
	// SymmetryTolerance is relative to max|Σ|; 0 selects the default.
	SymmetryTolerance float64 `yaml:"symmetry_tolerance,omitempty" validate:"gte=0"`
}

// StatisticConfig declares one statistic.
type StatisticConfig struct {
	Kind    string   `yaml:"kind" validate:"required,oneof=supernova tabulated"`
	Tracers []string `yaml:"tracers" validate:"required,min=1,dive,required"`

	// DataType and Theory are required for tabulated statistics.
	DataType string    `yaml:"data_type,omitempty" validate:"required_if=Kind tabulated"`
	Theory   []float64 `yaml:"theory,omitempty" validate:"required_if=Kind tabulated"`

	// AbsoluteMagnitude fixes M for supernova statistics; unset means
	// sampled as "<tracer>_M".
	AbsoluteMagnitude *float64 `yaml:"absolute_magnitude,omitempty"`
}

// Load decodes, defaults and validates a config.
// Errors: ErrInvalid wrapping the decoder or validator error.
func Load(r io.Reader) (Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("Load: empty document: %w", ErrInvalid)
		}
		return Config{}, fmt.Errorf("Load: %w: %w", ErrInvalid, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}

	return c, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("LoadFile: %w", err)
	}
	defer fh.Close()

	return Load(fh)
}

func (c *Config) applyDefaults() {
	if c.Likelihood.Factorization == "" {
		c.Likelihood.Factorization = likelihood.DefaultFactorization.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate runs the struct-tag checks and the cross-field rules tags cannot
// express.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	l := c.Likelihood
	switch {
	case l.Kind == KindStudentT && l.Nu == nil && !l.NuSampled:
		return fmt.Errorf("student_t needs nu or nu_sampled: %w", ErrInvalid)
	case l.Nu != nil && l.NuSampled:
		return fmt.Errorf("nu and nu_sampled are exclusive: %w", ErrInvalid)
	case l.Kind == KindConstGaussian && (l.Nu != nil || l.NuSampled):
		return fmt.Errorf("const_gaussian takes no nu: %w", ErrInvalid)
	}

	return nil
}

// Method maps Factorization to a likelihood.Method.
func (l LikelihoodConfig) Method() (likelihood.Method, error) {
	switch l.Factorization {
	case "", likelihood.Cholesky.String():
		return likelihood.Cholesky, nil
	case likelihood.Eigen.String():
		return likelihood.Eigen, nil
	default:
		return 0, fmt.Errorf("factorization %q: %w", l.Factorization, ErrInvalid)
	}
}

// Options turns the config into likelihood options; logger may be nil.
func (l LikelihoodConfig) Options(logger *slog.Logger) ([]likelihood.Option, error) {
	m, err := l.Method()
	if err != nil {
		return nil, err
	}
	opts := []likelihood.Option{
		likelihood.WithFactorization(m),
		likelihood.WithLogger(logger),
		likelihood.WithParameterPrefix(l.Prefix),
	}
	if l.SymmetryTolerance > 0 {
		opts = append(opts, likelihood.WithSymmetryTolerance(l.SymmetryTolerance))
	}

	return opts, nil
}

// Build constructs the configured variant over stats.
func (l LikelihoodConfig) Build(stats []statistic.Statistic, logger *slog.Logger) (likelihood.Gaussian, error) {
	opts, err := l.Options(logger)
	if err != nil {
		return nil, err
	}
	switch l.Kind {
	case KindConstGaussian:
		like, err := likelihood.NewConstGaussian(stats, opts...)
		if err != nil {
			return nil, err
		}
		return like, nil
	case KindStudentT:
		nu := parameters.Sampled(DefaultNuName)
		if l.Nu != nil {
			nu = parameters.Fixed(DefaultNuName, *l.Nu)
		}
		like, err := likelihood.NewStudentT(stats, nu, opts...)
		if err != nil {
			return nil, err
		}
		return like, nil
	default:
		return nil, fmt.Errorf("likelihood kind %q: %w", l.Kind, ErrInvalid)
	}
}

// Build constructs the statistic.
func (s StatisticConfig) Build() (statistic.Statistic, error) {
	switch s.Kind {
	case KindSupernova:
		if len(s.Tracers) != 1 {
			return nil, fmt.Errorf("supernova takes one tracer, got %d: %w", len(s.Tracers), ErrInvalid)
		}
		var opts []statistic.Option
		if s.AbsoluteMagnitude != nil {
			opts = append(opts, statistic.WithAbsoluteMagnitude(parameters.Fixed("M", *s.AbsoluteMagnitude)))
		}
		sn, err := statistic.NewSupernova(s.Tracers[0], opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return sn, nil
	case KindTabulated:
		tab, err := statistic.NewTabulated(s.DataType, s.Tracers, s.Theory)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return tab, nil
	default:
		return nil, fmt.Errorf("statistic kind %q: %w", s.Kind, ErrInvalid)
	}
}

// Build constructs every statistic in order and the likelihood over them.
func (c Config) Build(logger *slog.Logger) (likelihood.Gaussian, error) {
	stats := make([]statistic.Statistic, 0, len(c.Statistics))
	for i, sc := range c.Statistics {
		s, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("Build: statistic %d: %w", i, err)
		}
		stats = append(stats, s)
	}
	like, err := c.Likelihood.Build(stats, logger)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	return like, nil
}
