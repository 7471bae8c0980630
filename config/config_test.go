// SPDX-License-Identifier: MIT
package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlike/config"
	"github.com/katalvlaran/lvlike/likelihood"
	"github.com/katalvlaran/lvlike/statistic"
)

const studentTDoc = `
likelihood:
  kind: student_t
  nu: 5
  factorization: eigen
  symmetry_tolerance: 1e-8
statistics:
  - kind: supernova
    tracers: [sn_ddf]
  - kind: tabulated
    data_type: galaxy_shear_xi_plus
    tracers: [src0, src0]
    theory: [1.2e-5, 8.1e-6]
log:
  level: debug
  format: json
`

func load(t *testing.T, doc string) (config.Config, error) {
	t.Helper()
	return config.Load(strings.NewReader(doc))
}

func TestLoad_StudentT(t *testing.T) {
	t.Parallel()

	c, err := load(t, studentTDoc)
	require.NoError(t, err)
	assert.Equal(t, config.KindStudentT, c.Likelihood.Kind)
	require.NotNil(t, c.Likelihood.Nu)
	assert.Equal(t, 5.0, *c.Likelihood.Nu)
	require.Len(t, c.Statistics, 2)
	assert.Equal(t, []float64{1.2e-5, 8.1e-6}, c.Statistics[1].Theory)

	like, err := c.Build(nil)
	require.NoError(t, err)
	st, ok := like.(*likelihood.StudentT)
	require.True(t, ok)
	assert.Equal(t, 5.0, st.Nu())
	assert.Equal(t, likelihood.Eigen, like.Family().Method())
	assert.Equal(t, []string{"sn_ddf_M"}, like.RequiredParameters().Names())

	stats := like.Family().Statistics()
	require.Len(t, stats, 2)
	assert.Equal(t, "galaxy_shear_xi_plus[src0,src0]", stats[1].Name())
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	c, err := load(t, `
likelihood:
  kind: const_gaussian
statistics:
  - kind: supernova
    tracers: [sn]
    absolute_magnitude: -19.3
`)
	require.NoError(t, err)
	assert.Equal(t, "cholesky", c.Likelihood.Factorization)
	assert.Equal(t, config.DefaultLogLevel, c.Log.Level)
	assert.Equal(t, config.DefaultLogFormat, c.Log.Format)

	like, err := c.Build(nil)
	require.NoError(t, err)
	_, ok := like.(*likelihood.ConstGaussian)
	assert.True(t, ok)
	assert.Zero(t, like.RequiredParameters().Len())
}

func TestLoad_SampledNuWithPrefix(t *testing.T) {
	t.Parallel()

	c, err := load(t, `
likelihood:
  kind: student_t
  nu_sampled: true
  prefix: tdist
statistics:
  - kind: tabulated
    data_type: obs
    tracers: [a]
    theory: [1]
`)
	require.NoError(t, err)
	like, err := c.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tdist_nu"}, like.RequiredParameters().Names())
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty": ``,
		"unknown key": `
likelihood: {kind: const_gaussian}
statistics: [{kind: supernova, tracers: [sn]}]
extra: 1
`,
		"unknown kind": `
likelihood: {kind: poisson}
statistics: [{kind: supernova, tracers: [sn]}]
`,
		"no statistics": `
likelihood: {kind: const_gaussian}
`,
		"student_t without nu": `
likelihood: {kind: student_t}
statistics: [{kind: supernova, tracers: [sn]}]
`,
		"nu both fixed and sampled": `
likelihood: {kind: student_t, nu: 4, nu_sampled: true}
statistics: [{kind: supernova, tracers: [sn]}]
`,
		"const_gaussian with nu": `
likelihood: {kind: const_gaussian, nu: 4}
statistics: [{kind: supernova, tracers: [sn]}]
`,
		"non-positive nu": `
likelihood: {kind: student_t, nu: -1}
statistics: [{kind: supernova, tracers: [sn]}]
`,
		"nu at the density boundary": `
likelihood: {kind: student_t, nu: 2}
statistics: [{kind: supernova, tracers: [sn]}]
`,
		"nu below the density boundary": `
likelihood: {kind: student_t, nu: 1.5}
statistics: [{kind: supernova, tracers: [sn]}]
`,
		"bad factorization": `
likelihood: {kind: const_gaussian, factorization: lu}
statistics: [{kind: supernova, tracers: [sn]}]
`,
		"negative tolerance": `
likelihood: {kind: const_gaussian, symmetry_tolerance: -1}
statistics: [{kind: supernova, tracers: [sn]}]
`,
		"tabulated without theory": `
likelihood: {kind: const_gaussian}
statistics: [{kind: tabulated, data_type: obs, tracers: [a]}]
`,
		"empty tracer": `
likelihood: {kind: const_gaussian}
statistics: [{kind: supernova, tracers: [""]}]
`,
		"bad log level": `
likelihood: {kind: const_gaussian}
statistics: [{kind: supernova, tracers: [sn]}]
log: {level: loud}
`,
	}
	for name, doc := range cases {
		doc := doc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := load(t, doc)
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestStatisticConfig_BuildErrors(t *testing.T) {
	t.Parallel()

	_, err := config.StatisticConfig{Kind: config.KindSupernova, Tracers: []string{"a", "b"}}.Build()
	assert.ErrorIs(t, err, config.ErrInvalid)
	_, err = config.StatisticConfig{Kind: "cmb"}.Build()
	assert.ErrorIs(t, err, config.ErrInvalid)

	s, err := config.StatisticConfig{Kind: config.KindTabulated, DataType: "obs", Tracers: []string{"a"}, Theory: []float64{1}}.Build()
	require.NoError(t, err)
	_, ok := s.(*statistic.Tabulated)
	assert.True(t, ok)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(studentTDoc), 0o600))
	c, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "json", c.Log.Format)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogConfig_NewLogger(t *testing.T) {
	t.Parallel()

	cases := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", "msg=hello"},
		{"tint", "hello"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.format, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l, err := config.LogConfig{Level: "warn", Format: tc.format, NoColor: true}.NewLogger(&buf)
			require.NoError(t, err)
			l.Info("dropped")
			l.Warn("hello", "n", 1)
			assert.Contains(t, buf.String(), tc.want)
			assert.NotContains(t, buf.String(), "dropped")
		})
	}

	_, err := config.LogConfig{Format: "xml"}.NewLogger(&bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrInvalid)
	_, err = config.LogConfig{Level: "loud"}.NewLogger(&bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrInvalid)

	lvl, err := config.LogConfig{}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, "INFO", lvl.String())
}
