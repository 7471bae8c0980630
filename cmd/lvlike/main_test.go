// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const dataDoc = `
points:
  - {data_type: obs, tracers: [a], value: 1}
  - {data_type: obs, tracers: [a], value: 2}
  - {data_type: obs, tracers: [b], value: 3}
  - {data_type: obs, tracers: [b], value: 4}
covariance_diagonal: [1, 1, 1, 1]
`

const gaussianDoc = `
likelihood: {kind: const_gaussian}
statistics:
  - {kind: tabulated, data_type: obs, tracers: [a], theory: [0, 0]}
  - {kind: tabulated, data_type: obs, tracers: [b], theory: [0, 0]}
log: {level: error, format: text}
`

const studentTDoc = `
likelihood: {kind: student_t, nu_sampled: true, prefix: like}
statistics:
  - {kind: supernova, tracers: [sn]}
  - {kind: tabulated, data_type: obs, tracers: [a], theory: [1, 2]}
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestEval_ConstGaussian(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.yaml", dataDoc)
	cfg := writeFile(t, dir, "run.yaml", gaussianDoc)

	out, err := run(t, "eval", "--config", cfg, "--data", data)
	require.NoError(t, err)

	var got evalOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.InDelta(t, -15, got.Loglike, 1e-12)
	require.NotNil(t, got.Chisq)
	assert.InDelta(t, 30, *got.Chisq, 1e-12)
	assert.NotEmpty(t, got.RunID)
	assert.False(t, got.Rejected)
}

func TestEval_RejectedPoint(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.yaml", `
points:
  - {data_type: obs, tracers: [a], value: 1}
covariance_diagonal: [1]
`)
	cfg := writeFile(t, dir, "run.yaml", `
likelihood: {kind: student_t, nu_sampled: true}
statistics:
  - {kind: tabulated, data_type: obs, tracers: [a], theory: [0]}
log: {level: error}
`)

	out, err := run(t, "eval", "-c", cfg, "-d", data, "-p", "nu=1.5")
	require.NoError(t, err)
	var got evalOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.True(t, got.Rejected)
	assert.Contains(t, got.Reason, "nu")
}

func TestEval_Errors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.yaml", dataDoc)
	cfg := writeFile(t, dir, "run.yaml", gaussianDoc)

	_, err := run(t, "eval", "--config", cfg)
	assert.Error(t, err, "missing --data")

	_, err = run(t, "eval", "-c", cfg, "-d", data, "-p", "novalue")
	assert.ErrorIs(t, err, errBadParam)

	_, err = run(t, "eval", "-c", cfg, "-d", data, "--h0", "-1")
	assert.Error(t, err)

	missing := writeFile(t, dir, "missing.yaml", `
likelihood: {kind: const_gaussian}
statistics:
  - {kind: tabulated, data_type: obs, tracers: [z], theory: [0]}
`)
	_, err = run(t, "eval", "-c", missing, "-d", data)
	assert.ErrorContains(t, err, "obs[z]")
}

func TestRequirements(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "run.yaml", studentTDoc)
	out, err := run(t, "requirements", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "sn_M\nlike_nu\n", out)
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	p, err := parseParams([]string{"a=1", "b=-2.5e-3"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p["a"])
	assert.Equal(t, -2.5e-3, p["b"])

	for _, bad := range []string{"=1", "a", "a=x"} {
		_, err = parseParams([]string{bad})
		assert.ErrorIs(t, err, errBadParam, bad)
	}
}
