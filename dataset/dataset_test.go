// SPDX-License-Identifier: MIT
package dataset_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/matrix"
)

func fixture(t *testing.T) *dataset.Container {
	t.Helper()
	c := dataset.NewContainer()
	require.NoError(t, c.Add(
		dataset.DataPoint{DataType: "mu", Tracers: []string{"sn"}, Value: 40, Tags: map[string]float64{"z": 0.1}},
		dataset.DataPoint{DataType: "xi", Tracers: []string{"src0", "src0"}, Value: 1e-5},
		dataset.DataPoint{DataType: "mu", Tracers: []string{"sn"}, Value: 42, Tags: map[string]float64{"z": 0.3}},
	))
	cov, err := matrix.NewDiagonal([]float64{0.1, 1e-12, 0.2})
	require.NoError(t, err)
	require.NoError(t, c.SetCovariance(cov))

	return c
}

func TestContainer_Select(t *testing.T) {
	c := fixture(t)
	sel, err := c.Select("mu", "sn")
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 42}, sel.Values)
	assert.Equal(t, []int{0, 2}, sel.Indices)
	z, err := sel.Tag("z")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.3}, z)

	_, err = sel.Tag("missing")
	require.ErrorIs(t, err, dataset.ErrMalformed)

	sel, err = c.Select("xi", "src0", "src0")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sel.Indices)

	_, err = c.Select("mu", "lens0")
	require.ErrorIs(t, err, dataset.ErrMissingTracer)
	assert.Contains(t, err.Error(), "lens0")
}

func TestContainer_CovarianceIsCopied(t *testing.T) {
	c := fixture(t)
	cov, err := c.Covariance()
	require.NoError(t, err)
	require.NoError(t, cov.Set(0, 0, 99))
	again, err := c.Covariance()
	require.NoError(t, err)
	v, err := again.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.1, v)
}

func TestContainer_AddDropsCovariance(t *testing.T) {
	c := fixture(t)
	require.NoError(t, c.Add(dataset.DataPoint{DataType: "mu", Tracers: []string{"sn"}, Value: 43}))
	_, err := c.Covariance()
	require.ErrorIs(t, err, dataset.ErrNoCovariance)
	assert.Equal(t, 4, c.Len())
}

func TestContainer_Validation(t *testing.T) {
	c := dataset.NewContainer()
	require.ErrorIs(t, c.Add(dataset.DataPoint{Tracers: []string{"a"}}), dataset.ErrMalformed)
	require.ErrorIs(t, c.Add(dataset.DataPoint{DataType: "x"}), dataset.ErrMalformed)
	require.ErrorIs(t, c.Add(dataset.DataPoint{DataType: "x", Tracers: []string{"a"}, Value: math.NaN()}), dataset.ErrMalformed)
	require.Equal(t, 0, c.Len())

	require.NoError(t, c.Add(dataset.DataPoint{DataType: "x", Tracers: []string{"a"}}))
	wrong, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	require.ErrorIs(t, c.SetCovariance(wrong), dataset.ErrMalformed)
	require.ErrorIs(t, c.SetCovariance(nil), dataset.ErrMalformed)

	// mutating the caller's points must not reach the container
	pts := c.Points()
	pts[0].Tracers[0] = "changed"
	_, err = c.Select("x", "a")
	require.NoError(t, err)
}

func TestHartlapFactor(t *testing.T) {
	h, err := dataset.HartlapFactor(100, 10)
	require.NoError(t, err)
	assert.InDelta(t, 88.0/99.0, h, 1e-15)

	_, err = dataset.HartlapFactor(12, 10)
	require.ErrorIs(t, err, dataset.ErrTooFewRealizations)
}

func TestEstimateCovariance_Hartlap(t *testing.T) {
	data := make([]float64, 0, 20*2)
	for i := 0; i < 20; i++ {
		data = append(data, float64(i%5), float64((i*7)%3))
	}
	x, err := matrix.NewDenseFrom(20, 2, data)
	require.NoError(t, err)

	raw, err := dataset.EstimateCovariance(x, false)
	require.NoError(t, err)
	deb, err := dataset.EstimateCovariance(x, true)
	require.NoError(t, err)
	h, err := dataset.HartlapFactor(20, 2)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			a, _ := raw.At(i, j)
			b, _ := deb.At(i, j)
			assert.InDelta(t, a/h, b, 1e-14)
		}
	}
}

const sampleYAML = `
points:
  - data_type: supernova_distance_mu
    tracers: [sn_ddf]
    value: 38.2
    tags: {z: 0.05}
  - data_type: supernova_distance_mu
    tracers: [sn_ddf]
    value: 42.3
    tags: {z: 0.4}
covariance:
  - [0.04, 0.001]
  - [0.001, 0.09]
`

func TestLoad(t *testing.T) {
	c, err := dataset.Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	sel, err := c.Select("supernova_distance_mu", "sn_ddf")
	require.NoError(t, err)
	assert.Equal(t, []float64{38.2, 42.3}, sel.Values)
	cov, err := c.Covariance()
	require.NoError(t, err)
	v, _ := cov.At(0, 1)
	assert.Equal(t, 0.001, v)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))
	c, err := dataset.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = dataset.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"no points":      "points: []\n",
		"unknown key":    "points:\n  - {data_type: a, tracers: [t], value: 1}\nbogus: 1\n",
		"missing tracer": "points:\n  - {data_type: a, tracers: [], value: 1}\n",
		"bad row":        "points:\n  - {data_type: a, tracers: [t], value: 1}\ncovariance: [[1, 2]]\n",
		"two forms":      "points:\n  - {data_type: a, tracers: [t], value: 1}\ncovariance: [[1]]\ncovariance_diagonal: [1]\n",
		"diag size":      "points:\n  - {data_type: a, tracers: [t], value: 1}\ncovariance_diagonal: [1, 2]\n",
	}
	for name, doc := range cases {
		doc := doc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := dataset.Load(strings.NewReader(doc))
			require.ErrorIs(t, err, dataset.ErrMalformed)
		})
	}
}

func TestLoad_Realizations(t *testing.T) {
	doc := "points:\n  - {data_type: a, tracers: [t], value: 1}\nrealizations: [[1], [2], [3], [4], [5]]\nhartlap: true\n"
	c, err := dataset.Load(strings.NewReader(doc))
	require.NoError(t, err)
	cov, err := c.Covariance()
	require.NoError(t, err)
	v, _ := cov.At(0, 0)
	// sample variance 2.5, Hartlap (5-1-2)/(5-1) = 0.5
	assert.InDelta(t, 5.0, v, 1e-14)
}
