// SPDX-License-Identifier: MIT
package likelihood_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/matrix"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/statistic"
)

const obsType = "obs"

// fixedCosmo is a cosmology with no capabilities; tabulated statistics
// ignore it.
type fixedCosmo struct{}

func (fixedCosmo) Fingerprint() uint64 { return 42 }

// hide prevents the compiler from optimizing away benchmark results.
type hide struct{ v float64 }

var sink hide

// pointsSource stores b's points before a's so that covariance rows must be
// reordered to follow statistic order: a → rows {2,3}, b → rows {0,1}.
func pointsSource(t *testing.T, a, b []float64, cov []float64) *dataset.Container {
	t.Helper()
	c := dataset.NewContainer()
	for _, v := range b {
		require.NoError(t, c.Add(dataset.DataPoint{DataType: obsType, Tracers: []string{"b"}, Value: v}))
	}
	for _, v := range a {
		require.NoError(t, c.Add(dataset.DataPoint{DataType: obsType, Tracers: []string{"a"}, Value: v}))
	}
	n := len(a) + len(b)
	if cov == nil {
		id, err := matrix.NewIdentity(n)
		require.NoError(t, err)
		require.NoError(t, c.SetCovariance(id))
		return c
	}
	m, err := matrix.NewDenseFrom(n, n, cov)
	require.NoError(t, err)
	require.NoError(t, c.SetCovariance(m))
	return c
}

// tabulated returns two statistics predicting ta for tracer a, tb for b.
func tabulated(t *testing.T, ta, tb []float64) []statistic.Statistic {
	t.Helper()
	sa, err := statistic.NewTabulated(obsType, []string{"a"}, ta)
	require.NoError(t, err)
	sb, err := statistic.NewTabulated(obsType, []string{"b"}, tb)
	require.NoError(t, err)
	return []statistic.Statistic{sa, sb}
}

func preparedTools(t *testing.T) *modeling.Tools {
	t.Helper()
	tools := modeling.NewTools()
	require.NoError(t, tools.Prepare(fixedCosmo{}))
	return tools
}

// spd4 is a symmetric positive-definite covariance in container order (b, a).
var spd4 = []float64{
	2.0, 0.5, 0.0, 0.0,
	0.5, 1.5, 0.2, 0.0,
	0.0, 0.2, 1.0, 0.1,
	0.0, 0.0, 0.1, 0.8,
}
